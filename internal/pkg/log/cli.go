// nolint:forbidigo // allow usage of the "zap" package
package log

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewCliLogger new production zapLogger.
func NewCliLogger(stdout io.Writer, stderr io.Writer, logFile *File, verbose bool) Logger {
	var cores []zapcore.Core

	// Log to file
	if logFile != nil {
		cores = append(cores, fileCore(logFile))
	}

	// Log to stdout
	cores = append(cores, stdoutCore(stdout, verbose))

	// Log to stderr
	cores = append(cores, stderrCore(stderr, verbose))

	// Create zapLogger
	return loggerFromZap(zap.New(zapcore.NewTee(cores...)))
}

// fileCore writes all levels to the log file as JSON lines.
func fileCore(logFile *File) zapcore.Core {
	encoder := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:     "time",
		LevelKey:    "level",
		MessageKey:  "message",
		EncodeLevel: zapcore.LowercaseLevelEncoder,
		EncodeTime:  zapcore.ISO8601TimeEncoder,
	})
	return zapcore.NewCore(encoder, logFile.File(), zapcore.DebugLevel)
}

// stdoutCore prints info messages, and debug messages in the verbose mode.
func stdoutCore(stdout io.Writer, verbose bool) zapcore.Core {
	levels := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		if verbose {
			return l <= InfoLevel
		}
		return l == InfoLevel
	})
	return zapcore.NewCore(consoleEncoder(verbose), zapcore.AddSync(stdout), levels)
}

// stderrCore prints warnings and errors.
func stderrCore(stderr io.Writer, verbose bool) zapcore.Core {
	levels := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= WarnLevel
	})
	return zapcore.NewCore(consoleEncoder(verbose), zapcore.AddSync(stderr), levels)
}

// consoleEncoder writes only the message, the level prefix is added in the verbose mode.
func consoleEncoder(verbose bool) zapcore.Encoder {
	cfg := zapcore.EncoderConfig{
		MessageKey:  "message",
		LineEnding:  zapcore.DefaultLineEnding,
		EncodeLevel: zapcore.CapitalLevelEncoder,
	}
	if verbose {
		cfg.LevelKey = "level"
		cfg.ConsoleSeparator = "  "
	}
	return zapcore.NewConsoleEncoder(cfg)
}
