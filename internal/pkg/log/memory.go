package log

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// debugLogger stores all messages in memory, for tests.
type debugLogger struct {
	*zapLogger
	recorder *recorder
}

type record struct {
	level   zapcore.Level
	message string
}

type recorder struct {
	lock    *sync.Mutex
	records []record
}

// NewDebugLogger returns logger for tests, all messages are stored in memory.
func NewDebugLogger() DebugLogger {
	r := &recorder{lock: &sync.Mutex{}}
	logger := &debugLogger{recorder: r}
	logger.zapLogger = loggerFromZap(zap.New(r))
	return logger
}

// recorder implements zapcore.Core.
func (r *recorder) Enabled(zapcore.Level) bool {
	return true
}

func (r *recorder) With([]zapcore.Field) zapcore.Core {
	return r
}

func (r *recorder) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	return checked.AddCore(entry, r)
}

func (r *recorder) Write(entry zapcore.Entry, _ []zapcore.Field) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.records = append(r.records, record{level: entry.Level, message: entry.Message})
	return nil
}

func (r *recorder) Sync() error {
	return nil
}

func (l *debugLogger) Truncate() {
	l.recorder.lock.Lock()
	defer l.recorder.lock.Unlock()
	l.recorder.records = nil
}

func (l *debugLogger) AllMessages() string {
	return l.messages(func(record) bool { return true })
}

func (l *debugLogger) DebugMessages() string {
	return l.messages(func(r record) bool { return r.level == DebugLevel })
}

func (l *debugLogger) InfoMessages() string {
	return l.messages(func(r record) bool { return r.level == InfoLevel })
}

func (l *debugLogger) WarnMessages() string {
	return l.messages(func(r record) bool { return r.level == WarnLevel })
}

func (l *debugLogger) WarnAndErrorMessages() string {
	return l.messages(func(r record) bool { return r.level >= WarnLevel })
}

func (l *debugLogger) ErrorMessages() string {
	return l.messages(func(r record) bool { return r.level == ErrorLevel })
}

func (l *debugLogger) messages(match func(record) bool) string {
	l.recorder.lock.Lock()
	defer l.recorder.lock.Unlock()
	var out strings.Builder
	for _, r := range l.recorder.records {
		if match(r) {
			out.WriteString(fmt.Sprintf("%s  %s\n", r.level.CapitalString(), r.message))
		}
	}
	return out.String()
}
