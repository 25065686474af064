// nolint: forbidigo
package cmdrun

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/shlex"

	"github.com/dsascode/dsc/internal/pkg/log"
)

// Result of an external command.
type Result struct {
	ExitCode int
	StdOut   string
	StdErr   string
}

// ExitError propagates the exit code of a delegated command.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command exited with code %d", e.Code)
}

// Runner runs external commands in the project directory.
type Runner struct {
	logger  log.Logger
	workDir string
	env     []string
	cmdLock *sync.Mutex // only one command can run at a time
}

func New(logger log.Logger, workDir string) *Runner {
	return &Runner{
		logger:  logger,
		workDir: workDir,
		env:     os.Environ(),
		cmdLock: &sync.Mutex{},
	}
}

// AddEnv appends "KEY=VALUE" pairs to the command environment.
func (r *Runner) AddEnv(pairs ...string) {
	r.env = append(r.env, pairs...)
}

// Run the command, stdout/stderr are captured and logged with the debug level.
func (r *Runner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	return r.doRun(ctx, name, args, nil, r.logger.DebugWriter(), r.logger.DebugWriter())
}

// RunWithRetry - Run with a short exponential backoff,
// for commands that may fail on a transient condition.
func (r *Runner) RunWithRetry(ctx context.Context, name string, args ...string) (Result, error) {
	retry := newBackoff()
	for {
		result, err := r.Run(ctx, name, args...)
		if result.ExitCode == 0 && err == nil {
			return result, err
		}
		if delay := retry.NextBackOff(); delay == retry.Stop {
			return result, err
		} else {
			time.Sleep(delay)
		}
	}
}

// RunAttached - the command inherits the given stdin/stdout/stderr,
// for delegated tools with their own interactive output.
func (r *Runner) RunAttached(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) (Result, error) {
	return r.doRun(ctx, name, args, stdin, stdout, stderr)
}

func (r *Runner) doRun(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) (Result, error) {
	r.cmdLock.Lock()
	defer r.cmdLock.Unlock()
	r.logger.Debugf(`Running command: %s %s`, name, strings.Join(args, " "))

	var stdOutBuffer bytes.Buffer
	var stdErrBuffer bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.workDir
	cmd.Stdin = stdin
	cmd.Stdout = io.MultiWriter(stdout, &stdOutBuffer)
	cmd.Stderr = io.MultiWriter(stderr, &stdErrBuffer)
	cmd.Env = r.env

	err := cmd.Run()
	result := Result{}
	result.StdOut = stdOutBuffer.String()
	result.StdErr = stdErrBuffer.String()
	result.ExitCode = 0
	if err != nil {
		// nolint: errorlint
		if exitError, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitError.ExitCode()
		}
	}

	return result, err
}

// ParseCommand splits a task command string into the command name and arguments.
func ParseCommand(cmd string) (name string, args []string, err error) {
	parts, err := shlex.Split(cmd)
	if err != nil {
		return "", nil, fmt.Errorf(`cannot parse command "%s": %w`, log.Sanitize(cmd), err)
	}
	if len(parts) == 0 {
		return "", nil, fmt.Errorf("command is empty")
	}
	return parts[0], parts[1:], nil
}

// ErrorMsg returns the most useful message from the failed command.
func ErrorMsg(result Result, err error) string {
	if msg := strings.TrimSpace(result.StdErr); msg != "" {
		return msg
	}
	if err != nil {
		return err.Error()
	}
	return fmt.Sprintf("exit code %d", result.ExitCode)
}

func newBackoff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.Multiplier = 2
	b.MaxInterval = 1 * time.Second
	b.MaxElapsedTime = 3 * time.Second
	b.Reset()
	return b
}
