package cmdrun

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsascode/dsc/internal/pkg/log"
)

func TestParseCommand(t *testing.T) {
	t.Parallel()
	name, args, err := ParseCommand("poetry run pytest -v")
	require.NoError(t, err)
	assert.Equal(t, "poetry", name)
	assert.Equal(t, []string{"run", "pytest", "-v"}, args)
}

func TestParseCommandQuoted(t *testing.T) {
	t.Parallel()
	name, args, err := ParseCommand(`git commit -m "initial commit"`)
	require.NoError(t, err)
	assert.Equal(t, "git", name)
	assert.Equal(t, []string{"commit", "-m", "initial commit"}, args)
}

func TestParseCommandEmpty(t *testing.T) {
	t.Parallel()
	_, _, err := ParseCommand("")
	assert.Error(t, err)
	assert.Equal(t, "command is empty", err.Error())
}

func TestExitError(t *testing.T) {
	t.Parallel()
	err := &ExitError{Code: 5}
	assert.Equal(t, "command exited with code 5", err.Error())
}

func TestErrorMsg(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "some error", ErrorMsg(Result{StdErr: "some error\n"}, nil))
	assert.Equal(t, "run failed", ErrorMsg(Result{}, fmt.Errorf("run failed")))
	assert.Equal(t, "exit code 3", ErrorMsg(Result{ExitCode: 3}, nil))
}

func TestRunCapturesOutput(t *testing.T) {
	t.Parallel()
	logger := log.NewDebugLogger()
	runner := New(logger, t.TempDir())

	result, err := runner.Run(context.Background(), "sh", "-c", "echo hello")
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "hello\n", result.StdOut)
	assert.Contains(t, logger.DebugMessages(), "Running command: sh -c echo hello")
}

func TestRunExitCode(t *testing.T) {
	t.Parallel()
	logger := log.NewDebugLogger()
	runner := New(logger, t.TempDir())

	result, err := runner.Run(context.Background(), "sh", "-c", "echo oops >&2; exit 3")
	assert.Error(t, err)
	assert.Equal(t, 3, result.ExitCode)
	assert.Equal(t, "oops\n", result.StdErr)
	assert.Equal(t, "oops", ErrorMsg(result, err))
}

func TestRunMissingCommand(t *testing.T) {
	t.Parallel()
	logger := log.NewDebugLogger()
	runner := New(logger, t.TempDir())

	result, err := runner.Run(context.Background(), "definitely-missing-command-12345")
	assert.Error(t, err)
	assert.Equal(t, 0, result.ExitCode)
}

func TestRunWithRetryRecovers(t *testing.T) {
	t.Parallel()
	logger := log.NewDebugLogger()
	runner := New(logger, t.TempDir())

	// The first attempt fails, the retry succeeds
	script := "if [ -f marker ]; then exit 0; else touch marker; exit 1; fi"
	result, err := runner.RunWithRetry(context.Background(), "sh", "-c", script)
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
}

func TestRunWithRetryGivesUp(t *testing.T) {
	t.Parallel()
	logger := log.NewDebugLogger()
	runner := New(logger, t.TempDir())

	result, err := runner.RunWithRetry(context.Background(), "sh", "-c", "echo nope >&2; exit 1")
	assert.Error(t, err)
	assert.Equal(t, 1, result.ExitCode)
	assert.Equal(t, "nope", ErrorMsg(result, err))
}

func TestAddEnv(t *testing.T) {
	t.Parallel()
	logger := log.NewDebugLogger()
	runner := New(logger, t.TempDir())
	runner.AddEnv("MY_TEST_VARIABLE=value1")

	result, err := runner.Run(context.Background(), "sh", "-c", "echo $MY_TEST_VARIABLE")
	require.NoError(t, err)
	assert.Equal(t, "value1\n", result.StdOut)
}
