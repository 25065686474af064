package run

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsascode/dsc/internal/pkg/cmdrun"
	"github.com/dsascode/dsc/internal/pkg/log"
	"github.com/dsascode/dsc/internal/pkg/manifest"
)

type testDeps struct {
	logger   log.DebugLogger
	manifest *manifest.Manifest
	runner   *cmdrun.Runner
	stdout   bytes.Buffer
	stderr   bytes.Buffer
}

func (d *testDeps) Logger() log.Logger                           { return d.logger }
func (d *testDeps) ProjectManifest() (*manifest.Manifest, error) { return d.manifest, nil }
func (d *testDeps) Runner() *cmdrun.Runner                       { return d.runner }
func (d *testDeps) Stdin() io.Reader                             { return bytes.NewReader(nil) }
func (d *testDeps) Stdout() io.Writer                            { return &d.stdout }
func (d *testDeps) Stderr() io.Writer                            { return &d.stderr }

func newTestDeps(t *testing.T) *testDeps {
	t.Helper()
	logger := log.NewDebugLogger()
	return &testDeps{
		logger:   logger,
		manifest: manifest.New("My Project", ""),
		runner:   cmdrun.New(logger, t.TempDir()),
	}
}

func TestRunTask(t *testing.T) {
	t.Parallel()
	d := newTestDeps(t)
	d.manifest.Tasks["hello"] = &manifest.Task{Cmd: `sh -c "echo hello world"`}

	require.NoError(t, Run(context.Background(), "hello", d))
	assert.Equal(t, "hello world\n", d.stdout.String())
	assert.Contains(t, d.logger.InfoMessages(), `Running task "hello": sh -c "echo hello world"`)
}

func TestRunTaskExitCode(t *testing.T) {
	t.Parallel()
	d := newTestDeps(t)
	d.manifest.Tasks["fail"] = &manifest.Task{Cmd: `sh -c "exit 7"`}

	err := Run(context.Background(), "fail", d)
	require.Error(t, err)

	// The exit code is propagated unchanged
	var exitErr *cmdrun.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 7, exitErr.Code)
}

func TestRunUnknownTask(t *testing.T) {
	t.Parallel()
	d := newTestDeps(t)

	err := Run(context.Background(), "missing", d)
	assert.Error(t, err)
	assert.Equal(t, `task "missing" is not defined, run "dsc run" to list available tasks`, err.Error())
}

func TestRunMissingCommand(t *testing.T) {
	t.Parallel()
	d := newTestDeps(t)
	d.manifest.Tasks["broken"] = &manifest.Task{Cmd: "definitely-missing-command-12345"}

	err := Run(context.Background(), "broken", d)
	assert.Error(t, err)
	assert.Equal(t, `command "definitely-missing-command-12345" is not available, you have to install it first`, err.Error())
}
