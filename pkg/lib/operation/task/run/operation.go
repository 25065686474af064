package run

import (
	"context"
	"io"

	"github.com/dsascode/dsc/internal/pkg/cmdrun"
	"github.com/dsascode/dsc/internal/pkg/log"
	"github.com/dsascode/dsc/internal/pkg/manifest"
	"github.com/dsascode/dsc/internal/pkg/prereq"
	"github.com/dsascode/dsc/internal/pkg/task"
)

type dependencies interface {
	Logger() log.Logger
	ProjectManifest() (*manifest.Manifest, error)
	Runner() *cmdrun.Runner
	Stdin() io.Reader
	Stdout() io.Writer
	Stderr() io.Writer
}

// Run the named task. The task command inherits the terminal,
// and its exit code is propagated unchanged as cmdrun.ExitError.
func Run(ctx context.Context, name string, d dependencies) (err error) {
	logger := d.Logger()

	m, err := d.ProjectManifest()
	if err != nil {
		return err
	}

	t, err := task.Find(m, name)
	if err != nil {
		return err
	}

	command, args, err := cmdrun.ParseCommand(t.Cmd)
	if err != nil {
		return err
	}

	if err := prereq.CheckOne(command); err != nil {
		return err
	}

	logger.Infof(`Running task "%s": %s`, t.Name, t.Cmd)
	result, runErr := d.Runner().RunAttached(ctx, command, args, d.Stdin(), d.Stdout(), d.Stderr())
	if result.ExitCode != 0 {
		return &cmdrun.ExitError{Code: result.ExitCode}
	}
	if runErr != nil {
		return runErr
	}

	return nil
}
