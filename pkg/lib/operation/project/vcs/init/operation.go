package init

import (
	"context"
	"fmt"

	"github.com/dsascode/dsc/internal/pkg/cmdrun"
	"github.com/dsascode/dsc/internal/pkg/filesystem"
	"github.com/dsascode/dsc/internal/pkg/log"
	"github.com/dsascode/dsc/internal/pkg/prereq"
)

type dependencies interface {
	Logger() log.Logger
	Fs() filesystem.Fs
	Runner() *cmdrun.Runner
}

// Run initializes version control and data version control in the project.
// Both are delegated to the external tools and skipped if already initialized.
func Run(ctx context.Context, d dependencies) (err error) {
	logger := d.Logger()
	fs := d.Fs()
	runner := d.Runner()

	// git
	if fs.Exists(".git") {
		logger.Infof(`Git repository already initialized.`)
	} else {
		if result, err := runner.RunWithRetry(ctx, "git", "init", "-q"); err != nil {
			return fmt.Errorf(`cannot initialize git repository: %s`, cmdrun.ErrorMsg(result, err))
		}
		logger.Infof(`Initialized git repository.`)
	}

	// dvc, optional
	if !prereq.Available("dvc") {
		logger.Warnf(`Command "dvc" not found, skipping data version control setup.`)
		return nil
	}
	if fs.Exists(".dvc") {
		logger.Infof(`Data version control already initialized.`)
		return nil
	}
	if result, err := runner.RunWithRetry(ctx, "dvc", "init", "-q"); err != nil {
		return fmt.Errorf(`cannot initialize data version control: %s`, cmdrun.ErrorMsg(result, err))
	}
	logger.Infof(`Initialized data version control.`)

	return nil
}
