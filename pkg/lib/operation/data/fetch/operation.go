package fetch

import (
	"context"
	"fmt"

	"github.com/dsascode/dsc/internal/pkg/cmdrun"
	"github.com/dsascode/dsc/internal/pkg/filesystem"
	"github.com/dsascode/dsc/internal/pkg/log"
	"github.com/dsascode/dsc/internal/pkg/manifest"
	"github.com/dsascode/dsc/internal/pkg/prereq"
)

const DefaultTarget = "data/raw"

type dependencies interface {
	Logger() log.Logger
	Fs() filesystem.Fs
	Runner() *cmdrun.Runner
}

// Run delegates the dataset download to the dataset CLI.
// Correctness and error handling are the CLI's own responsibility.
func Run(ctx context.Context, source *manifest.DataSource, d dependencies) (err error) {
	logger := d.Logger()
	fs := d.Fs()
	runner := d.Runner()

	if err := prereq.CheckOne("kaggle"); err != nil {
		return err
	}

	target := source.Target
	if target == "" {
		target = DefaultTarget
	}
	if err := fs.Mkdir(target); err != nil {
		return err
	}

	args := []string{"datasets", "download", "-d", source.Dataset, "-p", target}
	if source.Unzip {
		args = append(args, "--unzip")
	}

	// Transient network failures are retried with a short backoff
	result, err := runner.RunWithRetry(ctx, "kaggle", args...)
	if err != nil {
		return fmt.Errorf(`cannot fetch dataset "%s": %s`, source.Dataset, cmdrun.ErrorMsg(result, err))
	}

	logger.Infof(`Fetched dataset "%s" -> "%s".`, source.Dataset, target)
	return nil
}
