package create

import (
	"github.com/dsascode/dsc/internal/pkg/filesystem"
	"github.com/dsascode/dsc/internal/pkg/log"
	"github.com/dsascode/dsc/internal/pkg/project"
)

type dependencies interface {
	Logger() log.Logger
	Fs() filesystem.Fs
}

// Run creates the directory skeleton of the project.
// Existing directories are kept, so the operation is idempotent.
func Run(d dependencies) (err error) {
	logger := d.Logger()
	fs := d.Fs()

	for _, dir := range project.Dirs() {
		if fs.IsDir(dir) {
			logger.Debugf(`Directory "%s" exists.`, dir)
			continue
		}
		if err := fs.Mkdir(dir); err != nil {
			return err
		}
		logger.Infof(`Created directory "%s".`, dir)
	}

	// Keep empty directories in the git repository
	for _, dir := range project.Dirs() {
		if dir == "src" {
			continue
		}
		path := filesystem.Join(dir, ".gitkeep")
		if fs.IsFile(path) {
			continue
		}
		if err := fs.WriteFile(filesystem.NewFile(path, "")); err != nil {
			return err
		}
	}

	return nil
}
