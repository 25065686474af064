package clean

import (
	"os"
	"path/filepath"

	"github.com/dsascode/dsc/internal/pkg/filesystem"
	"github.com/dsascode/dsc/internal/pkg/log"
)

type dependencies interface {
	Logger() log.Logger
	Fs() filesystem.Fs
}

// cacheDirs removed by the clean operation. Data, models and experiment
// runs are never touched.
// nolint: gochecknoglobals
var cacheDirs = []string{
	".pytest_cache",
	".mypy_cache",
	".ruff_cache",
	".ipynb_checkpoints",
}

// Run removes tool caches from the project directory.
func Run(d dependencies) (err error) {
	logger := d.Logger()
	fs := d.Fs()

	removed := 0
	for _, dir := range cacheDirs {
		if !fs.IsDir(dir) {
			continue
		}
		if err := fs.RemoveAll(dir); err != nil {
			return err
		}
		logger.Infof(`Removed "%s".`, dir)
		removed++
	}

	// __pycache__ directories are nested in the source tree
	var pycacheDirs []string
	err = fs.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() && filepath.Base(path) == "__pycache__" {
			pycacheDirs = append(pycacheDirs, path)
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, dir := range pycacheDirs {
		if err := fs.RemoveAll(dir); err != nil {
			return err
		}
		logger.Infof(`Removed "%s".`, dir)
		removed++
	}

	if removed == 0 {
		logger.Infof(`Nothing to clean.`)
	}
	return nil
}
