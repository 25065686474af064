// nolint: forbidigo
package aferofs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dsascode/dsc/internal/pkg/filesystem"
	"github.com/dsascode/dsc/internal/pkg/filesystem/aferofs/localfs"
	"github.com/dsascode/dsc/internal/pkg/filesystem/aferofs/memoryfs"
	"github.com/dsascode/dsc/internal/pkg/log"
)

// NewLocalFsFindProjectDir searches for the project directory
// upwards from the working directory.
func NewLocalFsFindProjectDir(logger log.Logger, workingDir string) (fs filesystem.Fs, err error) {
	if workingDir == "" {
		workingDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf(`cannot get working dir from OS: %w`, err)
		}
	}

	// Convert working dir path to absolute
	workingDir, err = filepath.Abs(workingDir)
	if err != nil {
		return nil, err
	}

	// Find project dir
	projectDir := localfs.FindProjectDir(logger, workingDir)

	workingDirRel, err := filepath.Rel(projectDir, workingDir)
	if err != nil {
		return nil, fmt.Errorf(`cannot determine working dir relative path: %w`, err)
	}

	// Create filesystem abstraction
	return NewLocalFs(logger, projectDir, workingDirRel)
}

func NewLocalFs(logger log.Logger, projectDir string, workingDirRel string) (fs filesystem.Fs, err error) {
	return New(logger, localfs.New(projectDir), projectDir, workingDirRel, "local"), nil
}

func NewMemoryFs(logger log.Logger, workingDir string) (fs filesystem.Fs, err error) {
	return New(logger, memoryfs.New(), "/", workingDir, "memory"), nil
}

// LocalFsFactory for the CLI.
func LocalFsFactory() filesystem.Factory {
	return func(logger log.Logger, workingDir string) (filesystem.Fs, error) {
		return NewLocalFsFindProjectDir(logger, workingDir)
	}
}

// MemoryFsFactory for tests.
func MemoryFsFactory() filesystem.Factory {
	return func(logger log.Logger, workingDir string) (filesystem.Fs, error) {
		return NewMemoryFs(logger, workingDir)
	}
}
