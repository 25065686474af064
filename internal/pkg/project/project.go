package project

import (
	"fmt"
	"time"

	"github.com/gofrs/flock"

	"github.com/dsascode/dsc/internal/pkg/filesystem"
	"github.com/dsascode/dsc/internal/pkg/log"
	"github.com/dsascode/dsc/internal/pkg/manifest"
)

const lockFileName = "lock"

// Dirs is the directory skeleton of a data-science project.
// Conventions, not a schema - directories are created if absent.
func Dirs() []string {
	return []string{
		filesystem.Join("data", "raw"),
		filesystem.Join("data", "interim"),
		filesystem.Join("data", "processed"),
		filesystem.Join("data", "external"),
		"models",
		"notebooks",
		filesystem.Join("reports", "figures"),
		"src",
	}
}

// Project is an initialized project directory with a manifest.
type Project struct {
	fs       filesystem.Fs
	manifest *manifest.Manifest
	fsLock   *flock.Flock
}

// Load project from the filesystem, the manifest must exist.
func Load(fs filesystem.Fs) (*Project, error) {
	if err := ValidateMetadataFound(fs); err != nil {
		return nil, err
	}

	m, err := manifest.Load(fs)
	if err != nil {
		return nil, err
	}

	return &Project{fs: fs, manifest: m}, nil
}

func (p *Project) Fs() filesystem.Fs {
	return p.fs
}

func (p *Project) Manifest() *manifest.Manifest {
	return p.manifest
}

// Lock the project directory, so two processes do not mutate it concurrently.
// Lock is a no-op on a virtual filesystem.
func (p *Project) Lock(logger log.Logger) error {
	if p.fs.ApiName() != "local" {
		return nil
	}

	path := filesystem.Join(p.fs.BasePath(), filesystem.MetadataDir, lockFileName)
	p.fsLock = flock.New(path)

	locked, err := p.fsLock.TryLock()
	if err != nil {
		return fmt.Errorf(`cannot lock project directory: %w`, err)
	}
	if !locked {
		return fmt.Errorf(`project directory is locked by another "dsc" process, lock "%s"`, path)
	}

	logger.Debugf(`Locked project directory, lock "%s", %s`, path, time.Now().Format(time.RFC3339))
	return nil
}

func (p *Project) Unlock(logger log.Logger) {
	if p.fsLock == nil {
		return
	}
	if err := p.fsLock.Unlock(); err != nil {
		logger.Warnf(`cannot unlock project directory: %s`, err)
		return
	}
	logger.Debugf(`Unlocked project directory, lock "%s"`, p.fsLock.Path())
}

// ValidateMetadataFound checks that the metadata directory exists.
func ValidateMetadataFound(fs filesystem.Fs) error {
	if !fs.IsDir(filesystem.MetadataDir) {
		return fmt.Errorf(
			`none of this and parent directories is a project dir, metadata directory "%s" not found, please run "dsc init" first`,
			filesystem.MetadataDir,
		)
	}
	return nil
}
