package download

import (
	"context"

	"github.com/dsascode/dsc/internal/pkg/fetcher"
	"github.com/dsascode/dsc/internal/pkg/filesystem"
	"github.com/dsascode/dsc/internal/pkg/log"
	"github.com/dsascode/dsc/internal/pkg/manifest"
)

const DefaultTarget = "data/raw"

type dependencies interface {
	Logger() log.Logger
	Fs() filesystem.Fs
	Fetcher() *fetcher.Fetcher
}

// Run downloads the data source file over HTTP into the target directory.
// A ZIP archive is unpacked and removed afterwards, no residual archive is left.
func Run(ctx context.Context, source *manifest.DataSource, d dependencies) (err error) {
	fs := d.Fs()
	f := d.Fetcher()

	// Data directories are created if absent
	for _, dir := range []string{"data/raw", "data/processed"} {
		if err := fs.Mkdir(dir); err != nil {
			return err
		}
	}

	target := source.Target
	if target == "" {
		target = DefaultTarget
	}
	if err := fs.Mkdir(target); err != nil {
		return err
	}

	path, err := f.Download(ctx, fs, source.URL, target, "")
	if err != nil {
		return err
	}

	if source.Unzip || fetcher.IsZip(path) {
		if err := f.Unzip(fs, path, target); err != nil {
			return err
		}
	}

	return nil
}
