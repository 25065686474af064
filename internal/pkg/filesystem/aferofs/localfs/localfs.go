// nolint: forbidigo
package localfs

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/dsascode/dsc/internal/pkg/filesystem"
	"github.com/dsascode/dsc/internal/pkg/log"
)

func New(basePath string) afero.Fs {
	return afero.NewBasePathFs(afero.NewOsFs(), basePath)
}

// FindProjectDir -> working dir or its nearest parent with the metadata directory.
func FindProjectDir(logger log.Logger, workingDir string) string {
	dir := workingDir
	for {
		metadataDir := filepath.Join(dir, filesystem.MetadataDir)
		if stat, err := os.Stat(metadataDir); err == nil && stat.IsDir() {
			logger.Debugf(`Found project directory "%s".`, dir)
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	// Metadata dir not found -> working dir is used as the project dir
	logger.Debugf(`Project directory not found, using working directory "%s".`, workingDir)
	return workingDir
}
