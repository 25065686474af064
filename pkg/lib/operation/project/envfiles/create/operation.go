package create

import (
	"github.com/dsascode/dsc/internal/pkg/filesystem"
	"github.com/dsascode/dsc/internal/pkg/log"
)

type dependencies interface {
	Logger() log.Logger
	Fs() filesystem.Fs
}

// Run creates the env files and the .gitignore.
// The operation is idempotent, a second run does not duplicate lines
// and does not reset values in an existing ".env".
func Run(d dependencies) (err error) {
	logger := d.Logger()
	fs := d.Fs()

	// .env.dist - the committed template
	envDistMsg := ` - an ".env" template`
	envDistLines := []filesystem.FileLine{
		{Regexp: "^KAGGLE_USERNAME=", Line: `KAGGLE_USERNAME=`},
		{Regexp: "^KAGGLE_KEY=", Line: `KAGGLE_KEY=`},
		{Regexp: "^MLFLOW_TRACKING_URI=", Line: `MLFLOW_TRACKING_URI=`},
	}
	if err := createFile(logger, fs, ".env.dist", envDistMsg, envDistLines); err != nil {
		return err
	}

	// .env - from the template, only if missing, it contains credentials
	if !fs.IsFile(".env") {
		if err := fs.Copy(".env.dist", ".env"); err != nil {
			return err
		}
		logger.Infof(`Created file ".env" - it contains the credentials, keep it local and secret.`)
	}

	// .gitignore - to keep ".env" and the data local
	gitIgnoreMsg := ` - to keep ".env" and the data local`
	gitIgnoreLines := []filesystem.FileLine{
		{Line: "/.env"},
		{Line: "/.dsc/lock"},
		{Line: "/data/"},
		{Line: "/models/"},
		{Line: "/mlruns/"},
		{Line: "__pycache__/"},
		{Line: ".ipynb_checkpoints/"},
	}
	if err := createFile(logger, fs, ".gitignore", gitIgnoreMsg, gitIgnoreLines); err != nil {
		return err
	}

	return nil
}

func createFile(logger log.Logger, fs filesystem.Fs, path, desc string, lines []filesystem.FileLine) error {
	updated, err := fs.CreateOrUpdateFile(path, desc, lines)
	if err != nil {
		return err
	}

	if updated {
		logger.Infof(`Updated file "%s"%s.`, path, desc)
	} else {
		logger.Infof(`Created file "%s"%s.`, path, desc)
	}

	return nil
}
