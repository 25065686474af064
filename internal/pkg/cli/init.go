package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dsascode/dsc/internal/pkg/filesystem"
	"github.com/dsascode/dsc/internal/pkg/interaction"
	"github.com/dsascode/dsc/internal/pkg/manifest"
	"github.com/dsascode/dsc/internal/pkg/prereq"
	envfilesCreate "github.com/dsascode/dsc/pkg/lib/operation/project/envfiles/create"
	scaffoldCreate "github.com/dsascode/dsc/pkg/lib/operation/project/scaffold/create"
	vcsInit "github.com/dsascode/dsc/pkg/lib/operation/project/vcs/init"
)

const initShortDescription = `Init a new project directory`
const initLongDescription = `Command "init"

Initialize a new project in the working directory.
The directory skeleton, the manifest, the env files
and the version control are created.

The command is idempotent, it can be run repeatedly,
existing files are kept or updated, never reset.
`

func initCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: initShortDescription,
		Long:  initLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := root.logger
			fs := root.fs

			// Prerequisites are checked before anything is written
			skipVcs := root.options.GetBool("skip-vcs")
			if !skipVcs {
				if err := prereq.Check(logger, []string{"git"}); err != nil {
					return err
				}
			}

			alreadyInitialized := manifest.Exists(fs)
			if alreadyInitialized {
				logger.Infof(`Project is already initialized, updating missing files.`)
			}

			// Project name, from flag, or dialog, the dir name is the default
			name := root.options.GetString("name")
			if name == "" && !alreadyInitialized {
				name, _ = root.prompt.Ask(&interaction.Question{
					Label:     "Project name",
					Help:      "Human readable name of the project.",
					Default:   filesystem.Base(fs.BasePath()),
					Validator: interaction.ValueRequired,
				})
			}
			if name == "" && !alreadyInitialized {
				return fmt.Errorf(`please specify the project name, use the "--name" flag`)
			}

			// Manifest is created only if missing, an existing one is never reset
			if !alreadyInitialized {
				m := manifest.New(name, root.options.GetString("description"))
				if err := m.Save(fs); err != nil {
					return err
				}
				logger.Infof(`Created manifest "%s".`, manifest.Path())
			}

			// Directory skeleton
			if err := scaffoldCreate.Run(root); err != nil {
				return err
			}

			// Env files and .gitignore
			if err := envfilesCreate.Run(root); err != nil {
				return err
			}

			// Version control
			if skipVcs {
				logger.Infof(`Skipped version control init.`)
			} else if err := vcsInit.Run(root.ctx, root); err != nil {
				return err
			}

			logger.Info(`Init done. Run "dsc check" to verify the tools.`)
			return nil
		},
	}

	cmd.Flags().SortFlags = true
	cmd.Flags().StringP("name", "n", "", "name of the project")
	cmd.Flags().String("description", "", "description of the project")
	cmd.Flags().Bool("skip-vcs", false, "do not initialize git and dvc")
	return cmd
}
