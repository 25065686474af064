package cli

import (
	"github.com/spf13/cobra"

	"github.com/dsascode/dsc/internal/pkg/interaction"
	"github.com/dsascode/dsc/internal/pkg/project"
	projectClean "github.com/dsascode/dsc/pkg/lib/operation/project/clean"
)

const cleanShortDescription = `Remove tool caches from the project`
const cleanLongDescription = `Command "clean"

Remove tool caches from the project directory,
eg. pytest, mypy and ruff caches, __pycache__ directories.
Data, models and experiment runs are never touched.
`

func cleanCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: cleanShortDescription,
		Long:  cleanLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := project.ValidateMetadataFound(root.fs); err != nil {
				return err
			}

			confirmed := root.prompt.Confirm(&interaction.Confirm{
				Label:   "Remove tool caches from the project?",
				Default: true,
			})
			if !confirmed {
				root.logger.Info("Aborted.")
				return nil
			}

			return projectClean.Run(root)
		},
	}
	return cmd
}
