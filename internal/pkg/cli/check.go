package cli

import (
	"github.com/spf13/cobra"

	"github.com/dsascode/dsc/internal/pkg/manifest"
)

const checkShortDescription = `Check that the required tools are installed`
const checkLongDescription = `Command "check"

Check availability of the tools the project depends on.
The required tools are listed in the manifest,
outside a project the default set is checked.
`

func checkCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: checkShortDescription,
		Long:  checkLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			tools := manifest.DefaultTools()
			if m, err := root.ProjectManifest(); err == nil && len(m.Tools) > 0 {
				tools = m.Tools
			}
			return printToolsStatus(root.logger, tools)
		},
	}
	return cmd
}
