package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dsascode/dsc/internal/pkg/manifest"
	"github.com/dsascode/dsc/internal/pkg/project"
	"github.com/dsascode/dsc/internal/pkg/task"
)

const statusShortDescription = `Show the project status`
const statusLongDescription = `Command "status"

Show the project overview: the directory skeleton,
the required tools, the data sources and the tasks.
`

func statusCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: statusShortDescription,
		Long:  statusLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := root.logger
			fs := root.fs

			m, err := root.ProjectManifest()
			if err != nil {
				return err
			}

			logger.Infof(`Project "%s"`, m.Project.Name)
			if m.Project.Description != "" {
				logger.Info(m.Project.Description)
			}
			logger.Infof(`Directory "%s"`, fs.BasePath())

			logger.Info()
			logger.Info("Directories:")
			for _, dir := range project.Dirs() {
				if fs.IsDir(dir) {
					logger.Infof(`  %s %s`, color.GreenString("[ok]"), dir)
				} else {
					logger.Infof(`  %s %s`, color.RedString("[missing]"), dir)
				}
			}

			logger.Info()
			logger.Info("Tools:")
			toolsErr := printToolsStatus(logger, m.Tools)

			logger.Info()
			logger.Infof("Data sources: %d", len(m.DataSources))
			for _, source := range m.DataSources {
				switch source.Type {
				case manifest.SourceTypeHttp:
					logger.Infof(`  %s [%s] %s`, source.Name, source.Type, source.URL)
				default:
					logger.Infof(`  %s [%s] %s`, source.Name, source.Type, source.Dataset)
				}
			}

			logger.Info()
			logger.Infof("Tasks: %d", len(task.ForProject(m)))

			return toolsErr
		},
	}
	return cmd
}
