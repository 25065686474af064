package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dsascode/dsc/internal/pkg/task"
	taskRun "github.com/dsascode/dsc/pkg/lib/operation/task/run"
)

const runShortDescription = `Run a project task`
const runLongDescription = `Command "run"

Run a named task, an alias for an external-tool command.
The task inherits the terminal and its exit code
is the exit code of this command.

Without an argument the available tasks are listed.
`

func runCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [task]",
		Short: runShortDescription,
		Long:  runLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// List available tasks
			if len(args) == 0 {
				return listTasks(root)
			}
			return taskRun.Run(root.ctx, args[0], root)
		},
	}
	return cmd
}

func listTasks(root *rootCommand) error {
	m, err := root.ProjectManifest()
	if err != nil {
		return err
	}

	logger := root.logger
	logger.Info("Available tasks:")

	tasks := task.ForProject(m)
	width := 0
	for _, t := range tasks {
		if len(t.Name) > width {
			width = len(t.Name)
		}
	}
	for _, t := range tasks {
		logger.Infof(`  %-*s  %s`, width, t.Name, t.Description)
	}

	logger.Info()
	logger.Info(fmt.Sprintf(`Run a task by "dsc run <task>", eg. "dsc run %s".`, tasks[0].Name))
	return nil
}
