package cmd

import (
	"github.com/spf13/cobra"
)

// NewTaskCmd creates the task command group.
func NewTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage task definitions",
		Long: `Manage generated task definitions in the workspace.

Task definitions live in module artifacts (one Go file per module).
Every subcommand reads the artifact, mutates the syntax tree, and
rewrites the file atomically.`,
	}

	cmd.AddCommand(NewTaskCreateCmd())
	cmd.AddCommand(NewTaskGetCmd())
	cmd.AddCommand(NewTaskUpdateCmd())
	cmd.AddCommand(NewTaskApplyCmd())
	cmd.AddCommand(NewTaskDeleteCmd())
	cmd.AddCommand(NewTaskRenameCmd())
	cmd.AddCommand(NewTaskListCmd())
	cmd.AddCommand(NewTaskModulesCmd())
	cmd.AddCommand(NewTaskDiffCmd())

	return cmd
}
