package cmd

import (
	"github.com/spf13/cobra"
)

// NewTaskDeleteCmd creates the task delete command.
func NewTaskDeleteCmd() *cobra.Command {
	var moduleFlag string

	cmd := &cobra.Command{
		Use:   "delete <task>",
		Short: "Delete a task definition",
		Long: `Delete a task definition from its module artifact.

Deleting a task that other tasks reference does not rewrite their
annotations; the next flow build reports the dangling reference.

Examples:
  flowforge task delete DailyTotals
  flowforge task delete Report -m analytics`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exitWithCode(runTaskDelete(args[0], moduleFlag))
		},
	}

	cmd.Flags().StringVarP(&moduleFlag, "module", "m", "", "Target module (default: tasks)")

	return cmd
}

func runTaskDelete(task, module string) error {
	result, err := newEngine().Delete(module, task)
	if err != nil {
		return err
	}
	printResult(result)
	return nil
}
