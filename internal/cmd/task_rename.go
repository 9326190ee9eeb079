package cmd

import (
	"github.com/spf13/cobra"
)

// NewTaskRenameCmd creates the task rename command.
func NewTaskRenameCmd() *cobra.Command {
	var moduleFlag string

	cmd := &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a task definition",
		Long: `Rename a task definition in place.

Dependency annotations inside the same module that reference the old
name are rewritten. References from other modules are left untouched;
rewrite those with 'flowforge task update --input'.

Examples:
  flowforge task rename DailyTotals DailySummary
  flowforge task rename Report Digest -m analytics`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exitWithCode(runTaskRename(moduleFlag, args[0], args[1]))
		},
	}

	cmd.Flags().StringVarP(&moduleFlag, "module", "m", "", "Target module (default: tasks)")

	return cmd
}

func runTaskRename(module, oldName, newName string) error {
	result, err := newEngine().Rename(module, oldName, newName)
	if err != nil {
		return err
	}
	printResult(result)
	return nil
}
