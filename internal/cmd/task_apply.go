package cmd

import (
	"github.com/spf13/cobra"

	"github.com/flowforge/cli/internal/taskspec"
)

// NewTaskApplyCmd creates the task apply command.
func NewTaskApplyCmd() *cobra.Command {
	var fileFlag string

	cmd := &cobra.Command{
		Use:   "apply -f <spec.yaml>",
		Short: "Create or update a task from a spec file",
		Long: `Apply a declarative task specification.

The spec file is validated against the embedded schema, then upserted:
created when the task does not exist, updated in place when it does.

Examples:
  # Apply a spec file
  flowforge task apply -f daily-totals.yaml

  # Round-trip: export, edit, re-apply
  flowforge task get DailyTotals -o yaml > t.yaml
  flowforge task apply -f t.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exitWithCode(runTaskApply(fileFlag))
		},
	}

	cmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Task spec file (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runTaskApply(file string) error {
	spec, err := taskspec.Load(file)
	if err != nil {
		return err
	}

	result, err := newEngine().Apply(spec)
	if err != nil {
		return err
	}

	printResult(result)
	return nil
}
