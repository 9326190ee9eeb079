package cmd

import (
	"github.com/spf13/cobra"

	"github.com/flowforge/cli/internal/output"
	"github.com/flowforge/cli/internal/taskspec"
)

// NewTaskDiffCmd creates the task diff command.
func NewTaskDiffCmd() *cobra.Command {
	var fileFlag string

	cmd := &cobra.Command{
		Use:   "diff -f <spec.yaml>",
		Short: "Diff a spec file against the stored definition",
		Long: `Compare a declarative task specification with the definition
currently stored in the workspace.

The stored definition is exported to its spec form and the two YAML
documents are compared structurally, so formatting and key order do not
show up as changes. No output means the two are identical.

Examples:
  flowforge task diff -f daily-totals.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exitWithCode(runTaskDiff(fileFlag))
		},
	}

	cmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Task spec file (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runTaskDiff(file string) error {
	spec, err := taskspec.Load(file)
	if err != nil {
		return err
	}

	stored, err := newEngine().Export(spec.Module, spec.Task)
	if err != nil {
		return err
	}

	storedYAML, err := stored.Marshal()
	if err != nil {
		return err
	}
	specYAML, err := spec.Marshal()
	if err != nil {
		return err
	}

	report, err := output.DiffYAML("workspace", storedYAML, file, specYAML)
	if err != nil {
		return err
	}
	if report == "" {
		output.Println("no changes")
		return nil
	}
	output.Print(report)
	return nil
}
