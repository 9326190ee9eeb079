package cmd

import (
	"github.com/spf13/cobra"

	"github.com/flowforge/cli/internal/output"
)

// NewTaskGetCmd creates the task get command.
func NewTaskGetCmd() *cobra.Command {
	var (
		moduleFlag  string
		segmentFlag string
	)

	cmd := &cobra.Command{
		Use:   "get <task>",
		Short: "Show a task definition",
		Long: `Show the source of a task definition, or of one segment.

Without --segment the full definition block is printed. With --segment
only that segment's body is printed, with the auto-injected load
statement stripped.

With -o yaml or -o json the declarative spec form of the task is
printed instead of raw source.

Examples:
  # Full definition source
  flowforge task get DailyTotals

  # One segment's body
  flowforge task get DailyTotals --segment cleanup

  # Declarative spec form
  flowforge task get DailyTotals -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exitWithCode(runTaskGet(args[0], moduleFlag, segmentFlag))
		},
	}

	cmd.Flags().StringVarP(&moduleFlag, "module", "m", "", "Target module (default: tasks)")
	cmd.Flags().StringVarP(&segmentFlag, "segment", "s", "", "Show only this segment's body")

	return cmd
}

func runTaskGet(task, module, segment string) error {
	eng := newEngine()

	format := output.ParseOutputFormat(outputFormatFlag)
	if format == output.FormatYAML || format == output.FormatJSON {
		spec, err := eng.Export(module, task)
		if err != nil {
			return err
		}
		data, err := output.Marshal(spec, format)
		if err != nil {
			return err
		}
		output.Print(string(data))
		if format == output.FormatYAML {
			return nil
		}
		output.Println("")
		return nil
	}

	src, err := eng.Get(module, task, segment)
	if err != nil {
		return err
	}
	output.Print(src)
	return nil
}
