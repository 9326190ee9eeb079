package cmd

import (
	"github.com/spf13/cobra"

	"github.com/flowforge/cli/internal/engine"
)

// NewTaskUpdateCmd creates the task update command.
func NewTaskUpdateCmd() *cobra.Command {
	var (
		moduleFlag      string
		primaryFlag     string
		primaryFileFlag string
		segmentFlags    []string
		inputFlags      []string
		importFlags     []string
	)

	cmd := &cobra.Command{
		Use:   "update <task>",
		Short: "Update a task definition in place",
		Long: `Update parts of an existing task definition.

Only the supplied parts change. --segment replaces the entire
additional-segment set (the primary, setup, and teardown segments
survive); --input rebuilds the dependency annotation from scratch.

Examples:
  # Replace only the primary body
  flowforge task update DailyTotals --primary 'result = recount(fc.Input("events"))'

  # Replace the whole additional-segment set
  flowforge task update DailyTotals --segment 'cleanup=purge()' --segment 'verify=check(result)'

  # Rewire inputs
  flowforge task update DailyTotals --input ingest.RawEvents --input Totals`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := engine.UpdateOptions{
				Module:  moduleFlag,
				Task:    args[0],
				Imports: importFlags,
			}

			if cmd.Flags().Changed("primary") || cmd.Flags().Changed("primary-file") {
				body, err := resolveBody(primaryFlag, primaryFileFlag)
				if err != nil {
					return exitWithCode(err)
				}
				opts.PrimaryBody = &body
			}
			if cmd.Flags().Changed("segment") {
				segs, err := parseSegmentFlags(segmentFlags)
				if err != nil {
					return exitWithCode(err)
				}
				opts.Segments = &segs
			}
			if cmd.Flags().Changed("input") {
				refs := parseInputFlags(inputFlags)
				opts.Inputs = &refs
			}

			return exitWithCode(runTaskUpdate(opts))
		},
	}

	cmd.Flags().StringVarP(&moduleFlag, "module", "m", "", "Target module (default: tasks)")
	cmd.Flags().StringVarP(&primaryFlag, "primary", "p", "", "New primary segment body")
	cmd.Flags().StringVar(&primaryFileFlag, "primary-file", "", "Read primary segment body from file (- for stdin)")
	cmd.Flags().StringArrayVar(&segmentFlags, "segment", nil, "Replacement segment as name=body (repeatable)")
	cmd.Flags().StringArrayVar(&inputFlags, "input", nil, "Replacement input as task or module.task (repeatable)")
	cmd.Flags().StringArrayVar(&importFlags, "import", nil, "Extra import line for the module artifact (repeatable)")

	return cmd
}

func runTaskUpdate(opts engine.UpdateOptions) error {
	result, err := newEngine().Update(opts)
	if err != nil {
		return err
	}
	printResult(result)
	return nil
}
