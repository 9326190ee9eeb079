package cmd

import (
	"github.com/spf13/cobra"

	"github.com/flowforge/cli/internal/output"
)

// NewTaskListCmd creates the task list command.
func NewTaskListCmd() *cobra.Command {
	var (
		moduleFlag string
		allFlag    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List task definitions",
		Long: `List the task definitions of a module, or of every module.

Examples:
  # List the default module
  flowforge task list

  # List one module as a table
  flowforge task list -m analytics -o table

  # List everything as JSON
  flowforge task list --all -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exitWithCode(runTaskList(moduleFlag, allFlag))
		},
	}

	cmd.Flags().StringVarP(&moduleFlag, "module", "m", "", "Target module (default: tasks)")
	cmd.Flags().BoolVar(&allFlag, "all", false, "List every materialized module")

	return cmd
}

func runTaskList(module string, all bool) error {
	listings, err := newEngine().List(module, all)
	if err != nil {
		return err
	}

	format := output.ParseOutputFormat(outputFormatFlag)
	switch format {
	case output.FormatYAML, output.FormatJSON:
		data, err := output.Marshal(listings, format)
		if err != nil {
			return err
		}
		output.Println(string(data))
		return nil
	default:
		var rows []output.TaskRow
		for _, listing := range listings {
			for _, info := range listing.Tasks {
				rows = append(rows, output.TaskRow{
					Module:   listing.Module,
					Task:     info.Name,
					Segments: info.Segments,
					Inputs:   info.Inputs,
				})
			}
		}
		if len(rows) == 0 {
			output.Println("no tasks defined")
			return nil
		}
		output.Println(output.RenderTaskTable(rows))
		return nil
	}
}
