package cmd

import (
	"github.com/spf13/cobra"

	"github.com/flowforge/cli/internal/output"
)

// NewTaskModulesCmd creates the task modules command.
func NewTaskModulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modules",
		Short: "List materialized modules",
		Long: `List every module that has a materialized artifact in the
workspace, in lexical order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exitWithCode(runTaskModules())
		},
	}

	return cmd
}

func runTaskModules() error {
	modules, err := newEngine().Modules()
	if err != nil {
		return err
	}

	format := output.ParseOutputFormat(outputFormatFlag)
	if format == output.FormatYAML || format == output.FormatJSON {
		data, err := output.Marshal(modules, format)
		if err != nil {
			return err
		}
		output.Println(string(data))
		return nil
	}

	if len(modules) == 0 {
		output.Println("no modules materialized")
		return nil
	}
	for _, m := range modules {
		output.Println(output.StyleNoun.Render(m))
	}
	return nil
}
