package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowforge/cli/internal/flowrun"
	"github.com/flowforge/cli/internal/output"
	"github.com/flowforge/cli/internal/render"
)

// NewFlowBuildCmd creates the flow build command.
func NewFlowBuildCmd() *cobra.Command {
	var (
		moduleFlag      string
		paramFlags      []string
		resetFlags      []string
		resetTargetFlag bool
		previewFlag     bool
		loadOutputFlag  bool
		outFlag         string
	)

	cmd := &cobra.Command{
		Use:   "build <task>",
		Short: "Build a flow script without running it",
		Long: `Build the standalone flow script for a task and print it.

The script is exactly what 'flowforge flow run' would execute: params
literal, reset instructions in order, and the terminal action.

Examples:
  # Script that runs a task
  flowforge flow build DailyTotals --param day=2026-08-28

  # Script that previews the plan, resetting an upstream first
  flowforge flow build DailyTotals --preview --reset RawEvents

  # Persist the script next to the workspace
  flowforge flow build DailyTotals --out run_flow.go`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exitWithCode(runFlowBuild(args[0], moduleFlag, paramFlags, resetFlags, resetTargetFlag, previewFlag, loadOutputFlag, outFlag))
		},
	}

	cmd.Flags().StringVarP(&moduleFlag, "module", "m", "", "Target module (default: tasks)")
	cmd.Flags().StringArrayVar(&paramFlags, "param", nil, "Flow parameter as key=value (repeatable)")
	cmd.Flags().StringArrayVar(&resetFlags, "reset", nil, "Upstream task to reset before the action (repeatable)")
	cmd.Flags().BoolVar(&resetTargetFlag, "reset-target", false, "Also reset the target task")
	cmd.Flags().BoolVar(&previewFlag, "preview", false, "Emit a preview action instead of a run")
	cmd.Flags().BoolVar(&loadOutputFlag, "show-output", false, "Append an output dump after the run")
	cmd.Flags().StringVar(&outFlag, "out", "", "Write the script to this path instead of stdout")

	return cmd
}

func runFlowBuild(task, module string, paramFlags, resets []string, resetTarget, preview, loadOutput bool, outPath string) error {
	params, err := parseParamFlags(paramFlags)
	if err != nil {
		return err
	}

	action := render.ActionRun
	if preview {
		action = render.ActionPreview
	}

	script, err := newFlowBuilder().Build(flowrun.BuildOptions{
		Module:      module,
		Task:        task,
		Params:      params,
		Resets:      resets,
		ResetTarget: resetTarget,
		Action:      action,
		LoadOutput:  loadOutput,
	})
	if err != nil {
		return err
	}

	if outPath != "" {
		if err := os.WriteFile(outPath, []byte(script), 0o644); err != nil {
			return fmt.Errorf("writing flow script to %s: %w", outPath, err)
		}
		output.Println(fmt.Sprintf("%s %s",
			output.StyleAction.Render("wrote"), output.StyleNoun.Render(outPath)))
		return nil
	}

	output.Print(script)
	return nil
}
