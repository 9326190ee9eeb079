package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/flowforge/cli/internal/flowrun"
	"github.com/flowforge/cli/internal/output"
	"github.com/flowforge/cli/internal/render"
)

// NewFlowRunCmd creates the flow run command.
func NewFlowRunCmd() *cobra.Command {
	var (
		moduleFlag      string
		paramFlags      []string
		resetFlags      []string
		resetTargetFlag bool
		previewFlag     bool
		loadOutputFlag  bool
		timeoutFlag     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "run <task>",
		Short: "Run a flow",
		Long: `Build the flow script for a task and execute it in a subprocess.

The subprocess runs inside the workspace so the workspace marker
resolves module imports. It is killed, process group and all, when the
timeout expires.

Examples:
  # Run a task
  flowforge flow run DailyTotals --param day=2026-08-28

  # Recompute from scratch and show the result
  flowforge flow run DailyTotals --reset-target --show-output

  # Preview the execution plan only
  flowforge flow run DailyTotals --preview`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exitWithCode(runFlowRun(args[0], moduleFlag, paramFlags, resetFlags, resetTargetFlag, previewFlag, loadOutputFlag, timeoutFlag))
		},
	}

	cmd.Flags().StringVarP(&moduleFlag, "module", "m", "", "Target module (default: tasks)")
	cmd.Flags().StringArrayVar(&paramFlags, "param", nil, "Flow parameter as key=value (repeatable)")
	cmd.Flags().StringArrayVar(&resetFlags, "reset", nil, "Upstream task to reset before the action (repeatable)")
	cmd.Flags().BoolVar(&resetTargetFlag, "reset-target", false, "Also reset the target task")
	cmd.Flags().BoolVar(&previewFlag, "preview", false, "Preview the plan instead of running")
	cmd.Flags().BoolVar(&loadOutputFlag, "show-output", false, "Dump the task output after the run")
	cmd.Flags().DurationVar(&timeoutFlag, "timeout", flowrun.DefaultTimeout, "Subprocess timeout")

	return cmd
}

func runFlowRun(task, module string, paramFlags, resets []string, resetTarget, preview, loadOutput bool, timeout time.Duration) error {
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

	executor := flowrun.NewExecutor(newStore().Base)
	executor.Timeout = timeout

	var result *flowrun.ExecResult
	runErr := output.RunWithSpinner(context.Background(), func() error {
		var execErr error
		result, execErr = executor.Execute(context.Background(), script)
		return execErr
	}, output.WithTitle(fmt.Sprintf("Running %s...", task)))

	if result != nil {
		if result.Stdout != "" {
			output.Print(result.Stdout)
		}
		if result.Stderr != "" {
			output.Error("flow subprocess stderr", "stderr", result.Stderr)
		}
	}
	if runErr != nil {
		return runErr
	}

	output.Println(output.StyleSummary.Render(
		fmt.Sprintf("flow completed in %s", result.Duration.Round(time.Millisecond))))
	return nil
}
