package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flowforge/cli/internal/errors"
	"github.com/flowforge/cli/internal/flowrun"
	"github.com/flowforge/cli/internal/identity"
	"github.com/flowforge/cli/internal/render"
)

// NewFlowCmd creates the flow command group.
func NewFlowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flow",
		Short: "Build and run flows",
		Long: `Build standalone flow scripts from task definitions and run them
in a subprocess scoped to the workspace.`,
	}

	cmd.AddCommand(NewFlowBuildCmd())
	cmd.AddCommand(NewFlowRunCmd())

	return cmd
}

// newFlowBuilder builds the flow script builder from the resolved
// configuration.
func newFlowBuilder() *flowrun.Builder {
	cfg := GetConfig()
	naming := "lenient"
	if cfg != nil {
		naming = cfg.Naming
	}
	return flowrun.NewBuilder(newStore(), identity.ForMode(naming))
}

// parseParamFlags splits repeated key=value parameter flags, preserving
// order.
func parseParamFlags(flags []string) ([]render.Param, error) {
	params := make([]render.Param, 0, len(flags))
	for _, f := range flags {
		key, value, ok := strings.Cut(f, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, errors.NewValidationError(
				fmt.Sprintf("invalid param flag %q", f),
				"", "param", "use --param key=value")
		}
		params = append(params, render.Param{Key: key, Value: value})
	}
	return params, nil
}
