package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flowforge/cli/internal/engine"
	"github.com/flowforge/cli/internal/errors"
	"github.com/flowforge/cli/internal/output"
	"github.com/flowforge/cli/internal/resolve"
)

// NewTaskCreateCmd creates the task create command.
func NewTaskCreateCmd() *cobra.Command {
	var (
		moduleFlag      string
		primaryFlag     string
		primaryFileFlag string
		segmentFlags    []string
		inputFlags      []string
		importFlags     []string
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a task definition",
		Long: `Create a new task definition in a module artifact.

The module is created on first use; no separate module-create step
exists. The primary body must assign the result binding; a save call is
appended automatically when missing.

Examples:
  # Create a task in the default module
  flowforge task create "Daily Totals" --primary 'result = sum(fc.Input("events"))' --input events

  # Create a task in an explicit module with a cross-module input
  flowforge task create Report -m analytics --input ingest.RawEvents --primary-file report.go.txt

  # Read the primary body from stdin
  flowforge task create Cleanup --primary-file -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exitWithCode(runTaskCreate(args[0], moduleFlag, primaryFlag, primaryFileFlag, segmentFlags, inputFlags, importFlags))
		},
	}

	cmd.Flags().StringVarP(&moduleFlag, "module", "m", "", "Target module (default: tasks)")
	cmd.Flags().StringVarP(&primaryFlag, "primary", "p", "", "Primary segment body")
	cmd.Flags().StringVar(&primaryFileFlag, "primary-file", "", "Read primary segment body from file (- for stdin)")
	cmd.Flags().StringArrayVar(&segmentFlags, "segment", nil, "Additional segment as name=body (repeatable)")
	cmd.Flags().StringArrayVar(&inputFlags, "input", nil, "Upstream input as task or module.task (repeatable)")
	cmd.Flags().StringArrayVar(&importFlags, "import", nil, "Extra import line for the module artifact (repeatable)")

	return cmd
}

func runTaskCreate(name, module, primary, primaryFile string, segments, inputs, imports []string) error {
	body, err := resolveBody(primary, primaryFile)
	if err != nil {
		return err
	}

	segs, err := parseSegmentFlags(segments)
	if err != nil {
		return err
	}

	result, err := newEngine().Create(engine.CreateOptions{
		Module:      module,
		Name:        name,
		PrimaryBody: body,
		Segments:    segs,
		Inputs:      parseInputFlags(inputs),
		Imports:     imports,
	})
	if err != nil {
		return err
	}

	printResult(result)
	return nil
}

// resolveBody merges the inline and file body flags; the file wins when
// both are set, and "-" reads stdin.
func resolveBody(inline, file string) (string, error) {
	if file == "" {
		return inline, nil
	}
	if file == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading body from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("reading body file %s: %w", file, err)
	}
	return string(data), nil
}

// parseSegmentFlags splits repeated name=body segment flags.
func parseSegmentFlags(flags []string) ([]engine.Segment, error) {
	segments := make([]engine.Segment, 0, len(flags))
	for _, f := range flags {
		name, body, ok := strings.Cut(f, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, errors.NewValidationError(
				fmt.Sprintf("invalid segment flag %q", f),
				"", "segment", "use --segment name=body")
		}
		segments = append(segments, engine.Segment{Name: name, Body: body})
	}
	return segments, nil
}

// parseInputFlags turns repeated input flags into references. A dot
// separates an explicit module from the task name.
func parseInputFlags(flags []string) []resolve.InputRef {
	refs := make([]resolve.InputRef, 0, len(flags))
	for _, f := range flags {
		if module, task, ok := strings.Cut(f, "."); ok {
			refs = append(refs, resolve.InputRef{Module: module, Task: task})
			continue
		}
		refs = append(refs, resolve.InputRef{Task: f})
	}
	return refs
}

// printResult prints one mutation outcome with its status styled.
func printResult(r *engine.Result) {
	status := output.StatusStyle(r.Status).Render(r.Status)
	noun := output.StyleNoun.Render(r.Module + "/" + r.Task)
	output.Println(fmt.Sprintf("%s %s", status, noun))
}
