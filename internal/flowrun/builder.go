// Package flowrun builds standalone flow scripts and executes them in a
// subprocess scoped to the workspace.
package flowrun

import (
	"fmt"

	"github.com/flowforge/cli/internal/errors"
	"github.com/flowforge/cli/internal/identity"
	"github.com/flowforge/cli/internal/output"
	"github.com/flowforge/cli/internal/render"
	"github.com/flowforge/cli/internal/workspace"
)

// BuildOptions describes one flow invocation.
type BuildOptions struct {
	// Module is the raw, optional module name.
	Module string

	// Task is the raw target task name.
	Task string

	// Params is the ordered parameter mapping.
	Params []render.Param

	// Resets are raw upstream task names whose cached state is cleared
	// before the action.
	Resets []string

	// ResetTarget also clears the target task's own cached state.
	ResetTarget bool

	// Action is the terminal instruction: preview or run.
	Action render.Action

	// LoadOutput appends an output-load trailer after the action.
	LoadOutput bool
}

// Builder turns a flow invocation into script source text.
type Builder struct {
	store  *workspace.Store
	policy identity.Policy
}

// NewBuilder creates a Builder over the given store.
func NewBuilder(store *workspace.Store, policy identity.Policy) *Builder {
	return &Builder{store: store, policy: policy}
}

// Build validates the invocation against the workspace and renders the
// flow script. The target task must exist; reset references that do not
// resolve are dropped with a warning rather than failing the build.
func (b *Builder) Build(opts BuildOptions) (string, error) {
	if !opts.Action.IsValid() {
		return "", errors.NewValidationError(
			fmt.Sprintf("unknown flow action %q", opts.Action),
			"", "action", "valid actions are preview and run")
	}

	module := workspace.DefaultModule
	if opts.Module != "" {
		var err error
		module, err = b.policy.Normalize(opts.Module, identity.KindModule)
		if err != nil {
			return "", err
		}
	}
	task, err := b.policy.Normalize(opts.Task, identity.KindTask)
	if err != nil {
		return "", err
	}

	doc, err := b.store.Load(module)
	if err != nil {
		return "", err
	}
	if !doc.HasTask(task) {
		return "", errors.NewNotFoundError(
			fmt.Sprintf("task %q not found in module %q", task, module),
			b.store.ArtifactPath(module),
			"check the task name with `flowforge task list`")
	}

	var resets []string
	for _, raw := range opts.Resets {
		name, err := b.policy.Normalize(raw, identity.KindTask)
		if err != nil {
			return "", err
		}
		if !doc.HasTask(name) {
			output.Warn("skipping reset of unknown task", "module", module, "task", name)
			continue
		}
		resets = append(resets, name)
	}

	return render.RenderScript(render.Script{
		RuntimeImport: b.store.Runtime,
		ModuleImport:  b.store.ModuleImportPath(module),
		ModulePkg:     module,
		Task:          task,
		Params:        opts.Params,
		Resets:        resets,
		ResetTarget:   opts.ResetTarget,
		Action:        opts.Action,
		LoadOutput:    opts.LoadOutput && opts.Action == render.ActionRun,
	})
}
