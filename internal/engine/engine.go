// Package engine exposes the CRUD surface over generated task
// definitions: create, get, update, upsert, delete, and rename, each a
// full read-mutate-rewrite cycle on one module artifact.
package engine

import (
	"fmt"
	"strings"

	"github.com/flowforge/cli/internal/astedit"
	"github.com/flowforge/cli/internal/errors"
	"github.com/flowforge/cli/internal/identity"
	"github.com/flowforge/cli/internal/output"
	"github.com/flowforge/cli/internal/render"
	"github.com/flowforge/cli/internal/resolve"
	"github.com/flowforge/cli/internal/workspace"
)

// protectedSegments are segment names an update may never replace: the
// primary segment and the runtime's lifecycle hooks.
var protectedSegments = map[string]bool{
	astedit.PrimarySegment: true,
	"setup":                true,
	"teardown":             true,
}

// IsProtectedSegment reports whether a segment name is reserved.
func IsProtectedSegment(name string) bool {
	return protectedSegments[name]
}

// Engine orchestrates all task definition mutations.
type Engine struct {
	store    *workspace.Store
	policy   identity.Policy
	resolver *resolve.Resolver
}

// New creates an Engine over the given store with the given identifier
// policy.
func New(store *workspace.Store, policy identity.Policy) *Engine {
	return &Engine{
		store:    store,
		policy:   policy,
		resolver: resolve.New(store),
	}
}

// Store exposes the underlying artifact store (for validation-only
// collaborators such as the flow script builder).
func (e *Engine) Store() *workspace.Store {
	return e.store
}

// Result reports the outcome of a mutating operation.
type Result struct {
	Module string `json:"module"`
	Task   string `json:"task"`
	Status string `json:"status"`
}

// Segment is one caller-supplied named segment.
type Segment struct {
	Name string `json:"name"`
	Body string `json:"body"`
}

// CreateOptions describes a task to create.
type CreateOptions struct {
	// Module is the raw, optional module name.
	Module string

	// Name is the raw task display name.
	Name string

	// PrimaryBody is the primary segment body; it must assign the
	// result binding.
	PrimaryBody string

	// Segments are additional named segments, in order.
	Segments []Segment

	// Inputs are upstream references wired into the dependency
	// annotation.
	Inputs []resolve.InputRef

	// Imports are custom import lines merged into the artifact.
	Imports []string
}

// Create adds a new task definition. The module is created lazily when
// missing; a task identifier collision is a DuplicateError.
func (e *Engine) Create(opts CreateOptions) (*Result, error) {
	module, taskIdent, err := e.identifiers(opts.Module, opts.Name)
	if err != nil {
		return nil, err
	}

	doc, err := e.store.LoadOrCreate(module)
	if err != nil {
		return nil, err
	}
	if doc.HasTask(taskIdent) {
		return nil, errors.NewDuplicateError(
			fmt.Sprintf("task %q already exists in module %q", taskIdent, module),
			e.store.ArtifactPath(module),
			"use `flowforge task apply` to update it instead")
	}

	resolution, err := e.resolver.Resolve(opts.Inputs, module)
	if err != nil {
		return nil, err
	}

	text, err := render.RenderDefinition(render.Definition{
		Ident:       taskIdent,
		DisplayName: opts.Name,
		RuntimePkg:  e.store.RuntimePackage(),
		Entries:     resolution.Entries,
		PrimaryBody: opts.PrimaryBody,
		Segments:    toASTSegments(opts.Segments),
	})
	if err != nil {
		return nil, err
	}

	if err := e.mergeImports(doc, resolution.Imports, opts.Imports); err != nil {
		return nil, err
	}
	if err := doc.InsertDecl(text); err != nil {
		return nil, err
	}
	if err := e.store.Save(doc); err != nil {
		return nil, err
	}

	output.Debug("created task", "module", module, "task", taskIdent)
	return &Result{Module: module, Task: taskIdent, Status: output.StatusCreated}, nil
}

// Get returns one segment's body (load prefix stripped) or, with an
// empty segment name, the full definition source.
func (e *Engine) Get(moduleRaw, taskRaw, segment string) (string, error) {
	module, taskIdent, err := e.identifiers(moduleRaw, taskRaw)
	if err != nil {
		return "", err
	}

	doc, err := e.store.Load(module)
	if err != nil {
		return "", err
	}

	if segment == "" {
		return doc.Source(taskIdent)
	}

	src, err := doc.SegmentSource(taskIdent, segment)
	if err != nil {
		return "", err
	}
	return render.StripPrefix(src), nil
}

// UpdateOptions describes an in-place task update. Each nil field is
// left untouched; a non-nil Segments replaces the entire non-protected
// segment set, and a non-nil Inputs rebuilds the dependency annotation
// from scratch.
type UpdateOptions struct {
	Module string
	Task   string

	PrimaryBody *string
	Segments    *[]Segment
	Inputs      *[]resolve.InputRef
	Imports     []string
}

// Update mutates an existing task definition in place.
func (e *Engine) Update(opts UpdateOptions) (*Result, error) {
	module, taskIdent, err := e.identifiers(opts.Module, opts.Task)
	if err != nil {
		return nil, err
	}

	doc, err := e.store.Load(module)
	if err != nil {
		return nil, err
	}
	if !doc.HasTask(taskIdent) {
		return nil, errors.NewNotFoundError(
			fmt.Sprintf("task %q not found in module %q", taskIdent, module),
			e.store.ArtifactPath(module),
			"create it first with `flowforge task create`")
	}

	if opts.Inputs != nil {
		resolution, err := e.resolver.Resolve(*opts.Inputs, module)
		if err != nil {
			return nil, err
		}
		if err := doc.ReplaceInputs(taskIdent, resolution.Entries); err != nil {
			return nil, err
		}
		if err := e.mergeImports(doc, resolution.Imports, nil); err != nil {
			return nil, err
		}
	}

	if opts.PrimaryBody != nil {
		body, err := render.PreparePrimary(*opts.PrimaryBody)
		if err != nil {
			return nil, err
		}
		if err := doc.ReplaceSegment(taskIdent, astedit.PrimarySegment, body); err != nil {
			return nil, err
		}
	}

	if opts.Segments != nil {
		prepared := make([]astedit.Segment, 0, len(*opts.Segments))
		for _, seg := range *opts.Segments {
			name, err := e.policy.Normalize(seg.Name, identity.KindSegment)
			if err != nil {
				return nil, err
			}
			prepared = append(prepared, astedit.Segment{
				Name: name,
				Body: render.PrefixBody(seg.Body),
			})
		}
		if err := doc.ReplaceSegments(taskIdent, prepared, IsProtectedSegment); err != nil {
			return nil, err
		}
	}

	if len(opts.Imports) > 0 {
		if err := e.mergeImports(doc, nil, opts.Imports); err != nil {
			return nil, err
		}
	}

	if err := e.store.Save(doc); err != nil {
		return nil, err
	}

	output.Debug("updated task", "module", module, "task", taskIdent)
	return &Result{Module: module, Task: taskIdent, Status: output.StatusUpdated}, nil
}

// Upsert creates the task when absent, otherwise updates every supplied
// field of the existing definition.
func (e *Engine) Upsert(opts CreateOptions) (*Result, error) {
	module, taskIdent, err := e.identifiers(opts.Module, opts.Name)
	if err != nil {
		return nil, err
	}

	doc, err := e.store.Load(module)
	if err != nil && !errors.IsNotFound(err) {
		return nil, err
	}
	if doc != nil && doc.HasTask(taskIdent) {
		segments := opts.Segments
		inputs := opts.Inputs
		return e.Update(UpdateOptions{
			Module:      opts.Module,
			Task:        opts.Name,
			PrimaryBody: &opts.PrimaryBody,
			Segments:    &segments,
			Inputs:      &inputs,
			Imports:     opts.Imports,
		})
	}
	return e.Create(opts)
}

// Delete removes a task definition. The artifact is only rewritten when
// the removal actually happened.
func (e *Engine) Delete(moduleRaw, taskRaw string) (*Result, error) {
	module, taskIdent, err := e.identifiers(moduleRaw, taskRaw)
	if err != nil {
		return nil, err
	}

	doc, err := e.store.Load(module)
	if err != nil {
		return nil, err
	}
	if err := doc.Remove(taskIdent); err != nil {
		return nil, err
	}
	if err := e.store.Save(doc); err != nil {
		return nil, err
	}

	output.Debug("deleted task", "module", module, "task", taskIdent)
	return &Result{Module: module, Task: taskIdent, Status: output.StatusDeleted}, nil
}

// Rename changes a task identifier in place, rewriting same-module
// dependency annotations that referenced it. Cross-module references
// are not rewritten.
func (e *Engine) Rename(moduleRaw, oldRaw, newRaw string) (*Result, error) {
	module, oldIdent, err := e.identifiers(moduleRaw, oldRaw)
	if err != nil {
		return nil, err
	}
	newIdent, err := e.policy.Normalize(newRaw, identity.KindTask)
	if err != nil {
		return nil, err
	}

	doc, err := e.store.Load(module)
	if err != nil {
		return nil, err
	}
	if err := doc.Rename(oldIdent, newIdent); err != nil {
		return nil, err
	}
	if err := e.store.Save(doc); err != nil {
		return nil, err
	}

	output.Debug("renamed task", "module", module, "from", oldIdent, "to", newIdent)
	return &Result{Module: module, Task: newIdent, Status: output.StatusRenamed}, nil
}

// identifiers normalizes the optional module name and a task name.
func (e *Engine) identifiers(moduleRaw, taskRaw string) (string, string, error) {
	var module string
	if strings.TrimSpace(moduleRaw) == "" {
		module = workspace.DefaultModule
	} else {
		var err error
		module, err = e.policy.Normalize(moduleRaw, identity.KindModule)
		if err != nil {
			return "", "", err
		}
	}

	task, err := e.policy.Normalize(taskRaw, identity.KindTask)
	if err != nil {
		return "", "", err
	}
	return module, task, nil
}

// mergeImports ensures the base imports plus any cross-module and
// custom imports are present, in that order.
func (e *Engine) mergeImports(doc *astedit.Document, crossModule, custom []string) error {
	lines := append([]string{}, e.store.BaseImports()...)
	lines = append(lines, crossModule...)
	lines = append(lines, custom...)
	return doc.MergeImports(strings.Join(lines, "\n"))
}

func toASTSegments(segments []Segment) []astedit.Segment {
	out := make([]astedit.Segment, 0, len(segments))
	for _, s := range segments {
		out = append(out, astedit.Segment{Name: s.Name, Body: s.Body})
	}
	return out
}
