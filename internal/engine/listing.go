package engine

import (
	"strings"

	"github.com/flowforge/cli/internal/astedit"
	"github.com/flowforge/cli/internal/identity"
	"github.com/flowforge/cli/internal/render"
	"github.com/flowforge/cli/internal/resolve"
	"github.com/flowforge/cli/internal/taskspec"
	"github.com/flowforge/cli/internal/workspace"
)

// ModuleListing pairs a module with its task summaries.
type ModuleListing struct {
	Module string             `json:"module"`
	Tasks  []astedit.TaskInfo `json:"tasks"`
}

// List summarizes the tasks of one module, or of every materialized
// module when moduleRaw is empty and all is set.
func (e *Engine) List(moduleRaw string, all bool) ([]ModuleListing, error) {
	var modules []string
	if all && strings.TrimSpace(moduleRaw) == "" {
		var err error
		modules, err = e.store.Modules()
		if err != nil {
			return nil, err
		}
	} else {
		module := workspace.DefaultModule
		if strings.TrimSpace(moduleRaw) != "" {
			var err error
			module, err = e.policy.Normalize(moduleRaw, identity.KindModule)
			if err != nil {
				return nil, err
			}
		}
		modules = []string{module}
	}

	listings := make([]ModuleListing, 0, len(modules))
	for _, module := range modules {
		doc, err := e.store.Load(module)
		if err != nil {
			return nil, err
		}
		listings = append(listings, ModuleListing{Module: module, Tasks: doc.Info()})
	}
	return listings, nil
}

// Modules enumerates materialized module identifiers.
func (e *Engine) Modules() ([]string, error) {
	return e.store.Modules()
}

// Export reconstructs the declarative specification of a stored task:
// the same shape `task apply -f` consumes, with the load prefix
// stripped from every segment body.
func (e *Engine) Export(moduleRaw, taskRaw string) (*taskspec.Spec, error) {
	module, taskIdent, err := e.identifiers(moduleRaw, taskRaw)
	if err != nil {
		return nil, err
	}

	doc, err := e.store.Load(module)
	if err != nil {
		return nil, err
	}

	display, err := doc.DisplayName(taskIdent)
	if err != nil {
		return nil, err
	}

	spec := &taskspec.Spec{Module: module, Task: display}

	names, err := doc.SegmentNames(taskIdent)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		src, err := doc.SegmentSource(taskIdent, name)
		if err != nil {
			return nil, err
		}
		body := render.StripPrefix(src)
		if name == astedit.PrimarySegment {
			spec.Primary = body
			continue
		}
		spec.Segments = append(spec.Segments, taskspec.SegmentSpec{Name: name, Body: body})
	}

	entries, err := doc.InputEntries(taskIdent)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		ref := resolve.InputRef{Task: entry.Key}
		if dot := strings.Index(entry.Key, "."); dot > 0 {
			ref.Module = entry.Key[:dot]
			ref.Task = entry.Key[dot+1:]
		}
		spec.Inputs = append(spec.Inputs, ref)
	}

	return spec, nil
}

// Apply upserts one declarative specification.
func (e *Engine) Apply(spec *taskspec.Spec) (*Result, error) {
	segments := make([]Segment, 0, len(spec.Segments))
	for _, s := range spec.Segments {
		segments = append(segments, Segment{Name: s.Name, Body: s.Body})
	}
	return e.Upsert(CreateOptions{
		Module:      spec.Module,
		Name:        spec.Task,
		PrimaryBody: spec.Primary,
		Segments:    segments,
		Inputs:      spec.Inputs,
		Imports:     spec.Imports,
	})
}
