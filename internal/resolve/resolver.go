// Package resolve validates symbolic input references against the
// workspace and derives dependency annotation metadata from them.
package resolve

import (
	"fmt"

	"github.com/flowforge/cli/internal/astedit"
	"github.com/flowforge/cli/internal/errors"
	"github.com/flowforge/cli/internal/workspace"
)

// InputRef is a caller-supplied reference to an upstream task: an
// optional source module and the task identifier.
type InputRef struct {
	// Module is the source module; empty means "same module as the
	// referencing task".
	Module string `json:"module,omitempty"`

	// Task is the upstream task identifier.
	Task string `json:"task"`
}

// Resolution is the outcome of resolving a set of input references.
type Resolution struct {
	// Entries are the dependency annotation pairs, in reference order.
	Entries []astedit.AnnotationEntry

	// Imports are the import lines required for cross-module
	// references, one per distinct foreign module, in first-seen order.
	Imports []string
}

// Resolver checks reference existence through the artifact store.
type Resolver struct {
	store *workspace.Store
}

// New creates a Resolver backed by the given store.
func New(store *workspace.Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve validates each reference and computes its annotation entry.
// References default to currentModule when no module is given. A
// reference to a task that does not exist resolves to NotFound before
// anything is written.
func (r *Resolver) Resolve(refs []InputRef, currentModule string) (*Resolution, error) {
	res := &Resolution{}
	seenImports := make(map[string]bool)

	for _, ref := range refs {
		if ref.Task == "" {
			return nil, errors.NewValidationError(
				"input reference is missing a task name",
				"", "inputs", "every input needs a task identifier")
		}

		sourceModule := ref.Module
		if sourceModule == "" {
			sourceModule = currentModule
		}

		doc, err := r.store.Load(sourceModule)
		if err != nil {
			return nil, err
		}
		if !doc.HasTask(ref.Task) {
			return nil, errors.NewNotFoundError(
				fmt.Sprintf("input task %q not found in module %q", ref.Task, sourceModule),
				r.store.ArtifactPath(sourceModule),
				"create the upstream task first")
		}

		entry := astedit.AnnotationEntry{}
		if ref.Module != "" {
			// Module was explicit: the key is always qualified.
			entry.Key = ref.Module + "." + ref.Task
		} else {
			entry.Key = ref.Task
		}
		if sourceModule != currentModule {
			entry.Symbol = sourceModule + "." + ref.Task
			importLine := fmt.Sprintf("%q", r.store.ModuleImportPath(sourceModule))
			if !seenImports[importLine] {
				seenImports[importLine] = true
				res.Imports = append(res.Imports, importLine)
			}
		} else {
			entry.Symbol = ref.Task
		}

		res.Entries = append(res.Entries, entry)
	}

	return res, nil
}
