// Package taskspec reads declarative task specification files: the
// YAML documents consumed by `flowforge task apply -f` and compared by
// `flowforge task diff`.
package taskspec

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/flowforge/cli/internal/errors"
	"github.com/flowforge/cli/internal/resolve"
)

// SegmentSpec is one named segment in a specification file.
type SegmentSpec struct {
	Name string `json:"name"`
	Body string `json:"body"`
}

// Spec is one declarative task specification.
type Spec struct {
	// Module is the optional target module.
	Module string `json:"module,omitempty"`

	// Task is the task display name.
	Task string `json:"task"`

	// Primary is the primary segment body.
	Primary string `json:"primary"`

	// Segments are additional named segments, in file order.
	Segments []SegmentSpec `json:"segments,omitempty"`

	// Inputs are upstream task references.
	Inputs []resolve.InputRef `json:"inputs,omitempty"`

	// Imports are custom import lines for the module artifact.
	Imports []string `json:"imports,omitempty"`
}

// Load reads, schema-validates, and decodes one specification file.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError(
				fmt.Sprintf("task spec %q not found", path), path, "")
		}
		return nil, fmt.Errorf("reading task spec %s: %w", path, err)
	}

	if err := ValidateBytes(data); err != nil {
		return nil, errors.NewValidationError(
			err.Error(), path, "", "fix the task spec and retry")
	}

	var spec Spec
	if err := yaml.UnmarshalStrict(data, &spec); err != nil {
		return nil, errors.NewValidationError(
			fmt.Sprintf("decoding task spec: %v", err), path, "",
			"check the YAML structure against `flowforge task diff --help`")
	}
	return &spec, nil
}

// Marshal renders a Spec back to YAML, for export and diffing.
func (s *Spec) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}
