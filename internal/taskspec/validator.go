package taskspec

import (
	"embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"sigs.k8s.io/yaml"
)

//go:embed schema.cue
var schemaFS embed.FS

// ValidateBytes checks one YAML specification document against the
// embedded CUE schema.
func ValidateBytes(data []byte) error {
	ctx := cuecontext.New()

	schemaData, err := schemaFS.ReadFile("schema.cue")
	if err != nil {
		return fmt.Errorf("reading embedded schema: %w", err)
	}
	schema := ctx.CompileBytes(schemaData)
	if schema.Err() != nil {
		return fmt.Errorf("compiling schema: %w", schema.Err())
	}
	def := schema.LookupPath(cue.ParsePath("#Spec"))
	if !def.Exists() {
		return fmt.Errorf("schema has no #Spec definition")
	}

	// YAML to a generic value first; CUE then unifies against the
	// definition.
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}
	encoded := ctx.Encode(doc)
	if err := encoded.Err(); err != nil {
		return fmt.Errorf("encoding task spec for validation: %w", err)
	}

	// Concrete validation so missing required fields surface as errors.
	unified := def.Unify(encoded)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("task spec does not match schema: %w", err)
	}
	return nil
}
