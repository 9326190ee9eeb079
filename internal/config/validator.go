package config

import (
	"embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaFS embed.FS

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Validator validates configuration against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator creates a new configuration validator.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	schemaData, err := schemaFS.ReadFile("schema.cue")
	if err != nil {
		return nil, fmt.Errorf("reading embedded schema: %w", err)
	}

	schema := ctx.CompileBytes(schemaData)
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	return &Validator{
		ctx:    ctx,
		schema: schema,
	}, nil
}

// Validate validates the given configuration.
func (v *Validator) Validate(cfg *Config) error {
	var errs ValidationErrors

	// Schema-level validation via CUE unification.
	def := v.schema.LookupPath(cue.ParsePath("#Config"))
	if def.Exists() {
		encoded := v.ctx.Encode(cfg)
		if err := encoded.Err(); err != nil {
			return fmt.Errorf("encoding config for validation: %w", err)
		}
		unified := def.Unify(encoded)
		if err := unified.Validate(cue.Concrete(false)); err != nil {
			errs = append(errs, ValidationError{
				Field:   "config",
				Message: err.Error(),
			})
		}
	}

	// Field-level checks with friendlier messages.
	if cfg.Naming != "" && cfg.Naming != "lenient" && cfg.Naming != "strict" {
		errs = append(errs, ValidationError{
			Field:   "naming",
			Message: `must be "lenient" or "strict"`,
		})
	}

	if cfg.Workspace != "" && strings.TrimSpace(cfg.Workspace) == "" {
		errs = append(errs, ValidationError{
			Field:   "workspace",
			Message: "must not be empty or whitespace only",
		})
	}

	if cfg.Runtime != "" && strings.Contains(cfg.Runtime, " ") {
		errs = append(errs, ValidationError{
			Field:   "runtime",
			Message: "must be a valid import path without spaces",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ValidateFile validates a configuration file at the given path.
func (v *Validator) ValidateFile(path string) error {
	loader := NewLoader()
	cfg, err := loader.Load(path)
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}

	return v.Validate(cfg)
}
