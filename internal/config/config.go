// Package config provides configuration loading and management.
package config

// Config represents the flowforge CLI configuration.
// Loaded from ~/.flowforge/config.yaml, overridable via FORGE_* env vars.
type Config struct {
	// Workspace is the directory holding generated module artifacts.
	// Env: FORGE_WORKSPACE, Default: ./flows
	Workspace string `json:"workspace,omitempty"`

	// WorkspaceModule is the Go module name written to the workspace
	// go.mod marker on first use.
	// Env: FORGE_WORKSPACE_MODULE, Default: "flows"
	WorkspaceModule string `json:"workspaceModule,omitempty"`

	// Runtime is the import path of the runtime library generated code
	// links against.
	// Env: FORGE_RUNTIME, Default: github.com/flowforge/cli/pkg/flowkit
	Runtime string `json:"runtime,omitempty"`

	// RuntimeReplace is an optional local path written as a go.mod
	// replace directive, for workspaces built without network access.
	// Env: FORGE_RUNTIME_REPLACE
	RuntimeReplace string `json:"runtimeReplace,omitempty"`

	// Naming selects the identifier policy: "lenient" (sanitize) or
	// "strict" (reject invalid names).
	// Env: FORGE_NAMING, Default: "lenient"
	Naming string `json:"naming,omitempty"`
}

// Default configuration values.
const (
	DefaultWorkspace       = "./flows"
	DefaultWorkspaceModule = "flows"
	DefaultRuntime         = "github.com/flowforge/cli/pkg/flowkit"
	DefaultNaming          = "lenient"
)

// DefaultConfig returns a Config with all default values populated.
// Used by `flowforge config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		Workspace:       DefaultWorkspace,
		WorkspaceModule: DefaultWorkspaceModule,
		Runtime:         DefaultRuntime,
		Naming:          DefaultNaming,
	}
}

// WithDefaults fills unset fields with their defaults.
func (c *Config) WithDefaults() *Config {
	out := *c
	if out.Workspace == "" {
		out.Workspace = DefaultWorkspace
	}
	if out.WorkspaceModule == "" {
		out.WorkspaceModule = DefaultWorkspaceModule
	}
	if out.Runtime == "" {
		out.Runtime = DefaultRuntime
	}
	if out.Naming == "" {
		out.Naming = DefaultNaming
	}
	return &out
}
