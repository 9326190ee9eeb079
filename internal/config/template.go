package config

// DefaultConfigTemplate is the commented YAML written by
// `flowforge config init`.
const DefaultConfigTemplate = `# flowforge configuration
# Every key can be overridden with a FORGE_* environment variable.

# Directory holding generated module artifacts (env: FORGE_WORKSPACE).
workspace: ./flows

# Go module name written to the workspace go.mod marker on first use
# (env: FORGE_WORKSPACE_MODULE).
workspaceModule: flows

# Import path of the runtime library generated code links against
# (env: FORGE_RUNTIME).
runtime: github.com/flowforge/cli/pkg/flowkit

# Optional local checkout written as a go.mod replace directive, for
# workspaces built without network access (env: FORGE_RUNTIME_REPLACE).
# runtimeReplace: /path/to/runtime

# Identifier policy: lenient (sanitize names) or strict (reject invalid
# names) (env: FORGE_NAMING).
naming: lenient
`
