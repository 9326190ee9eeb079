package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultWorkspace, cfg.Workspace)
	assert.Equal(t, DefaultWorkspaceModule, cfg.WorkspaceModule)
	assert.Equal(t, DefaultRuntime, cfg.Runtime)
	assert.Equal(t, DefaultNaming, cfg.Naming)
	assert.Empty(t, cfg.RuntimeReplace)
}

func TestWithDefaults(t *testing.T) {
	cfg := (&Config{Workspace: "/custom"}).WithDefaults()

	assert.Equal(t, "/custom", cfg.Workspace)
	assert.Equal(t, DefaultWorkspaceModule, cfg.WorkspaceModule)
	assert.Equal(t, DefaultRuntime, cfg.Runtime)
	assert.Equal(t, DefaultNaming, cfg.Naming)
}

func TestLoaderReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`workspace: /ws
workspaceModule: myflows
naming: strict
`), 0o644))

	cfg, err := NewLoader().LoadWithDefaults(path)
	require.NoError(t, err)

	assert.Equal(t, "/ws", cfg.Workspace)
	assert.Equal(t, "myflows", cfg.WorkspaceModule)
	assert.Equal(t, "strict", cfg.Naming)
	assert.Equal(t, DefaultRuntime, cfg.Runtime)
}

func TestLoaderMissingFileUsesDefaults(t *testing.T) {
	cfg, err := NewLoader().LoadWithDefaults(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultWorkspace, cfg.Workspace)
}

func TestLoaderEnvOverrides(t *testing.T) {
	t.Setenv("FORGE_WORKSPACE", "/from-env")
	t.Setenv("FORGE_NAMING", "strict")

	cfg, err := NewLoader().LoadWithDefaults(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "/from-env", cfg.Workspace)
	assert.Equal(t, "strict", cfg.Naming)
}

func TestConfigFileExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	exists, err := ConfigFileExists(path)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, os.WriteFile(path, []byte("workspace: /ws\n"), 0o644))

	exists, err = ConfigFileExists(path)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestValidator(t *testing.T) {
	validator, err := NewValidator()
	require.NoError(t, err)

	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, validator.Validate(DefaultConfig()))
	})

	t.Run("bad naming mode", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Naming = "sloppy"
		err := validator.Validate(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "naming")
	})

	t.Run("runtime with spaces", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Runtime = "not an import path"
		err := validator.Validate(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "runtime")
	})
}

func TestValidateFile(t *testing.T) {
	validator, err := NewValidator()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("naming: bogus\n"), 0o644))

	assert.Error(t, validator.ValidateFile(path))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/x/y")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x", "y"), got)

	got, err = ExpandPath("/abs/path")
	require.NoError(t, err)
	assert.Equal(t, "/abs/path", got)

	got, err = ExpandPath("")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}
