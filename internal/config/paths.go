package config

import (
	"os"
	"path/filepath"
)

// Paths contains standard filesystem paths for flowforge.
type Paths struct {
	// ConfigFile is the path to the config file (~/.flowforge/config.yaml).
	ConfigFile string

	// HomeDir is the flowforge home directory (~/.flowforge).
	HomeDir string
}

// DefaultPaths returns the default paths for flowforge.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	forgeHome := filepath.Join(homeDir, ".flowforge")

	return &Paths{
		ConfigFile: filepath.Join(forgeHome, "config.yaml"),
		HomeDir:    forgeHome,
	}, nil
}

// GetConfigFile returns the config file path.
// If FORGE_CONFIG is set, it takes precedence.
func GetConfigFile() (string, error) {
	if envPath := os.Getenv("FORGE_CONFIG"); envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.ConfigFile, nil
}

// EnsureHomeDir creates the flowforge home directory if it doesn't exist.
func EnsureHomeDir() error {
	paths, err := DefaultPaths()
	if err != nil {
		return err
	}

	return os.MkdirAll(paths.HomeDir, 0o755)
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	// Handle ~/path/to/something
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// Handle ~username (not supported, return as-is)
	return path, nil
}
