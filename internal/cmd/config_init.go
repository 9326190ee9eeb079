package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/flowforge/cli/internal/config"
	"github.com/flowforge/cli/internal/errors"
	"github.com/flowforge/cli/internal/output"
)

var configInitForce bool

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Initialize the flowforge CLI configuration.

Writes a commented config.yaml to ~/.flowforge/ with every setting at
its default.

Examples:
  # Initialize configuration
  flowforge config init

  # Overwrite existing configuration
  flowforge config init --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exitWithCode(runConfigInit())
		},
	}

	cmd.Flags().BoolVarP(&configInitForce, "force", "f", false,
		"Overwrite existing configuration")

	return cmd
}

func runConfigInit() error {
	paths, err := config.DefaultPaths()
	if err != nil {
		return errors.Wrap(errors.ErrNotFound, "could not determine home directory")
	}

	if _, err := os.Stat(paths.ConfigFile); err == nil && !configInitForce {
		return &errors.DetailError{
			Type:     "validation failed",
			Message:  "configuration already exists",
			Location: paths.ConfigFile,
			Hint:     "Use --force to overwrite existing configuration.",
			Cause:    errors.ErrValidation,
		}
	}

	if err := config.EnsureHomeDir(); err != nil {
		return errors.Wrap(errors.ErrValidation, "could not create ~/.flowforge directory")
	}

	if err := os.WriteFile(paths.ConfigFile, []byte(config.DefaultConfigTemplate), 0o600); err != nil {
		return errors.Wrap(errors.ErrValidation, "could not write config.yaml")
	}

	output.Println("Configuration initialized at " + paths.ConfigFile)
	output.Println("")
	output.Println("Validate with: flowforge config vet")

	return nil
}
