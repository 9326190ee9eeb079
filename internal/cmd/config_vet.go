package cmd

import (
	"github.com/spf13/cobra"

	"github.com/flowforge/cli/internal/config"
	"github.com/flowforge/cli/internal/errors"
	"github.com/flowforge/cli/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vet",
		Short: "Validate the configuration",
		Long: `Validate the flowforge configuration against its schema.

Checks the config file (or the file given with --config) and reports
every violation.

Examples:
  flowforge config vet
  flowforge config vet --config ./ci-config.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exitWithCode(runConfigVet())
		},
	}

	return cmd
}

func runConfigVet() error {
	validator, err := config.NewValidator()
	if err != nil {
		return err
	}

	if err := validator.ValidateFile(configFlag); err != nil {
		return errors.NewValidationError(
			err.Error(), configFlag, "",
			"fix the reported fields and rerun `flowforge config vet`")
	}

	output.Println("configuration is valid")
	return nil
}
