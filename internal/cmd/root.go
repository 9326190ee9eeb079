package cmd

import (
	goerrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowforge/cli/internal/config"
	"github.com/flowforge/cli/internal/engine"
	"github.com/flowforge/cli/internal/errors"
	"github.com/flowforge/cli/internal/identity"
	"github.com/flowforge/cli/internal/output"
	"github.com/flowforge/cli/internal/workspace"
)

var (
	// Global flags
	configFlag       string
	workspaceFlag    string
	outputFormatFlag string
	verboseFlag      bool

	// Resolved configuration (loaded during PersistentPreRunE)
	forgeConfig *config.Config
)

// NewRootCmd creates the root command for the flowforge CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "flowforge",
		Short:         "Flowforge CLI",
		Long:          `Flowforge manages generated task definitions and runs flows built from them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd)
		},
	}

	// Add global flags
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: FORGE_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&workspaceFlag, "workspace", "", "Workspace root directory (env: FORGE_WORKSPACE)")
	rootCmd.PersistentFlags().StringVarP(&outputFormatFlag, "output", "o", "text", "Output format: text, yaml, json, table")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(NewTaskCmd())
	rootCmd.AddCommand(NewFlowCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals sets up logging and loads configuration.
func initializeGlobals(cmd *cobra.Command) error {
	output.SetupLogging(verboseFlag)

	loader := config.NewLoader()
	cfg, err := loader.LoadWithDefaults(configFlag)
	if err != nil {
		return err
	}
	if workspaceFlag != "" {
		cfg.Workspace = workspaceFlag
	}
	forgeConfig = cfg

	if verboseFlag {
		output.Debug("initializing CLI",
			"workspace", cfg.Workspace,
			"workspaceModule", cfg.WorkspaceModule,
			"runtime", cfg.Runtime,
			"naming", cfg.Naming,
		)
	}

	return nil
}

// GetConfig returns the loaded configuration.
func GetConfig() *config.Config {
	return forgeConfig
}

// newStore builds the artifact store from the resolved configuration.
func newStore() *workspace.Store {
	cfg := forgeConfig
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return workspace.New(cfg.Workspace, cfg.WorkspaceModule, cfg.Runtime, cfg.RuntimeReplace)
}

// newEngine builds the mutation engine from the resolved configuration.
func newEngine() *engine.Engine {
	cfg := forgeConfig
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return engine.New(newStore(), identity.ForMode(cfg.Naming))
}

// exitWithCode prints err (unless it was already printed) and wraps it
// with its mapped exit code for main to honor.
func exitWithCode(err error) error {
	if err == nil {
		return nil
	}

	var exitErr *errors.ExitError
	if goerrors.As(err, &exitErr) {
		return err
	}

	code := ExitCodeFromError(err)

	var detail *errors.DetailError
	if goerrors.As(err, &detail) {
		fmt.Fprintln(os.Stderr, detail.Error())
		wrapped := errors.NewExitError(err, code)
		wrapped.Printed = true
		return wrapped
	}

	return errors.NewExitError(err, code)
}
