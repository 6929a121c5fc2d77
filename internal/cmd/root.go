// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bootstack/cli/internal/config"
	oerrors "github.com/bootstack/cli/internal/errors"
	"github.com/bootstack/cli/internal/output"
)

var (
	// Global flags
	configFlag     string
	verboseFlag    bool
	timestampsFlag bool

	// Loaded configuration (set during PersistentPreRunE)
	loadedConfig *config.Config
)

// NewRootCmd creates the root command for the bootstack CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bootstack",
		Short: "Generate a backend, frontend and database project",
		Long: `bootstack generates a two-service project: a Spring Boot backend fetched
from a template provider, a static frontend served by nginx, and a
docker-compose file that wires both to a database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: BOOTSTACK_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewNewCmd())
	rootCmd.AddCommand(NewDiffCmd())
	rootCmd.AddCommand(NewVersionsCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals loads configuration and sets up logging.
func initializeGlobals(cmd *cobra.Command) error {
	cfg, loadErr := config.NewLoader().Load(configFlag)
	// Don't fail here; commands that need config report it via currentConfig
	loadedConfig = cfg

	// Timestamps: flag (if explicitly set) > config > default (nil = true)
	logCfg := output.LogConfig{Verbose: verboseFlag}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(timestampsFlag)
	} else if cfg != nil && cfg.Log.Timestamps != nil {
		logCfg.Timestamps = cfg.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	if loadErr != nil {
		output.Debug("config load error", "error", loadErr)
		return nil
	}

	output.Debug("initializing CLI",
		"config", configFlag,
		"output", cfg.Output.Base,
		"initializr", cfg.Initializr.URL,
	)

	return nil
}

// currentConfig returns the configuration loaded by the root command, or
// loads it on demand. A file that fails to load is reported here, so only
// commands that need configuration fail on it.
func currentConfig() (*config.Config, error) {
	if loadedConfig != nil {
		return loadedConfig, nil
	}
	cfg, err := config.NewLoader().Load(configFlag)
	if err != nil {
		return nil, oerrors.NewExitError(&oerrors.DetailError{
			Type:     "configuration invalid",
			Message:  err.Error(),
			Location: configFlag,
			Hint:     "Fix the file or run 'bootstack config init --force' to recreate it.",
			Cause:    oerrors.ErrValidation,
		}, oerrors.ExitValidationError)
	}
	return cfg, nil
}
