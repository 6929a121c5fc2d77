package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bootstack/cli/internal/config"
	"github.com/bootstack/cli/internal/output"
)

// NewConfigViewCmd creates the config view command.
func NewConfigViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Show the effective configuration",
		Long: `Show the configuration bootstack runs with: defaults, overlaid by the
config file, overlaid by BOOTSTACK_* environment variables.`,
		Args: cobra.NoArgs,
		RunE: runConfigView,
	}
}

func runConfigView(cmd *cobra.Command, args []string) error {
	cfg, err := currentConfig()
	if err != nil {
		return err
	}

	data, err := config.Encode(cfg)
	if err != nil {
		return err
	}
	output.Print(string(data))
	return nil
}
