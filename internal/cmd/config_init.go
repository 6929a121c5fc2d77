package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bootstack/cli/internal/config"
	oerrors "github.com/bootstack/cli/internal/errors"
	"github.com/bootstack/cli/internal/fsutil"
	"github.com/bootstack/cli/internal/output"
)

var configInitForce bool

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Initialize the bootstack CLI configuration.

Writes ~/.bootstack/config.yaml (or the --config / BOOTSTACK_CONFIG path)
with every setting at its default value.

Examples:
  # Initialize configuration
  bootstack config init

  # Overwrite existing configuration
  bootstack config init --force`,
		Args: cobra.NoArgs,
		RunE: runConfigInit,
	}

	cmd.Flags().BoolVarP(&configInitForce, "force", "f", false,
		"Overwrite existing configuration")

	return cmd
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configFlag
	if path == "" {
		var err error
		if path, err = config.GetConfigFile(); err != nil {
			return oerrors.Wrap(oerrors.ErrFileWrite, "could not determine home directory")
		}
	}
	path, err := config.ExpandPath(path)
	if err != nil {
		return oerrors.Wrap(oerrors.ErrFileWrite, "could not expand "+path)
	}

	exists, err := config.ConfigFileExists(path)
	if err != nil {
		return oerrors.Wrap(oerrors.ErrFileWrite, "could not check "+path)
	}
	if exists && !configInitForce {
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  "configuration already exists",
			Location: path,
			Hint:     "Use --force to overwrite existing configuration.",
			Cause:    oerrors.ErrValidation,
		}
	}

	data, err := config.Encode(config.DefaultConfig())
	if err != nil {
		return err
	}

	// Secure permissions: 0700 for the directory, 0600 for the file
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return oerrors.Wrap(oerrors.ErrDirectoryCreate, "could not create "+filepath.Dir(path))
	}
	if err := fsutil.WriteFileAtomic(path, data, 0o600); err != nil {
		return oerrors.Wrap(oerrors.ErrFileWrite, "could not write "+path)
	}

	output.Println(output.FormatCheckmark("Configuration initialized at " + output.FormatNoun(path)))
	output.Println("")
	output.Println("View the effective settings with: bootstack config view")

	return nil
}
