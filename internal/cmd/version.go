package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bootstack/cli/internal/output"
	"github.com/bootstack/cli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show bootstack CLI version information.

Displays:
  - bootstack version, commit, and build date
  - docker and compose versions used to run generated projects`,
		RunE: runVersion,
	}
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := version.GetInfo()

	output.Println(fmt.Sprintf("bootstack version %s", info.Version))
	output.Println(fmt.Sprintf("  Commit:    %s", info.GitCommit))
	output.Println(fmt.Sprintf("  Built:     %s", info.BuildDate))
	output.Println(fmt.Sprintf("  Go:        %s", info.GoVersion))

	rt := version.DetectDockerBinary()
	if !rt.Found {
		output.Println("  Docker:    not found")
		return nil
	}
	output.Println(fmt.Sprintf("  Docker:    %s", rt.Version))
	compose := rt.ComposeVersion
	if compose == "" {
		compose = "not found"
	}
	output.Println(fmt.Sprintf("  Compose:   %s", compose))
	if !rt.Compatible {
		output.Warn("container runtime not ready", "reason", rt.Message)
	}

	return nil
}
