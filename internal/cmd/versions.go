package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	oerrors "github.com/bootstack/cli/internal/errors"
	"github.com/bootstack/cli/internal/output"
	"github.com/bootstack/cli/internal/pipeline"
)

// NewVersionsCmd creates the versions command.
func NewVersionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "List template revisions offered by the provider",
		Long: `List the template revisions the provider currently offers, newest first.
The provider's default revision is marked.

The list comes from initializr.metadataUrl (env: BOOTSTACK_INITIALIZR_METADATAURL).`,
		Args: cobra.NoArgs,
		RunE: runVersions,
	}
}

func runVersions(cmd *cobra.Command, args []string) error {
	cfg, err := currentConfig()
	if err != nil {
		return err
	}

	// Listing ignores skipValidation; it only needs the metadata endpoint.
	listCfg := *cfg
	listCfg.Initializr.SkipValidation = false
	client := pipeline.NewClient(&listCfg)

	versions, err := client.Versions(cmd.Context())
	if err != nil {
		return oerrors.NewExitError(&oerrors.DetailError{
			Type:     "metadata unavailable",
			Message:  err.Error(),
			Location: cfg.Initializr.MetadataURL,
			Hint:     "Check network access to the provider or set initializr.metadataUrl.",
			Cause:    oerrors.ErrConnectivity,
		}, oerrors.ExitConnectivityError)
	}

	styles := output.GetStyles()
	for _, v := range versions {
		line := "  " + v.ID
		if v.Default {
			line = fmt.Sprintf("%-20s %s", line, styles.Muted.Render("(default)"))
		}
		output.Println(line)
	}
	return nil
}
