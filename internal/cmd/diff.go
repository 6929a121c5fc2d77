package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bootstack/cli/internal/drift"
	oerrors "github.com/bootstack/cli/internal/errors"
	"github.com/bootstack/cli/internal/output"
	"github.com/bootstack/cli/internal/project"
	"github.com/bootstack/cli/internal/templates"
)

var diffFlags specFlags

// NewDiffCmd creates the diff command.
func NewDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff [name]",
		Short: "Compare a generated project with a fresh render",
		Long: `Compare the descriptors of an existing project with what 'bootstack new'
would write today: the compose file, both Dockerfiles, the backend
configuration profiles and the ignore rules. Pass the same flags that were
used to generate the project.

YAML files are compared structurally, so reformatting is not reported.
Exits with code 2 when any file is missing or modified.

Examples:
  bootstack diff shop --output .`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDiff,
	}

	diffFlags.register(cmd)

	return cmd
}

func runDiff(cmd *cobra.Command, args []string) error {
	cfg, err := currentConfig()
	if err != nil {
		return err
	}

	spec := diffFlags.resolve(cmd, args, cfg)
	if err := spec.Validate(); err != nil {
		return oerrors.NewExitError(err, oerrors.ExitValidationError)
	}

	layout := project.Compute(spec)
	if info, err := os.Stat(layout.Root); err != nil || !info.IsDir() {
		return oerrors.NewExitError(&oerrors.DetailError{
			Type:     "project not found",
			Message:  fmt.Sprintf("no project directory for %q", spec.Name),
			Location: layout.Root,
			Hint:     "Check --output and the project name.",
			Cause:    oerrors.ErrValidation,
		}, oerrors.ExitValidationError)
	}

	report, err := drift.Compare(layout, templates.NewData(spec, cfg), drift.WithColor(output.IsTTY()))
	if err != nil {
		output.Error("comparing project", "error", err)
		return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: err, Printed: true}
	}

	if !report.HasDrift() {
		output.Println(output.FormatCheckmark(report.Summary()))
		return nil
	}

	output.Println(report.Summary())
	output.Println("")
	for _, p := range report.Missing {
		output.Println(fmt.Sprintf("--- %s [missing]", p))
	}
	for _, m := range report.Modified {
		output.Println(fmt.Sprintf("--- %s [modified]", m.Path))
		output.Println(m.Diff)
		output.Println("")
	}

	return &oerrors.ExitError{
		Code:    oerrors.ExitValidationError,
		Err:     oerrors.Wrap(oerrors.ErrDrift, report.Summary()),
		Printed: true,
	}
}
