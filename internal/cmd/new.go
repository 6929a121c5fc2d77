package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	oerrors "github.com/bootstack/cli/internal/errors"
	"github.com/bootstack/cli/internal/output"
	"github.com/bootstack/cli/internal/pipeline"
	"github.com/bootstack/cli/internal/version"
)

var (
	newFlags            specFlags
	newSkipVersionCheck bool
)

// NewNewCmd creates the new command.
func NewNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new [name]",
		Short: "Generate a new project",
		Long: `Generate a backend, a frontend and a compose file in <output>/<name>.

The project name comes from BOOTSTACK_PROJECT_NAME, the positional argument,
project.name in the config file, or "demo", in that order.

Layout:
  <name>/
    <name>_back/<artifact>/   Spring Boot project, Dockerfile, profiles
    <name>_front/             index.html, style.css, script.js, Dockerfile
    docker-compose.yml        db, backend and frontend services

Examples:
  # Generate ./shop using the default revision and dependencies
  bootstack new shop --output .

  # Pin the template revision and Java version
  bootstack new shop -o . --boot-version 3.2.10 --java-version 21

  # Generate without checking the revision against the provider
  bootstack new shop -o . --skip-version-check`,
		Args: cobra.MaximumNArgs(1),
		RunE: runNew,
	}

	newFlags.register(cmd)
	cmd.Flags().BoolVar(&newSkipVersionCheck, "skip-version-check", false,
		"Do not check the revision against provider metadata")

	return cmd
}

func runNew(cmd *cobra.Command, args []string) error {
	cfg, err := currentConfig()
	if err != nil {
		return err
	}

	spec := newFlags.resolve(cmd, args, cfg)

	gen := pipeline.NewGenerator(pipeline.Options{
		Spec:             spec,
		Config:           cfg,
		SkipVersionCheck: newSkipVersionCheck || cfg.Initializr.SkipValidation,
	})

	result, err := gen.Run(cmd.Context())
	if err != nil {
		return oerrors.NewExitError(err, oerrors.ExitCodeFromError(err))
	}

	files := make(map[string]string, len(result.Files))
	for _, f := range result.Files {
		files[f.Path] = f.Description
	}

	output.Println(output.FormatCheckmark(fmt.Sprintf("Project %s created in %s",
		output.FormatNoun(spec.Name), output.FormatNoun(result.Layout.Root))))
	output.Println("")
	output.Print(output.RenderFileTree(spec.Name, files, nil))
	output.Println("")

	if rt := version.DetectDockerBinary(); !rt.Compatible {
		output.Warn("container runtime not ready", "reason", rt.Message)
	}

	output.Println("Next steps:")
	output.Println("  cd " + filepath.Clean(result.Layout.Root))
	output.Println("  docker compose up --build")

	return nil
}
