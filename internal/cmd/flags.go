package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/bootstack/cli/internal/config"
	"github.com/bootstack/cli/internal/project"
)

// specFlags are the project flags shared by new and diff.
type specFlags struct {
	output       string
	bootVersion  string
	javaVersion  string
	group        string
	artifact     string
	dependencies string
	packaging    string
}

func (f *specFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "",
		"Directory the project root is created in (env: BOOTSTACK_OUTPUT_BASE)")
	cmd.Flags().StringVar(&f.bootVersion, "boot-version", "",
		"Template revision requested from the provider")
	cmd.Flags().StringVar(&f.javaVersion, "java-version", "",
		"Java runtime version of the backend")
	cmd.Flags().StringVar(&f.group, "group", "",
		"Dotted namespace identifier (e.g. com.example)")
	cmd.Flags().StringVar(&f.artifact, "artifact", "",
		"Backend artifact id (default: the project name)")
	cmd.Flags().StringVar(&f.dependencies, "dependencies", "",
		"Comma-separated provider dependencies")
	cmd.Flags().StringVar(&f.packaging, "packaging", "",
		"Artifact packaging: jar, war")
}

// resolve builds the project spec from args, flags, environment and config.
func (f *specFlags) resolve(cmd *cobra.Command, args []string, cfg *config.Config) project.Spec {
	changed := cmd.Flags().Changed

	name := config.ResolveProjectName(config.ResolveProjectNameOptions{
		Args:        args,
		ConfigValue: cfg.Project.Name,
	})
	base := config.ResolveFlag("output.base", f.output, changed("output"),
		cfg.Output.Base, config.DefaultOutputBase)
	boot := config.ResolveFlag("project.bootVersion", f.bootVersion, changed("boot-version"),
		cfg.Project.BootVersion, config.DefaultBootVersion)
	java := config.ResolveFlag("project.javaVersion", f.javaVersion, changed("java-version"),
		cfg.Project.JavaVersion, config.DefaultJavaVersion)
	group := config.ResolveFlag("project.groupId", f.group, changed("group"),
		cfg.Project.GroupID, config.DefaultGroupID)
	artifact := config.ResolveFlag("project.artifactId", f.artifact, changed("artifact"),
		cfg.Project.ArtifactID, name.Value)
	packaging := config.ResolveFlag("project.packaging", f.packaging, changed("packaging"),
		cfg.Project.Packaging, config.DefaultPackaging)
	deps := config.ResolveFlag("project.dependencies", f.dependencies, changed("dependencies"),
		strings.Join(cfg.Project.Dependencies, ","), strings.Join(config.DefaultDependencies, ","))

	config.LogResolvedValues([]config.ResolvedValue{name, base, boot, java, group, artifact, packaging, deps})

	return project.Spec{
		Name:         name.Value,
		BasePath:     base.Value,
		BootVersion:  boot.Value,
		JavaVersion:  java.Value,
		Dependencies: splitList(deps.Value),
		GroupID:      group.Value,
		ArtifactID:   artifact.Value,
		Packaging:    packaging.Value,
	}
}

// splitList splits a comma-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
