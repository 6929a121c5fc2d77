package scaffold

import (
	"fmt"

	"sigs.k8s.io/yaml"

	"github.com/bootstack/cli/internal/output"
	"github.com/bootstack/cli/internal/project"
	"github.com/bootstack/cli/internal/templates"
)

const stepSynthesize = "synthesize"

// RenderBackend renders the backend sources and configuration profiles
// without writing them. Sources whose provider dependency is absent are
// skipped. Each profile must be well-formed YAML.
func RenderBackend(layout project.Layout, data templates.Data) ([]GeneratedFile, error) {
	ts := templates.Filter(templates.ForGroup(templates.GroupBackend), data.Dependencies)
	files, err := render(layout, layout.BackendProject, ts, data)
	if err != nil {
		return nil, renderError(stepSynthesize, err)
	}

	for i, t := range ts {
		if !t.Profile {
			continue
		}
		if _, err := yaml.YAMLToJSON(files[i].Content); err != nil {
			return nil, renderError(stepSynthesize, fmt.Errorf("profile %s is not valid YAML: %w", files[i].Path, err))
		}
	}
	return files, nil
}

// SynthesizeBackend renders and writes the backend files under the backend project.
func SynthesizeBackend(layout project.Layout, data templates.Data) ([]GeneratedFile, error) {
	files, err := RenderBackend(layout, data)
	if err != nil {
		return nil, err
	}
	if err := WriteAll(layout, files, stepSynthesize); err != nil {
		return nil, err
	}

	log := output.StepLogger(stepSynthesize)
	for _, t := range templates.Skipped(templates.ForGroup(templates.GroupBackend), data.Dependencies) {
		log.Warn("skipping backend file", "file", t.Description, "missing_dependency", t.Requires)
	}
	log.Debug("backend files written", "count", len(files))
	return files, nil
}
