package scaffold

import (
	"github.com/bootstack/cli/internal/compose"
	"github.com/bootstack/cli/internal/output"
	"github.com/bootstack/cli/internal/project"
	"github.com/bootstack/cli/internal/templates"
)

const stepDescriptors = "descriptors"

// RenderContainerDescriptors renders both Dockerfiles and the compose file
// without writing them.
func RenderContainerDescriptors(layout project.Layout, data templates.Data) ([]GeneratedFile, error) {
	var files []GeneratedFile

	dirs := map[templates.Role]string{
		templates.RoleBackendDocker:  layout.BackendProject,
		templates.RoleFrontendDocker: layout.Frontend,
	}
	for _, t := range templates.ForGroup(templates.GroupDescriptor) {
		rendered, err := render(layout, dirs[t.Role], []templates.Template{t}, data)
		if err != nil {
			return nil, renderError(stepDescriptors, err)
		}
		files = append(files, rendered...)
	}

	content, err := compose.Build(data).Marshal()
	if err != nil {
		return nil, renderError(stepDescriptors, err)
	}
	files = append(files, GeneratedFile{
		Path:        layout.Rel(layout.ComposeFile),
		Content:     content,
		Description: "Orchestration (db, backend, frontend)",
	})
	return files, nil
}

// WriteContainerDescriptors renders and writes the Dockerfiles and the compose file.
func WriteContainerDescriptors(layout project.Layout, data templates.Data) ([]GeneratedFile, error) {
	files, err := RenderContainerDescriptors(layout, data)
	if err != nil {
		return nil, err
	}
	if err := WriteAll(layout, files, stepDescriptors); err != nil {
		return nil, err
	}

	output.StepLogger(stepDescriptors).Debug("container descriptors written", "count", len(files))
	return files, nil
}
