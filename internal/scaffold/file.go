// Package scaffold renders and writes the files a generation run adds to
// the project: backend sources and profiles, container descriptors and the
// static frontend.
package scaffold

import (
	"errors"
	"fmt"
	"path/filepath"

	oerrors "github.com/bootstack/cli/internal/errors"
	"github.com/bootstack/cli/internal/fsutil"
	"github.com/bootstack/cli/internal/project"
	"github.com/bootstack/cli/internal/templates"
)

// GeneratedFile is rendered content bound to a path in the project.
type GeneratedFile struct {
	// Path is relative to the project root, slash-separated.
	Path string

	Content []byte

	// Description is shown next to the file in the generated tree.
	Description string
}

// Abs returns the file's location on disk for layout.
func (f GeneratedFile) Abs(layout project.Layout) string {
	return filepath.Join(layout.Root, filepath.FromSlash(f.Path))
}

// Write stores f under layout, creating parent directories as needed.
func (f GeneratedFile) Write(layout project.Layout, step string) error {
	target := f.Abs(layout)
	if !fsutil.Within(layout.Root, target) {
		return writeError(step, target, errors.New("path escapes project root"))
	}
	if err := fsutil.WriteFile(target, f.Content, 0o644); err != nil {
		return writeError(step, target, err)
	}
	return nil
}

// WriteAll writes files in order and stops at the first failure.
func WriteAll(layout project.Layout, files []GeneratedFile, step string) error {
	for _, f := range files {
		if err := f.Write(layout, step); err != nil {
			return err
		}
	}
	return nil
}

// render renders ts and places each result under dir.
func render(layout project.Layout, dir string, ts []templates.Template, data templates.Data) ([]GeneratedFile, error) {
	files := make([]GeneratedFile, 0, len(ts))
	for _, t := range ts {
		content, err := templates.RenderTemplate(t, data)
		if err != nil {
			return nil, err
		}
		abs := filepath.Join(dir, filepath.FromSlash(t.TargetPath(data)))
		files = append(files, GeneratedFile{
			Path:        layout.Rel(abs),
			Content:     content,
			Description: t.Description,
		})
	}
	return files, nil
}

func writeError(step, location string, err error) error {
	return &oerrors.DetailError{
		Type:     "file write failed",
		Message:  err.Error(),
		Step:     step,
		Location: location,
		Cause:    errors.Join(oerrors.ErrFileWrite, err),
	}
}

func renderError(step string, err error) error {
	return &oerrors.DetailError{
		Type:    "file write failed",
		Message: fmt.Sprintf("rendering: %v", err),
		Step:    step,
		Cause:   errors.Join(oerrors.ErrFileWrite, err),
	}
}
