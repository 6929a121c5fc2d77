package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	oerrors "github.com/bootstack/cli/internal/errors"
)

const (
	backendSuffix  = "_back"
	frontendSuffix = "_front"

	// ComposeFileName is the orchestration descriptor file name in the project root.
	ComposeFileName = "docker-compose.yml"
)

// BackendDirName is the backend service directory for a project name.
func BackendDirName(name string) string { return name + backendSuffix }

// FrontendDirName is the frontend service directory for a project name.
func FrontendDirName(name string) string { return name + frontendSuffix }

// Layout is the directory tree of one generated project. All paths are
// inside Root.
type Layout struct {
	// Root is <base>/<name>.
	Root string

	// Backend is <root>/<name>_back; the archive is extracted here.
	Backend string

	// BackendProject is <backend>/<artifact>, the provider's base directory.
	BackendProject string

	// Frontend is <root>/<name>_front.
	Frontend string

	// ComposeFile is <root>/docker-compose.yml.
	ComposeFile string

	// PackagePath is the package name as a relative path (com/example/demo).
	PackagePath string
}

// Compute derives the layout without touching the filesystem.
func Compute(spec Spec) Layout {
	root := filepath.Join(spec.BasePath, spec.Name)
	backend := filepath.Join(root, BackendDirName(spec.Name))
	return Layout{
		Root:           root,
		Backend:        backend,
		BackendProject: filepath.Join(backend, spec.ArtifactID),
		Frontend:       filepath.Join(root, FrontendDirName(spec.Name)),
		ComposeFile:    filepath.Join(root, ComposeFileName),
		PackagePath:    NamespacePath(spec.PackageName()),
	}
}

// Plan computes the layout and fails closed if the project root already
// exists. Plan never modifies the filesystem.
func Plan(spec Spec) (Layout, error) {
	l := Compute(spec)

	_, err := os.Lstat(l.Root)
	switch {
	case err == nil:
		return Layout{}, &oerrors.DetailError{
			Type:     "target already exists",
			Message:  fmt.Sprintf("project directory %s already exists", l.Root),
			Step:     "plan",
			Location: l.Root,
			Hint:     "Choose a different project name or remove the existing directory.",
			Cause:    oerrors.ErrTargetExists,
		}
	case !errors.Is(err, fs.ErrNotExist):
		return Layout{}, &oerrors.DetailError{
			Type:     "directory creation failed",
			Message:  fmt.Sprintf("checking project directory: %v", err),
			Step:     "plan",
			Location: l.Root,
			Cause:    errors.Join(oerrors.ErrDirectoryCreate, err),
		}
	}

	return l, nil
}

// Create makes the project root, then the backend and frontend directories.
// The root is created with a non-recursive Mkdir so a concurrently created
// root is reported as ErrTargetExists. If a service directory cannot be
// created the root is left behind and the error names the failed path.
func (l Layout) Create() error {
	if err := os.MkdirAll(filepath.Dir(l.Root), 0o755); err != nil {
		return mkdirError(filepath.Dir(l.Root), err)
	}
	if err := os.Mkdir(l.Root, 0o755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return &oerrors.DetailError{
				Type:     "target already exists",
				Message:  fmt.Sprintf("project directory %s already exists", l.Root),
				Step:     "layout",
				Location: l.Root,
				Cause:    oerrors.ErrTargetExists,
			}
		}
		return mkdirError(l.Root, err)
	}
	for _, dir := range []string{l.Backend, l.Frontend} {
		if err := os.Mkdir(dir, 0o755); err != nil {
			e := mkdirError(dir, err)
			e.Hint = fmt.Sprintf("Remove %s before retrying.", l.Root)
			return e
		}
	}
	return nil
}

// Rel returns path relative to the project root, slash-separated.
func (l Layout) Rel(path string) string {
	rel, err := filepath.Rel(l.Root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func mkdirError(dir string, err error) *oerrors.DetailError {
	return &oerrors.DetailError{
		Type:     "directory creation failed",
		Message:  err.Error(),
		Step:     "layout",
		Location: dir,
		Cause:    errors.Join(oerrors.ErrDirectoryCreate, err),
	}
}
