package archive

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	oerrors "github.com/bootstack/cli/internal/errors"
	"github.com/bootstack/cli/internal/output"
	"github.com/bootstack/cli/internal/project"
)

// removeAll is replaced in tests.
var removeAll = os.RemoveAll

// Removal is one provider artifact to delete from the backend project.
// A missing path is never an error. Other failures abort Clean only when
// Required is set; optional failures are logged.
type Removal struct {
	// Path is relative to the backend project directory, slash-separated.
	Path string

	// Required makes a removal failure fatal.
	Required bool
}

// DefaultRemovals lists the provider artifacts dropped from every project:
// build-tool wrappers, contributor metadata, the help document, the
// placeholder test and the properties file replaced by YAML profiles.
func DefaultRemovals(spec project.Spec) []Removal {
	testPath := filepath.ToSlash(filepath.Join(
		"src/test/java",
		project.NamespacePath(spec.PackageName()),
		spec.ApplicationClass()+"Tests.java",
	))
	return []Removal{
		{Path: "mvnw"},
		{Path: "mvnw.cmd"},
		{Path: ".mvn"},
		{Path: ".gitattributes"},
		{Path: "HELP.md"},
		{Path: testPath, Required: true},
		{Path: "src/main/resources/application.properties", Required: true},
	}
}

// Clean applies removals under projectPath. Each removal is independent,
// so running Clean twice leaves the same tree as running it once.
func Clean(projectPath string, removals []Removal) error {
	log := output.StepLogger("clean")

	for _, r := range removals {
		target := filepath.Join(projectPath, filepath.FromSlash(r.Path))

		err := removeAll(target)
		if err == nil {
			log.Debug("removed", "path", r.Path)
			continue
		}
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if !r.Required {
			log.Warn("could not remove provider artifact", "path", r.Path, "err", err)
			continue
		}
		return &oerrors.DetailError{
			Type:     "file write failed",
			Message:  fmt.Sprintf("removing %s: %v", r.Path, err),
			Step:     "clean",
			Location: target,
			Cause:    errors.Join(oerrors.ErrFileWrite, err),
		}
	}
	return nil
}
