package scaffold

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	oerrors "github.com/bootstack/cli/internal/errors"
	"github.com/bootstack/cli/internal/fsutil"
	"github.com/bootstack/cli/internal/output"
	"github.com/bootstack/cli/internal/project"
	"github.com/bootstack/cli/internal/templates"
)

const (
	stepFrontend = "frontend"
	stepPatch    = "patch"

	// ScriptFileName is the frontend script PatchScript rewrites.
	ScriptFileName = "script.js"

	apiPrefix = "/api/"
)

// relativeAPI matches a quoted relative endpoint reference.
var relativeAPI = regexp.MustCompile("(['\"`])" + regexp.QuoteMeta(apiPrefix))

// RenderFrontend renders the markup, stylesheet and script without writing them.
func RenderFrontend(layout project.Layout, data templates.Data) ([]GeneratedFile, error) {
	files, err := render(layout, layout.Frontend, templates.ForGroup(templates.GroupFrontend), data)
	if err != nil {
		return nil, renderError(stepFrontend, err)
	}
	return files, nil
}

// ScaffoldFrontend renders and writes the static site into the frontend directory.
func ScaffoldFrontend(layout project.Layout, data templates.Data) ([]GeneratedFile, error) {
	files, err := RenderFrontend(layout, data)
	if err != nil {
		return nil, err
	}
	if err := WriteAll(layout, files, stepFrontend); err != nil {
		return nil, err
	}

	output.StepLogger(stepFrontend).Debug("frontend files written", "count", len(files))
	return files, nil
}

// PatchScript rewrites quoted relative endpoint references in the script at
// path to publicURL, which a browser outside the service network can reach.
// The file is replaced atomically. Afterwards the script must hold no
// relative reference and exactly one absolute one, and no temp file may
// remain next to it.
func PatchScript(path, publicURL string) error {
	if publicURL == "" {
		return patchError(path, errors.New("public backend URL is empty"))
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return patchError(path, err)
	}

	absolute := strings.TrimRight(publicURL, "/") + apiPrefix
	patched := relativeAPI.ReplaceAll(content, []byte("${1}"+absolute))

	if err := fsutil.WriteFileAtomic(path, patched, 0o644); err != nil {
		return patchError(path, err)
	}

	return verifyPatch(path, absolute)
}

func verifyPatch(path, absolute string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return patchError(path, err)
	}
	if n := len(relativeAPI.FindAll(content, -1)); n != 0 {
		return patchError(path, fmt.Errorf("%d relative endpoint references remain", n))
	}
	if n := bytes.Count(content, []byte(absolute)); n != 1 {
		return patchError(path, fmt.Errorf("expected one reference to %s, found %d", absolute, n))
	}

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(path), fsutil.TempPattern))
	if err != nil {
		return patchError(path, err)
	}
	if len(leftovers) > 0 {
		return patchError(path, fmt.Errorf("temporary file %s remains", filepath.Base(leftovers[0])))
	}

	output.StepLogger(stepPatch).Debug("script patched", "endpoint", absolute)
	return nil
}

func patchError(path string, err error) error {
	return &oerrors.DetailError{
		Type:     "patch failed",
		Message:  err.Error(),
		Step:     stepPatch,
		Location: path,
		Cause:    errors.Join(oerrors.ErrPatch, err),
	}
}
