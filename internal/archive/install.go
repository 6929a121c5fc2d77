// Package archive installs the provider archive into the backend directory
// and removes the provider artifacts the generated project does not ship.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	oerrors "github.com/bootstack/cli/internal/errors"
	"github.com/bootstack/cli/internal/fsutil"
	"github.com/bootstack/cli/internal/output"
)

// Install extracts the zip archive at archivePath into backendRoot.
// Entries that would land outside backendRoot abort the extraction.
func Install(archivePath, backendRoot string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		if r != nil {
			r.Close()
		}
		return extractionError(archivePath, "opening archive", err)
	}
	defer r.Close()

	root, err := filepath.Abs(backendRoot)
	if err != nil {
		return extractionError(backendRoot, "resolving destination", err)
	}

	log := output.StepLogger("install")
	count := 0
	for _, f := range r.File {
		target := filepath.Join(root, filepath.FromSlash(f.Name))
		if !fsutil.Within(root, target) {
			return extractionError(f.Name, "archive entry escapes destination", errors.New("illegal path"))
		}

		if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return extractionError(target, "creating directory", err)
			}
			continue
		}

		if err := extractFile(f, target); err != nil {
			return extractionError(target, "writing entry", err)
		}
		count++
	}

	log.Debug("archive extracted", "files", count, "dest", backendRoot)
	return nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}

	_, copyErr := io.Copy(dst, src)
	return errors.Join(copyErr, dst.Close())
}

func extractionError(location, msg string, err error) error {
	return &oerrors.DetailError{
		Type:     "extraction failed",
		Message:  fmt.Sprintf("%s: %v", msg, err),
		Step:     "install",
		Location: location,
		Cause:    errors.Join(oerrors.ErrExtraction, err),
	}
}
