// Package drift compares an existing project with the descriptors a fresh
// generation would write.
package drift

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/bootstack/cli/internal/archive"
	"github.com/bootstack/cli/internal/project"
	"github.com/bootstack/cli/internal/scaffold"
	"github.com/bootstack/cli/internal/templates"
)

// Report lists the checked files that differ from a fresh render.
type Report struct {
	// Checked is the number of files compared.
	Checked int

	// Missing files exist in the render but not on disk.
	Missing []string

	// Modified files differ from the render.
	Modified []ModifiedFile
}

// ModifiedFile is one drifted file.
type ModifiedFile struct {
	// Path is relative to the project root.
	Path string

	// Diff is the rendered difference, on-disk first.
	Diff string
}

// HasDrift reports whether any checked file differs.
func (r *Report) HasDrift() bool {
	return len(r.Missing) > 0 || len(r.Modified) > 0
}

// Summary returns a one-line summary.
func (r *Report) Summary() string {
	if !r.HasDrift() {
		return fmt.Sprintf("No drift in %d files", r.Checked)
	}
	parts := make([]string, 0, 2)
	if len(r.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("%d missing", len(r.Missing)))
	}
	if len(r.Modified) > 0 {
		parts = append(parts, fmt.Sprintf("%d modified", len(r.Modified)))
	}
	return strings.Join(parts, ", ")
}

// Option configures Compare.
type Option func(*options)

type options struct {
	color bool
}

// WithColor enables styled YAML diffs.
func WithColor(enabled bool) Option {
	return func(o *options) { o.color = enabled }
}

// Compare renders the deterministic descriptors of a project (compose file,
// Dockerfiles, configuration profiles, ignore rules) and diffs each against
// the file on disk. YAML files get a structural diff.
func Compare(layout project.Layout, data templates.Data, opts ...Option) (*Report, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	desired, err := Desired(layout, data)
	if err != nil {
		return nil, err
	}

	report := &Report{Checked: len(desired)}
	for _, f := range desired {
		live, err := os.ReadFile(f.Abs(layout))
		if errors.Is(err, fs.ErrNotExist) {
			report.Missing = append(report.Missing, f.Path)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.Path, err)
		}
		if bytes.Equal(live, f.Content) {
			continue
		}

		diff, err := diffFile(f.Path, live, f.Content, o.color)
		if err != nil {
			return nil, err
		}
		// YAML that differs only in formatting has no structural diff.
		if diff == "" {
			continue
		}
		report.Modified = append(report.Modified, ModifiedFile{Path: f.Path, Diff: diff})
	}
	return report, nil
}

// Desired returns the files Compare checks, rendered in memory.
func Desired(layout project.Layout, data templates.Data) ([]scaffold.GeneratedFile, error) {
	descriptors, err := scaffold.RenderContainerDescriptors(layout, data)
	if err != nil {
		return nil, err
	}
	backend, err := scaffold.RenderBackend(layout, data)
	if err != nil {
		return nil, err
	}

	files := descriptors
	for _, f := range backend {
		if isYAML(f.Path) {
			files = append(files, f)
		}
	}
	files = append(files, scaffold.GeneratedFile{
		Path:    path.Join(layout.Rel(layout.BackendProject), archive.IgnoreFileName),
		Content: []byte(archive.IgnoreRules),
	})
	return files, nil
}

func isYAML(p string) bool {
	return strings.HasSuffix(p, ".yml") || strings.HasSuffix(p, ".yaml")
}

func diffFile(name string, live, desired []byte, color bool) (string, error) {
	if isYAML(name) {
		diff, err := diffYAML(live, desired, color)
		if err == nil {
			return diff, nil
		}
		// Unparsable YAML on disk falls back to a line diff.
	}
	return diffLines(live, desired), nil
}

// diffLines renders changed lines only: "-" for on-disk, "+" for desired.
func diffLines(live, desired []byte) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(live), string(desired))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		default:
			continue
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			sb.WriteString(prefix)
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return strings.TrimSpace(sb.String())
}

func diffYAML(live, desired []byte, color bool) (string, error) {
	liveInput, err := parseYAMLInput("live", live)
	if err != nil {
		return "", fmt.Errorf("parsing live YAML: %w", err)
	}
	desiredInput, err := parseYAMLInput("desired", desired)
	if err != nil {
		return "", fmt.Errorf("parsing desired YAML: %w", err)
	}

	report, err := dyff.CompareInputFiles(liveInput, desiredInput)
	if err != nil {
		return "", fmt.Errorf("comparing YAML: %w", err)
	}
	if len(report.Diffs) == 0 {
		return "", nil
	}
	return renderReport(report, color)
}

func parseYAMLInput(name string, data []byte) (ytbx.InputFile, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ytbx.InputFile{Location: name}, nil
	}

	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}
	return ytbx.InputFile{Location: name, Documents: docs}, nil
}

func renderReport(report dyff.Report, color bool) (string, error) {
	var buf bytes.Buffer

	w := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      !color,
		OmitHeader:        true,
	}
	if err := w.WriteReport(io.Writer(&buf)); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
