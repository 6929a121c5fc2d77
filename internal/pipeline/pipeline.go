// Package pipeline runs the project assembly steps in order and stops at
// the first failure.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bootstack/cli/internal/archive"
	"github.com/bootstack/cli/internal/config"
	oerrors "github.com/bootstack/cli/internal/errors"
	"github.com/bootstack/cli/internal/initializr"
	"github.com/bootstack/cli/internal/output"
	"github.com/bootstack/cli/internal/project"
	"github.com/bootstack/cli/internal/scaffold"
	"github.com/bootstack/cli/internal/templates"
	"github.com/bootstack/cli/internal/version"
)

// Options configures a generation run.
type Options struct {
	// Spec is the validated-on-run project input.
	Spec project.Spec

	// Config supplies provider, backend and database settings.
	Config *config.Config

	// Client overrides the provider client built from Config.
	Client *initializr.Client

	// SkipVersionCheck skips the revision check.
	SkipVersionCheck bool

	// GOOS overrides the detected host platform.
	GOOS string
}

// Result describes a successful run.
type Result struct {
	Layout project.Layout

	// Files lists every file the run wrote itself, in write order.
	// Extracted provider files are not included.
	Files []scaffold.GeneratedFile

	// Validation is the revision check outcome.
	Validation initializr.Validation

	// Warnings are non-fatal conditions met during the run.
	Warnings []string
}

// Generator runs the assembly pipeline for one project.
type Generator struct {
	opts   Options
	client *initializr.Client
}

// NewGenerator creates a generator. A nil Config means defaults.
func NewGenerator(opts Options) *Generator {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	client := opts.Client
	if client == nil {
		client = NewClient(opts.Config)
	}
	return &Generator{opts: opts, client: client}
}

// NewClient builds a provider client from configuration.
func NewClient(cfg *config.Config) *initializr.Client {
	metadataURL := cfg.Initializr.MetadataURL
	if cfg.Initializr.SkipValidation {
		metadataURL = ""
	}
	return initializr.NewClient(initializr.Config{
		URL:             cfg.Initializr.URL,
		MetadataURL:     metadataURL,
		Type:            cfg.Initializr.Type,
		Language:        cfg.Initializr.Language,
		Timeout:         cfg.Initializr.Timeout,
		MetadataTimeout: cfg.Initializr.MetadataTimeout,
		UserAgent:       version.GetInfo().UserAgent(),
	})
}

// Run executes the pipeline.
//
// Step sequence:
//  1. VALIDATE:    host platform, then Spec.Validate
//  2. PLAN:        project.Plan; an existing root fails before any write
//  3. VERSION:     revision check; Invalid is fatal, Unknown only warns
//  4. LAYOUT:      Layout.Create
//  5. FETCH:       download the provider archive to a temp file
//  6. INSTALL:     extract, remove provider artifacts, write ignore rules
//  7. SYNTHESIZE:  backend sources and profiles
//  8. DESCRIPTORS: Dockerfiles and the compose file
//  9. FRONTEND:    markup, stylesheet and script
//  10. PATCH:      point the script at the public backend URL
//
// Failures from step 4 onwards leave the project root in place and say so
// in the error hint.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	spec := g.opts.Spec
	cfg := g.opts.Config

	if err := checkPlatform(g.opts.GOOS, cfg.Platforms); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	layout, err := project.Plan(spec)
	if err != nil {
		return nil, err
	}

	result := &Result{Layout: layout}

	if err := g.checkVersion(ctx, result); err != nil {
		return nil, err
	}

	output.StepLogger("layout").Info("creating project", "root", layout.Root)
	if err := layout.Create(); err != nil {
		return nil, err
	}

	if err := g.assemble(ctx, layout, result); err != nil {
		return nil, withRootHint(err, layout.Root)
	}
	return result, nil
}

func (g *Generator) checkVersion(ctx context.Context, result *Result) error {
	log := output.StepLogger("version")
	rev := g.opts.Spec.BootVersion

	if g.opts.SkipVersionCheck {
		log.Debug("revision check skipped", "revision", rev)
		result.Validation = initializr.Validation{Status: initializr.Unknown, Reason: "skipped"}
		return nil
	}

	v := g.client.ValidateVersion(ctx, rev)
	result.Validation = v
	switch v.Status {
	case initializr.Valid:
		log.Debug("revision offered", "revision", rev)
	case initializr.Invalid:
		return versionError(rev, v)
	default:
		warn := oerrors.Wrap(oerrors.ErrVersionUnknown, fmt.Sprintf("could not check revision %s (%s)", rev, v.Reason))
		log.Warn("could not check revision", "revision", rev, "reason", v.Reason)
		result.Warnings = append(result.Warnings, warn.Error())
	}
	return nil
}

func (g *Generator) assemble(ctx context.Context, layout project.Layout, result *Result) error {
	spec := g.opts.Spec
	data := templates.NewData(spec, g.opts.Config)

	output.StepLogger("fetch").Info("downloading template", "revision", spec.BootVersion)
	var archivePath string
	err := output.RunWithSpinner(ctx, func(ctx context.Context) error {
		var fetchErr error
		archivePath, fetchErr = g.client.Fetch(ctx, spec)
		return fetchErr
	}, output.WithTitle("Downloading template..."))
	if err != nil {
		return err
	}
	defer os.Remove(archivePath)

	output.StepLogger("install").Info("extracting template", "dest", layout.Rel(layout.Backend))
	if err := archive.Install(archivePath, layout.Backend); err != nil {
		return err
	}
	if info, err := os.Stat(layout.BackendProject); err != nil || !info.IsDir() {
		return &oerrors.DetailError{
			Type:     "extraction failed",
			Message:  fmt.Sprintf("archive has no %s/ directory", spec.ArtifactID),
			Step:     "install",
			Location: layout.BackendProject,
			Cause:    oerrors.ErrExtraction,
		}
	}
	if err := archive.Clean(layout.BackendProject, archive.DefaultRemovals(spec)); err != nil {
		return err
	}
	if err := archive.WriteIgnoreRules(layout.BackendProject); err != nil {
		return err
	}
	result.Files = append(result.Files, scaffold.GeneratedFile{
		Path:        layout.Rel(filepath.Join(layout.BackendProject, archive.IgnoreFileName)),
		Content:     []byte(archive.IgnoreRules),
		Description: "Ignore rules",
	})

	steps := []struct {
		name string
		run  func(project.Layout, templates.Data) ([]scaffold.GeneratedFile, error)
	}{
		{"synthesize", scaffold.SynthesizeBackend},
		{"descriptors", scaffold.WriteContainerDescriptors},
		{"frontend", scaffold.ScaffoldFrontend},
	}
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
		output.StepLogger(s.name).Info("writing files")
		files, err := s.run(layout, data)
		if err != nil {
			return err
		}
		result.Files = append(result.Files, files...)
	}

	output.StepLogger("patch").Info("pointing frontend at backend", "url", data.PublicURL)
	script := filepath.Join(layout.Frontend, scaffold.ScriptFileName)
	if err := scaffold.PatchScript(script, data.PublicURL); err != nil {
		return err
	}
	for i := range result.Files {
		if result.Files[i].Path == layout.Rel(script) {
			patched, err := os.ReadFile(script)
			if err != nil {
				return errors.Join(oerrors.ErrPatch, err)
			}
			result.Files[i].Content = patched
		}
	}
	return nil
}
