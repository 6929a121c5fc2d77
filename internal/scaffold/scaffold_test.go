package scaffold

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bootstack/cli/internal/compose"
	"github.com/bootstack/cli/internal/config"
	oerrors "github.com/bootstack/cli/internal/errors"
	"github.com/bootstack/cli/internal/output"
	"github.com/bootstack/cli/internal/project"
	"github.com/bootstack/cli/internal/templates"
)

func setup(t *testing.T) (project.Layout, templates.Data) {
	t.Helper()
	spec := project.Spec{
		Name:         "demo",
		BasePath:     t.TempDir(),
		BootVersion:  "3.3.5",
		JavaVersion:  "17",
		Dependencies: config.DefaultDependencies,
		GroupID:      "com.example",
		ArtifactID:   "demo",
		Packaging:    "jar",
	}
	layout, err := project.Plan(spec)
	require.NoError(t, err)
	require.NoError(t, layout.Create())
	require.NoError(t, os.MkdirAll(layout.BackendProject, 0o755))
	return layout, templates.NewData(spec, config.DefaultConfig())
}

func paths(files []GeneratedFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}

func TestSynthesizeBackend(t *testing.T) {
	layout, data := setup(t)

	files, err := SynthesizeBackend(layout, data)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"demo_back/demo/src/main/java/com/example/demo/api/TestController.java",
		"demo_back/demo/src/main/java/com/example/demo/config/SecurityConfig.java",
		"demo_back/demo/src/test/java/com/example/demo/api/TestControllerTests.java",
		"demo_back/demo/src/main/resources/application.yml",
		"demo_back/demo/src/main/resources/application-dev.yml",
		"demo_back/demo/src/main/resources/application-test.yml",
		"demo_back/demo/src/main/resources/application-prod.yml",
	}, paths(files))

	for _, f := range files {
		data, err := os.ReadFile(f.Abs(layout))
		require.NoError(t, err)
		assert.Equal(t, f.Content, data, f.Path)
	}
}

func TestSynthesizeBackend_Deterministic(t *testing.T) {
	layout, data := setup(t)

	first, err := RenderBackend(layout, data)
	require.NoError(t, err)
	second, err := RenderBackend(layout, data)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSynthesizeBackend_SkipsSecurityWithoutDependency(t *testing.T) {
	layout, data := setup(t)
	data.Dependencies = []string{"web", "data-jpa"}

	files, err := RenderBackend(layout, data)
	require.NoError(t, err)

	for _, p := range paths(files) {
		assert.NotContains(t, p, "SecurityConfig")
	}
}

func TestSynthesizeBackend_WarnsOnSkippedFiles(t *testing.T) {
	layout, data := setup(t)
	data.Dependencies = []string{"data-jpa", "postgresql"}

	var buf bytes.Buffer
	output.SetupLogging(output.LogConfig{Writer: &buf, Timestamps: output.BoolPtr(false)})
	t.Cleanup(func() { output.SetupLogging(output.LogConfig{}) })

	files, err := SynthesizeBackend(layout, data)
	require.NoError(t, err)

	for _, p := range paths(files) {
		assert.NotContains(t, p, ".java")
	}
	logged := buf.String()
	assert.Equal(t, 3, strings.Count(logged, "skipping backend file"))
	assert.Contains(t, logged, "missing_dependency=web")
	assert.Contains(t, logged, "missing_dependency=security")
}

func TestSynthesizeBackend_WriteFailure(t *testing.T) {
	layout, data := setup(t)
	// A regular file where the source tree should start.
	require.NoError(t, os.WriteFile(filepath.Join(layout.BackendProject, "src"), nil, 0o644))

	_, err := SynthesizeBackend(layout, data)

	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrFileWrite))
	var detail *oerrors.DetailError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, "synthesize", detail.Step)
}

func TestWriteContainerDescriptors(t *testing.T) {
	layout, data := setup(t)

	files, err := WriteContainerDescriptors(layout, data)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"demo_back/demo/Dockerfile",
		"demo_front/Dockerfile",
		"docker-compose.yml",
	}, paths(files))

	raw, err := os.ReadFile(layout.ComposeFile)
	require.NoError(t, err)
	f, err := compose.Parse(raw)
	require.NoError(t, err)
	assert.Len(t, f.Services, 3)
	assert.Equal(t, compose.ConditionHealthy, f.Services["backend"].DependsOn["db"].Condition)
}

// Ports and variable names in the compose file match the Dockerfiles and profiles.
func TestContainerDescriptors_CrossFileConsistency(t *testing.T) {
	layout, data := setup(t)

	descriptors, err := RenderContainerDescriptors(layout, data)
	require.NoError(t, err)
	backend, err := RenderBackend(layout, data)
	require.NoError(t, err)

	byPath := map[string]string{}
	for _, f := range append(descriptors, backend...) {
		byPath[f.Path] = string(f.Content)
	}

	assert.Contains(t, byPath["demo_back/demo/Dockerfile"], "EXPOSE 8080")
	assert.Contains(t, byPath["demo_front/Dockerfile"], "EXPOSE 80")
	assert.Contains(t, byPath["demo_back/demo/src/main/resources/application.yml"], "port: 8080")

	f, err := compose.Parse([]byte(byPath["docker-compose.yml"]))
	require.NoError(t, err)
	assert.Equal(t, []string{"8080:8080"}, f.Services["backend"].Ports)
	assert.Equal(t, []string{"80:80"}, f.Services["frontend"].Ports)

	profiles := byPath["demo_back/demo/src/main/resources/application.yml"] +
		byPath["demo_back/demo/src/main/resources/application-prod.yml"]
	ref := regexp.MustCompile(`\$\{([A-Z_]+)[}:]`)
	read := map[string]bool{}
	for _, m := range ref.FindAllStringSubmatch(profiles, -1) {
		read[m[1]] = true
	}
	for name := range f.Services["backend"].Environment {
		assert.True(t, read[name], "%s is not read by the prod configuration", name)
	}
}

func TestScaffoldFrontend(t *testing.T) {
	layout, data := setup(t)

	files, err := ScaffoldFrontend(layout, data)
	require.NoError(t, err)

	assert.Equal(t, []string{"demo_front/index.html", "demo_front/style.css", "demo_front/script.js"}, paths(files))
	assert.FileExists(t, filepath.Join(layout.Frontend, "index.html"))
}

func TestPatchScript(t *testing.T) {
	layout, data := setup(t)
	_, err := ScaffoldFrontend(layout, data)
	require.NoError(t, err)
	script := filepath.Join(layout.Frontend, ScriptFileName)

	require.NoError(t, PatchScript(script, "http://localhost:8080/"))

	content, err := os.ReadFile(script)
	require.NoError(t, err)
	assert.Equal(t, 0, strings.Count(string(content), "'/api/"))
	assert.Equal(t, 1, strings.Count(string(content), "http://localhost:8080/api/"))
	assert.Contains(t, string(content), "fetch('http://localhost:8080/api/test')")

	entries, err := os.ReadDir(layout.Frontend)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"index.html", "style.css", "script.js"}, names)
}

func TestPatchScript_Idempotent(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, ScriptFileName)
	require.NoError(t, os.WriteFile(script, []byte("fetch(\"/api/test\");\n"), 0o644))

	require.NoError(t, PatchScript(script, "http://api.example.com"))
	require.NoError(t, PatchScript(script, "http://api.example.com"))

	content, err := os.ReadFile(script)
	require.NoError(t, err)
	assert.Equal(t, "fetch(\"http://api.example.com/api/test\");\n", string(content))
}

func TestPatchScript_Failures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		url     string
	}{
		{"no endpoint reference", "console.log('hi');\n", "http://localhost:8080"},
		{"two endpoint references", "fetch('/api/a');\nfetch('/api/b');\n", "http://localhost:8080"},
		{"empty url", "fetch('/api/test');\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := filepath.Join(t.TempDir(), ScriptFileName)
			require.NoError(t, os.WriteFile(script, []byte(tt.content), 0o644))

			err := PatchScript(script, tt.url)

			require.Error(t, err)
			assert.True(t, errors.Is(err, oerrors.ErrPatch))
			assert.Equal(t, oerrors.ExitFilesystemError, oerrors.ExitCodeFromError(err))
		})
	}
}

func TestPatchScript_MissingFile(t *testing.T) {
	err := PatchScript(filepath.Join(t.TempDir(), ScriptFileName), "http://localhost:8080")

	assert.True(t, errors.Is(err, oerrors.ErrPatch))
}

func TestGeneratedFileWrite_RefusesEscape(t *testing.T) {
	layout, _ := setup(t)

	err := GeneratedFile{Path: "../outside.txt", Content: []byte("x")}.Write(layout, "test")

	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(filepath.Dir(layout.Root), "outside.txt"))
}
