package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	assert.NotNil(t, loader)
	assert.NotNil(t, loader.v)
}

func TestLoaderLoad(t *testing.T) {
	t.Run("returns defaults for missing file", func(t *testing.T) {
		cfg, err := NewLoader().Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))

		require.NoError(t, err)
		assert.Equal(t, DefaultOutputBase, cfg.Output.Base)
		assert.Equal(t, DefaultGroupID, cfg.Project.GroupID)
		assert.Equal(t, DefaultBootVersion, cfg.Project.BootVersion)
		assert.Equal(t, DefaultDependencies, cfg.Project.Dependencies)
		assert.Equal(t, DefaultTimeout, cfg.Initializr.Timeout)
		assert.Equal(t, DefaultMetadataTimeout, cfg.Initializr.MetadataTimeout)
		assert.Equal(t, DefaultBackendPort, cfg.Backend.Port)
		assert.Equal(t, []string{"linux", "darwin"}, cfg.Platforms)
	})

	t.Run("loads config from file", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "config.yaml")
		content := `
output:
  base: /srv/projects
project:
  groupId: org.acme
  javaVersion: "21"
  dependencies: [web, postgresql]
initializr:
  timeout: 90s
backend:
  publicUrl: http://api.local:8080
`
		require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))

		cfg, err := NewLoader().Load(configFile)

		require.NoError(t, err)
		assert.Equal(t, "/srv/projects", cfg.Output.Base)
		assert.Equal(t, "org.acme", cfg.Project.GroupID)
		assert.Equal(t, "21", cfg.Project.JavaVersion)
		assert.Equal(t, []string{"web", "postgresql"}, cfg.Project.Dependencies)
		assert.Equal(t, 90*time.Second, cfg.Initializr.Timeout)
		assert.Equal(t, "http://api.local:8080", cfg.Backend.PublicURL)
		assert.Equal(t, DefaultPackaging, cfg.Project.Packaging, "unset keys keep defaults")
	})

	t.Run("env vars override file values", func(t *testing.T) {
		t.Setenv("BOOTSTACK_OUTPUT_BASE", "/env/out")

		configFile := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("output:\n  base: /file/out\n"), 0o644))

		cfg, err := NewLoader().Load(configFile)

		require.NoError(t, err)
		assert.Equal(t, "/env/out", cfg.Output.Base)
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("backend:\n  port: 70000\n"), 0o644))

		_, err := NewLoader().Load(configFile)

		require.Error(t, err)
		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "backend.port", verrs[0].Field)
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("output: [unterminated"), 0o644))

		_, err := NewLoader().Load(configFile)
		assert.Error(t, err)
	})
}

func TestConfigFileExists(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(present, []byte(""), 0o644))

	ok, err := ConfigFileExists(present)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ConfigFileExists(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.False(t, ok)
}
