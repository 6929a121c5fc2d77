package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bootstack/cli/internal/config"
	oerrors "github.com/bootstack/cli/internal/errors"
)

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	assert.Equal(t, "bootstack", cmd.Use)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)

	for _, name := range []string{"config", "verbose", "timestamps"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}

	names := make([]string, 0)
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Subset(t, names, []string{"new", "diff", "versions", "config", "version"})
}

func TestRoot_LoadsConfigFile(t *testing.T) {
	isolate(t, nil)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  base: /srv/projects\nlog:\n  timestamps: false\n"), 0o600))

	require.NoError(t, execute(NewRootCmd(), "--config", path, "config", "view"))

	require.NotNil(t, loadedConfig)
	assert.Equal(t, "/srv/projects", loadedConfig.Output.Base)
	require.NotNil(t, loadedConfig.Log.Timestamps)
	assert.False(t, *loadedConfig.Log.Timestamps)
}

func TestRoot_InvalidConfigFile(t *testing.T) {
	isolate(t, nil)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend:\n  port: 0\n"), 0o600))

	t.Run("commands without config still run", func(t *testing.T) {
		require.NoError(t, execute(NewRootCmd(), "--config", path, "version"))
		assert.Nil(t, loadedConfig)
	})

	t.Run("commands that need config report it", func(t *testing.T) {
		err := execute(NewRootCmd(), "--config", path, "config", "view")
		require.Error(t, err)
		assert.Equal(t, oerrors.ExitValidationError, oerrors.ExitCodeFromError(err))
		assert.Contains(t, err.Error(), "configuration invalid")
		assert.Contains(t, err.Error(), "config init --force")
	})

	t.Run("config init --force repairs the file", func(t *testing.T) {
		require.NoError(t, execute(NewRootCmd(), "--config", path, "config", "init", "--force"))
		require.NoError(t, execute(NewRootCmd(), "--config", path, "config", "view"))
		require.NotNil(t, loadedConfig)
		assert.Equal(t, config.DefaultBackendPort, loadedConfig.Backend.Port)
	})
}

func TestRoot_UnparsableConfigFile(t *testing.T) {
	isolate(t, nil)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: [unclosed\n"), 0o600))

	err := execute(NewRootCmd(), "--config", path, "config", "view")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitValidationError, oerrors.ExitCodeFromError(err))
}
