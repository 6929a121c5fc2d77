package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bootstack/cli/internal/config"
)

func TestNewConfigCmd(t *testing.T) {
	cmd := NewConfigCmd()

	assert.Equal(t, "config", cmd.Use)
	names := make([]string, 0)
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"init", "view"}, names)
}

func TestNewConfigInitCmd(t *testing.T) {
	cmd := NewConfigInitCmd()

	assert.Equal(t, "init", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	forceFlag := cmd.Flags().Lookup("force")
	require.NotNil(t, forceFlag)
	assert.Equal(t, "f", forceFlag.Shorthand)
	assert.Equal(t, "false", forceFlag.DefValue)
}

func TestConfigInit(t *testing.T) {
	isolate(t, nil)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	t.Setenv("BOOTSTACK_CONFIG", path)

	require.NoError(t, execute(NewConfigInitCmd()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	cfg, err := config.NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)

	t.Run("refuses to overwrite", func(t *testing.T) {
		err := execute(NewConfigInitCmd())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration already exists")
		assert.Contains(t, err.Error(), "--force")
	})

	t.Run("force overwrites", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("output:\n  base: /tmp\n"), 0o600))
		require.NoError(t, execute(NewConfigInitCmd(), "--force"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "base: "+config.DefaultOutputBase)
	})
}

func TestConfigView(t *testing.T) {
	isolate(t, nil)

	cmd := NewConfigViewCmd()
	assert.Equal(t, "view", cmd.Use)
	require.NoError(t, execute(cmd))
}
