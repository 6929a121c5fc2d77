package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/bootstack/cli/internal/errors"
	"github.com/bootstack/cli/internal/testutil"
)

func TestNewDiffCmd(t *testing.T) {
	cmd := NewDiffCmd()

	assert.Equal(t, "diff [name]", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.NotNil(t, cmd.Flags().Lookup("output"))
	assert.NotNil(t, cmd.Flags().Lookup("artifact"))
	assert.Nil(t, cmd.Flags().Lookup("skip-version-check"))
}

func TestDiff(t *testing.T) {
	p := testutil.NewFakeProvider(t)
	isolate(t, p)
	out := t.TempDir()
	require.NoError(t, execute(NewNewCmd(), "shop", "-o", out))

	t.Run("fresh project has no drift", func(t *testing.T) {
		require.NoError(t, execute(NewDiffCmd(), "shop", "-o", out))
	})

	t.Run("reformatted YAML is not drift", func(t *testing.T) {
		compose := filepath.Join(out, "shop", "docker-compose.yml")
		data, err := os.ReadFile(compose)
		require.NoError(t, err)
		t.Cleanup(func() { _ = os.WriteFile(compose, data, 0o644) })

		require.NoError(t, os.WriteFile(compose, append([]byte("# edited\n"), data...), 0o644))
		require.NoError(t, execute(NewDiffCmd(), "shop", "-o", out))
	})

	t.Run("modified descriptor is drift", func(t *testing.T) {
		dockerfile := filepath.Join(out, "shop", "shop_front", "Dockerfile")
		data, err := os.ReadFile(dockerfile)
		require.NoError(t, err)
		t.Cleanup(func() { _ = os.WriteFile(dockerfile, data, 0o644) })

		require.NoError(t, os.WriteFile(dockerfile, append(data, []byte("EXPOSE 8443\n")...), 0o644))

		err = execute(NewDiffCmd(), "shop", "-o", out)
		require.Error(t, err)
		assert.True(t, errors.Is(err, oerrors.ErrDrift))
		assert.Equal(t, oerrors.ExitValidationError, oerrors.ExitCodeFromError(err))

		var exitErr *oerrors.ExitError
		require.True(t, errors.As(err, &exitErr))
		assert.True(t, exitErr.Printed)
	})

	t.Run("missing profile is drift", func(t *testing.T) {
		profile := filepath.Join(out, "shop", "shop_back", "shop", "src", "main", "resources", "application-test.yml")
		require.NoError(t, os.Remove(profile))

		err := execute(NewDiffCmd(), "shop", "-o", out)
		require.Error(t, err)
		assert.True(t, errors.Is(err, oerrors.ErrDrift))
	})
}

func TestDiff_ProjectNotFound(t *testing.T) {
	isolate(t, nil)

	err := execute(NewDiffCmd(), "ghost", "-o", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitValidationError, oerrors.ExitCodeFromError(err))
	assert.Contains(t, err.Error(), "project not found")
}
