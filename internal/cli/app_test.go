package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/urlkit/internal/domain/entity"
	"github.com/bnema/urlkit/internal/infrastructure/config"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	p := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestNewApp(t *testing.T) {
	t.Run("explicit file", func(t *testing.T) {
		t.Chdir(t.TempDir())
		p := writeConfig(t, t.TempDir(), "[batch]\nworkers = 3\n\n[output]\njson = true\n")

		app, err := NewApp(context.Background(), Options{ConfigFile: p, Out: &bytes.Buffer{}, LogOutput: &bytes.Buffer{}})
		require.NoError(t, err)
		assert.Equal(t, p, app.ConfigFile)
		assert.Equal(t, 3, app.Config.Batch.Workers)
		assert.True(t, app.Config.Output.JSON)
		assert.NotNil(t, app.Renderer)
		assert.NotNil(t, app.ResolvePathUC)
		assert.NotNil(t, app.ResolveURLsUC)
		assert.NotNil(t, app.CheckCanonicalUC)
		assert.NotNil(t, app.DedupeURLsUC)
		assert.NotNil(t, app.Ctx())
	})

	t.Run("invalid explicit file fails", func(t *testing.T) {
		t.Chdir(t.TempDir())
		p := writeConfig(t, t.TempDir(), "[logging]\nlevel = \"loud\"\n")

		_, err := NewApp(context.Background(), Options{ConfigFile: p, Out: &bytes.Buffer{}, LogOutput: &bytes.Buffer{}})
		assert.ErrorIs(t, err, entity.ErrConfiguration)
	})

	t.Run("invalid xdg file falls back to defaults", func(t *testing.T) {
		xdg := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", xdg)
		t.Chdir(t.TempDir())
		writeConfig(t, filepath.Join(xdg, "urlkit"), "[batch]\nworkers = -1\n")

		var logs bytes.Buffer
		app, err := NewApp(context.Background(), Options{Out: &bytes.Buffer{}, LogOutput: &logs})
		require.NoError(t, err)
		assert.Equal(t, config.DefaultConfig(), app.Config)
		assert.Contains(t, logs.String(), "using defaults")
	})
}
