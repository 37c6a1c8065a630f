package xdg

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapter_ConfigPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("XDG_CONFIG_HOME", home)

	adapter := New()

	dir, err := adapter.ConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "urlkit"), dir)

	file, err := adapter.ConfigFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "urlkit", "config.toml"), file)
}

func TestAdapter_ManDir(t *testing.T) {
	adapter := New()

	t.Run("uses XDG_DATA_HOME when set", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", "/custom/share")

		dir, err := adapter.ManDir()

		require.NoError(t, err)
		assert.Equal(t, "/custom/share/man/man1", dir)
	})

	t.Run("falls back to ~/.local/share", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("XDG_DATA_HOME", "")

		dir, err := adapter.ManDir()

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".local", "share", "man", "man1"), dir)
	})
}

func TestNew(t *testing.T) {
	adapter := New()

	assert.NotNil(t, adapter)
}
