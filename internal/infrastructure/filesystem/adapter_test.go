package filesystem

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/urlkit/internal/application/port"
)

func TestAdapter_RealPath(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	require.NoError(t, os.Mkdir(target, 0o755))

	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(target, link))

	want, err := filepath.EvalSymlinks(target)
	require.NoError(t, err)

	a := New()
	ctx := context.Background()

	got, err := a.RealPath(ctx, filepath.Join(link, "..", "target", "."))
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = a.RealPath(ctx, link)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = a.RealPath(ctx, filepath.Join(dir, "missing"))
	assert.True(t, errors.Is(err, port.ErrPathNotFound))
}

func TestAdapter_RealPathCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().RealPath(ctx, ".")
	assert.ErrorIs(t, err, context.Canceled)
}
