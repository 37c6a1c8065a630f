package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/bnema/urlkit/internal/application/port"
)

// Adapter implements port.PathResolver using the OS filesystem.
type Adapter struct{}

// New creates a new filesystem adapter.
func New() *Adapter {
	return &Adapter{}
}

// RealPath makes p absolute against the working directory and resolves
// symlinks. A missing path yields port.ErrPathNotFound.
func (a *Adapter) RealPath(ctx context.Context, p string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("abs %q: %w", p, err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", p, port.ErrPathNotFound)
		}
		return "", fmt.Errorf("eval symlinks %q: %w", abs, err)
	}
	return resolved, nil
}

var _ port.PathResolver = (*Adapter)(nil)
