package port

import (
	"context"
	"errors"
)

//go:generate mockgen -source=path_resolver.go -destination=mocks/mock_path_resolver.go -package=mocks

// ErrPathNotFound is returned by a PathResolver when the path does not exist.
var ErrPathNotFound = errors.New("path not found")

// PathResolver resolves paths against the host filesystem.
type PathResolver interface {
	// RealPath returns the absolute path of p with symlinks and "." / ".."
	// segments resolved.
	RealPath(ctx context.Context, p string) (string, error)
}
