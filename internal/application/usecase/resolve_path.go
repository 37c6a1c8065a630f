package usecase

import (
	"context"

	"github.com/bnema/urlkit/internal/application/port"
	"github.com/bnema/urlkit/internal/domain/path"
	"github.com/bnema/urlkit/internal/logging"
)

// ResolvePathUseCase normalizes a path, optionally walks to a child or
// parent and resolves it on the filesystem.
type ResolvePathUseCase struct {
	resolver port.PathResolver
}

// NewResolvePathUseCase creates a new ResolvePathUseCase.
// resolver may be nil when filesystem resolution is never requested.
func NewResolvePathUseCase(resolver port.PathResolver) *ResolvePathUseCase {
	return &ResolvePathUseCase{
		resolver: resolver,
	}
}

// ResolvePathInput contains the path and the navigation to apply.
type ResolvePathInput struct {
	Path string
	// Child is joined below Path before anything else.
	Child string
	// Levels moves up that many directories; negative values are rejected.
	Levels int
	// Absolute asks for the real filesystem path of the result.
	Absolute bool
}

// ResolvePathOutput contains the resulting path and its parts.
type ResolvePathOutput struct {
	Info     path.Info
	RealPath string
	// Resolved is false when Absolute was requested but the path does
	// not exist.
	Resolved bool
}

// Execute applies the requested navigation to input.Path.
func (uc *ResolvePathUseCase) Execute(ctx context.Context, input ResolvePathInput) (*ResolvePathOutput, error) {
	log := logging.FromContext(ctx)

	info := path.NewInfo(input.Path)
	if input.Child != "" {
		info = info.Child(input.Child)
	}
	if input.Levels != 0 {
		parent, err := info.Parent(input.Levels)
		if err != nil {
			return nil, err
		}
		info = path.NewInfo(parent)
	}

	out := &ResolvePathOutput{Info: info}
	if !input.Absolute {
		return out, nil
	}

	realPath, ok := info.Absolute(ctx, uc.resolver)
	out.RealPath = realPath
	out.Resolved = ok

	log.Debug().
		Str("path", info.Path()).
		Str("real_path", realPath).
		Bool("resolved", ok).
		Msg("resolved path")

	return out, nil
}
