package usecase

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/urlkit/internal/domain/entity"
	"github.com/bnema/urlkit/internal/domain/url"
	"github.com/bnema/urlkit/internal/logging"
)

// ResolveURLsUseCase resolves a batch of references against one base URL.
type ResolveURLsUseCase struct {
	workers int
}

// NewResolveURLsUseCase creates a new ResolveURLsUseCase.
// workers <= 0 uses one worker per CPU.
func NewResolveURLsUseCase(workers int) *ResolveURLsUseCase {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &ResolveURLsUseCase{
		workers: workers,
	}
}

// ResolveURLsInput contains the base and the references to resolve.
type ResolveURLsInput struct {
	Base string
	Refs []string
	// ASCII renders hosts in punycode.
	ASCII bool
}

// ResolvedURL is the outcome for one reference.
type ResolvedURL struct {
	Ref string `json:"ref"`
	URL string `json:"url,omitempty"`
	Err error  `json:"-"`
}

// ResolveURLsOutput holds one result per input reference, in input order.
type ResolveURLsOutput struct {
	Results []ResolvedURL
	Failed  int
}

// Execute resolves every reference. A reference that fails to parse is
// reported in its result and does not stop the batch; an invalid base or
// a canceled context fails the whole call.
func (uc *ResolveURLsUseCase) Execute(ctx context.Context, input ResolveURLsInput) (*ResolveURLsOutput, error) {
	log := logging.FromContext(ctx)

	base, err := url.Parse(input.Base)
	if err != nil {
		return nil, fmt.Errorf("base %q: %w: %w", input.Base, entity.ErrInvalidArgument, err)
	}

	results := make([]ResolvedURL, len(input.Refs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.workers)

	for i, ref := range input.Refs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			results[i].Ref = ref
			u, err := url.Parse(ref)
			if err != nil {
				results[i].Err = err
				return nil
			}
			abs, err := u.ToAbsolute(base)
			if err != nil {
				results[i].Err = err
				return nil
			}

			if input.ASCII {
				results[i].URL = abs.ASCIIString()
			} else {
				results[i].URL = abs.String()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &ResolveURLsOutput{Results: results}
	for _, r := range results {
		if r.Err != nil {
			out.Failed++
			logging.FromContext(logging.WithURL(ctx, r.Ref)).Debug().Err(r.Err).Msg("reference not resolved")
		}
	}

	log.Debug().
		Str("base", base.String()).
		Int("total", len(results)).
		Int("failed", out.Failed).
		Msg("resolved urls")

	return out, nil
}
