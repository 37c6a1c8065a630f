package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/urlkit/internal/domain/entity"
	"github.com/bnema/urlkit/internal/domain/query"
	"github.com/bnema/urlkit/internal/domain/url"
	"github.com/bnema/urlkit/internal/logging"
)

// DedupeURLsUseCase removes URLs that normalize to one already seen.
type DedupeURLsUseCase struct{}

// NewDedupeURLsUseCase creates a new DedupeURLsUseCase.
func NewDedupeURLsUseCase() *DedupeURLsUseCase {
	return &DedupeURLsUseCase{}
}

// DedupeURLsInput contains the URLs to deduplicate.
type DedupeURLsInput struct {
	URLs []string
	// Base, when set, resolves relative URLs before comparing.
	Base string
	// StripTracking drops tracking parameters before comparing.
	StripTracking bool
}

// InvalidURL is an input that could not be parsed.
type InvalidURL struct {
	Raw string
	Err error
}

// DedupeURLsOutput lists the first occurrence of every distinct URL in its
// normalized form, in input order.
type DedupeURLsOutput struct {
	Unique     []string
	Duplicates int
	Invalid    []InvalidURL
}

// Execute deduplicates input.URLs by their normalized fingerprint.
func (uc *DedupeURLsUseCase) Execute(ctx context.Context, input DedupeURLsInput) (*DedupeURLsOutput, error) {
	log := logging.FromContext(ctx)

	var base *url.URL
	if input.Base != "" {
		b, err := url.Parse(input.Base)
		if err != nil {
			return nil, fmt.Errorf("base %q: %w: %w", input.Base, entity.ErrInvalidArgument, err)
		}
		base = b
	}

	out := &DedupeURLsOutput{}
	seen := make(map[uint64]struct{}, len(input.URLs))

	for _, raw := range input.URLs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		u, err := url.Parse(raw)
		if err == nil && base != nil {
			u, err = u.ToAbsolute(base)
		}
		if err != nil {
			out.Invalid = append(out.Invalid, InvalidURL{Raw: raw, Err: err})
			continue
		}
		if input.StripTracking {
			u = u.WithQuery(query.ClearTracking(u.Query()))
		}

		fp := u.Fingerprint()
		if _, dup := seen[fp]; dup {
			out.Duplicates++
			continue
		}
		seen[fp] = struct{}{}
		out.Unique = append(out.Unique, u.String())
	}

	log.Debug().
		Int("unique", len(out.Unique)).
		Int("duplicates", out.Duplicates).
		Int("invalid", len(out.Invalid)).
		Msg("deduplicated urls")

	return out, nil
}
