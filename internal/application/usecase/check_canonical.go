package usecase

import (
	"context"
	"strings"

	"github.com/bnema/urlkit/internal/domain/query"
	"github.com/bnema/urlkit/internal/domain/url"
	"github.com/bnema/urlkit/internal/logging"
)

// CheckCanonicalUseCase decides whether a request must be redirected to
// its canonical URL. Tracking parameters are ignored for the comparison
// and carried over to the redirect target.
type CheckCanonicalUseCase struct{}

// NewCheckCanonicalUseCase creates a new CheckCanonicalUseCase.
func NewCheckCanonicalUseCase() *CheckCanonicalUseCase {
	return &CheckCanonicalUseCase{}
}

// CheckCanonicalInput contains the incoming request and the canonical URL.
type CheckCanonicalInput struct {
	// RequestURI is the raw path and query of the request, "/a/b?x=1".
	RequestURI string
	// Canonical is the canonical URL, absolute or rooted.
	Canonical string
}

// CheckCanonicalOutput contains the comparison result.
type CheckCanonicalOutput struct {
	Current       string
	Canonical     string
	NeedsRedirect bool
	// Target is the canonical URL with the request tracking parameters
	// added. Empty when no redirect is needed.
	Target   string
	Tracking *query.Query
}

// Execute compares the request with the canonical URL.
func (uc *CheckCanonicalUseCase) Execute(ctx context.Context, input CheckCanonicalInput) (*CheckCanonicalOutput, error) {
	log := logging.FromContext(ctx)

	canonical, err := url.Parse(input.Canonical)
	if err != nil {
		return nil, err
	}
	canonical = canonical.WithQuery(query.ClearTracking(canonical.Query()))

	raw, _, _ := strings.Cut(input.RequestURI, "#")
	reqPath, reqQuery, _ := strings.Cut(raw, "?")
	rest, tracking := query.ExtractTracking(query.Parse(reqQuery))

	out := &CheckCanonicalOutput{
		Current:   rootedURI(reqPath, rest),
		Canonical: rootedURI(canonical.Path(), canonical.Query()),
		Tracking:  tracking,
	}
	out.NeedsRedirect = out.Current != out.Canonical

	if out.NeedsRedirect {
		merged := canonical.Query()
		tracking.Each(func(k string, v query.Value) {
			merged.Set(k, v)
		})
		out.Target = canonical.WithQuery(merged).String()
	}

	log.Debug().
		Str("current", out.Current).
		Str("canonical", out.Canonical).
		Bool("redirect", out.NeedsRedirect).
		Msg("checked canonical url")

	return out, nil
}

func rootedURI(p string, q *query.Query) string {
	uri := "/" + strings.TrimLeft(p, "/")
	if q.Len() > 0 {
		uri += "?" + query.Build(q)
	}
	return uri
}
