package url

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/bnema/urlkit/internal/domain/entity"
	"github.com/bnema/urlkit/internal/domain/host"
	"github.com/bnema/urlkit/internal/domain/path"
)

// ToAbsolute resolves u against base and returns the result as a new URL.
// Only empty parts are inherited, each one gated by the previous: a
// reference without scheme takes the base scheme, one that also lacks an
// authority takes the base authority, then an empty path takes the base
// path, an empty query the base query and an empty fragment the base
// fragment. A relative path is resolved against the directory of the base
// path.
func (u *URL) ToAbsolute(base *URL) (*URL, error) {
	if base == nil {
		return nil, fmt.Errorf("resolve %q: nil base: %w", u.String(), entity.ErrInvalidArgument)
	}

	full := u.clone()
	if u.Scheme() != "" {
		return full, nil
	}
	full.scheme = base.Scheme()

	if u.user != "" || u.pass != "" || u.host != "" || u.port != 0 {
		return full, nil
	}
	full.user = base.user
	full.pass = base.pass
	full.host = base.host
	full.port = base.port

	switch {
	case u.path == "":
		full.path = base.path
		if u.query.Len() == 0 {
			full.query = base.query
			if u.fragment == "" {
				full.fragment = base.fragment
			}
		}
	case !strings.HasPrefix(u.path, "/"):
		full.path = path.NormalizeURL(baseDir(base.path) + "/" + u.path)
	}
	return full, nil
}

// baseDir returns the directory a relative reference is resolved in. A
// base path without a trailing slash names a file, which is dropped.
func baseDir(p string) string {
	if strings.HasSuffix(p, "/") {
		return p
	}
	parts := strings.FieldsFunc(p, func(r rune) bool { return r == '/' })
	if len(parts) > 0 {
		parts = parts[:len(parts)-1]
	}
	return "/" + strings.Join(parts, "/")
}

// Resolve parses ref and base and resolves ref against base.
func Resolve(ref, base string) (*URL, error) {
	b, err := Parse(base)
	if err != nil {
		return nil, fmt.Errorf("base: %w", withInvalid(err))
	}
	r, err := Parse(ref)
	if err != nil {
		return nil, err
	}
	return r.ToAbsolute(b)
}

// withInvalid marks err as an invalid argument. A base that fails its own
// construction checks is a bad argument to resolution.
func withInvalid(err error) error {
	if errors.Is(err, entity.ErrInvalidArgument) {
		return err
	}
	return fmt.Errorf("%w: %w", entity.ErrInvalidArgument, err)
}

// SameSiteOptions relaxes or tightens IsSameSite.
type SameSiteOptions struct {
	// Subdomains accepts hosts where one is a subdomain of the other.
	Subdomains bool
	// Subpath requires other to lie below the path of u.
	Subpath bool
}

// IsSameSite reports whether other points to the same site as u. Both are
// first resolved against each other, then scheme, credentials, host and
// port must match.
func (u *URL) IsSameSite(other *URL, opts SameSiteOptions) (bool, error) {
	if other == nil {
		return false, fmt.Errorf("same site: nil url: %w", entity.ErrInvalidArgument)
	}

	u1, err := u.ToAbsolute(other)
	if err != nil {
		return false, err
	}
	u2, err := other.ToAbsolute(u)
	if err != nil {
		return false, err
	}

	if u1.Scheme() != u2.Scheme() {
		return false, nil
	}
	if u1.user != u2.user || u1.pass != u2.pass {
		return false, nil
	}
	if u1.host != u2.host {
		if !opts.Subdomains {
			return false, nil
		}
		related, err := isStrictlyRelated(u1.host, u2.host)
		if err != nil || !related {
			return false, err
		}
	}
	if u1.Port() != u2.Port() {
		return false, nil
	}
	if opts.Subpath && u1.path != "" && !strings.HasPrefix(u2.path, u1.path) {
		return false, nil
	}
	return true, nil
}

func isStrictlyRelated(a, b string) (bool, error) {
	if a == "" || b == "" {
		return false, nil
	}
	ok, err := host.IsSubdomain(b, a)
	if err != nil || ok {
		return ok, err
	}
	return host.IsSubdomain(a, b)
}

// MatchRobotsMask reports whether the request URI of u matches a
// robots.txt rule such as "/private/*.php$". "*" matches any sequence and
// a "$" anchors the end. The request URI always starts with "/" here, so
// the rule "/" matches the site root. An empty mask never matches.
func (u *URL) MatchRobotsMask(mask string) bool {
	mask = strings.TrimSpace(mask)
	if mask == "" {
		return false
	}

	pattern := regexp.QuoteMeta(mask)
	pattern = strings.ReplaceAll(pattern, `\*`, `.*`)
	pattern = strings.ReplaceAll(pattern, `\$`, `$`)

	re, err := regexp.Compile(`(?s)^` + pattern)
	if err != nil {
		return false
	}

	target := u.RequestURI()
	if !strings.HasPrefix(target, "/") {
		target = "/" + target
	}
	return re.MatchString(target)
}

// Subdomain returns the labels of the host in front of parent. ok is false
// when the host is not parent or below it.
func (u *URL) Subdomain(parent string) (name string, ok bool, err error) {
	if u.host == "" || strings.TrimSpace(parent) == "" {
		return "", false, nil
	}
	return host.Subdomain(u.host, parent)
}

// IsSubdomain reports whether the host lies strictly below parent.
func (u *URL) IsSubdomain(parent string) (bool, error) {
	if u.host == "" || strings.TrimSpace(parent) == "" {
		return false, nil
	}
	return host.IsSubdomain(u.host, parent)
}

// IsDomainRelated reports whether the host equals domain or one is a
// subdomain of the other.
func (u *URL) IsDomainRelated(domain string) (bool, error) {
	if u.host == "" || strings.TrimSpace(domain) == "" {
		return false, nil
	}
	return host.IsRelated(u.host, domain)
}
