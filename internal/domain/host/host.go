// Package host normalizes domain names and answers subdomain questions.
// Names are kept in Unicode form, lower-cased and NFC-normalized; the
// punycode form is produced on demand.
package host

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/bnema/urlkit/internal/domain/entity"
)

var schemeRe = regexp.MustCompile(`^(\w+:)?//`)

// Normalize extracts the host from s and returns it in canonical Unicode
// form. s may be a bare domain or any URL carrying one. Blank input
// yields an empty string.
func Normalize(s string) (string, error) {
	raw := strings.Join(strings.Fields(s), "")
	if raw == "" {
		return "", nil
	}

	if !schemeRe.MatchString(raw) {
		raw = "//" + bracketIPv6(raw)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("host %q: %w", s, entity.ErrInvalidArgument)
	}
	name := u.Hostname()
	if name == "" {
		return "", fmt.Errorf("host %q: no host name: %w", s, entity.ErrInvalidArgument)
	}
	if strings.Contains(name, ":") {
		// IPv6 literal
		return strings.ToLower(name), nil
	}

	name, err = idna.Punycode.ToUnicode(strings.ToLower(name))
	if err != nil {
		return "", fmt.Errorf("host %q: %v: %w", s, err, entity.ErrInvalidArgument)
	}
	name = norm.NFC.String(cases.Lower(language.Und).String(name))

	labels := strings.FieldsFunc(name, func(r rune) bool { return r == '.' })
	if len(labels) == 0 {
		return "", fmt.Errorf("host %q: no labels: %w", s, entity.ErrInvalidArgument)
	}
	return strings.Join(labels, "."), nil
}

// bracketIPv6 wraps a bare IPv6 literal at the start of s in brackets so
// the URI parser reads it as a host. Anything else is returned unchanged.
func bracketIPv6(s string) string {
	authority, rest := s, ""
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		authority, rest = s[:i], s[i:]
	}
	if strings.Contains(authority, "@") || strings.Count(authority, ":") < 2 {
		return s
	}
	if net.ParseIP(authority) == nil {
		return s
	}
	return "[" + authority + "]" + rest
}

// ToASCII converts a Unicode domain to its punycode form.
func ToASCII(name string) (string, error) {
	if name == "" {
		return "", nil
	}
	ascii, err := idna.Punycode.ToASCII(name)
	if err != nil {
		return "", fmt.Errorf("to ascii %q: %v: %w", name, err, entity.ErrInvalidArgument)
	}
	return ascii, nil
}

// ToUnicode converts a punycode domain to Unicode.
func ToUnicode(name string) (string, error) {
	if name == "" {
		return "", nil
	}
	uni, err := idna.Punycode.ToUnicode(name)
	if err != nil {
		return "", fmt.Errorf("to unicode %q: %v: %w", name, err, entity.ErrInvalidArgument)
	}
	return uni, nil
}

func normalizePair(a, b string) (string, string, error) {
	na, err := Normalize(a)
	if err != nil {
		return "", "", err
	}
	nb, err := Normalize(b)
	if err != nil {
		return "", "", err
	}
	if na == "" || nb == "" {
		return "", "", fmt.Errorf("domains %q and %q: empty domain: %w", a, b, entity.ErrInvalidArgument)
	}
	return na, nb, nil
}

// IsRelated reports whether a and b are the same domain or one is a
// subdomain of the other.
func IsRelated(a, b string) (bool, error) {
	na, nb, err := normalizePair(a, b)
	if err != nil {
		return false, err
	}
	if na == nb {
		return true, nil
	}
	return strings.HasSuffix(na, "."+nb) || strings.HasSuffix(nb, "."+na), nil
}

// Subdomain returns the labels of domain in front of parent. ok is false
// when domain is not parent or below it; when both are equal the name is
// empty and ok is true.
func Subdomain(domain, parent string) (name string, ok bool, err error) {
	nd, np, err := normalizePair(domain, parent)
	if err != nil {
		return "", false, err
	}
	if nd == np {
		return "", true, nil
	}
	if prefix, found := strings.CutSuffix(nd, "."+np); found && prefix != "" {
		return prefix, true, nil
	}
	return "", false, nil
}

// IsSubdomain reports whether domain lies strictly below parent.
func IsSubdomain(domain, parent string) (bool, error) {
	name, ok, err := Subdomain(domain, parent)
	if err != nil {
		return false, err
	}
	return ok && name != "", nil
}
