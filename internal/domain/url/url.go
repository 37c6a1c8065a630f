// Package url provides an immutable URL value whose parts are normalized
// on construction: lower-case scheme, Unicode host, resolved path and a
// sorted query. Values are never modified after construction; every
// operation that changes a part returns a new URL.
package url

import (
	"fmt"
	neturl "net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/zeebo/xxh3"

	"github.com/bnema/urlkit/internal/domain/entity"
	"github.com/bnema/urlkit/internal/domain/host"
	"github.com/bnema/urlkit/internal/domain/path"
	"github.com/bnema/urlkit/internal/domain/query"
)

const maxPort = 65535

// Fields holds the raw parts of a URL before normalization.
type Fields struct {
	Scheme   string       `json:"scheme,omitempty"`
	User     string       `json:"user,omitempty"`
	Pass     string       `json:"pass,omitempty"`
	Host     string       `json:"host,omitempty"`
	Port     int          `json:"port,omitempty"`
	Path     string       `json:"path,omitempty"`
	Query    *query.Query `json:"query,omitempty"`
	Fragment string       `json:"fragment,omitempty"`
}

// URL is a normalized URL. The zero value is an empty relative reference.
type URL struct {
	scheme   string
	user     string
	pass     string
	host     string
	port     int
	path     string
	query    *query.Query
	fragment string
}

// New normalizes f and checks that the parts form a valid URL: a port or
// a scheme other than javascript, mailto and tel requires a host.
func New(f Fields) (*URL, error) {
	u := &URL{
		scheme:   strings.ToLower(strings.Trim(strings.TrimSpace(f.Scheme), ":")),
		user:     f.User,
		pass:     f.Pass,
		path:     path.NormalizeURL(f.Path),
		query:    query.Normalize(f.Query),
		fragment: strings.TrimLeft(strings.TrimSpace(f.Fragment), "#"),
	}

	if f.Port < 0 || f.Port > maxPort {
		return nil, fmt.Errorf("port %d: %w", f.Port, entity.ErrInvalidArgument)
	}
	u.port = f.Port

	name, err := host.Normalize(f.Host)
	if err != nil {
		return nil, err
	}
	u.host = name

	if err := u.validate(); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *URL) validate() error {
	if u.host != "" {
		return nil
	}
	if u.port != 0 {
		return fmt.Errorf("port %d without host: %w", u.port, entity.ErrConfiguration)
	}
	if u.scheme != "" && !isNonHostScheme(u.scheme) {
		return fmt.Errorf("scheme %q without host: %w", u.scheme, entity.ErrConfiguration)
	}
	return nil
}

// Parse parses s into a URL. Relative references are accepted.
func Parse(s string) (*URL, error) {
	parsed, err := neturl.Parse(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("parse url %q: %v: %w", s, err, entity.ErrInvalidArgument)
	}

	f := Fields{
		Scheme:   parsed.Scheme,
		Host:     parsed.Hostname(),
		Path:     parsed.EscapedPath(),
		Query:    query.Parse(parsed.RawQuery),
		Fragment: parsed.EscapedFragment(),
	}
	if parsed.Opaque != "" {
		f.Path = parsed.Opaque
	}
	if parsed.User != nil {
		f.User = parsed.User.Username()
		f.Pass, _ = parsed.User.Password()
	}
	if p := parsed.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("parse url %q: port %q: %w", s, p, entity.ErrInvalidArgument)
		}
		f.Port = port
	}

	u, err := New(f)
	if err != nil {
		return nil, fmt.Errorf("parse url %q: %w", s, err)
	}
	return u, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) *URL {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

func (u *URL) clone() *URL {
	c := *u
	return &c
}

// Scheme returns the scheme. When none was given it is inferred from a
// well-known port, so "//site.ru:443" reports "https".
func (u *URL) Scheme() string {
	if u.scheme == "" && u.port != 0 {
		return SchemeByPort(u.port)
	}
	return u.scheme
}

func (u *URL) User() string     { return u.user }
func (u *URL) Pass() string     { return u.pass }
func (u *URL) Host() string     { return u.host }
func (u *URL) Path() string     { return u.path }
func (u *URL) Fragment() string { return u.fragment }

// Query returns a copy of the normalized query.
func (u *URL) Query() *query.Query {
	return u.query.Clone()
}

// HostASCII returns the punycode form of the host. It falls back to the
// Unicode form when the host cannot be encoded.
func (u *URL) HostASCII() string {
	ascii, err := host.ToASCII(u.host)
	if err != nil {
		return u.host
	}
	return ascii
}

// Port returns the explicit port or the default port of the scheme.
func (u *URL) Port() int {
	if u.port != 0 {
		return u.port
	}
	return PortByScheme(u.scheme)
}

// ExplicitPort returns the port exactly as given, 0 when absent.
func (u *URL) ExplicitPort() int { return u.port }

// IsAbsolute reports whether the URL has a scheme, given or inferred from
// its port.
func (u *URL) IsAbsolute() bool {
	return u.Scheme() != ""
}

// HostInfo returns "user:pass@host:port". The port is left out when it is
// the default of the scheme. With ascii set the host is punycode-encoded.
func (u *URL) HostInfo(ascii bool) string {
	var b strings.Builder

	if u.user != "" {
		if u.pass != "" {
			b.WriteString(neturl.UserPassword(u.user, u.pass).String())
		} else {
			b.WriteString(neturl.User(u.user).String())
		}
		b.WriteByte('@')
	}

	name := u.host
	if ascii {
		name = u.HostASCII()
	}
	if strings.Contains(name, ":") {
		name = "[" + name + "]"
	}
	b.WriteString(name)

	if u.port != 0 && u.port != PortByScheme(u.Scheme()) {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(u.port))
	}
	return b.String()
}

// RequestURI returns the path and query. A bare "/" path is omitted.
func (u *URL) RequestURI() string {
	uri := ""
	if u.path != "/" {
		uri = u.path
	}
	if u.query.Len() > 0 {
		uri += "?" + query.Build(u.query)
	}
	return uri
}

// String returns the URL with a Unicode host. Percent-encoded UTF-8 in
// the path, query and fragment is shown as text.
func (u *URL) String() string {
	return u.format(false)
}

// ASCIIString returns the URL with a punycode host. Parsed paths, queries
// and fragments keep their percent-encoding.
func (u *URL) ASCIIString() string {
	return u.format(true)
}

func (u *URL) format(ascii bool) string {
	var b strings.Builder

	scheme := u.Scheme()
	if scheme != "" {
		b.WriteString(scheme)
		b.WriteByte(':')
	}

	if u.host != "" {
		if !isNonHostScheme(scheme) {
			b.WriteString("//")
		}
		b.WriteString(u.HostInfo(ascii))
		if u.path != "" && !strings.HasPrefix(u.path, "/") {
			b.WriteByte('/')
		}
	}

	tail := u.RequestURI()
	if u.fragment != "" {
		tail += "#" + u.fragment
	}
	if !ascii {
		tail = decodeNonASCII(tail)
	}
	b.WriteString(tail)
	return b.String()
}

// decodeNonASCII decodes runs of percent escapes that form valid UTF-8
// above the ASCII range. Escaped ASCII bytes such as %2F or %3F are kept,
// so the result parses back to the same URL.
func decodeNonASCII(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); {
		j := i
		var run []byte
		for j+2 < len(s) && s[j] == '%' {
			c, err := strconv.ParseUint(s[j+1:j+3], 16, 8)
			if err != nil || c < utf8.RuneSelf {
				break
			}
			run = append(run, byte(c))
			j += 3
		}

		switch {
		case len(run) > 0 && utf8.Valid(run):
			b.Write(run)
		case len(run) > 0:
			b.WriteString(s[i:j])
		default:
			b.WriteByte(s[i])
			j = i + 1
		}
		i = j
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler.
func (u *URL) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// Fields returns the normalized parts.
func (u *URL) Fields() Fields {
	return Fields{
		Scheme:   u.scheme,
		User:     u.user,
		Pass:     u.pass,
		Host:     u.host,
		Port:     u.port,
		Path:     u.path,
		Query:    u.query.Clone(),
		Fragment: u.fragment,
	}
}

// WithQuery returns a copy of u with q as its query.
func (u *URL) WithQuery(q *query.Query) *URL {
	c := u.clone()
	c.query = query.Normalize(q)
	return c
}

// WithFragment returns a copy of u with the given fragment.
func (u *URL) WithFragment(fragment string) *URL {
	c := u.clone()
	c.fragment = strings.TrimLeft(strings.TrimSpace(fragment), "#")
	return c
}

// WithPath returns a copy of u with the given path.
func (u *URL) WithPath(p string) *URL {
	c := u.clone()
	c.path = path.NormalizeURL(p)
	return c
}

// Fingerprint returns a hash of the ASCII form, equal for URLs that
// normalize to the same value.
func (u *URL) Fingerprint() uint64 {
	return xxh3.HashString(u.ASCIIString())
}
