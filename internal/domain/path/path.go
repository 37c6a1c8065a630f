// Package path provides normalization and navigation of slash-separated
// paths as pure string manipulation. Nothing here touches the filesystem
// except Absolute, which goes through a resolver port.
package path

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/urlkit/internal/domain/entity"
)

const (
	separator = "/"
	current   = "."
	up        = ".."
)

// PathResolver resolves a path to its canonical absolute form on the host
// system. It mirrors port.PathResolver so the domain stays free of the
// application layer.
type PathResolver interface {
	RealPath(ctx context.Context, p string) (string, error)
}

// segments splits p on runs of separators, dropping empty segments.
func segments(p string) []string {
	return strings.FieldsFunc(p, func(r rune) bool { return r == '/' })
}

func isMarker(s string) bool {
	return s == current || s == up
}

// IsAbsolute reports whether p is rooted.
func IsAbsolute(p string) bool {
	return strings.HasPrefix(strings.TrimSpace(p), separator)
}

// Normalize collapses repeated separators and resolves "." and ".."
// segments. A leading "." of a relative path is kept as a marker
// ("./../x" stays "./../x"); every other "." is dropped. A ".." pops the
// previous real segment; at the start of a relative path, or after a
// marker, it is kept literally. A rooted path never climbs above "/".
// The trailing slash is not preserved.
func Normalize(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}

	rooted := strings.HasPrefix(p, separator)
	parts := resolve(segments(p), rooted, true)

	if rooted {
		return separator + strings.Join(parts, separator)
	}
	return strings.Join(parts, separator)
}

// NormalizeURL is the URL-path flavour of Normalize: every "." segment is
// dropped and a trailing slash is kept as a directory marker
// ("/path/./../" becomes "/", "path/./" becomes "path/"). A relative path
// that resolves to nothing becomes ".".
func NormalizeURL(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}

	rooted := strings.HasPrefix(p, separator)
	dir := strings.HasSuffix(p, separator)
	parts := resolve(segments(p), rooted, false)

	var out string
	switch {
	case rooted:
		out = separator + strings.Join(parts, separator)
	case len(parts) == 0:
		out = current
	default:
		out = strings.Join(parts, separator)
	}

	if dir && !strings.HasSuffix(out, separator) {
		out += separator
	}
	return out
}

// resolve applies the segment rules shared by Normalize and NormalizeURL.
func resolve(in []string, rooted, keepLeadingDot bool) []string {
	parts := make([]string, 0, len(in))
	for _, seg := range in {
		switch seg {
		case current:
			if keepLeadingDot && !rooted && len(parts) == 0 {
				parts = append(parts, seg)
			}
		case up:
			switch {
			case len(parts) == 0:
				if !rooted {
					parts = append(parts, seg)
				}
			case isMarker(parts[len(parts)-1]):
				parts = append(parts, seg)
			default:
				parts = parts[:len(parts)-1]
			}
		default:
			parts = append(parts, seg)
		}
	}
	return parts
}

// Parent returns the path levels directories above p. Real segments are
// stripped first; when they run out a relative path is backfilled with
// ".." and a rooted path stops at "/". Zero levels returns p as given.
func Parent(p string, levels int) (string, error) {
	if levels < 0 {
		return "", fmt.Errorf("parent levels %d: %w", levels, entity.ErrInvalidArgument)
	}
	if levels == 0 {
		return p, nil
	}

	rooted := IsAbsolute(p)
	parts := segments(Normalize(p))

	// Markers only ever lead a normalized path, so the real segments are
	// the tail after them.
	named := 0
	for i := len(parts) - 1; i >= 0 && !isMarker(parts[i]); i-- {
		named++
	}

	strip := min(levels, named)
	parts = parts[:len(parts)-strip]
	if !rooted {
		for range levels - strip {
			parts = append(parts, up)
		}
	}

	if rooted {
		return separator + strings.Join(parts, separator), nil
	}
	return strings.Join(parts, separator), nil
}

// Child returns the normalized path of rel below p.
func Child(p, rel string) string {
	return Normalize(p + separator + rel)
}

// File returns the last segment of p, extension included.
func File(p string) string {
	parts := segments(strings.TrimSpace(p))
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// Name returns the last segment of p without its extension.
func Name(p string) string {
	file := File(p)
	if i := strings.LastIndex(file, "."); i >= 0 {
		return file[:i]
	}
	return file
}

// Ext returns the extension of the last segment of p, without the dot.
func Ext(p string) string {
	file := File(p)
	if i := strings.LastIndex(file, "."); i >= 0 {
		return file[i+1:]
	}
	return ""
}

// Absolute resolves p through r. The boolean is false when the path does
// not resolve; resolution failures are not reported as errors.
func Absolute(ctx context.Context, r PathResolver, p string) (string, bool) {
	if r == nil || strings.TrimSpace(p) == "" {
		return "", false
	}
	resolved, err := r.RealPath(ctx, p)
	if err != nil || resolved == "" {
		return "", false
	}
	return resolved, true
}
