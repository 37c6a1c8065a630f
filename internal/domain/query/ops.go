package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cast"
	"golang.org/x/text/cases"
)

// Filter returns a copy of q without null values, empty strings and
// mappings that end up empty once their own children are filtered.
func Filter(q *Query) *Query {
	out := New()
	q.Each(func(k string, v Value) {
		switch v.kind {
		case KindString:
			if v.str != "" {
				out.Set(k, v)
			}
		case KindMap:
			if sub := Filter(v.sub); sub.Len() > 0 {
				out.Set(k, Map(sub))
			}
		}
	})
	return out
}

// Normalize returns a copy of q with keys sorted at every level. Keys are
// compared as strings, so "10" sorts before "2". Null leaves become empty
// strings.
func Normalize(q *Query) *Query {
	keys := q.Keys()
	sort.Strings(keys)

	out := New()
	for _, k := range keys {
		v, _ := q.Get(k)
		switch v.kind {
		case KindMap:
			out.Set(k, Map(Normalize(v.sub)))
		case KindNull:
			out.Set(k, String(""))
		default:
			out.Set(k, v)
		}
	}
	return out
}

// NormalizeString parses s and normalizes the result.
func NormalizeString(s string) *Query {
	return Normalize(Parse(s))
}

// Flatten returns the "key=value" tokens Build would join with "&".
func Flatten(q *Query) []string {
	s := Build(q)
	if s == "" {
		return nil
	}
	return strings.Split(s, "&")
}

// Unflatten parses tokens produced by Flatten back into a query.
func Unflatten(tokens []string) *Query {
	return Parse(strings.Join(tokens, "&"))
}

type diffOptions struct {
	ignoreCase bool
}

// DiffOption configures Diff.
type DiffOption func(*diffOptions)

// IgnoreCase makes Diff compare values case-insensitively. Keys are always
// compared exactly.
func IgnoreCase() DiffOption {
	return func(o *diffOptions) { o.ignoreCase = true }
}

// Diff returns the parameters of a that are not present in b. The
// comparison works on serialized "key=value" tokens, so list elements are
// matched by their textual form rather than by structure.
func Diff(a, b *Query, opts ...DiffOption) *Query {
	var o diffOptions
	for _, opt := range opts {
		opt(&o)
	}

	if a.Len() == 0 {
		return New()
	}
	if b.Len() == 0 {
		return a.Clone()
	}

	fold := cases.Fold()
	tokenKey := func(token string) string {
		if !o.ignoreCase {
			return token
		}
		k, v, _ := strings.Cut(token, "=")
		return k + "=" + fold.String(unescape(v))
	}

	seen := make(map[string]struct{})
	for _, t := range Flatten(b) {
		seen[tokenKey(t)] = struct{}{}
	}

	var rest []string
	for _, t := range Flatten(a) {
		if _, ok := seen[tokenKey(t)]; !ok {
			rest = append(rest, t)
		}
	}
	return Unflatten(rest)
}

// FromMap builds a query from a generic mapping such as decoded JSON.
// Keys are taken in sorted order. Slices become lists, nested maps become
// nested queries, nil becomes null and other scalars are converted to
// strings.
func FromMap(m map[string]any) *Query {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	q := New()
	for _, k := range keys {
		q.Set(k, fromAny(m[k]))
	}
	return q
}

func fromAny(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case Value:
		return x.clone()
	case *Query:
		return Map(x.Clone())
	case string:
		return String(x)
	case []string:
		return List(x...)
	case []any:
		q := New()
		for i, item := range x {
			q.Set(fmt.Sprint(i), fromAny(item))
		}
		return Map(q)
	case map[string]any:
		return Map(FromMap(x))
	}

	if s, err := cast.ToStringE(v); err == nil {
		return String(s)
	}
	if m, err := cast.ToStringMapE(v); err == nil {
		return Map(FromMap(m))
	}
	if items, err := cast.ToSliceE(v); err == nil {
		return fromAny(items)
	}
	return String(fmt.Sprint(v))
}
