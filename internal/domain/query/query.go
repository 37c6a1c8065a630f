// Package query parses, builds and compares hierarchical query strings
// such as "a=1&b[]=2&c[d][e]=3".
//
// A Query is an ordered mapping from keys to values. A value is a string,
// a nested Query, or null. Lists are nested queries whose keys are "0",
// "1", ... in order.
package query

import (
	"encoding/json"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind identifies the type held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindMap
)

// Value is one query parameter value.
type Value struct {
	kind Kind
	str  string
	sub  *Query
}

// Null returns the null value. Null entries are skipped by Build and
// removed by Filter.
func Null() Value { return Value{kind: KindNull} }

// String returns a scalar value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Map returns a nested value. A nil q is treated as an empty mapping.
func Map(q *Query) Value {
	if q == nil {
		q = New()
	}
	return Value{kind: KindMap, sub: q}
}

// List returns a nested value keyed "0".."n-1".
func List(values ...string) Value {
	q := New()
	for i, v := range values {
		q.Set(strconv.Itoa(i), String(v))
	}
	return Map(q)
}

func (v Value) Kind() Kind     { return v.kind }
func (v Value) IsNull() bool   { return v.kind == KindNull }
func (v Value) Str() string    { return v.str }
func (v Value) Sub() *Query    { return v.sub }
func (v Value) IsMap() bool    { return v.kind == KindMap }
func (v Value) IsString() bool { return v.kind == KindString }

// IsEmpty reports whether v is null, an empty string or an empty mapping.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindString:
		return v.str == ""
	case KindMap:
		return v.sub.Len() == 0
	default:
		return true
	}
}

// Equal reports deep, order-sensitive equality.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindMap:
		return v.sub.Equal(o.sub)
	default:
		return true
	}
}

func (v Value) clone() Value {
	if v.kind == KindMap {
		return Map(v.sub.Clone())
	}
	return v
}

// MarshalJSON renders strings as JSON strings, lists as arrays and other
// mappings as objects in key order.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindMap:
		return v.sub.MarshalJSON()
	default:
		return []byte("null"), nil
	}
}

// Query is an ordered mapping of parameter keys to values.
type Query struct {
	m *orderedmap.OrderedMap[string, Value]
}

// New returns an empty query.
func New() *Query {
	return &Query{m: orderedmap.New[string, Value]()}
}

// Len returns the number of top-level keys. A nil query is empty.
func (q *Query) Len() int {
	if q == nil || q.m == nil {
		return 0
	}
	return q.m.Len()
}

// Get returns the value stored under key.
func (q *Query) Get(key string) (Value, bool) {
	if q.Len() == 0 {
		return Value{}, false
	}
	return q.m.Get(key)
}

// Set stores v under key. An existing key keeps its position.
func (q *Query) Set(key string, v Value) *Query {
	q.m.Set(key, v)
	return q
}

// Delete removes key.
func (q *Query) Delete(key string) {
	if q.Len() > 0 {
		q.m.Delete(key)
	}
}

// Keys returns the top-level keys in order.
func (q *Query) Keys() []string {
	keys := make([]string, 0, q.Len())
	q.Each(func(k string, _ Value) {
		keys = append(keys, k)
	})
	return keys
}

// Each calls fn for every top-level entry in order.
func (q *Query) Each(fn func(key string, v Value)) {
	if q.Len() == 0 {
		return
	}
	for pair := q.m.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// Clone returns a deep copy.
func (q *Query) Clone() *Query {
	out := New()
	q.Each(func(k string, v Value) {
		out.Set(k, v.clone())
	})
	return out
}

// Equal reports deep equality including key order.
func (q *Query) Equal(o *Query) bool {
	if q.Len() != o.Len() {
		return false
	}
	if q.Len() == 0 {
		return true
	}
	a, b := q.m.Oldest(), o.m.Oldest()
	for ; a != nil && b != nil; a, b = a.Next(), b.Next() {
		if a.Key != b.Key || !a.Value.Equal(b.Value) {
			return false
		}
	}
	return a == nil && b == nil
}

// IsList reports whether the keys are exactly "0".."n-1" in order.
// Null entries are ignored, matching how Build emits lists.
func (q *Query) IsList() bool {
	i := 0
	list := true
	q.Each(func(k string, v Value) {
		if v.IsNull() || k == "" {
			return
		}
		if k != strconv.Itoa(i) {
			list = false
		}
		i++
	})
	return list
}

// nextIndex returns the key used when appending with "[]": one past the
// largest non-negative integer key, or "0".
func (q *Query) nextIndex() string {
	next := 0
	q.Each(func(k string, _ Value) {
		if n, ok := index(k); ok && n >= next {
			next = n + 1
		}
	})
	return strconv.Itoa(next)
}

// index parses k as a canonical non-negative integer.
func index(k string) (int, bool) {
	n, err := strconv.Atoi(k)
	if err != nil || n < 0 || strconv.Itoa(n) != k {
		return 0, false
	}
	return n, true
}

// MarshalJSON renders lists as arrays and other mappings as ordered objects.
func (q *Query) MarshalJSON() ([]byte, error) {
	if q.Len() == 0 {
		return []byte("{}"), nil
	}
	if q.IsList() {
		values := make([]Value, 0, q.Len())
		q.Each(func(_ string, v Value) {
			if !v.IsNull() {
				values = append(values, v)
			}
		})
		return json.Marshal(values)
	}
	return q.m.MarshalJSON()
}

// String returns the serialized query string.
func (q *Query) String() string {
	return Build(q)
}

// GoString is used by %#v in test failure output.
func (q *Query) GoString() string {
	data, err := q.MarshalJSON()
	if err != nil {
		return "query(" + Build(q) + ")"
	}
	return "query" + string(data)
}
