package query

import "strings"

// Parse decodes a query string into a Query. A leading "?" and empty pairs
// are ignored. Bracketed keys build nested mappings ("a[b][c]=1") and an
// empty bracket appends to a list ("a[]=1&a[]=2"). Repeated keys keep the
// last value. Parse never fails: malformed escapes are kept literally.
func Parse(raw string) *Query {
	q := New()

	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "?")
	raw = strings.Trim(raw, "&")

	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		keys := splitKey(unescape(k))
		if keys == nil {
			continue
		}
		assign(q, keys, unescape(v))
	}
	return q
}

// splitKey turns "a[b][]" into ["a", "b", ""]. It returns nil for keys that
// carry no usable base name. A key with an unterminated bracket is taken
// literally, and text after a closing bracket that does not open another
// one is dropped.
func splitKey(key string) []string {
	open := strings.IndexByte(key, '[')
	if open < 0 {
		if key == "" {
			return nil
		}
		return []string{key}
	}
	if open == 0 {
		return nil
	}

	keys := []string{key[:open]}
	rest := key[open:]
	for strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			if len(keys) == 1 {
				return []string{key}
			}
			break
		}
		keys = append(keys, rest[1:end])
		rest = rest[end+1:]
	}
	return keys
}

// assign stores v at the nested position named by keys, creating
// intermediate mappings and replacing scalars that stand in the way.
func assign(q *Query, keys []string, v string) {
	k := keys[0]
	if k == "" {
		k = q.nextIndex()
	}

	if len(keys) == 1 {
		q.Set(k, String(v))
		return
	}

	existing, ok := q.Get(k)
	var sub *Query
	if ok && existing.IsMap() {
		sub = existing.Sub()
	} else {
		sub = New()
		q.Set(k, Map(sub))
	}
	assign(sub, keys[1:], v)
}
