package query

import "strings"

// Build serializes q into a query string. Null entries are omitted. An
// empty string value is emitted as a bare key and an empty mapping as
// "key[]". Nested lists use the "key[]=" form, other nested mappings the
// "key[sub]=" form.
func Build(q *Query) string {
	return strings.Join(appendPairs(nil, "", q), "&")
}

func appendPairs(out []string, prefix string, q *Query) []string {
	indexed := prefix != "" && q.IsList()

	q.Each(func(k string, v Value) {
		if v.IsNull() || k == "" {
			return
		}

		var key string
		switch {
		case prefix == "":
			key = escape(k)
		case indexed:
			key = prefix + "[]"
		default:
			key = prefix + "[" + escape(k) + "]"
		}

		switch {
		case v.IsMap() && !hasEntries(v.sub):
			out = append(out, key+"[]")
		case v.IsMap():
			out = appendPairs(out, key, v.sub)
		case v.str == "":
			out = append(out, key)
		default:
			out = append(out, key+"="+escape(v.str))
		}
	})
	return out
}

// hasEntries reports whether Build would emit anything for q.
func hasEntries(q *Query) bool {
	found := false
	q.Each(func(k string, v Value) {
		if k != "" && !v.IsNull() {
			found = true
		}
	})
	return found
}
