package query

import "strings"

var trackingPrefixes = []string{"utm_", "roistat", "gclid", "fbclid"}

var trackingKeys = map[string]struct{}{
	"msclkid": {},
	"dclid":   {},
	"yclid":   {},
	"mc_cid":  {},
	"mc_eid":  {},
	"_hsenc":  {},
	"_hsmi":   {},
	"igshid":  {},
}

// IsTrackingKey reports whether key names an analytics or click-id
// parameter. The match is case-insensitive.
func IsTrackingKey(key string) bool {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return false
	}
	for _, prefix := range trackingPrefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	_, ok := trackingKeys[key]
	return ok
}

// ExtractTracking splits the top-level tracking parameters off q. Both
// results keep the original key order.
func ExtractTracking(q *Query) (rest, tracking *Query) {
	rest, tracking = New(), New()
	q.Each(func(k string, v Value) {
		if IsTrackingKey(k) {
			tracking.Set(k, v.clone())
		} else {
			rest.Set(k, v.clone())
		}
	})
	return rest, tracking
}

// ClearTracking returns a copy of q without tracking parameters.
func ClearTracking(q *Query) *Query {
	rest, _ := ExtractTracking(q)
	return rest
}
