package models

import "time"

// Metadata is the open key/value bag attached to a transaction by the
// ledger (stored as JSONB). Values are restricted to strings, numbers and
// timestamps; accessors treat anything malformed as absent so that
// consumers fall back to their documented defaults instead of failing.
type Metadata map[string]any

// StringVal returns the string stored under key, or false if the key is
// absent or holds a non-string value.
func (m Metadata) StringVal(key string) (string, bool) {
	v, ok := m[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// TimeVal returns the timestamp stored under key. Timestamps may arrive as
// RFC 3339 strings, as unix seconds (JSON numbers decode to float64), or as
// time.Time when the metadata was built in-process. Anything else counts
// as absent.
func (m Metadata) TimeVal(key string) (time.Time, bool) {
	v, ok := m[key]
	if !ok {
		return time.Time{}, false
	}
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	case float64:
		return time.Unix(int64(t), 0).UTC(), true
	case int64:
		return time.Unix(t, 0).UTC(), true
	case int:
		return time.Unix(int64(t), 0).UTC(), true
	default:
		return time.Time{}, false
	}
}
