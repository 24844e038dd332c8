package tokens

import (
	"encoding/json"
	"strconv"
)

// Raw is partial, untyped token input as decoded from JSON, YAML, TOML or
// HCL: nested maps keyed by token name.
type Raw map[string]any

// GetPath walks raw along p. ok is false when any segment is missing or a
// non-map value is reached before the end of p.
func GetPath(raw Raw, p Path) (any, bool) {
	var cur any = raw
	for _, key := range p {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// SetPath stores v at p, creating intermediate maps and replacing any
// non-map value found along the way.
func SetPath(raw Raw, p Path, v any) {
	if len(p) == 0 {
		return
	}
	cur := map[string]any(raw)
	for _, key := range p[:len(p)-1] {
		next, ok := asMap(cur[key])
		if !ok {
			next = map[string]any{}
			cur[key] = next
		}
		cur = next
	}
	cur[p[len(p)-1]] = v
}

// String returns the scalar at p formatted as a CSS value. Numbers and
// booleans are rendered as their literal text. ok is false for nil, missing
// and non-scalar values.
func (r Raw) String(p Path) (string, bool) {
	v, ok := GetPath(r, p)
	if !ok {
		return "", false
	}
	return scalar(v)
}

// Explicit reports whether p carries a non-empty scalar value.
func (r Raw) Explicit(p Path) bool {
	s, ok := r.String(p)
	return ok && s != ""
}

func scalar(v any) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case json.Number:
		return v.String(), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case Raw:
		return m, true
	case map[string]any:
		return m, true
	default:
		return nil, false
	}
}
