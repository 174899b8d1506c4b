package result

import "encoding/json"

// Detail is the raw, method-specific payload attached to a Record. The shape
// is whatever the engine version that produced it emitted, so all access
// goes through these accessors: each returns the zero value plus false when
// the key is absent or holds an unexpected type. Absence of a non-essential
// field degrades to a default; it is never an error here.
type Detail map[string]any

// Has reports whether the key is present at all, regardless of its value.
// Interpreters use this to distinguish "field absent" from "field empty".
func (d Detail) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// Float reads a numeric field. JSON numbers decode as float64, but payloads
// that passed through other layers may carry ints.
func (d Detail) Float(key string) (float64, bool) {
	switch v := d[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}

// FloatOr reads a numeric field, falling back to def when absent.
func (d Detail) FloatOr(key string, def float64) float64 {
	if v, ok := d.Float(key); ok {
		return v
	}
	return def
}

// Int reads an integral field, truncating float payloads.
func (d Detail) Int(key string) (int, bool) {
	v, ok := d.Float(key)
	return int(v), ok
}

// IntOr reads an integral field, falling back to def when absent.
func (d Detail) IntOr(key string, def int) int {
	if v, ok := d.Int(key); ok {
		return v
	}
	return def
}

// String reads a string field.
func (d Detail) String(key string) (string, bool) {
	v, ok := d[key].(string)
	return v, ok
}

// StringOr reads a string field, falling back to def when absent.
func (d Detail) StringOr(key, def string) string {
	if v, ok := d.String(key); ok {
		return v
	}
	return def
}

// Bool reads a boolean field.
func (d Detail) Bool(key string) (bool, bool) {
	v, ok := d[key].(bool)
	return v, ok
}

// BoolOr reads a boolean field, falling back to def when absent.
func (d Detail) BoolOr(key string, def bool) bool {
	if v, ok := d.Bool(key); ok {
		return v
	}
	return def
}

// Floats reads a numeric list, skipping elements of unexpected type. A
// present-but-empty list returns an empty non-nil slice, so callers can tell
// it apart from an absent key.
func (d Detail) Floats(key string) ([]float64, bool) {
	raw, ok := d[key].([]any)
	if !ok {
		return nil, false
	}
	out := make([]float64, 0, len(raw))
	for _, e := range raw {
		switch v := e.(type) {
		case float64:
			out = append(out, v)
		case int:
			out = append(out, float64(v))
		}
	}
	return out, true
}

// FloatsOr reads a numeric list, falling back to an empty slice when absent.
func (d Detail) FloatsOr(key string) []float64 {
	v, _ := d.Floats(key)
	return v
}

// Map reads a nested object as a Detail.
func (d Detail) Map(key string) (Detail, bool) {
	switch v := d[key].(type) {
	case map[string]any:
		return Detail(v), true
	case Detail:
		return v, true
	}
	return nil, false
}

// Maps reads a list of nested objects, skipping non-object elements.
func (d Detail) Maps(key string) ([]Detail, bool) {
	raw, ok := d[key].([]any)
	if !ok {
		return nil, false
	}
	out := make([]Detail, 0, len(raw))
	for _, e := range raw {
		if m, mok := e.(map[string]any); mok {
			out = append(out, Detail(m))
		}
	}
	return out, true
}
