package result

import (
	"encoding/json"
	"testing"
)

func TestDetailAccessors(t *testing.T) {
	d := Detail{
		"f":     3.5,
		"i":     7,
		"num":   json.Number("42"),
		"s":     "iqr",
		"b":     true,
		"list":  []any{1.0, 2.0, "skip me", 3},
		"empty": []any{},
		"obj":   map[string]any{"inner": 1.0},
		"objs":  []any{map[string]any{"x": 1.0}, "not an object"},
		"null":  nil,
	}

	t.Run("float accepts numeric types", func(t *testing.T) {
		if v, ok := d.Float("f"); !ok || v != 3.5 {
			t.Errorf("Float(f) = %v, %v", v, ok)
		}
		if v, ok := d.Float("i"); !ok || v != 7 {
			t.Errorf("Float(i) = %v, %v", v, ok)
		}
		if v, ok := d.Float("num"); !ok || v != 42 {
			t.Errorf("Float(num) = %v, %v", v, ok)
		}
		if _, ok := d.Float("s"); ok {
			t.Error("Float(s) accepted a string")
		}
		if _, ok := d.Float("missing"); ok {
			t.Error("Float(missing) reported present")
		}
	})

	t.Run("fallbacks", func(t *testing.T) {
		if v := d.FloatOr("missing", 9.9); v != 9.9 {
			t.Errorf("FloatOr = %v, want 9.9", v)
		}
		if v := d.IntOr("f", 0); v != 3 {
			t.Errorf("IntOr(f) = %v, want truncated 3", v)
		}
		if v := d.StringOr("missing", "def"); v != "def" {
			t.Errorf("StringOr = %q", v)
		}
		if v := d.BoolOr("missing", true); !v {
			t.Error("BoolOr ignored default")
		}
	})

	t.Run("floats skips non numeric elements", func(t *testing.T) {
		v, ok := d.Floats("list")
		if !ok || len(v) != 3 {
			t.Errorf("Floats(list) = %v, %v", v, ok)
		}
	})

	t.Run("present empty list distinct from absent", func(t *testing.T) {
		v, ok := d.Floats("empty")
		if !ok || v == nil || len(v) != 0 {
			t.Errorf("Floats(empty) = %v, %v; want non-nil empty slice", v, ok)
		}
		if _, ok := d.Floats("missing"); ok {
			t.Error("Floats(missing) reported present")
		}
	})

	t.Run("has reports null keys present", func(t *testing.T) {
		if !d.Has("null") {
			t.Error("Has(null) = false, want true")
		}
		if d.Has("missing") {
			t.Error("Has(missing) = true")
		}
	})

	t.Run("nested objects", func(t *testing.T) {
		m, ok := d.Map("obj")
		if !ok || m.FloatOr("inner", 0) != 1 {
			t.Errorf("Map(obj) = %v, %v", m, ok)
		}
		ms, ok := d.Maps("objs")
		if !ok || len(ms) != 1 {
			t.Errorf("Maps(objs) = %v, %v; non-objects should be skipped", ms, ok)
		}
	})
}

func TestRecordUnmarshalNullDetail(t *testing.T) {
	var r Record
	if err := json.Unmarshal([]byte(`{"method":"iqr","sequences_before":100,"sequences_after":90,"reduction_percent":10,"process_details":null}`), &r); err != nil {
		t.Fatal(err)
	}
	if r.Detail == nil {
		t.Fatal("nil detail not replaced with empty map")
	}
	if r.SequencesBefore != 100 || r.SequencesAfter != 90 {
		t.Errorf("counts lost: %+v", r)
	}
}
