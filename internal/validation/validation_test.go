package validation

import "testing"

func TestRequired(t *testing.T) {
	v := Violations{}
	Required("name", "  ", v)
	if v["name"] != "required" {
		t.Fatalf("expected required violation got %#v", v)
	}
	v2 := Violations{}
	Required("name", "Ana", v2)
	if !v2.Empty() {
		t.Fatalf("unexpected violation %#v", v2)
	}
}

func TestPositiveFloat(t *testing.T) {
	v := Violations{}
	PositiveFloat("value", 0, v)
	PositiveFloat("other", -1, v)
	if v["value"] != "must_be_positive" || v["other"] != "must_be_positive" {
		t.Fatalf("expected violations got %#v", v)
	}
	v2 := Violations{}
	PositiveFloat("value", 0.01, v2)
	if !v2.Empty() {
		t.Fatalf("unexpected violation %#v", v2)
	}
}

func TestRangeFloat(t *testing.T) {
	v := Violations{}
	RangeFloat("pct", 101, 0, 100, v)
	RangeFloat("low", -0.5, 0, 100, v)
	if v["pct"] != "out_of_range" || v["low"] != "out_of_range" {
		t.Fatalf("expected violations got %#v", v)
	}
	v2 := Violations{}
	RangeFloat("pct", 0, 0, 100, v2)
	RangeFloat("top", 100, 0, 100, v2)
	if !v2.Empty() {
		t.Fatalf("bounds are inclusive: %#v", v2)
	}
}

func TestISODate(t *testing.T) {
	bad := []string{"", "2026/08/28", "28-08-2026", "2026-8-28", "20260828"}
	for _, s := range bad {
		v := Violations{}
		ISODate("date", s, v)
		if v["date"] != "invalid_date" {
			t.Fatalf("expected invalid_date for %q got %#v", s, v)
		}
	}
	v := Violations{}
	ISODate("date", "2026-08-28", v)
	if !v.Empty() {
		t.Fatalf("unexpected violation %#v", v)
	}
}
