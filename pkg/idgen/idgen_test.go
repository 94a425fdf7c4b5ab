package idgen

import "testing"

func TestSequential(t *testing.T) {
	gen := Sequential("element")
	if got := gen(); got != "element-1" {
		t.Errorf("first id = %q", got)
	}
	if got := gen(); got != "element-2" {
		t.Errorf("second id = %q", got)
	}
	// Independent generators do not share counters.
	other := Sequential("element")
	if got := other(); got != "element-1" {
		t.Errorf("fresh generator start = %q", got)
	}
}

func TestUUIDv7Unique(t *testing.T) {
	gen := UUIDv7()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := gen()
		if id == "" {
			t.Fatal("empty id")
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestNewSetPrefixes(t *testing.T) {
	s := NewSet()
	if got := s.Element(); got != "element-1" {
		t.Errorf("element id = %q", got)
	}
	if got := s.Page(); got != "page-1" {
		t.Errorf("page id = %q", got)
	}
}
