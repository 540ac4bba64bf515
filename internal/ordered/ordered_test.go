package ordered_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-promptform/internal/ordered"
)

func TestMap_PreservesInsertionOrder(t *testing.T) {
	var m ordered.Map[int]
	m.Set("charlie", 3)
	m.Set("alpha", 1)
	m.Set("bravo", 2)

	want := []string{"charlie", "alpha", "bravo"}
	if diff := cmp.Diff(want, m.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestMap_ReplaceKeepsPosition(t *testing.T) {
	var m ordered.Map[string]
	m.Set("a", "one")
	m.Set("b", "two")
	m.Set("a", "replaced")

	if diff := cmp.Diff([]string{"a", "b"}, m.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	got, ok := m.Get("a")
	if !ok || got != "replaced" {
		t.Fatalf("Get(a) = %q, %v; want replaced, true", got, ok)
	}
	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}
}

func TestMap_VisitStopsEarly(t *testing.T) {
	var m ordered.Map[int]
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)

	var seen []string
	m.Visit(func(key string, _ int) bool {
		seen = append(seen, key)
		return key != "b"
	})

	if diff := cmp.Diff([]string{"a", "b"}, seen); diff != "" {
		t.Fatalf("visit order mismatch (-want +got):\n%s", diff)
	}
}

func TestMap_ZeroValue(t *testing.T) {
	var m ordered.Map[string]
	if m.Len() != 0 {
		t.Fatalf("zero map Len() = %d, want 0", m.Len())
	}
	if _, ok := m.Get("missing"); ok {
		t.Fatal("zero map reported a missing key as present")
	}
	if m.Has("missing") {
		t.Fatal("zero map Has(missing) = true")
	}
}
