package catalog_test

import (
	"sort"
	"testing"

	"tourist_places/internal/catalog"
	"tourist_places/internal/domain"
)

func TestPlaces_UniqueNamesAndSlugs(t *testing.T) {
	names := map[string]bool{}
	slugs := map[string]bool{}
	for _, p := range catalog.Places() {
		if names[p.Name] {
			t.Fatalf("duplicate name %q", p.Name)
		}
		if slugs[p.Slug] {
			t.Fatalf("duplicate slug %q", p.Slug)
		}
		names[p.Name], slugs[p.Slug] = true, true
		if p.Coords == nil || !p.Coords.Valid() {
			t.Fatalf("%s: missing or invalid coordinates", p.Name)
		}
	}
	if len(names) != 11 {
		t.Fatalf("expected 11 catalog places, got %d", len(names))
	}
}

func TestPlaces_ReturnsCopies(t *testing.T) {
	a := catalog.Places()
	a[0].Name = "mutated"
	a[0].Coords.Lat = 0
	b := catalog.Places()
	if b[0].Name == "mutated" || b[0].Coords.Lat == 0 {
		t.Fatalf("catalog was mutated through a returned copy: %+v", b[0])
	}
}

func TestPlaces_HistoricalUnderThirty(t *testing.T) {
	maxCost, category := 30.0, "Historical"
	f := domain.PlaceFilter{MaxCost: &maxCost, Category: &category}

	var got []string
	for _, p := range catalog.Places() {
		if f.Matches(p) {
			got = append(got, p.Name)
		}
	}
	sort.Strings(got)
	want := []string{"Ghanta Ghar", "Jaswant Thada", "Panchkund Chattriya", "Toorji ka Jhalra", "Umaid Bhawan"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
