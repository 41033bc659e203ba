package domain_test

import (
	"testing"

	"tourist_places/internal/domain"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Jaswant Thada":       "jaswant-thada",
		"jaswant thada":       "jaswant-thada",
		"JASWANT THADA":       "jaswant-thada",
		"  Toorji Ka Jhalra ": "toorji-ka-jhalra",
		"Mehrangarh fort":     "mehrangarh-fort",
		"jaswant-thada":       "jaswant-thada",
		"a -- b!":             "a-b",
		"":                    "",
	}
	for in, want := range cases {
		if got := domain.Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPlaceFilter_Matches(t *testing.T) {
	p := domain.Place{Name: "Jaswant Thada", Cost: 30, Category: "Historical", Rating: 4.6}

	cases := []struct {
		name string
		f    domain.PlaceFilter
		want bool
	}{
		{"empty filter", domain.PlaceFilter{}, true},
		{"cost at boundary", domain.PlaceFilter{MaxCost: ptr(30.0)}, true},
		{"cost below", domain.PlaceFilter{MaxCost: ptr(29.99)}, false},
		{"category exact", domain.PlaceFilter{Category: ptr("Historical")}, true},
		{"category case-sensitive", domain.PlaceFilter{Category: ptr("historical")}, false},
		{"rating at boundary", domain.PlaceFilter{MinRating: ptr(4.6)}, true},
		{"rating above", domain.PlaceFilter{MinRating: ptr(4.7)}, false},
		{"all satisfied", domain.PlaceFilter{MaxCost: ptr(50.0), Category: ptr("Historical"), MinRating: ptr(4.0)}, true},
		{"one fails", domain.PlaceFilter{MaxCost: ptr(50.0), Category: ptr("Fort"), MinRating: ptr(4.0)}, false},
	}
	for _, tc := range cases {
		if got := tc.f.Matches(p); got != tc.want {
			t.Errorf("%s: Matches = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestPlaceFilter_Key(t *testing.T) {
	if k := (domain.PlaceFilter{}).Key(); k != "cost=&category=&rating=" {
		t.Fatalf("unexpected empty key %q", k)
	}
	a := domain.PlaceFilter{MaxCost: ptr(30.0), Category: ptr("Hill")}
	b := domain.PlaceFilter{MaxCost: ptr(30.0), Category: ptr("Hill")}
	if a.Key() != b.Key() {
		t.Fatalf("equal filters produced different keys: %q vs %q", a.Key(), b.Key())
	}
	if a.Key() == (domain.PlaceFilter{MaxCost: ptr(30.0)}).Key() {
		t.Fatalf("different filters share a key")
	}
}

func TestCoords_Valid(t *testing.T) {
	if !(domain.Coords{Lat: 26.27, Lon: 73.01}).Valid() {
		t.Fatal("expected Jodhpur coordinates to be valid")
	}
	if (domain.Coords{Lat: 91, Lon: 0}).Valid() || (domain.Coords{Lat: 0, Lon: -181}).Valid() {
		t.Fatal("expected out-of-range coordinates to be invalid")
	}
}

func ptr[T any](v T) *T { return &v }
