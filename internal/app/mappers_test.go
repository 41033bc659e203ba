package app_test

import (
	"errors"
	"strings"
	"testing"

	"tourist_places/internal/app"
	"tourist_places/internal/domain"
)

func TestLoadCatalog_AliasesAndCoordinateForms(t *testing.T) {
	in := `[
	  {"name": "Tekri Hill", "location": "Jodhpur, India", "cost": 0, "category": "Hill",
	   "rating": 4.6, "image": "tekri.jpeg", "coords": [26.2700, 73.0100]},
	  {"title": "Kaylana Lake", "city": "Jodhpur, India", "price": "40", "type": "Lake",
	   "stars": "4,4", "photo": "kaylana.jpg", "latitude": 26.2950, "longitude": 72.9680},
	  {"name": "Sardar Market", "fee": 0}
	]`

	ps, err := app.LoadCatalog(strings.NewReader(in))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(ps) != 3 {
		t.Fatalf("expected 3 places, got %d", len(ps))
	}

	if ps[0].Slug != "tekri-hill" || ps[0].Coords == nil || ps[0].Coords.Lon != 73.0100 {
		t.Fatalf("unexpected first place: %+v", ps[0])
	}
	k := ps[1]
	if k.Name != "Kaylana Lake" || k.Cost != 40 || k.Rating != 4.4 || k.Category != "Lake" ||
		k.Image != "kaylana.jpg" || k.Coords == nil || k.Coords.Lat != 26.2950 {
		t.Fatalf("unexpected aliased place: %+v", k)
	}
	if ps[2].Coords != nil {
		t.Fatalf("expected no coordinates, got %+v", ps[2].Coords)
	}
}

func TestLoadCatalog_Rejects(t *testing.T) {
	cases := map[string]string{
		"missing name": `[{"cost": 1}]`,
		"negative":     `[{"name": "x", "cost": -5}]`,
		"bad coords":   `[{"name": "x", "coords": [100, 10]}]`,
		"duplicate":    `[{"name": "x"}, {"name": "x"}]`,
		"not json":     `{"name": "x"`,
	}
	for name, in := range cases {
		if _, err := app.LoadCatalog(strings.NewReader(in)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}

	_, err := app.LoadCatalog(strings.NewReader(`[{"name": "ok"}, {"cost": 1}]`))
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Param != "name" || !strings.Contains(err.Error(), "record 1") {
		t.Fatalf("expected validation error naming record 1, got %v", err)
	}
}
