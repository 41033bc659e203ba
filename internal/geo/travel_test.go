package geo_test

import (
	"math"
	"testing"

	"tourist_places/internal/domain"
	"tourist_places/internal/geo"
)

func TestHaversine_ZeroDistance(t *testing.T) {
	p := domain.Coords{Lat: 26.2992, Lon: 73.0265}
	if d := geo.Haversine(p, p); d != 0 {
		t.Fatalf("expected 0, got %f", d)
	}
}

func TestHaversine_KnownPair(t *testing.T) {
	tekri := domain.Coords{Lat: 26.2700, Lon: 73.0100}
	umaid := domain.Coords{Lat: 26.2673, Lon: 73.0310}

	d := geo.Haversine(tekri, umaid)
	if math.Abs(d-2.115) > 0.01 {
		t.Fatalf("unexpected distance: %f km", d)
	}
	if back := geo.Haversine(umaid, tekri); math.Abs(back-d) > 1e-9 {
		t.Fatalf("distance not symmetric: %f vs %f", d, back)
	}
}

func TestEstimate_KnownPair(t *testing.T) {
	tekri := domain.Coords{Lat: 26.2700, Lon: 73.0100}
	umaid := domain.Coords{Lat: 26.2673, Lon: 73.0310}

	est := geo.Estimate(&tekri, &umaid)
	if !est.Available || est.DistanceKm == nil {
		t.Fatalf("expected available estimate: %+v", est)
	}

	want := map[geo.Mode]int{geo.Walking: 42, geo.Cycling: 8, geo.Driving: 9}
	for mode, mins := range want {
		got := est.For(mode)
		if got.Minutes == nil {
			t.Fatalf("%s: minutes missing", mode)
		}
		if diff := *got.Minutes - mins; diff < -1 || diff > 1 {
			t.Fatalf("%s: expected ~%d min, got %d", mode, mins, *got.Minutes)
		}
	}
	if s := est.For(geo.Walking).String(); s != "42 min" {
		t.Fatalf("unexpected walking label %q", s)
	}
}

func TestEstimate_SamePointIsZero(t *testing.T) {
	p := domain.Coords{Lat: 26.2981, Lon: 73.0182}
	est := geo.Estimate(&p, &p)
	for _, m := range est.Modes {
		if m.Minutes == nil || *m.Minutes != 0 {
			t.Fatalf("%s: expected 0 min, got %v", m.Mode, m.Minutes)
		}
	}
}

func TestEstimate_MissingCoordinate(t *testing.T) {
	p := domain.Coords{Lat: 26.2981, Lon: 73.0182}
	cases := []struct {
		name         string
		origin, dest *domain.Coords
	}{
		{"no origin", nil, &p},
		{"no destination", &p, nil},
		{"neither", nil, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			est := geo.Estimate(tc.origin, tc.dest)
			if est.Available || est.DistanceKm != nil {
				t.Fatalf("expected unavailable estimate: %+v", est)
			}
			if len(est.Modes) != len(geo.Modes) {
				t.Fatalf("expected %d modes, got %d", len(geo.Modes), len(est.Modes))
			}
			for _, m := range est.Modes {
				if m.Minutes != nil || m.String() != "N/A" {
					t.Fatalf("%s: expected N/A, got %s", m.Mode, m.String())
				}
			}
		})
	}
}

func TestHaversine_AntipodesStayFinite(t *testing.T) {
	surpura := domain.Coords{Lat: 26.285, Lon: 73.045}
	opposite := domain.Coords{Lat: -26.285, Lon: -106.955}

	d := geo.Haversine(surpura, opposite)
	if math.IsNaN(d) || math.IsInf(d, 0) {
		t.Fatalf("distance is not finite: %f", d)
	}
	halfCircumference := math.Pi * geo.EarthRadiusKm
	if math.Abs(d-halfCircumference) > 1 {
		t.Fatalf("expected about %.0f km, got %f", halfCircumference, d)
	}

	est := geo.Estimate(&opposite, &surpura)
	for _, m := range est.Modes {
		if m.Minutes == nil || *m.Minutes <= 0 {
			t.Fatalf("%s: unexpected minutes %v", m.Mode, m.Minutes)
		}
	}
}

func TestHaversine_NearAntipodalGridIsFinite(t *testing.T) {
	for lat := -89.5; lat <= 89.5; lat += 7.25 {
		for lon := -179.5; lon <= 179.5; lon += 11.75 {
			a := domain.Coords{Lat: lat, Lon: lon}
			anti := lon + 180
			if anti > 180 {
				anti -= 360
			}
			b := domain.Coords{Lat: -lat, Lon: anti}
			if d := geo.Haversine(a, b); math.IsNaN(d) || d > math.Pi*geo.EarthRadiusKm+1e-6 {
				t.Fatalf("%+v -> %+v: distance %f", a, b, d)
			}
		}
	}
}
