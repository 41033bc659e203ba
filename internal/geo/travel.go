// Package geo estimates straight-line travel between two coordinates.
package geo

import (
	"math"
	"strconv"

	"tourist_places/internal/domain"
)

// EarthRadiusKm is the mean Earth radius used by Haversine.
const EarthRadiusKm = 6371.0

type Mode string

const (
	Walking Mode = "walking"
	Cycling Mode = "cycling"
	Driving Mode = "driving"
)

// Speeds holds the assumed average speed per mode, in km/h.
var Speeds = map[Mode]float64{
	Walking: 3,
	Cycling: 15,
	Driving: 14,
}

// Modes is the display order of the travel panel.
var Modes = []Mode{Walking, Cycling, Driving}

// Haversine returns the great-circle distance in km between a and b.
func Haversine(a, b domain.Coords) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := lat2 - lat1
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	// rounding can push h just past 1 near antipodes
	h = math.Min(1, math.Max(0, h))
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

type ModeEstimate struct {
	Mode     Mode    `json:"mode"`
	SpeedKmh float64 `json:"speed_kmh"`
	// Minutes is nil when the estimate is not available.
	Minutes *int `json:"minutes"`
}

func (m ModeEstimate) String() string {
	if m.Minutes == nil {
		return "N/A"
	}
	return strconv.Itoa(*m.Minutes) + " min"
}

type TravelEstimate struct {
	Available  bool           `json:"available"`
	DistanceKm *float64       `json:"distance_km"`
	Modes      []ModeEstimate `json:"modes"`
}

// For returns the estimate for mode, or a not-available entry for unknown modes.
func (t TravelEstimate) For(mode Mode) ModeEstimate {
	for _, m := range t.Modes {
		if m.Mode == mode {
			return m
		}
	}
	return ModeEstimate{Mode: mode}
}

// Estimate computes per-mode travel minutes from origin to dest.
// A nil coordinate yields an estimate where every mode is not available.
func Estimate(origin, dest *domain.Coords) TravelEstimate {
	out := TravelEstimate{Modes: make([]ModeEstimate, 0, len(Modes))}
	if origin == nil || dest == nil {
		for _, m := range Modes {
			out.Modes = append(out.Modes, ModeEstimate{Mode: m, SpeedKmh: Speeds[m]})
		}
		return out
	}

	d := Haversine(*origin, *dest)
	out.Available = true
	out.DistanceKm = &d
	for _, m := range Modes {
		mins := int(math.Round(d / Speeds[m] * 60))
		out.Modes = append(out.Modes, ModeEstimate{Mode: m, SpeedKmh: Speeds[m], Minutes: &mins})
	}
	return out
}
