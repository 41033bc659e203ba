package domain

import (
	"strconv"
	"strings"
	"unicode"
)

// Place is a catalog entry describing a tourist destination.
type Place struct {
	ID          string  `json:"_id" bson:"-"`
	Slug        string  `json:"slug" bson:"slug"`
	Name        string  `json:"name" bson:"name"`
	Location    string  `json:"location" bson:"location"`
	Description string  `json:"description" bson:"description"`
	Cost        float64 `json:"cost" bson:"cost"`
	Category    string  `json:"category" bson:"category"`
	Rating      float64 `json:"rating" bson:"rating"`
	Image       string  `json:"image" bson:"image"`
	Coords      *Coords `json:"coords,omitempty" bson:"coords,omitempty"`
}

type Coords struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lon float64 `json:"lon" bson:"lon"`
}

// Valid reports whether c lies inside the WGS 84 range.
func (c Coords) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// POI is a bundled point of interest shown around a place on the map.
type POI struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Coords Coords `json:"coords"`
}

// Slugify lower-cases name and collapses every run of non-alphanumerics into a single '-'.
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// PlaceFilter carries the optional listing criteria. Nil fields impose no constraint.
type PlaceFilter struct {
	MaxCost   *float64
	Category  *string
	MinRating *float64
}

// Matches reports whether p satisfies every criterion set on f.
func (f PlaceFilter) Matches(p Place) bool {
	if f.MaxCost != nil && p.Cost > *f.MaxCost {
		return false
	}
	if f.Category != nil && p.Category != *f.Category {
		return false
	}
	if f.MinRating != nil && p.Rating < *f.MinRating {
		return false
	}
	return true
}

// Key is a stable textual form of f, used for cache keys and logs.
func (f PlaceFilter) Key() string {
	parts := []string{"cost=", "category=", "rating="}
	if f.MaxCost != nil {
		parts[0] += strconv.FormatFloat(*f.MaxCost, 'g', -1, 64)
	}
	if f.Category != nil {
		parts[1] += strconv.Quote(*f.Category)
	}
	if f.MinRating != nil {
		parts[2] += strconv.FormatFloat(*f.MinRating, 'g', -1, 64)
	}
	return strings.Join(parts, "&")
}
