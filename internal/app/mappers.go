package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tourist_places/internal/domain"
)

/********** alias registry (single source of truth) **********/

var placeAliases = map[string][]string{
	"name":        {"name", "title", "place", "place_name"},
	"location":    {"location", "city", "address", "address.city"},
	"description": {"description", "desc", "summary", "about"},
	"category":    {"category", "type", "kind"},
	"image":       {"image", "image_url", "imageUrl", "photo", "banner"},
	"cost":        {"cost", "price", "fee", "entry_fee", "ticket_price"},
	"rating":      {"rating", "stars", "score", "rating.value"},
	"lat":         {"lat", "latitude", "coords.lat", "location.lat"},
	"lon":         {"lon", "lng", "longitude", "coords.lon", "coords.lng", "location.lon", "location.lng"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// firstString returns the first non-empty string found under key's aliases.
func firstString(m map[string]any, key string) string {
	for _, p := range placeAliases[key] {
		if s, ok := lookupAny(m, p).(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}

// firstFloat: number under key's aliases (float64 or a numeric string like "4,6").
func firstFloat(m map[string]any, key string) *float64 {
	for _, p := range placeAliases[key] {
		switch v := lookupAny(m, p).(type) {
		case float64:
			f := v
			return &f
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

// pairCoords accepts the [lat, lon] array form used by map coordinate tables.
func pairCoords(m map[string]any) *domain.Coords {
	for _, p := range []string{"coords", "coordinates"} {
		arr, ok := lookupAny(m, p).([]any)
		if !ok || len(arr) != 2 {
			continue
		}
		lat, ok1 := arr[0].(float64)
		lon, ok2 := arr[1].(float64)
		if ok1 && ok2 {
			return &domain.Coords{Lat: lat, Lon: lon}
		}
	}
	return nil
}

/********** place mapper **********/

// mapPlace converts one loosely shaped catalog record into a Place.
func mapPlace(r map[string]any) (domain.Place, error) {
	p := domain.Place{
		Name:        firstString(r, "name"),
		Location:    firstString(r, "location"),
		Description: firstString(r, "description"),
		Category:    firstString(r, "category"),
		Image:       firstString(r, "image"),
	}
	if p.Name == "" {
		return domain.Place{}, &domain.ValidationError{Param: "name", Reason: "is required"}
	}
	p.Slug = domain.Slugify(p.Name)

	if c := firstFloat(r, "cost"); c != nil {
		if *c < 0 {
			return domain.Place{}, &domain.ValidationError{Param: "cost", Reason: "must not be negative"}
		}
		p.Cost = *c
	}
	if v := firstFloat(r, "rating"); v != nil {
		p.Rating = *v
	}

	if c := pairCoords(r); c != nil {
		p.Coords = c
	} else if lat, lon := firstFloat(r, "lat"), firstFloat(r, "lon"); lat != nil && lon != nil {
		p.Coords = &domain.Coords{Lat: *lat, Lon: *lon}
	}
	if p.Coords != nil && !p.Coords.Valid() {
		return domain.Place{}, &domain.ValidationError{Param: "coords", Reason: "out of range"}
	}
	return p, nil
}

// LoadCatalog decodes a JSON array of place records. Records are validated in order and
// the first invalid one aborts the load, naming its index.
func LoadCatalog(r io.Reader) ([]domain.Place, error) {
	var raw []map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	out := make([]domain.Place, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, rec := range raw {
		p, err := mapPlace(rec)
		if err != nil {
			return nil, fmt.Errorf("catalog record %d: %w", i, err)
		}
		if _, dup := seen[p.Name]; dup {
			return nil, fmt.Errorf("catalog record %d: duplicate name %q", i, p.Name)
		}
		seen[p.Name] = struct{}{}
		out = append(out, p)
	}
	return out, nil
}
