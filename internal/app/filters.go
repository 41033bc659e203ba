package app

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"tourist_places/internal/domain"
)

// Listing query parameters.
const (
	ParamCost     = "cost"
	ParamCategory = "category"
	ParamRating   = "rating"
)

// ParseFilter builds a filter from listing query parameters. Empty parameters are absent;
// numeric parameters that do not parse to a finite number yield a *domain.ValidationError.
func ParseFilter(q url.Values) (domain.PlaceFilter, error) {
	var f domain.PlaceFilter

	maxCost, err := parseNumber(q, ParamCost)
	if err != nil {
		return domain.PlaceFilter{}, err
	}
	f.MaxCost = maxCost

	if c := q.Get(ParamCategory); c != "" {
		f.Category = &c
	}

	minRating, err := parseNumber(q, ParamRating)
	if err != nil {
		return domain.PlaceFilter{}, err
	}
	f.MinRating = minRating

	return f, nil
}

func parseNumber(q url.Values, param string) (*float64, error) {
	raw := strings.TrimSpace(q.Get(param))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, &domain.ValidationError{Param: param, Reason: "must be a number"}
	}
	return &v, nil
}

// FilterValues is the inverse of ParseFilter.
func FilterValues(f domain.PlaceFilter) url.Values {
	q := url.Values{}
	if f.MaxCost != nil {
		q.Set(ParamCost, strconv.FormatFloat(*f.MaxCost, 'f', -1, 64))
	}
	if f.Category != nil {
		q.Set(ParamCategory, *f.Category)
	}
	if f.MinRating != nil {
		q.Set(ParamRating, strconv.FormatFloat(*f.MinRating, 'f', -1, 64))
	}
	return q
}

// ParseCoords reads a best-effort user location. Missing, malformed or out-of-range
// input yields nil rather than an error.
func ParseCoords(lat, lon string) *domain.Coords {
	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return nil
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return nil
	}
	c := domain.Coords{Lat: la, Lon: lo}
	if !c.Valid() {
		return nil
	}
	return &c
}
