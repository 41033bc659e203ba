package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"tourist_places/internal/domain"
	"tourist_places/internal/geo"
)

// Every cache key written by the query service starts with this prefix, so a single
// pattern delete drops them all.
const cachePrefix = "places:"

type QueryService struct {
	store    domain.PlaceStore
	cache    domain.Cache
	cacheTTL time.Duration
	nearby   []domain.POI
}

// NewQueryService wires the read side. cache may be nil to disable caching.
func NewQueryService(s domain.PlaceStore, c domain.Cache, ttl time.Duration, nearby []domain.POI) *QueryService {
	return &QueryService{store: s, cache: c, cacheTTL: ttl, nearby: nearby}
}

// MapView is everything the map page renders for one place.
type MapView struct {
	Place  domain.Place       `json:"place"`
	Nearby []domain.POI       `json:"nearby"`
	User   *domain.Coords     `json:"user,omitempty"`
	Route  []domain.Coords    `json:"route,omitempty"`
	Travel geo.TravelEstimate `json:"travel"`
}

func (s *QueryService) cacheEnabled() bool { return s.cache != nil && s.cacheTTL > 0 }

func (s *QueryService) ListPlaces(ctx context.Context, f domain.PlaceFilter) ([]domain.Place, error) {
	key := cachePrefix + "list:" + f.Key()
	if s.cacheEnabled() {
		var cached []domain.Place
		if ok, err := s.cache.Get(ctx, key, &cached); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		} else if ok {
			if cached == nil {
				cached = []domain.Place{}
			}
			return cached, nil
		}
	}

	ps, err := s.store.Find(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("find places: %w", err)
	}
	if ps == nil {
		ps = []domain.Place{}
	}

	if s.cacheEnabled() {
		if err := s.cache.Set(ctx, key, ps, int(s.cacheTTL.Seconds())); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache set failed")
		}
	}
	return ps, nil
}

// GetPlace resolves key (a display name in any letter case, or a slug) to a stored place.
func (s *QueryService) GetPlace(ctx context.Context, key string) (domain.Place, error) {
	slug := domain.Slugify(key)
	if slug == "" {
		return domain.Place{}, domain.ErrNotFound
	}

	ck := cachePrefix + "slug:" + slug
	if s.cacheEnabled() {
		var p domain.Place
		if ok, err := s.cache.Get(ctx, ck, &p); err == nil && ok {
			return p, nil
		}
	}

	p, err := s.store.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Place{}, err
		}
		return domain.Place{}, fmt.Errorf("find place %q: %w", slug, err)
	}

	if s.cacheEnabled() {
		_ = s.cache.Set(ctx, ck, p, int(s.cacheTTL.Seconds()))
	}
	return p, nil
}

// MapView resolves the place and computes the straight-line estimate from user, if known.
// A place without coordinates cannot be mapped and is reported as not found.
func (s *QueryService) MapView(ctx context.Context, key string, user *domain.Coords) (MapView, error) {
	p, err := s.GetPlace(ctx, key)
	if err != nil {
		return MapView{}, err
	}
	if p.Coords == nil {
		return MapView{}, domain.ErrNotFound
	}

	mv := MapView{
		Place:  p,
		Nearby: append([]domain.POI{}, s.nearby...),
		User:   user,
		Travel: geo.Estimate(user, p.Coords),
	}
	if user != nil {
		mv.Route = []domain.Coords{*user, *p.Coords}
	}
	return mv, nil
}
