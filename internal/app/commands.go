package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"tourist_places/internal/adapters/observability"
	"tourist_places/internal/domain"
)

type SeedService struct {
	store   domain.PlaceStore
	cache   domain.Cache
	catalog []domain.Place
	runs    singleflight.Group
}

// NewSeedService wires the populate operation over a fixed catalog. cache may be nil.
func NewSeedService(s domain.PlaceStore, c domain.Cache, catalog []domain.Place) *SeedService {
	return &SeedService{store: s, cache: c, catalog: catalog}
}

// Populate inserts every catalog place whose name is not stored yet and returns how many
// were written. Concurrent callers in this process share one run and its result.
func (s *SeedService) Populate(ctx context.Context) (int, error) {
	v, err, shared := s.runs.Do("populate", func() (any, error) {
		// the run outlives a caller that disconnects while others wait on it
		return s.populate(context.WithoutCancel(ctx))
	})
	if shared {
		log.Debug().Msg("populate joined an in-flight run")
	}
	n, _ := v.(int)
	return n, err
}

func (s *SeedService) populate(ctx context.Context) (int, error) {
	added := 0
	defer func() {
		observability.ObserveInserted(added)
		// partial runs still change listings
		if added > 0 {
			s.InvalidateListings(ctx)
		}
	}()

	for _, p := range s.catalog {
		ok, err := s.InsertPlace(ctx, p)
		if err != nil {
			return added, err
		}
		if ok {
			added++
		}
	}

	log.Info().Int("added", added).Int("catalog", len(s.catalog)).Msg("populate finished")
	return added, nil
}

// InsertPlace writes p unless its name is already stored. It does not touch the cache;
// bulk callers invoke InvalidateListings once they are done.
func (s *SeedService) InsertPlace(ctx context.Context, p domain.Place) (bool, error) {
	if p.Slug == "" {
		p.Slug = domain.Slugify(p.Name)
	}
	ok, err := s.store.InsertIfAbsent(ctx, p)
	if err != nil {
		return false, fmt.Errorf("insert %q: %w", p.Name, err)
	}
	if ok {
		log.Debug().Str("name", p.Name).Msg("place inserted")
	}
	return ok, nil
}

// InvalidateListings drops every cached listing and place lookup.
func (s *SeedService) InvalidateListings(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DelPattern(ctx, cachePrefix+"*"); err != nil {
		log.Warn().Err(err).Msg("listing cache invalidation failed")
	}
}
