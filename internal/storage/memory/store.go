// Package memory keeps places in process memory. It backs STORE_DRIVER=memory and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"tourist_places/internal/adapters/observability"
	"tourist_places/internal/domain"
)

const driver = "memory"

type Store struct {
	mu     sync.RWMutex
	places []domain.Place
	byName map[string]int
	bySlug map[string]int
}

func New() *Store {
	return &Store{byName: map[string]int{}, bySlug: map[string]int{}}
}

func (s *Store) InsertIfAbsent(ctx context.Context, p domain.Place) (ok bool, err error) {
	defer func(start time.Time) { observability.ObserveStore(driver, "insert", err, start) }(time.Now())
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byName[p.Name]; exists {
		return false, nil
	}
	if p.Slug == "" {
		p.Slug = domain.Slugify(p.Name)
	}
	if _, exists := s.bySlug[p.Slug]; exists {
		return false, nil
	}

	p.ID = uuid.NewString()
	if p.Coords != nil {
		c := *p.Coords
		p.Coords = &c
	}
	s.places = append(s.places, p)
	s.byName[p.Name] = len(s.places) - 1
	s.bySlug[p.Slug] = len(s.places) - 1
	return true, nil
}

// Find returns matches in insertion order.
func (s *Store) Find(ctx context.Context, f domain.PlaceFilter) (out []domain.Place, err error) {
	defer func(start time.Time) { observability.ObserveStore(driver, "find", err, start) }(time.Now())
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out = []domain.Place{}
	for _, p := range s.places {
		if f.Matches(p) {
			out = append(out, clone(p))
		}
	}
	return out, nil
}

func (s *Store) FindBySlug(ctx context.Context, slug string) (p domain.Place, err error) {
	defer func(start time.Time) { observability.ObserveStore(driver, "find_slug", err, start) }(time.Now())
	if err := ctx.Err(); err != nil {
		return domain.Place{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.bySlug[slug]
	if !ok {
		return domain.Place{}, domain.ErrNotFound
	}
	return clone(s.places[i]), nil
}

// Len reports how many places are stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.places)
}

func clone(p domain.Place) domain.Place {
	if p.Coords != nil {
		c := *p.Coords
		p.Coords = &c
	}
	return p
}
