package app_test

import (
	"context"
	"path"
	"sync"

	"tourist_places/internal/domain"
)

// ---- fakes ----

type fakeStore struct {
	mu       sync.Mutex
	places   []domain.Place
	finds    int
	failName string // InsertIfAbsent fails for this name
	findErr  error
}

func (f *fakeStore) InsertIfAbsent(ctx context.Context, p domain.Place) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.Name == f.failName {
		return false, errBoom
	}
	for _, q := range f.places {
		if q.Name == p.Name {
			return false, nil
		}
	}
	f.places = append(f.places, p)
	return true, nil
}

func (f *fakeStore) Find(ctx context.Context, flt domain.PlaceFilter) ([]domain.Place, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finds++
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []domain.Place
	for _, p := range f.places {
		if flt.Matches(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) FindBySlug(ctx context.Context, slug string) (domain.Place, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.places {
		if p.Slug == slug {
			return p, nil
		}
	}
	return domain.Place{}, domain.ErrNotFound
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.places)
}

type fakeCache struct {
	mu    sync.Mutex
	store map[string]any
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *[]domain.Place:
		*d = append([]domain.Place(nil), v.([]domain.Place)...)
	case *domain.Place:
		*d = v.(domain.Place)
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string]any{}
	}
	if ps, ok := v.([]domain.Place); ok {
		v = append([]domain.Place(nil), ps...)
	}
	c.store[key] = v
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

func (c *fakeCache) DelPattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.store {
		if ok, _ := path.Match(pattern, k); ok {
			delete(c.store, k)
		}
	}
	return nil
}

func (c *fakeCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.store)
}

type boom struct{}

func (boom) Error() string { return "boom" }

var errBoom error = boom{}

func ptr[T any](v T) *T { return &v }
