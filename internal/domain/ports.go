package domain

import "context"

type PlaceStore interface {
	// Write paths
	// InsertIfAbsent stores p unless a place with the same name exists.
	// It reports whether a new record was written.
	InsertIfAbsent(ctx context.Context, p Place) (bool, error)

	// Read paths
	Find(ctx context.Context, f PlaceFilter) ([]Place, error)
	FindBySlug(ctx context.Context, slug string) (Place, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
	DelPattern(ctx context.Context, pattern string) error
}
