// Package storage selects and opens the configured PlaceStore.
package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"tourist_places/internal/domain"
	"tourist_places/internal/shared"
	"tourist_places/internal/storage/memory"
	mongostore "tourist_places/internal/storage/mongo"
	mysqlrepo "tourist_places/internal/storage/mysql"
)

// Open connects the driver named in cfg.StoreDriver and prepares its indexes or schema.
// The returned close func releases the connection.
func Open(ctx context.Context, cfg shared.Config) (domain.PlaceStore, func(), error) {
	switch cfg.StoreDriver {
	case shared.DriverMemory:
		log.Warn().Msg("using in-memory store; data is lost on restart")
		return memory.New(), func() {}, nil

	case shared.DriverMySQL:
		db, err := mysqlrepo.Open(ctx, cfg.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		repo := mysqlrepo.New(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("mysql schema: %w", err)
		}
		log.Info().Msg("database connection ok")
		return repo, func() { _ = db.Close() }, nil

	case shared.DriverMongo:
		client, err := mongostore.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		store := mongostore.New(client, cfg.MongoDB)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, fmt.Errorf("mongo indexes: %w", err)
		}
		return store, func() { _ = client.Disconnect(context.Background()) }, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
