package main

import (
	"context"
	"os"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"tourist_places/internal/adapters/observability"
	redisad "tourist_places/internal/adapters/redis"
	"tourist_places/internal/app"
	"tourist_places/internal/catalog"
	"tourist_places/internal/domain"
	"tourist_places/internal/shared"
	"tourist_places/internal/storage"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup runs before exiting.
func run() int {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	places := catalog.Places()
	if cfg.SeedCatalog != "" {
		f, err := os.Open(cfg.SeedCatalog)
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.SeedCatalog).Msg("open catalog failed")
		}
		places, err = app.LoadCatalog(f)
		f.Close()
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.SeedCatalog).Msg("load catalog failed")
		}
	}

	log.Info().
		Str("driver", cfg.StoreDriver).
		Int("workers", cfg.SeedWorkers).
		Int("places", len(places)).
		Msg("seeder starting")

	store, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}
	defer closeStore()

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		cache = rc
	}
	svc := app.NewSeedService(store, cache, places)

	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var (
		wg            sync.WaitGroup
		added, failed atomic.Int64
	)
	for _, p := range places {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(p domain.Place) {
			defer wg.Done()
			defer sem.Release(1)

			ok, err := svc.InsertPlace(ctx, p)
			if err != nil {
				failed.Add(1)
				log.Warn().Str("name", p.Name).Err(err).Msg("seed failed")
				return
			}
			if ok {
				added.Add(1)
			}
		}(p)
	}
	wg.Wait()

	if added.Load() > 0 {
		svc.InvalidateListings(ctx)
	}
	log.Info().Int64("added", added.Load()).Int64("failed", failed.Load()).Msg("seeding completed")
	if failed.Load() > 0 {
		return 1
	}
	return 0
}
