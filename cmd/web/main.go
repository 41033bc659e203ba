package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	server "tourist_places/internal/adapters/http_server"
	"tourist_places/internal/adapters/observability"
	"tourist_places/internal/adapters/placesapi"
	"tourist_places/internal/adapters/web"
	"tourist_places/internal/shared"
)

func main() {
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := placesapi.New(cfg.APIBaseURL, 20)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize places API client")
	}
	pages, err := web.NewHandlers(client, client.Base())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load page templates")
	}

	reg := observability.InitRegistry()

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(server.Timeout(15 * time.Second))
	r.Use(server.Metrics)
	r.Use(server.Logger(log.Logger))
	r.Handle("/metrics", observability.MetricsHandler(reg))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	pages.Routes(r)

	httpSrv := &http.Server{Addr: cfg.WebAddr, Handler: r, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", cfg.WebAddr).Str("api", client.Base()).Msg("web listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
