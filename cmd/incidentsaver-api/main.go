// Command incidentsaver-api serves the incident capture API
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"incidentsaver/internal/core/version"
	"incidentsaver/internal/platform/config"
	"incidentsaver/internal/platform/logger"
	phttp "incidentsaver/internal/platform/net/http"
	"incidentsaver/internal/platform/net/middleware"
	"incidentsaver/internal/platform/store"

	"incidentsaver/internal/services/api"

	"github.com/go-chi/chi/v5"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// every key lives under INCIDENTSAVER_*
	root := config.New().Prefix("INCIDENTSAVER_")
	l := logger.Get()
	l.Info().Str("build", version.Info().String()).Msg("starting")

	st, err := store.Open(ctx, store.FromConfig(root, "incidentsaver"), store.WithLogger(*l))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	if err := st.Guard(ctx); err != nil {
		l.Warn().Err(err).Msg("store not ready yet")
	}

	// http server (reads INCIDENTSAVER_API_PORT)
	srv := phttp.NewServer(root, func(m *chi.Mux) {
		m.Use(middleware.Defaults()...)
		m.Use(middleware.Heartbeat("/ping"))
	})

	api.Mount(srv.Router(), api.FromConfig(root, st))

	if err := srv.Run(ctx, root.MayDuration("API_SHUTDOWN_GRACE", 10*time.Second)); err != nil {
		l.Error().Err(err).Msg("http server stopped")
	}
}
