package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"shipping-cost-service/internal/api"
	"shipping-cost-service/internal/app"
	"shipping-cost-service/internal/config"
	"shipping-cost-service/internal/platform/obs"
	"strings"
	"syscall"
	"time"

	"github.com/NYTimes/gziphandler"
)

// Requests may walk the whole provider chain for two addresses.
const requestTimeout = 90 * time.Second

// main is the application composition root.
// It wires concrete adapters (Postgres, cache backend, geocoding providers)
// behind ports and starts the HTTP server.
func main() {
	settings := config.Load(config.LoadEnv())
	obs.Init(settings.Env, settings.LogLevel)
	log := obs.Logger()

	if strings.TrimSpace(settings.DatabaseURL) == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, settings)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
	defer a.Close()

	router := api.NewRouter(api.Deps{
		Resolver:   a.Resolver,
		Calculator: a.Calculator,
		Quoter:     a.Quotes,
		Timeout:    requestTimeout,
	})

	srv := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           gziphandler.GzipHandler(router),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      requestTimeout + 30*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("fallback_rate", settings.FallbackRateString()).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
