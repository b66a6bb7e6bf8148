// Command server runs the Eco-Pots registration backend: an HTTP API that
// validates workshop registrations, persists them locally, and delivers them
// through the configured submission backend.
//
//	@title       Eco-Pots Registration API
//	@version     1.0
//	@description Registration pipeline for the Eco-Pots waste-material workshop: validation, local persistence, interchangeable submission backends, and exports.
//	@BasePath    /api/v1
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/ecopots/go-registration-backend/docs"
	"github.com/ecopots/go-registration-backend/internal/config"
	httpapi "github.com/ecopots/go-registration-backend/internal/http"
	"github.com/ecopots/go-registration-backend/internal/observability"
	"github.com/ecopots/go-registration-backend/internal/repo"
	"github.com/ecopots/go-registration-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	gin.SetMode(cfg.GinMode)

	log.Info().
		Str("version", version).
		Str("backend", cfg.Backend).
		Str("db_path", cfg.DBPath).
		Msg("starting registration backend")

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.OTEL.Enabled {
		shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
		if err != nil {
			log.Fatal().Err(err).Msg("setup opentelemetry")
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownOTel(sctx); err != nil {
				log.Warn().Err(err).Msg("opentelemetry shutdown")
			}
		}()
		if err := repo.EnableTracing(db); err != nil {
			log.Warn().Err(err).Msg("enable gorm tracing")
		}
	}

	r := gin.New()
	if err := httpapi.RegisterRoutes(r, db, cfg); err != nil {
		log.Fatal().Err(err).Msg("register routes")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		log.Fatal().Err(err).Msg("http server failed")
	}

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
