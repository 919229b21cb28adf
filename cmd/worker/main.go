// Package main provides the entrypoint for the RideLens backfill worker.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/ridelens/ridelens/internal/config"
	"github.com/ridelens/ridelens/internal/database"
	"github.com/ridelens/ridelens/internal/provider/resilience"
	"github.com/ridelens/ridelens/internal/store"
	"github.com/ridelens/ridelens/internal/telemetry"
	"github.com/ridelens/ridelens/internal/weather"
	"github.com/ridelens/ridelens/internal/weather/openweather"
	"github.com/ridelens/ridelens/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "ridelens-worker"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting RideLens worker")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx := context.Background()
	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Env,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	// The nightly job writes to the shared store; the worker requires
	// Postgres.
	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	repo := store.NewPostgresRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure database schema")
	}
	log.Info().
		Str("host", dbConfig.Host).
		Str("database", dbConfig.Database).
		Msg("database connected")

	// Background fetches tolerate retries; use the full resilient client.
	httpClient := resilience.NewClient(resilience.DefaultClientConfig(openweather.ProviderName))
	provider := openweather.NewClient(openweather.ClientConfig{
		APIKey:     cfg.OpenWeatherAPIKey,
		HTTPClient: httpClient,
		Logger:     log,
	})
	if cfg.OpenWeatherAPIKey == "" {
		log.Warn().Msg("OPENWEATHER_API_KEY not set - scheduled backfills will fail")
	}

	weatherService := weather.NewService(weather.ServiceConfig{
		Provider: provider,
		Recorder: repo,
		Logger:   log,
	})

	job := worker.NewBackfillJob(worker.BackfillJobConfig{
		Config: worker.BackfillConfig{
			Lat:            cfg.Lat,
			Lon:            cfg.Lon,
			Pace:           cfg.BackfillPace,
			RateLimitPause: cfg.RateLimitPause,
		},
		Service: weatherService,
		Logger:  log,
	})

	scheduler := worker.NewScheduler(job, cfg.BackfillSchedule, log)
	if err := scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start scheduler")
	}
	defer scheduler.Stop()

	// Health endpoint for orchestration probes
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","version":"%s"}`, Version)
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("health server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("health server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}
