// Package main provides the entrypoint for the RideLens API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/ridelens/ridelens/internal/api"
	"github.com/ridelens/ridelens/internal/api/handler"
	"github.com/ridelens/ridelens/internal/api/middleware"
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
	const serviceName = "ridelens-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting RideLens API")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Initialize OpenTelemetry
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

	if cfg.OTELEnabled {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Choose the store backend. Postgres is the default; memory is for
	// local runs without a database.
	var (
		repo   store.Repository
		pinger handler.Pinger
	)
	if os.Getenv("STORE_BACKEND") == "memory" {
		repo = store.NewMemoryRepository()
		log.Warn().Msg("using in-memory store, data will not survive restarts")
	} else {
		dbConfig := database.ConfigFromEnv()
		pool, err := database.Connect(ctx, dbConfig)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()

		pg := store.NewPostgresRepository(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to ensure database schema")
		}
		repo = pg
		pinger = pool
		log.Info().
			Str("host", dbConfig.Host).
			Int("port", dbConfig.Port).
			Str("database", dbConfig.Database).
			Msg("database connected")
	}

	// Weather provider: single-attempt client, tracked in the registry so
	// the ops status endpoint can report on it.
	httpClient := resilience.NewClient(resilience.SingleAttemptConfig(openweather.ProviderName))
	registry := resilience.NewRegistry()
	registry.Register(openweather.ProviderName, httpClient)

	provider := openweather.NewClient(openweather.ClientConfig{
		APIKey:     cfg.OpenWeatherAPIKey,
		HTTPClient: httpClient,
		Logger:     log,
	})
	if cfg.OpenWeatherAPIKey == "" {
		log.Warn().Msg("OPENWEATHER_API_KEY not set - weather fetches will fail")
	}

	weatherService := weather.NewService(weather.ServiceConfig{
		Provider: provider,
		Recorder: repo,
		Logger:   log,
	})

	backfillJob := worker.NewBackfillJob(worker.BackfillJobConfig{
		Config: worker.BackfillConfig{
			Lat:            cfg.Lat,
			Lon:            cfg.Lon,
			Pace:           cfg.BackfillPace,
			RateLimitPause: cfg.RateLimitPause,
		},
		Service: weatherService,
		Logger:  log,
	})

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:        Version,
		BuildTime:      BuildTime,
		Logger:         log,
		ServiceName:    serviceName,
		Metrics:        metrics,
		WeatherService: weatherService,
		Repository:     repo,
		BackfillJob:    backfillJob,
		Registry:       registry,
		StorePinger:    pinger,
		DefaultLat:     cfg.Lat,
		DefaultLon:     cfg.Lon,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
