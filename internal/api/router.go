// Package api provides the HTTP API for RideLens.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ridelens/ridelens/internal/api/handler"
	"github.com/ridelens/ridelens/internal/api/middleware"
	"github.com/ridelens/ridelens/internal/provider/resilience"
	"github.com/ridelens/ridelens/internal/store"
	"github.com/ridelens/ridelens/internal/weather"
	"github.com/ridelens/ridelens/internal/worker"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics

	WeatherService *weather.Service
	Repository     store.Repository
	BackfillJob    *worker.BackfillJob
	Registry       *resilience.Registry
	StorePinger    handler.Pinger

	DefaultLat float64
	DefaultLon float64
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "ridelens-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction

	// Initialize handlers
	var backfillStats handler.BackfillStats
	if cfg.BackfillJob != nil {
		backfillStats = cfg.BackfillJob
	}
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.StorePinger, cfg.Registry, backfillStats)
	weatherHandler := handler.NewWeatherHandler(cfg.WeatherService, cfg.Repository, cfg.DefaultLat, cfg.DefaultLon)
	ridesHandler := handler.NewRidesHandler(cfg.Repository)
	analysisHandler := handler.NewAnalysisHandler(cfg.Repository)
	backfillHandler := handler.NewBackfillHandler(cfg.BackfillJob, cfg.Logger)

	// Rate limit middleware per endpoint category
	adminRateLimit := middleware.RateLimitByIP(middleware.AdminRateLimit)       // 10 req/min
	weatherRateLimit := middleware.RateLimitByIP(middleware.WeatherRateLimit)   // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit) // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (no rate limit - probed by orchestration)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})

		// Weather endpoints
		r.Route("/weather", func(r chi.Router) {
			// Live fetch hits the provider on every request
			r.With(weatherRateLimit).Get("/current", weatherHandler.Current)
			r.With(standardRateLimit).Get("/daily", weatherHandler.Daily)
		})

		// Ride count endpoints
		r.With(standardRateLimit).Get("/rides/daily", ridesHandler.Daily)

		// Analysis endpoints
		r.With(standardRateLimit).Get("/analysis/summary", analysisHandler.Summary)

		// Admin endpoints - each call can fan out to hundreds of provider
		// requests, so the limit is strict
		r.Route("/admin", func(r chi.Router) {
			r.Use(adminRateLimit)
			r.Post("/backfill", backfillHandler.Trigger)
		})
	})

	return r
}
