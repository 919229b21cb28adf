// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Default analysis location: Washington DC.
const (
	DefaultLat = 38.9072
	DefaultLon = -77.0369
)

// Config holds application configuration shared by the API and the worker.
type Config struct {
	// Env is the deployment environment (development, production).
	Env string

	// Port is the HTTP listen port.
	Port string

	// OpenWeatherAPIKey is the OpenWeather credential. May be empty at
	// startup; the fetch path rejects calls without it.
	OpenWeatherAPIKey string

	// NOAAToken is the Climate Data Online credential (optional).
	NOAAToken string

	// Lat/Lon is the analysis location.
	Lat float64
	Lon float64

	// BackfillPace is the delay between historical fetches.
	BackfillPace time.Duration

	// RateLimitPause is how long to wait after a provider 429.
	RateLimitPause time.Duration

	// BackfillSchedule is the cron expression for the nightly backfill.
	BackfillSchedule string

	// OTLPEndpoint and OTELEnabled configure telemetry export.
	OTLPEndpoint string
	OTELEnabled  bool
}

// Load reads configuration from the environment, with a best-effort .env
// load first so local runs match the original dotenv workflow.
func Load() (*Config, error) {
	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		Env:               getEnvOrDefault("APP_ENV", "development"),
		Port:              getEnvOrDefault("APP_PORT", "8080"),
		OpenWeatherAPIKey: os.Getenv("OPENWEATHER_API_KEY"),
		NOAAToken:         os.Getenv("NOAA_CDO_TOKEN"),
		BackfillSchedule:  getEnvOrDefault("BACKFILL_SCHEDULE", "30 2 * * *"),
		OTLPEndpoint:      getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OTELEnabled:       os.Getenv("OTEL_ENABLED") == "true",
	}

	var err error
	if cfg.Lat, err = getEnvFloat("LOCATION_LAT", DefaultLat); err != nil {
		return nil, err
	}
	if cfg.Lon, err = getEnvFloat("LOCATION_LON", DefaultLon); err != nil {
		return nil, err
	}
	if cfg.BackfillPace, err = getEnvDuration("BACKFILL_PACE", time.Second); err != nil {
		return nil, err
	}
	if cfg.RateLimitPause, err = getEnvDuration("RATE_LIMIT_PAUSE", time.Minute); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
