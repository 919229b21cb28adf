// Package store persists daily weather summaries and daily ride counts so a
// backfilled range is fetched once, not on every analysis run.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/ridelens/ridelens/internal/trips"
	"github.com/ridelens/ridelens/internal/weather"
)

// ErrNotFound is returned when no data exists for the requested range.
var ErrNotFound = errors.New("no data for range")

// Repository defines the interface for merged-dataset persistence.
// Saves are upserts keyed by date; reads return rows ordered by date.
type Repository interface {
	// SaveDailyWeather upserts one day of weather.
	SaveDailyWeather(ctx context.Context, day weather.DailySummary) error

	// DailyWeather returns stored weather for an inclusive date range.
	DailyWeather(ctx context.Context, from, to time.Time) ([]weather.DailySummary, error)

	// SaveDailyRides upserts one day of ride counts.
	SaveDailyRides(ctx context.Context, day trips.DailyRides) error

	// DailyRides returns stored ride counts for an inclusive date range.
	DailyRides(ctx context.Context, from, to time.Time) ([]trips.DailyRides, error)
}
