package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ridelens/ridelens/internal/trips"
	"github.com/ridelens/ridelens/internal/weather"
)

// MemoryRepository is a concurrency-safe in-memory Repository for tests and
// local runs without Postgres.
type MemoryRepository struct {
	mu      sync.RWMutex
	weather map[time.Time]weather.DailySummary
	rides   map[time.Time]trips.DailyRides
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		weather: make(map[time.Time]weather.DailySummary),
		rides:   make(map[time.Time]trips.DailyRides),
	}
}

// SaveDailyWeather upserts one day of weather.
func (r *MemoryRepository) SaveDailyWeather(_ context.Context, day weather.DailySummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.weather[day.Date.UTC().Truncate(24*time.Hour)] = day
	return nil
}

// DailyWeather returns stored weather for an inclusive date range.
func (r *MemoryRepository) DailyWeather(_ context.Context, from, to time.Time) ([]weather.DailySummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []weather.DailySummary
	for date, day := range r.weather {
		if inRange(date, from, to) {
			out = append(out, day)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// SaveDailyRides upserts one day of ride counts.
func (r *MemoryRepository) SaveDailyRides(_ context.Context, day trips.DailyRides) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rides[day.Date.UTC().Truncate(24*time.Hour)] = day
	return nil
}

// DailyRides returns stored ride counts for an inclusive date range.
func (r *MemoryRepository) DailyRides(_ context.Context, from, to time.Time) ([]trips.DailyRides, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []trips.DailyRides
	for date, day := range r.rides {
		if inRange(date, from, to) {
			out = append(out, day)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func inRange(date, from, to time.Time) bool {
	return !date.Before(from) && !date.After(to)
}
