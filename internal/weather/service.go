package weather

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Recorder persists daily weather summaries. Implemented by the store.
type Recorder interface {
	SaveDailyWeather(ctx context.Context, day DailySummary) error
}

// ServiceConfig holds configuration for the weather service.
type ServiceConfig struct {
	// Provider is the weather data provider.
	Provider Provider

	// Recorder persists fetched summaries (optional). If nil, fetches are
	// returned to the caller without being stored.
	Recorder Recorder

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service fetches weather through a provider. Each call is a fresh fetch;
// there is no cache and no retry at this layer, so two calls with identical
// inputs map to two provider requests.
type Service struct {
	provider Provider
	recorder Recorder
	logger   zerolog.Logger
}

// NewService creates a new weather service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		provider: cfg.Provider,
		recorder: cfg.Recorder,
		logger:   cfg.Logger,
	}
}

// Current returns the current weather for a location.
func (s *Service) Current(ctx context.Context, lat, lon float64) (*Observation, error) {
	if err := validateCoordinates(lat, lon); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Float64("lat", lat).
		Float64("lon", lon).
		Str("provider", s.provider.Name()).
		Msg("fetching current weather")

	obs, err := s.provider.Current(ctx, lat, lon)
	if err != nil {
		s.logger.Error().Err(err).
			Float64("lat", lat).
			Float64("lon", lon).
			Msg("current weather fetch failed")
		return nil, err
	}

	return obs, nil
}

// Historical returns the weather observed at a past point in time.
func (s *Service) Historical(ctx context.Context, lat, lon float64, at time.Time) (*Observation, error) {
	if err := validateCoordinates(lat, lon); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Float64("lat", lat).
		Float64("lon", lon).
		Time("at", at).
		Str("provider", s.provider.Name()).
		Msg("fetching historical weather")

	obs, err := s.provider.Historical(ctx, lat, lon, at)
	if err != nil {
		s.logger.Error().Err(err).
			Float64("lat", lat).
			Float64("lon", lon).
			Time("at", at).
			Msg("historical weather fetch failed")
		return nil, err
	}

	return obs, nil
}

// FetchDay fetches the historical observation for a calendar day and records
// its daily summary if a recorder is configured.
func (s *Service) FetchDay(ctx context.Context, lat, lon float64, day time.Time) (*DailySummary, error) {
	// Noon local keeps the reading representative of daytime conditions.
	at := time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, day.Location())

	obs, err := s.Historical(ctx, lat, lon, at)
	if err != nil {
		return nil, err
	}

	summary := obs.DaySummary()
	// Pin the summary to the requested day; the provider timestamp can drift
	// across midnight UTC for early or late local hours.
	summary.Date = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	if s.recorder != nil {
		if err := s.recorder.SaveDailyWeather(ctx, summary); err != nil {
			s.logger.Error().Err(err).
				Time("date", summary.Date).
				Msg("failed to record daily weather")
			return nil, err
		}
	}

	return &summary, nil
}

// validateCoordinates checks if coordinates are valid.
func validateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}
