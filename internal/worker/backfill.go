// Package worker provides the historical weather backfill job.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ridelens/ridelens/internal/weather"
)

// BackfillJob fetches one historical weather observation per day over a date
// range, pacing requests so the provider's free-tier quota survives.
type BackfillJob struct {
	config  BackfillConfig
	service *weather.Service
	logger  zerolog.Logger

	metrics *BackfillMetrics
}

// BackfillMetrics tracks backfill statistics across runs.
type BackfillMetrics struct {
	mu sync.RWMutex

	TotalRuns       int64
	DaysFetched     int64
	DaysFailed      int64
	RateLimitWaits  int64
	LastRunAt       time.Time
	LastRunDuration time.Duration
}

// BackfillJobConfig holds configuration for creating a BackfillJob.
type BackfillJobConfig struct {
	Config  BackfillConfig
	Service *weather.Service
	Logger  zerolog.Logger
}

// NewBackfillJob creates a new backfill job processor.
func NewBackfillJob(cfg BackfillJobConfig) *BackfillJob {
	config := cfg.Config.withDefaults()

	return &BackfillJob{
		config:  config,
		service: cfg.Service,
		logger:  cfg.Logger,
		metrics: &BackfillMetrics{},
	}
}

// DayError records a failed day within a run.
type DayError struct {
	Date  time.Time
	Error string
}

// BackfillResult contains the result of one backfill run.
type BackfillResult struct {
	ID        string
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	Days    int
	Fetched int
	Failed  int
	Errors  []DayError
}

// NewBackfillID returns a fresh backfill run identifier.
func NewBackfillID() string {
	return "bf_" + uuid.New().String()[:8]
}

// Run fetches every day in the inclusive [from, to] range with a fresh run ID.
func (j *BackfillJob) Run(ctx context.Context, from, to time.Time) *BackfillResult {
	return j.RunWithID(ctx, NewBackfillID(), from, to)
}

// RunWithID fetches every day in the inclusive [from, to] range. Failed days
// are recorded and skipped; only context cancellation aborts the range. A
// provider 429 pauses the run before retrying that day once.
func (j *BackfillJob) RunWithID(ctx context.Context, id string, from, to time.Time) *BackfillResult {
	result := &BackfillResult{
		ID:        id,
		StartTime: time.Now(),
	}

	from = midnight(from)
	to = midnight(to)

	j.logger.Info().
		Str("backfill_id", result.ID).
		Time("from", from).
		Time("to", to).
		Msg("starting weather backfill")

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if ctx.Err() != nil {
			break
		}

		result.Days++
		if err := j.fetchDay(ctx, day); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, DayError{Date: day, Error: err.Error()})
			j.logger.Warn().Err(err).
				Str("backfill_id", result.ID).
				Time("date", day).
				Msg("backfill day failed")
		} else {
			result.Fetched++
		}

		if !day.Equal(to) {
			if err := sleepCtx(ctx, j.config.Pace); err != nil {
				break
			}
		}
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)
	j.updateMetrics(result)

	j.logger.Info().
		Str("backfill_id", result.ID).
		Dur("duration", result.Duration).
		Int("fetched", result.Fetched).
		Int("failed", result.Failed).
		Msg("weather backfill completed")

	return result
}

// fetchDay fetches one day, pausing and retrying once when rate limited.
func (j *BackfillJob) fetchDay(ctx context.Context, day time.Time) error {
	dayCtx, cancel := context.WithTimeout(ctx, j.config.DayTimeout)
	defer cancel()

	_, err := j.service.FetchDay(dayCtx, j.config.Lat, j.config.Lon, day)
	if !rateLimited(err) {
		return err
	}

	j.metrics.mu.Lock()
	j.metrics.RateLimitWaits++
	j.metrics.mu.Unlock()

	j.logger.Warn().
		Time("date", day).
		Dur("pause", j.config.RateLimitPause).
		Msg("provider rate limit hit, pausing backfill")

	if err := sleepCtx(ctx, j.config.RateLimitPause); err != nil {
		return err
	}

	retryCtx, cancelRetry := context.WithTimeout(ctx, j.config.DayTimeout)
	defer cancelRetry()

	_, err = j.service.FetchDay(retryCtx, j.config.Lat, j.config.Lon, day)
	return err
}

func rateLimited(err error) bool {
	var provErr *weather.ProviderError
	return errors.As(err, &provErr) && provErr.RateLimited()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (j *BackfillJob) updateMetrics(result *BackfillResult) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalRuns++
	j.metrics.DaysFetched += int64(result.Fetched)
	j.metrics.DaysFailed += int64(result.Failed)
	j.metrics.LastRunAt = result.EndTime
	j.metrics.LastRunDuration = result.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *BackfillJob) GetMetrics() BackfillMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return BackfillMetrics{
		TotalRuns:       j.metrics.TotalRuns,
		DaysFetched:     j.metrics.DaysFetched,
		DaysFailed:      j.metrics.DaysFailed,
		RateLimitWaits:  j.metrics.RateLimitWaits,
		LastRunAt:       j.metrics.LastRunAt,
		LastRunDuration: j.metrics.LastRunDuration,
	}
}

// MetricsSnapshot returns the current metrics as a map for the ops endpoint.
func (j *BackfillJob) MetricsSnapshot() map[string]interface{} {
	m := j.GetMetrics()
	return map[string]interface{}{
		"total_runs":        m.TotalRuns,
		"days_fetched":      m.DaysFetched,
		"days_failed":       m.DaysFailed,
		"rate_limit_waits":  m.RateLimitWaits,
		"last_run_at":       m.LastRunAt,
		"last_run_duration": m.LastRunDuration.String(),
	}
}
