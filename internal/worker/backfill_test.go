package worker

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridelens/ridelens/internal/weather"
)

type stubProvider struct {
	mu    sync.Mutex
	calls []time.Time
	// errFor returns an error for specific call indexes (1-based).
	errFor map[int]error
}

func (p *stubProvider) Current(ctx context.Context, lat, lon float64) (*weather.Observation, error) {
	return nil, nil
}

func (p *stubProvider) Historical(ctx context.Context, lat, lon float64, at time.Time) (*weather.Observation, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, at)
	if err, ok := p.errFor[len(p.calls)]; ok {
		return nil, err
	}
	return &weather.Observation{
		Lat:         lat,
		Lon:         lon,
		Temperature: weather.Float64(55),
		Condition:   weather.ConditionClear,
		ObservedAt:  at,
	}, nil
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

type stubRecorder struct {
	mu    sync.Mutex
	saved []weather.DailySummary
}

func (r *stubRecorder) SaveDailyWeather(ctx context.Context, day weather.DailySummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, day)
	return nil
}

func newTestJob(t *testing.T, provider *stubProvider, recorder *stubRecorder) *BackfillJob {
	t.Helper()
	svc := weather.NewService(weather.ServiceConfig{
		Provider: provider,
		Recorder: recorder,
		Logger:   zerolog.Nop(),
	})
	return NewBackfillJob(BackfillJobConfig{
		Config: BackfillConfig{
			Lat:            38.9072,
			Lon:            -77.0369,
			Pace:           time.Millisecond,
			RateLimitPause: 5 * time.Millisecond,
		},
		Service: svc,
		Logger:  zerolog.Nop(),
	})
}

func TestBackfillJob_FetchesEveryDay(t *testing.T) {
	provider := &stubProvider{}
	recorder := &stubRecorder{}
	job := newTestJob(t, provider, recorder)

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	result := job.Run(context.Background(), from, to)

	assert.Equal(t, 5, result.Days)
	assert.Equal(t, 5, result.Fetched)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 5, provider.callCount())
	require.Len(t, recorder.saved, 5)
	assert.Equal(t, from, recorder.saved[0].Date)
	assert.Equal(t, to, recorder.saved[4].Date)
}

func TestBackfillJob_RecordsFailuresWithoutAborting(t *testing.T) {
	provider := &stubProvider{
		errFor: map[int]error{
			2: &weather.ProviderError{StatusCode: http.StatusInternalServerError},
		},
	}
	recorder := &stubRecorder{}
	job := newTestJob(t, provider, recorder)

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)

	result := job.Run(context.Background(), from, to)

	assert.Equal(t, 3, result.Days)
	assert.Equal(t, 2, result.Fetched)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), result.Errors[0].Date)
	assert.Len(t, recorder.saved, 2)
}

func TestBackfillJob_RetriesDayAfterRateLimit(t *testing.T) {
	provider := &stubProvider{
		errFor: map[int]error{
			1: &weather.ProviderError{StatusCode: http.StatusTooManyRequests},
		},
	}
	recorder := &stubRecorder{}
	job := newTestJob(t, provider, recorder)

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	result := job.Run(context.Background(), day, day)

	// One 429, then one successful retry of the same day.
	assert.Equal(t, 2, provider.callCount())
	assert.Equal(t, 1, result.Fetched)
	assert.Equal(t, 0, result.Failed)

	metrics := job.GetMetrics()
	assert.Equal(t, int64(1), metrics.RateLimitWaits)
}

func TestBackfillJob_StopsOnContextCancel(t *testing.T) {
	provider := &stubProvider{}
	job := newTestJob(t, provider, &stubRecorder{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	result := job.Run(ctx, from, to)

	assert.Zero(t, result.Fetched)
	assert.Zero(t, provider.callCount())
}

func TestBackfillJob_UpdatesMetrics(t *testing.T) {
	provider := &stubProvider{}
	job := newTestJob(t, provider, &stubRecorder{})

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	job.Run(context.Background(), day, day)
	job.Run(context.Background(), day, day)

	metrics := job.GetMetrics()
	assert.Equal(t, int64(2), metrics.TotalRuns)
	assert.Equal(t, int64(2), metrics.DaysFetched)
	assert.False(t, metrics.LastRunAt.IsZero())

	snapshot := job.MetricsSnapshot()
	assert.Equal(t, int64(2), snapshot["total_runs"])
}
