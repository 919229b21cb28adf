package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridelens/ridelens/internal/api"
	"github.com/ridelens/ridelens/internal/api/models"
	"github.com/ridelens/ridelens/internal/store"
	"github.com/ridelens/ridelens/internal/trips"
	"github.com/ridelens/ridelens/internal/weather"
	"github.com/ridelens/ridelens/internal/worker"
)

// stubProvider serves canned observations so the router can be exercised
// without a live provider.
type stubProvider struct {
	err error
}

func (p *stubProvider) Current(_ context.Context, lat, lon float64) (*weather.Observation, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &weather.Observation{
		Lat:         lat,
		Lon:         lon,
		Temperature: weather.Float64(62.5),
		Condition:   weather.ConditionClouds,
		ObservedAt:  time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
		FetchedAt:   time.Now(),
	}, nil
}

func (p *stubProvider) Historical(_ context.Context, lat, lon float64, at time.Time) (*weather.Observation, error) {
	if p.err != nil {
		return nil, p.err
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

func seedRepo(t *testing.T, repo store.Repository) {
	t.Helper()
	ctx := context.Background()

	day1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.SaveDailyWeather(ctx, weather.DailySummary{
		Date:      day1,
		TempMean:  weather.Float64(58),
		Condition: weather.ConditionClear,
	}))
	require.NoError(t, repo.SaveDailyWeather(ctx, weather.DailySummary{
		Date:          day2,
		TempMean:      weather.Float64(47),
		Precipitation: weather.Float64(0.4),
		Condition:     weather.ConditionRain,
	}))
	require.NoError(t, repo.SaveDailyRides(ctx, trips.DailyRides{Date: day1, Total: 9500, Member: 6000, Casual: 3500}))
	require.NoError(t, repo.SaveDailyRides(ctx, trips.DailyRides{Date: day2, Total: 4200, Member: 3400, Casual: 800}))
}

func newTestRouter(t *testing.T, provider weather.Provider) http.Handler {
	t.Helper()
	logger := zerolog.New(io.Discard)

	repo := store.NewMemoryRepository()
	seedRepo(t, repo)

	svc := weather.NewService(weather.ServiceConfig{
		Provider: provider,
		Recorder: repo,
		Logger:   logger,
	})
	job := worker.NewBackfillJob(worker.BackfillJobConfig{
		Config: worker.BackfillConfig{
			Lat:  38.9072,
			Lon:  -77.0369,
			Pace: time.Millisecond,
		},
		Service: svc,
		Logger:  logger,
	})

	return api.NewRouter(api.RouterConfig{
		Version:        "test",
		BuildTime:      "2024-01-01T00:00:00Z",
		Logger:         logger,
		WeatherService: svc,
		Repository:     repo,
		BackfillJob:    job,
		DefaultLat:     38.9072,
		DefaultLon:     -77.0369,
	})
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t, &stubProvider{})

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var health models.Health
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, models.HealthStatusOK, health.Status)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestRouter_Ready(t *testing.T) {
	router := newTestRouter(t, &stubProvider{})

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/ready", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_CurrentWeather(t *testing.T) {
	router := newTestRouter(t, &stubProvider{})

	req := httptest.NewRequest(http.MethodGet, "/v1/weather/current", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body models.CurrentWeather
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.TemperatureF)
	assert.Equal(t, 62.5, *body.TemperatureF)
	assert.Equal(t, "CLOUDS", body.Condition)
	// Defaults applied when no coordinates are supplied
	assert.Equal(t, 38.9072, body.Lat)
}

func TestRouter_CurrentWeather_InvalidCoordinates(t *testing.T) {
	router := newTestRouter(t, &stubProvider{})

	req := httptest.NewRequest(http.MethodGet, "/v1/weather/current?lat=200&lon=0", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
}

func TestRouter_CurrentWeather_ProviderDown(t *testing.T) {
	router := newTestRouter(t, &stubProvider{
		err: &weather.ProviderError{StatusCode: http.StatusInternalServerError},
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/weather/current", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadGateway, w.Code)

	var problem models.Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	assert.Equal(t, models.ProblemTypeUpstream, problem.Type)
}

func TestRouter_CurrentWeather_ProviderRateLimited(t *testing.T) {
	router := newTestRouter(t, &stubProvider{
		err: &weather.ProviderError{StatusCode: http.StatusTooManyRequests},
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/weather/current", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRouter_DailyWeather(t *testing.T) {
	router := newTestRouter(t, &stubProvider{})

	req := httptest.NewRequest(http.MethodGet, "/v1/weather/daily?from=2024-03-01&to=2024-03-02", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body models.DailyWeatherList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Items, 2)
	assert.Equal(t, "2024-03-01", body.Items[0].Date)
	assert.Equal(t, "RAIN", body.Items[1].Condition)
}

func TestRouter_DailyWeather_MissingRange(t *testing.T) {
	router := newTestRouter(t, &stubProvider{})

	req := httptest.NewRequest(http.MethodGet, "/v1/weather/daily", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_DailyRides(t *testing.T) {
	router := newTestRouter(t, &stubProvider{})

	req := httptest.NewRequest(http.MethodGet, "/v1/rides/daily?from=2024-03-01&to=2024-03-02", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body models.DailyRidesList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Items, 2)
	assert.Equal(t, 9500, body.Items[0].Total)
	assert.Equal(t, 800, body.Items[1].Casual)
}

func TestRouter_AnalysisSummary(t *testing.T) {
	router := newTestRouter(t, &stubProvider{})

	req := httptest.NewRequest(http.MethodGet, "/v1/analysis/summary?from=2024-03-01&to=2024-03-02", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body models.AnalysisSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Days)
	assert.Equal(t, 13700, body.TotalRides)
	assert.Equal(t, 1, body.RainyDays)
	require.NotNil(t, body.MeanRidesDry)
	assert.Equal(t, 9500.0, *body.MeanRidesDry)
}

func TestRouter_AnalysisSummary_EmptyRange(t *testing.T) {
	router := newTestRouter(t, &stubProvider{})

	req := httptest.NewRequest(http.MethodGet, "/v1/analysis/summary?from=2030-01-01&to=2030-01-02", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_AdminBackfill(t *testing.T) {
	router := newTestRouter(t, &stubProvider{})

	payload, err := json.Marshal(models.BackfillRequest{From: "2024-03-01", To: "2024-03-03"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/backfill", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusAccepted, w.Code)

	var accepted models.BackfillAccepted
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &accepted))
	assert.Equal(t, "accepted", accepted.Status)
	assert.Equal(t, 3, accepted.Days)
	assert.Contains(t, accepted.ID, "bf_")
}

func TestRouter_AdminBackfill_InvalidDates(t *testing.T) {
	router := newTestRouter(t, &stubProvider{})

	payload := []byte(`{"from":"not-a-date","to":"2024-03-03"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/backfill", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var problem models.Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	require.NotEmpty(t, problem.Errors)
	assert.Equal(t, "From", problem.Errors[0].Field)
}

func TestRouter_AdminBackfill_ReversedRange(t *testing.T) {
	router := newTestRouter(t, &stubProvider{})

	payload := []byte(`{"from":"2024-03-05","to":"2024-03-01"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/backfill", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_NotFoundRoute(t *testing.T) {
	router := newTestRouter(t, &stubProvider{})

	req := httptest.NewRequest(http.MethodGet, "/v1/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
