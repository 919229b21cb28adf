package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridelens/ridelens/internal/store"
	"github.com/ridelens/ridelens/internal/trips"
	"github.com/ridelens/ridelens/internal/weather"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestMemoryRepository_DailyWeather(t *testing.T) {
	repo := store.NewMemoryRepository()
	ctx := context.Background()

	for _, d := range []int{14, 15, 16} {
		err := repo.SaveDailyWeather(ctx, weather.DailySummary{
			Date:     day(d),
			TempMean: weather.Float64(float64(50 + d)),
		})
		require.NoError(t, err)
	}

	got, err := repo.DailyWeather(ctx, day(14), day(15))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, day(14), got[0].Date)
	assert.Equal(t, day(15), got[1].Date)
}

func TestMemoryRepository_SaveDailyWeather_Upsert(t *testing.T) {
	repo := store.NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.SaveDailyWeather(ctx, weather.DailySummary{Date: day(14), TempMean: weather.Float64(40)}))
	require.NoError(t, repo.SaveDailyWeather(ctx, weather.DailySummary{Date: day(14), TempMean: weather.Float64(55)}))

	got, err := repo.DailyWeather(ctx, day(14), day(14))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 55.0, *got[0].TempMean)
}

func TestMemoryRepository_DailyRides(t *testing.T) {
	repo := store.NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.SaveDailyRides(ctx, trips.DailyRides{Date: day(14), Total: 1200, Member: 800, Casual: 400}))
	require.NoError(t, repo.SaveDailyRides(ctx, trips.DailyRides{Date: day(16), Total: 900}))

	got, err := repo.DailyRides(ctx, day(14), day(16))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1200, got[0].Total)
	assert.Equal(t, 900, got[1].Total)

	empty, err := repo.DailyRides(ctx, day(1), day(10))
	require.NoError(t, err)
	assert.Empty(t, empty)
}
