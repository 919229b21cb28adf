package analysis_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridelens/ridelens/internal/analysis"
	"github.com/ridelens/ridelens/internal/trips"
	"github.com/ridelens/ridelens/internal/weather"
)

func date(day int) time.Time {
	return time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC)
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		temp float64
		want analysis.TempBand
	}{
		{20, analysis.BandFreezing},
		{31.9, analysis.BandFreezing},
		{32, analysis.BandCold},
		{49.9, analysis.BandCold},
		{50, analysis.BandMild},
		{69.9, analysis.BandMild},
		{70, analysis.BandWarm},
		{84.9, analysis.BandWarm},
		{85, analysis.BandHot},
		{98, analysis.BandHot},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, analysis.BandFor(tc.temp), "temp %.1f", tc.temp)
	}
}

func TestBandForDay_NoData(t *testing.T) {
	assert.Equal(t, analysis.BandNone, analysis.BandForDay(nil))
	assert.Equal(t, analysis.BandNone, analysis.BandForDay(&weather.DailySummary{}))
}

func TestJoin(t *testing.T) {
	rides := []trips.DailyRides{
		{Date: date(14), Total: 1200},
		{Date: date(15), Total: 400},
		{Date: date(16), Total: 900}, // no weather for this day
	}
	days := []weather.DailySummary{
		{Date: date(14), TempMean: weather.Float64(62), Condition: weather.ConditionClear},
		{Date: date(15), TempMean: weather.Float64(45), Precipitation: weather.Float64(0.4), Condition: weather.ConditionRain},
		{Date: date(17), TempMean: weather.Float64(55)}, // no rides for this day
	}

	merged := analysis.Join(rides, days)
	require.Len(t, merged, 4)

	assert.Equal(t, date(14), merged[0].Date)
	require.NotNil(t, merged[0].Rides)
	require.NotNil(t, merged[0].Weather)
	assert.Equal(t, analysis.BandMild, merged[0].Band)

	assert.Equal(t, analysis.BandCold, merged[1].Band)

	assert.Nil(t, merged[2].Weather)
	assert.Equal(t, analysis.BandNone, merged[2].Band)

	assert.Nil(t, merged[3].Rides)
	assert.Equal(t, analysis.BandMild, merged[3].Band)
}

func TestSummarize(t *testing.T) {
	rides := []trips.DailyRides{
		{Date: date(14), Total: 1000},
		{Date: date(15), Total: 400},
		{Date: date(16), Total: 1200},
		{Date: date(17), Total: 800},
	}
	days := []weather.DailySummary{
		{Date: date(14), TempMean: weather.Float64(60), Condition: weather.ConditionClear},
		{Date: date(15), TempMean: weather.Float64(44), Precipitation: weather.Float64(0.5), Condition: weather.ConditionRain},
		{Date: date(16), TempMean: weather.Float64(68), Condition: weather.ConditionClouds},
		{Date: date(17), TempMean: weather.Float64(52), Condition: weather.ConditionClear},
	}

	s := analysis.Summarize(analysis.Join(rides, days))

	assert.Equal(t, 4, s.Days)
	assert.Equal(t, 3400, s.TotalRides)

	require.NotNil(t, s.MeanTemp)
	assert.Equal(t, 56.0, *s.MeanTemp)
	require.NotNil(t, s.MinTemp)
	assert.Equal(t, 44.0, *s.MinTemp)
	require.NotNil(t, s.MaxTemp)
	assert.Equal(t, 68.0, *s.MaxTemp)

	assert.Equal(t, 0.5, s.TotalPrecipitation)
	assert.Equal(t, 1, s.RainyDays)
	assert.Equal(t, 0, s.SnowyDays)

	require.NotNil(t, s.MeanRidesDry)
	assert.Equal(t, 1000.0, *s.MeanRidesDry)
	require.NotNil(t, s.MeanRidesRainy)
	assert.Equal(t, 400.0, *s.MeanRidesRainy)

	assert.Equal(t, 3000, s.RidesByBand[analysis.BandMild]) // 60°F, 68°F and 52°F days
	assert.Equal(t, 400, s.RidesByBand[analysis.BandCold])

	assert.Equal(t, 2, s.Conditions[weather.ConditionClear])
	assert.Equal(t, 1, s.Conditions[weather.ConditionRain])

	// Warmer days carry more rides in this fixture.
	require.NotNil(t, s.TempRideCorrelation)
	assert.Greater(t, *s.TempRideCorrelation, 0.5)
}

func TestSummarize_CorrelationNeedsThreeDays(t *testing.T) {
	rides := []trips.DailyRides{
		{Date: date(14), Total: 1000},
		{Date: date(15), Total: 400},
	}
	days := []weather.DailySummary{
		{Date: date(14), TempMean: weather.Float64(60)},
		{Date: date(15), TempMean: weather.Float64(44)},
	}

	s := analysis.Summarize(analysis.Join(rides, days))
	assert.Nil(t, s.TempRideCorrelation)
}

func TestSummarize_Empty(t *testing.T) {
	s := analysis.Summarize(nil)
	assert.Equal(t, 0, s.Days)
	assert.Nil(t, s.MeanTemp)
	assert.Nil(t, s.TempRideCorrelation)
}
