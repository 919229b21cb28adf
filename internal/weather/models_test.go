package weather_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridelens/ridelens/internal/weather"
)

func TestDailySummary_Rainy(t *testing.T) {
	tests := []struct {
		name string
		day  weather.DailySummary
		want bool
	}{
		{
			name: "measurable precipitation",
			day:  weather.DailySummary{Precipitation: weather.Float64(0.25)},
			want: true,
		},
		{
			name: "zero precipitation",
			day:  weather.DailySummary{Precipitation: weather.Float64(0)},
			want: false,
		},
		{
			name: "no precipitation data but rain condition",
			day:  weather.DailySummary{Condition: weather.ConditionRain},
			want: true,
		},
		{
			name: "thunderstorm condition",
			day:  weather.DailySummary{Condition: weather.ConditionThunderstorm},
			want: true,
		},
		{
			name: "clear day",
			day:  weather.DailySummary{Condition: weather.ConditionClear},
			want: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.day.Rainy())
		})
	}
}

func TestDailySummary_Snowy(t *testing.T) {
	assert.True(t, (&weather.DailySummary{Snow: weather.Float64(1.5)}).Snowy())
	assert.True(t, (&weather.DailySummary{Condition: weather.ConditionSnow}).Snowy())
	assert.False(t, (&weather.DailySummary{Condition: weather.ConditionClear}).Snowy())
}

func TestObservation_DaySummary(t *testing.T) {
	obs := &weather.Observation{
		Lat:           38.9,
		Lon:           -77.0,
		Temperature:   weather.Float64(71.3),
		Precipitation: weather.Float64(0.1),
		WindSpeed:     weather.Float64(6.5),
		Condition:     weather.ConditionDrizzle,
		Description:   "light drizzle",
		ObservedAt:    time.Date(2024, 6, 10, 16, 45, 0, 0, time.UTC),
	}

	day := obs.DaySummary()
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), day.Date)
	require.NotNil(t, day.TempMean)
	assert.Equal(t, 71.3, *day.TempMean)
	assert.Equal(t, weather.ConditionDrizzle, day.Condition)
	assert.True(t, day.Rainy())
}

func TestObservation_DaySummary_NilFieldsSurvive(t *testing.T) {
	obs := &weather.Observation{
		ObservedAt: time.Date(2024, 6, 10, 3, 0, 0, 0, time.UTC),
		Condition:  weather.ConditionUnknown,
	}

	day := obs.DaySummary()
	assert.Nil(t, day.TempMean)
	assert.Nil(t, day.Precipitation)
	assert.False(t, day.Rainy())
}
