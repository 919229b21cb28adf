package weather

import (
	"context"
	"time"
)

// Observation represents a single weather reading for one location and time.
// Numeric fields are pointers: a nil value means the provider did not report
// that field, which is distinct from a zero reading.
type Observation struct {
	// Location coordinates
	Lat float64
	Lon float64

	// Temperature in °F
	Temperature *float64
	FeelsLike   *float64

	// Humidity percentage (0-100)
	Humidity *float64

	// Cloud cover percentage (0-100)
	CloudCover *float64

	// Precipitation in inches over the last hour
	Precipitation *float64

	// Wind speed in mph
	WindSpeed *float64

	// Weather condition
	Condition   Condition
	Description string

	// Timestamps
	ObservedAt time.Time
	FetchedAt  time.Time
}

// DailySummary represents weather aggregated to a single calendar day.
// This is the shape that gets joined against daily ride counts, whether it
// came from an OpenWeather historical fetch or a NOAA daily-summaries export.
type DailySummary struct {
	// Date at midnight UTC
	Date time.Time

	// Temperatures in °F
	TempMax  *float64
	TempMin  *float64
	TempMean *float64

	// Precipitation and snow in inches
	Precipitation *float64
	Snow          *float64
	SnowDepth     *float64

	// Wind speed in mph
	WindSpeed *float64

	Condition   Condition
	Description string
}

// Rainy reports whether measurable precipitation fell on the day.
func (d *DailySummary) Rainy() bool {
	if d.Precipitation != nil && *d.Precipitation > 0 {
		return true
	}
	switch d.Condition {
	case ConditionRain, ConditionDrizzle, ConditionThunderstorm:
		return true
	}
	return false
}

// Snowy reports whether snow fell on the day.
func (d *DailySummary) Snowy() bool {
	if d.Snow != nil && *d.Snow > 0 {
		return true
	}
	return d.Condition == ConditionSnow
}

// Condition represents the general weather condition.
type Condition string

const (
	ConditionClear        Condition = "CLEAR"
	ConditionClouds       Condition = "CLOUDS"
	ConditionRain         Condition = "RAIN"
	ConditionDrizzle      Condition = "DRIZZLE"
	ConditionThunderstorm Condition = "THUNDERSTORM"
	ConditionSnow         Condition = "SNOW"
	ConditionMist         Condition = "MIST"
	ConditionFog          Condition = "FOG"
	ConditionHaze         Condition = "HAZE"
	ConditionUnknown      Condition = "UNKNOWN"
)

// Provider defines the interface for weather data providers.
type Provider interface {
	// Current fetches current weather for a location.
	Current(ctx context.Context, lat, lon float64) (*Observation, error)

	// Historical fetches the weather observed at a past point in time.
	Historical(ctx context.Context, lat, lon float64, at time.Time) (*Observation, error)

	// Name returns the provider name for logging.
	Name() string
}

// DaySummary collapses an observation into a daily summary.
// An OpenWeather time-machine fetch returns one observation per day, so the
// single reading stands in for the day's mean.
func (o *Observation) DaySummary() DailySummary {
	day := o.ObservedAt.UTC().Truncate(24 * time.Hour)
	return DailySummary{
		Date:          day,
		TempMean:      o.Temperature,
		Precipitation: o.Precipitation,
		WindSpeed:     o.WindSpeed,
		Condition:     o.Condition,
		Description:   o.Description,
	}
}

// Float64 returns a pointer to v. Convenience for building observations and
// fixtures with nullable fields.
func Float64(v float64) *float64 {
	return &v
}
