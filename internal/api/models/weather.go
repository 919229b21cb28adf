package models

import (
	"github.com/ridelens/ridelens/internal/weather"
)

// CurrentWeather is the response body for GET /v1/weather/current.
// Nullable fields stay null when the provider did not report them.
type CurrentWeather struct {
	Lat           float64   `json:"lat"`
	Lon           float64   `json:"lon"`
	TemperatureF  *float64  `json:"temperatureF"`
	FeelsLikeF    *float64  `json:"feelsLikeF"`
	HumidityPct   *float64  `json:"humidityPct"`
	CloudCoverPct *float64  `json:"cloudCoverPct"`
	PrecipIn      *float64  `json:"precipIn"`
	WindMph       *float64  `json:"windMph"`
	Condition     string    `json:"condition"`
	Description   string    `json:"description,omitempty"`
	ObservedAt    Timestamp `json:"observedAt"`
	FetchedAt     Timestamp `json:"fetchedAt"`
}

// CurrentWeatherFromObservation maps a domain observation to the API shape.
func CurrentWeatherFromObservation(obs *weather.Observation) CurrentWeather {
	return CurrentWeather{
		Lat:           obs.Lat,
		Lon:           obs.Lon,
		TemperatureF:  obs.Temperature,
		FeelsLikeF:    obs.FeelsLike,
		HumidityPct:   obs.Humidity,
		CloudCoverPct: obs.CloudCover,
		PrecipIn:      obs.Precipitation,
		WindMph:       obs.WindSpeed,
		Condition:     string(obs.Condition),
		Description:   obs.Description,
		ObservedAt:    Timestamp(obs.ObservedAt),
		FetchedAt:     Timestamp(obs.FetchedAt),
	}
}

// DailyWeather is one day of stored weather in GET /v1/weather/daily.
type DailyWeather struct {
	Date        string   `json:"date"`
	TempMaxF    *float64 `json:"tempMaxF"`
	TempMinF    *float64 `json:"tempMinF"`
	TempMeanF   *float64 `json:"tempMeanF"`
	PrecipIn    *float64 `json:"precipIn"`
	SnowIn      *float64 `json:"snowIn"`
	WindMph     *float64 `json:"windMph"`
	Condition   string   `json:"condition"`
	Description string   `json:"description,omitempty"`
}

// DailyWeatherList is the response body for GET /v1/weather/daily.
type DailyWeatherList struct {
	From  string         `json:"from"`
	To    string         `json:"to"`
	Items []DailyWeather `json:"items"`
}

// DailyWeatherFromSummary maps a stored daily summary to the API shape.
func DailyWeatherFromSummary(day weather.DailySummary) DailyWeather {
	return DailyWeather{
		Date:        DateOnly(day.Date),
		TempMaxF:    day.TempMax,
		TempMinF:    day.TempMin,
		TempMeanF:   day.TempMean,
		PrecipIn:    day.Precipitation,
		SnowIn:      day.Snow,
		WindMph:     day.WindSpeed,
		Condition:   string(day.Condition),
		Description: day.Description,
	}
}
