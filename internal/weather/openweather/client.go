// Package openweather implements the weather.Provider interface against the
// OpenWeather REST API.
package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ridelens/ridelens/internal/provider/resilience"
	"github.com/ridelens/ridelens/internal/weather"
)

const (
	// ProviderName identifies this weather provider.
	ProviderName = "openweather"

	// DefaultBaseURL is the OpenWeather current-weather API base URL.
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

	// DefaultTimeMachineURL is the OpenWeather historical (time machine) endpoint.
	DefaultTimeMachineURL = "https://api.openweathermap.org/data/2.5/onecall/timemachine"

	// maxErrorBody caps how much of a provider error body is carried in errors.
	maxErrorBody = 512
)

// ClientConfig holds configuration for the OpenWeather client.
type ClientConfig struct {
	// APIKey is the OpenWeather API key (required).
	APIKey string

	// BaseURL is the current-weather API base URL (optional).
	BaseURL string

	// TimeMachineURL is the historical API URL (optional).
	TimeMachineURL string

	// Units is the unit system to request (optional, defaults to imperial).
	Units string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a single-attempt client: each fetch is one best-effort
	// request with no retry or shared breaker state.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an OpenWeather API client.
type Client struct {
	apiKey         string
	baseURL        string
	timeMachineURL string
	units          string
	httpClient     *resilience.Client
	logger         zerolog.Logger
}

// NewClient creates a new OpenWeather client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeMachineURL := cfg.TimeMachineURL
	if timeMachineURL == "" {
		timeMachineURL = DefaultTimeMachineURL
	}

	units := cfg.Units
	if units == "" {
		units = "imperial"
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.SingleAttemptConfig(ProviderName))
	}

	return &Client{
		apiKey:         cfg.APIKey,
		baseURL:        baseURL,
		timeMachineURL: timeMachineURL,
		units:          units,
		httpClient:     httpClient,
		logger:         cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// Current fetches current weather for a location.
func (c *Client) Current(ctx context.Context, lat, lon float64) (*weather.Observation, error) {
	if c.apiKey == "" {
		return nil, &weather.ConfigError{Reason: weather.ErrMissingAPIKey.Error()}
	}

	params := c.queryParams(lat, lon)
	reqURL := c.baseURL + "/weather?" + params.Encode()

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	resp, err := decodeObservation(body)
	if err != nil {
		return nil, err
	}

	return resp.toObservation(lat, lon), nil
}

// Historical fetches the weather observed at a past point in time via the
// time machine endpoint.
func (c *Client) Historical(ctx context.Context, lat, lon float64, at time.Time) (*weather.Observation, error) {
	if c.apiKey == "" {
		return nil, &weather.ConfigError{Reason: weather.ErrMissingAPIKey.Error()}
	}

	params := c.queryParams(lat, lon)
	params.Set("dt", strconv.FormatInt(at.Unix(), 10))
	reqURL := c.timeMachineURL + "?" + params.Encode()

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var tm timeMachineResponse
	if err := json.Unmarshal(body, &tm); err != nil {
		return nil, &weather.ParseError{Reason: "invalid JSON", Err: err}
	}
	if tm.Current == nil {
		return nil, &weather.ParseError{Reason: "time machine response has no current block"}
	}
	if tm.Current.empty() {
		return nil, &weather.ParseError{Reason: "response contains none of the expected fields"}
	}

	obs := tm.Current.toObservation(lat, lon)
	if tm.Lat != nil {
		obs.Lat = *tm.Lat
	}
	if tm.Lon != nil {
		obs.Lon = *tm.Lon
	}
	return obs, nil
}

// queryParams builds the common query parameters for both endpoints.
func (c *Client) queryParams(lat, lon float64) url.Values {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%.6f", lat))
	params.Set("lon", fmt.Sprintf("%.6f", lon))
	params.Set("appid", c.apiKey)
	params.Set("units", c.units)
	return params
}

// get issues a single GET and maps transport and status failures onto the
// domain error taxonomy.
func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &weather.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &weather.NetworkError{Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &weather.ProviderError{
			StatusCode: resp.StatusCode,
			Body:       truncate(strings.TrimSpace(string(body)), maxErrorBody),
		}
	}

	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// decodeObservation parses a current-weather body, rejecting bodies that are
// not JSON or that carry none of the documented top-level sections.
func decodeObservation(body []byte) (*observationPayload, error) {
	var resp observationPayload
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &weather.ParseError{Reason: "invalid JSON", Err: err}
	}
	if resp.empty() {
		return nil, &weather.ParseError{Reason: "response contains none of the expected fields"}
	}
	return &resp, nil
}

// OpenWeather API response structures. Sections are pointers so a missing
// section is distinguishable from a zero-valued one.

type observationPayload struct {
	Coord *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Weather []struct {
		ID          int    `json:"id"`
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main *struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		Humidity  *float64 `json:"humidity"`
	} `json:"main"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
	Clouds *struct {
		All *float64 `json:"all"`
	} `json:"clouds"`
	Rain *struct {
		OneHour *float64 `json:"1h"`
	} `json:"rain"`
	Dt *int64 `json:"dt"`

	// Time machine responses use flat field names inside "current".
	Temp      *float64 `json:"temp"`
	WindSpeed *float64 `json:"wind_speed"`
	CloudsPct *float64 `json:"clouds"`
}

type timeMachineResponse struct {
	Lat     *float64            `json:"lat"`
	Lon     *float64            `json:"lon"`
	Current *observationPayload `json:"current"`
}

// empty reports whether none of the documented sections were present, which
// means the body belongs to some other schema entirely.
func (p *observationPayload) empty() bool {
	return p.Coord == nil && len(p.Weather) == 0 && p.Main == nil &&
		p.Wind == nil && p.Clouds == nil && p.Rain == nil && p.Dt == nil &&
		p.Temp == nil && p.WindSpeed == nil && p.CloudsPct == nil
}

// toObservation converts an OpenWeather payload to the domain model.
// Fields the provider omitted stay nil.
func (p *observationPayload) toObservation(lat, lon float64) *weather.Observation {
	obs := &weather.Observation{
		Lat:       lat,
		Lon:       lon,
		Condition: weather.ConditionUnknown,
		FetchedAt: time.Now(),
	}

	if p.Coord != nil {
		obs.Lat = p.Coord.Lat
		obs.Lon = p.Coord.Lon
	}
	if p.Main != nil {
		obs.Temperature = p.Main.Temp
		obs.FeelsLike = p.Main.FeelsLike
		obs.Humidity = p.Main.Humidity
	}
	if p.Temp != nil {
		obs.Temperature = p.Temp
	}
	if p.Wind != nil {
		obs.WindSpeed = p.Wind.Speed
	}
	if p.WindSpeed != nil {
		obs.WindSpeed = p.WindSpeed
	}
	if p.Clouds != nil {
		obs.CloudCover = p.Clouds.All
	}
	if p.CloudsPct != nil {
		obs.CloudCover = p.CloudsPct
	}
	if p.Rain != nil && p.Rain.OneHour != nil {
		// OpenWeather reports rain volume in mm regardless of units.
		inches := *p.Rain.OneHour / 25.4
		obs.Precipitation = &inches
	}
	if p.Dt != nil {
		obs.ObservedAt = time.Unix(*p.Dt, 0).UTC()
	}
	if len(p.Weather) > 0 {
		obs.Condition = mapCondition(p.Weather[0].Main)
		obs.Description = p.Weather[0].Description
	}

	return obs
}

// mapCondition maps an OpenWeather condition group to the domain condition.
func mapCondition(owmCondition string) weather.Condition {
	switch owmCondition {
	case "Clear":
		return weather.ConditionClear
	case "Clouds":
		return weather.ConditionClouds
	case "Rain":
		return weather.ConditionRain
	case "Drizzle":
		return weather.ConditionDrizzle
	case "Thunderstorm":
		return weather.ConditionThunderstorm
	case "Snow":
		return weather.ConditionSnow
	case "Mist":
		return weather.ConditionMist
	case "Fog":
		return weather.ConditionFog
	case "Haze", "Dust", "Sand", "Ash", "Squall", "Tornado":
		return weather.ConditionHaze
	default:
		return weather.ConditionUnknown
	}
}
