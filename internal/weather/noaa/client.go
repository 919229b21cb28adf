package noaa

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/ridelens/ridelens/internal/weather"
)

const (
	// DefaultBaseURL is the NOAA Climate Data Online v2 API base URL.
	DefaultBaseURL = "https://www.ncdc.noaa.gov/cdo-web/api/v2"

	// StationDCA is the GHCN identifier for Reagan National Airport.
	StationDCA = "GHCND:USW00013743"

	datasetDaily = "GHCND"
)

// ClientConfig holds configuration for the CDO client.
type ClientConfig struct {
	// Token is the CDO API token (required).
	Token string

	// BaseURL overrides the API base URL (optional).
	BaseURL string

	// Station is the GHCN station identifier (optional, defaults to DCA).
	Station string

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client fetches GHCN daily summaries from the Climate Data Online API.
type Client struct {
	rest    *resty.Client
	token   string
	station string
	logger  zerolog.Logger
}

// NewClient creates a new Climate Data Online client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	station := cfg.Station
	if station == "" {
		station = StationDCA
	}

	rest := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second)

	return &Client{
		rest:    rest,
		token:   cfg.Token,
		station: station,
		logger:  cfg.Logger,
	}
}

type cdoResponse struct {
	Results []cdoRecord `json:"results"`
}

type cdoRecord struct {
	Date     string  `json:"date"`
	DataType string  `json:"datatype"`
	Station  string  `json:"station"`
	Value    float64 `json:"value"`
}

// DailySummaries fetches daily summaries for an inclusive date range.
// CDO returns one row per (date, element); rows are folded into one summary
// per day with the same derivations as a CSV export.
func (c *Client) DailySummaries(ctx context.Context, from, to time.Time) ([]weather.DailySummary, error) {
	if c.token == "" {
		return nil, &weather.ConfigError{Reason: "NOAA CDO token is not set"}
	}

	var payload cdoResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("token", c.token).
		SetQueryParams(map[string]string{
			"datasetid":  datasetDaily,
			"stationid":  c.station,
			"startdate":  from.Format("2006-01-02"),
			"enddate":    to.Format("2006-01-02"),
			"datatypeid": strings.Join([]string{elemTempMax, elemTempMin, elemPrecip, elemWind, elemSnow, elemSnowDepth}, ","),
			"units":      "standard",
			"limit":      "1000",
		}).
		SetResult(&payload).
		Get("/data")
	if err != nil {
		return nil, &weather.NetworkError{Err: err}
	}

	if resp.StatusCode() != 200 {
		return nil, &weather.ProviderError{
			StatusCode: resp.StatusCode(),
			Body:       strings.TrimSpace(string(resp.Body())),
		}
	}

	days, err := foldRecords(payload.Results)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Int("records", len(payload.Results)).
		Int("days", len(days)).
		Str("station", c.station).
		Msg("fetched NOAA daily summaries")

	return days, nil
}

// foldRecords groups per-element CDO rows into one summary per day.
func foldRecords(records []cdoRecord) ([]weather.DailySummary, error) {
	byDate := make(map[time.Time]*weather.DailySummary)

	for _, rec := range records {
		date, err := time.Parse("2006-01-02T15:04:05", rec.Date)
		if err != nil {
			return nil, &weather.ParseError{Reason: "unparseable CDO date " + rec.Date, Err: err}
		}
		day := date.UTC().Truncate(24 * time.Hour)

		summary, ok := byDate[day]
		if !ok {
			summary = &weather.DailySummary{Date: day, Condition: weather.ConditionUnknown}
			byDate[day] = summary
		}

		v := rec.Value
		switch rec.DataType {
		case elemTempMax:
			summary.TempMax = &v
		case elemTempMin:
			summary.TempMin = &v
		case elemPrecip:
			summary.Precipitation = &v
		case elemWind:
			summary.WindSpeed = &v
		case elemSnow:
			summary.Snow = &v
		case elemSnowDepth:
			summary.SnowDepth = &v
		}
	}

	days := make([]weather.DailySummary, 0, len(byDate))
	for _, summary := range byDate {
		deriveDay(summary)
		days = append(days, *summary)
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})

	return days, nil
}
