package handler

import (
	"net/http"

	"github.com/ridelens/ridelens/internal/api/models"
	"github.com/ridelens/ridelens/internal/api/response"
	"github.com/ridelens/ridelens/internal/store"
	"github.com/ridelens/ridelens/internal/weather"
)

// WeatherHandler handles weather endpoints.
type WeatherHandler struct {
	service    *weather.Service
	repo       store.Repository
	defaultLat float64
	defaultLon float64
}

// NewWeatherHandler creates a new WeatherHandler.
func NewWeatherHandler(service *weather.Service, repo store.Repository, defaultLat, defaultLon float64) *WeatherHandler {
	return &WeatherHandler{
		service:    service,
		repo:       repo,
		defaultLat: defaultLat,
		defaultLon: defaultLon,
	}
}

// Current handles GET /v1/weather/current - a live provider fetch.
// Every request maps to one provider call; there is no caching.
func (h *WeatherHandler) Current(w http.ResponseWriter, r *http.Request) {
	lat, err := coordinate(r, "lat", h.defaultLat)
	if err != nil {
		response.BadRequest(w, r, err.Error(), nil)
		return
	}
	lon, err := coordinate(r, "lon", h.defaultLon)
	if err != nil {
		response.BadRequest(w, r, err.Error(), nil)
		return
	}

	obs, err := h.service.Current(r.Context(), lat, lon)
	if err != nil {
		weatherError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, models.CurrentWeatherFromObservation(obs))
}

// Daily handles GET /v1/weather/daily - stored daily summaries for a range.
func (h *WeatherHandler) Daily(w http.ResponseWriter, r *http.Request) {
	from, to, err := dateRange(r)
	if err != nil {
		response.BadRequest(w, r, err.Error(), nil)
		return
	}

	days, err := h.repo.DailyWeather(r.Context(), from, to)
	if err != nil {
		response.InternalError(w, r, "failed to load daily weather")
		return
	}

	out := models.DailyWeatherList{
		From:  models.DateOnly(from),
		To:    models.DateOnly(to),
		Items: make([]models.DailyWeather, 0, len(days)),
	}
	for _, day := range days {
		out.Items = append(out.Items, models.DailyWeatherFromSummary(day))
	}

	response.JSON(w, r, http.StatusOK, out)
}
