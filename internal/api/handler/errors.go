package handler

import (
	"errors"
	"net/http"

	"github.com/ridelens/ridelens/internal/api/response"
	"github.com/ridelens/ridelens/internal/weather"
)

// weatherError maps domain fetch errors onto HTTP problem responses.
// Configuration problems are ours (503), provider and parse failures are
// theirs (502), quota rejections pass through as 429.
func weatherError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, weather.ErrInvalidCoordinates) {
		response.BadRequest(w, r, err.Error(), nil)
		return
	}

	var configErr *weather.ConfigError
	if errors.As(err, &configErr) {
		response.ServiceUnavailable(w, r, configErr.Error())
		return
	}

	var provErr *weather.ProviderError
	if errors.As(err, &provErr) {
		if provErr.RateLimited() {
			response.TooManyRequests(w, r, "weather provider quota exhausted")
			return
		}
		response.UpstreamError(w, r, provErr.Error())
		return
	}

	var netErr *weather.NetworkError
	var parseErr *weather.ParseError
	if errors.As(err, &netErr) || errors.As(err, &parseErr) {
		response.UpstreamError(w, r, err.Error())
		return
	}

	response.InternalError(w, r, "weather fetch failed")
}
