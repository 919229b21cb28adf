package handler

import (
	"net/http"

	"github.com/ridelens/ridelens/internal/api/models"
	"github.com/ridelens/ridelens/internal/api/response"
	"github.com/ridelens/ridelens/internal/store"
)

// RidesHandler handles ride-count endpoints.
type RidesHandler struct {
	repo store.Repository
}

// NewRidesHandler creates a new RidesHandler.
func NewRidesHandler(repo store.Repository) *RidesHandler {
	return &RidesHandler{repo: repo}
}

// Daily handles GET /v1/rides/daily - stored daily ride counts for a range.
func (h *RidesHandler) Daily(w http.ResponseWriter, r *http.Request) {
	from, to, err := dateRange(r)
	if err != nil {
		response.BadRequest(w, r, err.Error(), nil)
		return
	}

	days, err := h.repo.DailyRides(r.Context(), from, to)
	if err != nil {
		response.InternalError(w, r, "failed to load daily rides")
		return
	}

	out := models.DailyRidesList{
		From:  models.DateOnly(from),
		To:    models.DateOnly(to),
		Items: make([]models.DailyRides, 0, len(days)),
	}
	for _, day := range days {
		out.Items = append(out.Items, models.DailyRidesFromDomain(day))
	}

	response.JSON(w, r, http.StatusOK, out)
}
