package handler

import (
	"net/http"

	"github.com/ridelens/ridelens/internal/analysis"
	"github.com/ridelens/ridelens/internal/api/models"
	"github.com/ridelens/ridelens/internal/api/response"
	"github.com/ridelens/ridelens/internal/store"
)

// AnalysisHandler handles analysis endpoints.
type AnalysisHandler struct {
	repo store.Repository
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(repo store.Repository) *AnalysisHandler {
	return &AnalysisHandler{repo: repo}
}

// Summary handles GET /v1/analysis/summary - descriptive statistics over the
// merged ride and weather dataset for a date range.
func (h *AnalysisHandler) Summary(w http.ResponseWriter, r *http.Request) {
	from, to, err := dateRange(r)
	if err != nil {
		response.BadRequest(w, r, err.Error(), nil)
		return
	}

	rides, err := h.repo.DailyRides(r.Context(), from, to)
	if err != nil {
		response.InternalError(w, r, "failed to load daily rides")
		return
	}
	days, err := h.repo.DailyWeather(r.Context(), from, to)
	if err != nil {
		response.InternalError(w, r, "failed to load daily weather")
		return
	}

	if len(rides) == 0 && len(days) == 0 {
		response.NotFound(w, r, "no data for the requested range")
		return
	}

	summary := analysis.Summarize(analysis.Join(rides, days))
	out := models.AnalysisSummaryFromDomain(models.DateOnly(from), models.DateOnly(to), summary)

	response.JSON(w, r, http.StatusOK, out)
}
