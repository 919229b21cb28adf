package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/ridelens/ridelens/internal/api/models"
	"github.com/ridelens/ridelens/internal/api/response"
	"github.com/ridelens/ridelens/internal/worker"
)

// maxBackfillDays caps one admin-triggered run; longer ranges should go
// through the scheduled job in chunks.
const maxBackfillDays = 366

// BackfillHandler handles the admin backfill endpoint.
type BackfillHandler struct {
	job      *worker.BackfillJob
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewBackfillHandler creates a new BackfillHandler.
func NewBackfillHandler(job *worker.BackfillJob, logger zerolog.Logger) *BackfillHandler {
	return &BackfillHandler{
		job:      job,
		validate: validator.New(),
		logger:   logger,
	}
}

// Trigger handles POST /v1/admin/backfill - start a historical weather
// backfill for an inclusive date range. The run happens in the background;
// the response acknowledges the accepted range.
func (h *BackfillHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	var input models.BackfillRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if err := h.validate.Struct(input); err != nil {
		response.BadRequest(w, r, "invalid backfill request", fieldErrors(err))
		return
	}

	from, _ := time.ParseInLocation(dateLayout, input.From, time.UTC)
	to, _ := time.ParseInLocation(dateLayout, input.To, time.UTC)
	if to.Before(from) {
		response.BadRequest(w, r, "to date precedes from date", nil)
		return
	}

	days := int(to.Sub(from).Hours()/24) + 1
	if days > maxBackfillDays {
		detail := fmt.Sprintf("range spans %d days, maximum is %d", days, maxBackfillDays)
		response.BadRequest(w, r, detail, nil)
		return
	}

	id := worker.NewBackfillID()
	go func() {
		// The run outlives the request; bound it instead of tying it to
		// the request context.
		ctx, cancel := context.WithTimeout(context.Background(), 24*time.Hour)
		defer cancel()

		result := h.job.RunWithID(ctx, id, from, to)
		h.logger.Info().
			Str("backfill_id", result.ID).
			Int("fetched", result.Fetched).
			Int("failed", result.Failed).
			Msg("admin backfill finished")
	}()

	accepted := models.BackfillAccepted{
		ID:     id,
		Status: "accepted",
		From:   input.From,
		To:     input.To,
		Days:   days,
	}
	response.Accepted(w, r, "", accepted)
}

// fieldErrors converts validator errors into the problem field format.
func fieldErrors(err error) []models.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]models.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, models.FieldError{
			Field:   fe.Field(),
			Message: fmt.Sprintf("failed %s validation", fe.Tag()),
			Code:    fe.Tag(),
		})
	}
	return out
}
