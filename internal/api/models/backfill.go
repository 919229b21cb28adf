package models

// BackfillRequest is the request body for POST /v1/admin/backfill.
// Dates are inclusive calendar days.
type BackfillRequest struct {
	From string `json:"from" validate:"required,datetime=2006-01-02"`
	To   string `json:"to" validate:"required,datetime=2006-01-02"`
}

// BackfillAccepted is the 202 response body for POST /v1/admin/backfill.
type BackfillAccepted struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	From   string `json:"from"`
	To     string `json:"to"`
	Days   int    `json:"days"`
}
