package models

import "github.com/ridelens/ridelens/internal/trips"

// DailyRides is one day of ride counts in GET /v1/rides/daily.
type DailyRides struct {
	Date            string  `json:"date"`
	Total           int     `json:"total"`
	Member          int     `json:"member"`
	Casual          int     `json:"casual"`
	MeanDurationMin float64 `json:"meanDurationMin"`
}

// DailyRidesList is the response body for GET /v1/rides/daily.
type DailyRidesList struct {
	From  string       `json:"from"`
	To    string       `json:"to"`
	Items []DailyRides `json:"items"`
}

// DailyRidesFromDomain maps a stored daily ride count to the API shape.
func DailyRidesFromDomain(day trips.DailyRides) DailyRides {
	return DailyRides{
		Date:            DateOnly(day.Date),
		Total:           day.Total,
		Member:          day.Member,
		Casual:          day.Casual,
		MeanDurationMin: day.MeanDurationMin,
	}
}
