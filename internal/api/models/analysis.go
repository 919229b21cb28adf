package models

import "github.com/ridelens/ridelens/internal/analysis"

// AnalysisSummary is the response body for GET /v1/analysis/summary.
type AnalysisSummary struct {
	From       string `json:"from"`
	To         string `json:"to"`
	Days       int    `json:"days"`
	TotalRides int    `json:"totalRides"`

	MeanTempF *float64 `json:"meanTempF"`
	MinTempF  *float64 `json:"minTempF"`
	MaxTempF  *float64 `json:"maxTempF"`

	TotalPrecipIn float64 `json:"totalPrecipIn"`
	RainyDays     int     `json:"rainyDays"`
	SnowyDays     int     `json:"snowyDays"`

	MeanRidesDry   *float64 `json:"meanRidesDry"`
	MeanRidesRainy *float64 `json:"meanRidesRainy"`

	RidesByBand map[string]int `json:"ridesByBand"`
	Conditions  map[string]int `json:"conditions"`

	TempRideCorrelation *float64 `json:"tempRideCorrelation"`
}

// AnalysisSummaryFromDomain maps a computed summary to the API shape.
func AnalysisSummaryFromDomain(from, to string, s analysis.Summary) AnalysisSummary {
	out := AnalysisSummary{
		From:                from,
		To:                  to,
		Days:                s.Days,
		TotalRides:          s.TotalRides,
		MeanTempF:           s.MeanTemp,
		MinTempF:            s.MinTemp,
		MaxTempF:            s.MaxTemp,
		TotalPrecipIn:       s.TotalPrecipitation,
		RainyDays:           s.RainyDays,
		SnowyDays:           s.SnowyDays,
		MeanRidesDry:        s.MeanRidesDry,
		MeanRidesRainy:      s.MeanRidesRainy,
		RidesByBand:         make(map[string]int, len(s.RidesByBand)),
		Conditions:          make(map[string]int, len(s.Conditions)),
		TempRideCorrelation: s.TempRideCorrelation,
	}
	for band, rides := range s.RidesByBand {
		out.RidesByBand[string(band)] = rides
	}
	for cond, days := range s.Conditions {
		out.Conditions[string(cond)] = days
	}
	return out
}
