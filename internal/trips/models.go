// Package trips handles the Capital Bikeshare trip dataset: CSV ingestion
// and per-day ride aggregation. The dataset is an external join target; this
// package does not own its schema beyond the published CSV layout.
package trips

import (
	"sort"
	"time"
)

// Rider category values from the published dataset.
const (
	RiderMember = "member"
	RiderCasual = "casual"
)

// TripRecord is one row of the published trip CSV.
type TripRecord struct {
	RideID           string
	RideableType     string
	StartedAt        time.Time
	EndedAt          time.Time
	StartStationName string
	StartStationID   string
	EndStationName   string
	EndStationID     string
	MemberCasual     string
}

// Duration returns the trip duration.
func (t *TripRecord) Duration() time.Duration {
	return t.EndedAt.Sub(t.StartedAt)
}

// DailyRides is the ride count for one calendar day.
type DailyRides struct {
	// Date at midnight UTC
	Date time.Time

	Total  int
	Member int
	Casual int

	// MeanDurationMin is the mean trip duration in minutes.
	MeanDurationMin float64
}

// AggregateDaily rolls trip records up into per-day ride counts, sorted by
// date. Trips are assigned to the day they started.
func AggregateDaily(records []TripRecord) []DailyRides {
	type accumulator struct {
		rides   DailyRides
		totalMin float64
	}

	byDate := make(map[time.Time]*accumulator)
	for _, rec := range records {
		day := rec.StartedAt.UTC().Truncate(24 * time.Hour)

		acc, ok := byDate[day]
		if !ok {
			acc = &accumulator{rides: DailyRides{Date: day}}
			byDate[day] = acc
		}

		acc.rides.Total++
		switch rec.MemberCasual {
		case RiderMember:
			acc.rides.Member++
		case RiderCasual:
			acc.rides.Casual++
		}
		acc.totalMin += rec.Duration().Minutes()
	}

	days := make([]DailyRides, 0, len(byDate))
	for _, acc := range byDate {
		if acc.rides.Total > 0 {
			acc.rides.MeanDurationMin = acc.totalMin / float64(acc.rides.Total)
		}
		days = append(days, acc.rides)
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})

	return days
}
