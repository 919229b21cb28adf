package analysis

import (
	"math"
	"sort"
	"time"

	"github.com/ridelens/ridelens/internal/trips"
	"github.com/ridelens/ridelens/internal/weather"
)

// DayStats is one day of the merged dataset. Either side can be missing:
// a day with rides but no weather record, or the reverse.
type DayStats struct {
	Date    time.Time
	Rides   *trips.DailyRides
	Weather *weather.DailySummary
	Band    TempBand
}

// Join merges daily ride counts and daily weather on date, sorted by date.
func Join(rides []trips.DailyRides, days []weather.DailySummary) []DayStats {
	merged := make(map[time.Time]*DayStats)

	for i := range rides {
		r := rides[i]
		merged[r.Date] = &DayStats{Date: r.Date, Rides: &r}
	}
	for i := range days {
		w := days[i]
		stats, ok := merged[w.Date]
		if !ok {
			stats = &DayStats{Date: w.Date}
			merged[w.Date] = stats
		}
		stats.Weather = &w
	}

	out := make([]DayStats, 0, len(merged))
	for _, stats := range merged {
		stats.Band = BandForDay(stats.Weather)
		out = append(out, *stats)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})

	return out
}

// Summary holds descriptive statistics over a date range of merged days.
type Summary struct {
	Days       int
	TotalRides int

	// Temperatures in °F over days that had temperature data.
	MeanTemp *float64
	MinTemp  *float64
	MaxTemp  *float64

	// Precipitation in inches.
	TotalPrecipitation float64
	RainyDays          int
	SnowyDays          int

	// Mean daily rides split by rain.
	MeanRidesDry   *float64
	MeanRidesRainy *float64

	// RidesByBand maps temperature band to total rides.
	RidesByBand map[TempBand]int

	// Conditions maps condition to day count.
	Conditions map[weather.Condition]int

	// TempRideCorrelation is the Pearson correlation between daily mean
	// temperature and daily ride count, nil with fewer than three
	// complete days.
	TempRideCorrelation *float64
}

// Summarize computes descriptive statistics over merged days.
func Summarize(days []DayStats) Summary {
	s := Summary{
		RidesByBand: make(map[TempBand]int),
		Conditions:  make(map[weather.Condition]int),
	}

	var (
		tempSum              float64
		tempDays             int
		dryRides, rainyRides int
		dryDays, rainyDays   int
		temps, rideCounts    []float64
	)

	for _, day := range days {
		s.Days++

		rides := 0
		if day.Rides != nil {
			rides = day.Rides.Total
			s.TotalRides += rides
		}
		s.RidesByBand[day.Band] += rides

		w := day.Weather
		if w == nil {
			continue
		}

		if w.Condition != weather.ConditionUnknown {
			s.Conditions[w.Condition]++
		}
		if w.TempMean != nil {
			t := *w.TempMean
			tempSum += t
			tempDays++
			if s.MinTemp == nil || t < *s.MinTemp {
				s.MinTemp = &t
			}
			if s.MaxTemp == nil || t > *s.MaxTemp {
				s.MaxTemp = &t
			}
			if day.Rides != nil {
				temps = append(temps, t)
				rideCounts = append(rideCounts, float64(rides))
			}
		}
		if w.Precipitation != nil {
			s.TotalPrecipitation += *w.Precipitation
		}
		if w.Rainy() {
			s.RainyDays++
			if day.Rides != nil {
				rainyRides += rides
				rainyDays++
			}
		} else if day.Rides != nil {
			dryRides += rides
			dryDays++
		}
		if w.Snowy() {
			s.SnowyDays++
		}
	}

	if tempDays > 0 {
		mean := tempSum / float64(tempDays)
		s.MeanTemp = &mean
	}
	if dryDays > 0 {
		mean := float64(dryRides) / float64(dryDays)
		s.MeanRidesDry = &mean
	}
	if rainyDays > 0 {
		mean := float64(rainyRides) / float64(rainyDays)
		s.MeanRidesRainy = &mean
	}
	s.TempRideCorrelation = pearson(temps, rideCounts)

	return s
}

// pearson computes the Pearson correlation coefficient, nil when there are
// fewer than three pairs or either series is constant.
func pearson(xs, ys []float64) *float64 {
	n := len(xs)
	if n < 3 || n != len(ys) {
		return nil
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return nil
	}

	r := cov / math.Sqrt(varX*varY)
	return &r
}
