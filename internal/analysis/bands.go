// Package analysis computes the descriptive statistics over the merged
// trip-plus-weather dataset: temperature banding, daily joins, and summaries.
package analysis

import "github.com/ridelens/ridelens/internal/weather"

// TempBand buckets a daily mean temperature for ridership comparison.
type TempBand string

const (
	BandFreezing TempBand = "FREEZING" // < 32°F
	BandCold     TempBand = "COLD"     // 32-50°F
	BandMild     TempBand = "MILD"     // 50-70°F
	BandWarm     TempBand = "WARM"     // 70-85°F
	BandHot      TempBand = "HOT"      // >= 85°F
	BandNone     TempBand = "UNKNOWN"  // no temperature data
)

// BandFor returns the band for a temperature in °F.
func BandFor(tempF float64) TempBand {
	switch {
	case tempF < 32:
		return BandFreezing
	case tempF < 50:
		return BandCold
	case tempF < 70:
		return BandMild
	case tempF < 85:
		return BandWarm
	default:
		return BandHot
	}
}

// BandForDay returns the band for a day's mean temperature, BandNone when
// the day has no temperature data.
func BandForDay(day *weather.DailySummary) TempBand {
	if day == nil || day.TempMean == nil {
		return BandNone
	}
	return BandFor(*day.TempMean)
}
