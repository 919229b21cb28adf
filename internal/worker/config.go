package worker

import "time"

// BackfillConfig controls the pacing and target of a backfill run.
type BackfillConfig struct {
	// Lat and Lon select the location to backfill.
	Lat float64
	Lon float64

	// Pace is the delay between day fetches.
	Pace time.Duration

	// RateLimitPause is how long to wait after a provider 429 before
	// retrying the affected day.
	RateLimitPause time.Duration

	// DayTimeout bounds each individual day fetch.
	DayTimeout time.Duration
}

func (c BackfillConfig) withDefaults() BackfillConfig {
	if c.Pace <= 0 {
		c.Pace = time.Second
	}
	if c.RateLimitPause <= 0 {
		c.RateLimitPause = time.Minute
	}
	if c.DayTimeout <= 0 {
		c.DayTimeout = 30 * time.Second
	}
	return c
}
