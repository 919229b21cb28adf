// Package noaa ingests NOAA GHCN daily summaries, either from Climate Data
// Online exports on disk or through the CDO REST API. Reagan National (DCA)
// is the usual station for the DC bikeshare analysis.
package noaa

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/ridelens/ridelens/internal/weather"
)

// GHCN daily element names of interest.
const (
	elemTempMax   = "TMAX"
	elemTempMin   = "TMIN"
	elemPrecip    = "PRCP"
	elemWind      = "AWND"
	elemSnow      = "SNOW"
	elemSnowDepth = "SNWD"
)

// ReadStats reports what a CSV read kept and dropped.
type ReadStats struct {
	Rows    int
	Skipped int
}

// ReadDailyCSV parses a NOAA Climate Data Online daily-summaries export into
// daily weather summaries. The export must have a header row containing DATE;
// element columns that are absent simply leave the matching fields nil. Rows
// with an unparseable date are skipped, not fatal.
func ReadDailyCSV(r io.Reader) ([]weather.DailySummary, ReadStats, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, ReadStats{}, fmt.Errorf("reading CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	dateIdx, ok := cols["DATE"]
	if !ok {
		return nil, ReadStats{}, fmt.Errorf("CSV header has no DATE column")
	}

	var (
		days  []weather.DailySummary
		stats ReadStats
	)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("reading CSV row: %w", err)
		}
		stats.Rows++

		if dateIdx >= len(record) {
			stats.Skipped++
			continue
		}
		date, err := time.Parse("2006-01-02", record[dateIdx])
		if err != nil {
			stats.Skipped++
			continue
		}

		day := weather.DailySummary{
			Date:          date.UTC(),
			TempMax:       field(record, cols, elemTempMax),
			TempMin:       field(record, cols, elemTempMin),
			Precipitation: field(record, cols, elemPrecip),
			WindSpeed:     field(record, cols, elemWind),
			Snow:          field(record, cols, elemSnow),
			SnowDepth:     field(record, cols, elemSnowDepth),
			Condition:     weather.ConditionUnknown,
		}
		deriveDay(&day)
		days = append(days, day)
	}

	return days, stats, nil
}

// field extracts a named numeric column, nil when absent or blank.
func field(record []string, cols map[string]int, name string) *float64 {
	idx, ok := cols[name]
	if !ok || idx >= len(record) || record[idx] == "" {
		return nil
	}
	v, err := strconv.ParseFloat(record[idx], 64)
	if err != nil {
		return nil
	}
	return &v
}

// deriveDay fills derived fields: mean temperature from max/min, and a
// condition inferred from precipitation and snow.
func deriveDay(day *weather.DailySummary) {
	if day.TempMax != nil && day.TempMin != nil {
		mean := (*day.TempMax + *day.TempMin) / 2
		day.TempMean = &mean
	}

	switch {
	case day.Snow != nil && *day.Snow > 0:
		day.Condition = weather.ConditionSnow
	case day.Precipitation != nil && *day.Precipitation > 0:
		day.Condition = weather.ConditionRain
	}
}
