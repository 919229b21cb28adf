package trips

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// timeLayout is the timestamp format used by the published trip CSVs.
const timeLayout = "2006-01-02 15:04:05"

// ReadStats reports what a CSV read kept and dropped.
type ReadStats struct {
	Rows    int
	Skipped int
}

// ReadCSV parses a Capital Bikeshare trip export. Rows with unparseable
// timestamps are counted and skipped rather than failing the whole file;
// analysts deal with sparse months, not clean ones.
func ReadCSV(r io.Reader) ([]TripRecord, ReadStats, error) {
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
	for _, name := range []string{"ride_id", "started_at", "ended_at"} {
		if _, ok := cols[name]; !ok {
			return nil, ReadStats{}, fmt.Errorf("CSV header has no %s column", name)
		}
	}

	var (
		records []TripRecord
		stats   ReadStats
	)

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("reading CSV row: %w", err)
		}
		stats.Rows++

		startedAt, err1 := time.Parse(timeLayout, cell(row, cols, "started_at"))
		endedAt, err2 := time.Parse(timeLayout, cell(row, cols, "ended_at"))
		if err1 != nil || err2 != nil {
			stats.Skipped++
			continue
		}

		records = append(records, TripRecord{
			RideID:           cell(row, cols, "ride_id"),
			RideableType:     cell(row, cols, "rideable_type"),
			StartedAt:        startedAt.UTC(),
			EndedAt:          endedAt.UTC(),
			StartStationName: cell(row, cols, "start_station_name"),
			StartStationID:   cell(row, cols, "start_station_id"),
			EndStationName:   cell(row, cols, "end_station_name"),
			EndStationID:     cell(row, cols, "end_station_id"),
			MemberCasual:     cell(row, cols, "member_casual"),
		})
	}

	return records, stats, nil
}

// cell returns a named column value, empty when the column is absent.
func cell(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}
