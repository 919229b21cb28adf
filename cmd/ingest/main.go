// Package main provides the RideLens ingestion CLI. It loads Capital
// Bikeshare trip exports and NOAA daily weather into the store, either from
// local CSV files or from the Climate Data Online API.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/ridelens/ridelens/internal/config"
	"github.com/ridelens/ridelens/internal/database"
	"github.com/ridelens/ridelens/internal/store"
	"github.com/ridelens/ridelens/internal/trips"
	"github.com/ridelens/ridelens/internal/weather"
	"github.com/ridelens/ridelens/internal/weather/noaa"
)

const dateLayout = "2006-01-02"

func main() {
	var (
		tripsPath   = flag.String("trips", "", "path to a Capital Bikeshare trip CSV export")
		noaaCSVPath = flag.String("noaa-csv", "", "path to a GHCN daily-summaries CSV export")
		cdoFrom     = flag.String("cdo-from", "", "fetch daily summaries from the CDO API starting at this date (YYYY-MM-DD)")
		cdoTo       = flag.String("cdo-to", "", "end date for the CDO fetch (YYYY-MM-DD, inclusive)")
	)
	flag.Parse()

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", "ridelens-ingest").
		Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if *tripsPath == "" && *noaaCSVPath == "" && *cdoFrom == "" {
		log.Fatal().Msg("nothing to ingest: pass -trips, -noaa-csv, or -cdo-from/-cdo-to")
	}

	ctx := context.Background()

	var repo store.Repository
	if os.Getenv("STORE_BACKEND") == "memory" {
		repo = store.NewMemoryRepository()
		log.Warn().Msg("using in-memory store, ingested data is discarded on exit")
	} else {
		pool, err := database.Connect(ctx, database.ConfigFromEnv())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()

		pg := store.NewPostgresRepository(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to ensure database schema")
		}
		repo = pg
	}

	if *tripsPath != "" {
		ingestTrips(ctx, log, repo, *tripsPath)
	}
	if *noaaCSVPath != "" {
		ingestNOAACSV(ctx, log, repo, *noaaCSVPath)
	}
	if *cdoFrom != "" {
		ingestCDO(ctx, log, repo, cfg.NOAAToken, *cdoFrom, *cdoTo)
	}
}

func ingestTrips(ctx context.Context, log zerolog.Logger, repo store.Repository, path string) {
	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("failed to open trip CSV")
	}
	defer f.Close()

	records, stats, err := trips.ReadCSV(f)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("failed to read trip CSV")
	}

	days := trips.AggregateDaily(records)
	for _, day := range days {
		if err := repo.SaveDailyRides(ctx, day); err != nil {
			log.Fatal().Err(err).Time("date", day.Date).Msg("failed to save daily rides")
		}
	}

	log.Info().
		Str("path", path).
		Int("rows", stats.Rows).
		Int("skipped", stats.Skipped).
		Int("days", len(days)).
		Msg("trip ingestion complete")
}

func ingestNOAACSV(ctx context.Context, log zerolog.Logger, repo store.Repository, path string) {
	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("failed to open NOAA CSV")
	}
	defer f.Close()

	days, stats, err := noaa.ReadDailyCSV(f)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("failed to read NOAA CSV")
	}

	saveWeather(ctx, log, repo, days)

	log.Info().
		Str("path", path).
		Int("rows", stats.Rows).
		Int("skipped", stats.Skipped).
		Int("days", len(days)).
		Msg("NOAA CSV ingestion complete")
}

func ingestCDO(ctx context.Context, log zerolog.Logger, repo store.Repository, token, fromStr, toStr string) {
	from, err := time.ParseInLocation(dateLayout, fromStr, time.UTC)
	if err != nil {
		log.Fatal().Str("cdo-from", fromStr).Msg("invalid -cdo-from date")
	}
	to := from
	if toStr != "" {
		if to, err = time.ParseInLocation(dateLayout, toStr, time.UTC); err != nil {
			log.Fatal().Str("cdo-to", toStr).Msg("invalid -cdo-to date")
		}
	}

	client := noaa.NewClient(noaa.ClientConfig{
		Token:  token,
		Logger: log,
	})

	days, err := client.DailySummaries(ctx, from, to)
	if err != nil {
		log.Fatal().Err(err).Msg("CDO fetch failed")
	}

	saveWeather(ctx, log, repo, days)

	log.Info().
		Time("from", from).
		Time("to", to).
		Int("days", len(days)).
		Msg("CDO ingestion complete")
}

func saveWeather(ctx context.Context, log zerolog.Logger, repo store.Repository, days []weather.DailySummary) {
	for _, day := range days {
		if err := repo.SaveDailyWeather(ctx, day); err != nil {
			log.Fatal().Err(err).Time("date", day.Date).Msg("failed to save daily weather")
		}
	}
}
