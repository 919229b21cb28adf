package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ridelens/ridelens/internal/trips"
	"github.com/ridelens/ridelens/internal/weather"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the daily tables if they do not exist.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS daily_weather (
			date date PRIMARY KEY,
			temp_max double precision,
			temp_min double precision,
			temp_mean double precision,
			precipitation double precision,
			snow double precision,
			snow_depth double precision,
			wind_speed double precision,
			condition text NOT NULL DEFAULT 'UNKNOWN',
			description text NOT NULL DEFAULT '',
			updated_at timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS daily_rides (
			date date PRIMARY KEY,
			total integer NOT NULL,
			member integer NOT NULL,
			casual integer NOT NULL,
			mean_duration_min double precision NOT NULL DEFAULT 0,
			updated_at timestamptz NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range statements {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveDailyWeather upserts one day of weather.
func (r *PostgresRepository) SaveDailyWeather(ctx context.Context, day weather.DailySummary) error {
	query := `
		INSERT INTO daily_weather (
			date, temp_max, temp_min, temp_mean,
			precipitation, snow, snow_depth, wind_speed,
			condition, description, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
		ON CONFLICT (date) DO UPDATE SET
			temp_max = EXCLUDED.temp_max,
			temp_min = EXCLUDED.temp_min,
			temp_mean = EXCLUDED.temp_mean,
			precipitation = EXCLUDED.precipitation,
			snow = EXCLUDED.snow,
			snow_depth = EXCLUDED.snow_depth,
			wind_speed = EXCLUDED.wind_speed,
			condition = EXCLUDED.condition,
			description = EXCLUDED.description,
			updated_at = now()
	`

	_, err := r.pool.Exec(ctx, query,
		day.Date.UTC().Truncate(24*time.Hour),
		day.TempMax,
		day.TempMin,
		day.TempMean,
		day.Precipitation,
		day.Snow,
		day.SnowDepth,
		day.WindSpeed,
		string(day.Condition),
		day.Description,
	)
	return err
}

// DailyWeather returns stored weather for an inclusive date range.
func (r *PostgresRepository) DailyWeather(ctx context.Context, from, to time.Time) ([]weather.DailySummary, error) {
	query := `
		SELECT
			date, temp_max, temp_min, temp_mean,
			precipitation, snow, snow_depth, wind_speed,
			condition, description
		FROM daily_weather
		WHERE date BETWEEN $1 AND $2
		ORDER BY date
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []weather.DailySummary
	for rows.Next() {
		var (
			day       weather.DailySummary
			condition string
		)
		err := rows.Scan(
			&day.Date,
			&day.TempMax,
			&day.TempMin,
			&day.TempMean,
			&day.Precipitation,
			&day.Snow,
			&day.SnowDepth,
			&day.WindSpeed,
			&condition,
			&day.Description,
		)
		if err != nil {
			return nil, err
		}
		day.Date = day.Date.UTC()
		day.Condition = weather.Condition(condition)
		days = append(days, day)
	}

	return days, rows.Err()
}

// SaveDailyRides upserts one day of ride counts.
func (r *PostgresRepository) SaveDailyRides(ctx context.Context, day trips.DailyRides) error {
	query := `
		INSERT INTO daily_rides (
			date, total, member, casual, mean_duration_min, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (date) DO UPDATE SET
			total = EXCLUDED.total,
			member = EXCLUDED.member,
			casual = EXCLUDED.casual,
			mean_duration_min = EXCLUDED.mean_duration_min,
			updated_at = now()
	`

	_, err := r.pool.Exec(ctx, query,
		day.Date.UTC().Truncate(24*time.Hour),
		day.Total,
		day.Member,
		day.Casual,
		day.MeanDurationMin,
	)
	return err
}

// DailyRides returns stored ride counts for an inclusive date range.
func (r *PostgresRepository) DailyRides(ctx context.Context, from, to time.Time) ([]trips.DailyRides, error) {
	query := `
		SELECT date, total, member, casual, mean_duration_min
		FROM daily_rides
		WHERE date BETWEEN $1 AND $2
		ORDER BY date
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []trips.DailyRides
	for rows.Next() {
		var day trips.DailyRides
		err := rows.Scan(
			&day.Date,
			&day.Total,
			&day.Member,
			&day.Casual,
			&day.MeanDurationMin,
		)
		if err != nil {
			return nil, err
		}
		day.Date = day.Date.UTC()
		days = append(days, day)
	}

	return days, rows.Err()
}
