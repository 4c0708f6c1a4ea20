package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/02loveslollipop/bikeshare-dashboard/services/api/dataset"
)

// Pool is the subset of pgxpool.Pool the store uses.
type Pool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	Close()
}

// Store wraps database access helpers.
type Store struct {
	pool Pool
}

// New creates a Store backed by a pgx pool.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// NewWithPool creates a Store over an existing pool.
func NewWithPool(pool Pool) *Store {
	return &Store{pool: pool}
}

// Close releases the pool resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

const (
	dailySource  = "postgres:bikeshare.daily"
	hourlySource = "postgres:bikeshare.hourly"
)

const schemaSQL = `
CREATE SCHEMA IF NOT EXISTS bikeshare;
CREATE TABLE IF NOT EXISTS bikeshare.daily (
    dteday      date PRIMARY KEY,
    yr          integer NOT NULL,
    season      integer NOT NULL,
    mnth        integer NOT NULL,
    holiday     boolean NOT NULL,
    weekday     integer NOT NULL,
    workingday  boolean NOT NULL,
    weathersit  integer NOT NULL,
    temp        double precision NOT NULL,
    atemp       double precision NOT NULL,
    hum         double precision NOT NULL,
    windspeed   double precision NOT NULL,
    casual      integer NOT NULL,
    registered  integer NOT NULL,
    cnt         integer NOT NULL
);
CREATE TABLE IF NOT EXISTS bikeshare.hourly (
    dteday      date NOT NULL,
    hr          integer NOT NULL CHECK (hr BETWEEN 0 AND 23),
    yr          integer NOT NULL,
    season      integer NOT NULL,
    weathersit  integer NOT NULL,
    cnt         integer NOT NULL,
    PRIMARY KEY (dteday, hr)
);`

// EnsureSchema creates the bikeshare schema and tables when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schemaSQL)
	return err
}

const loadDailySQL = `
    SELECT dteday, yr, season, mnth, holiday, weekday, workingday, weathersit,
           temp, atemp, hum, windspeed, casual, registered, cnt
    FROM bikeshare.daily
    ORDER BY dteday
`

// LoadDaily reads every daily row in date order.
func (s *Store) LoadDaily(ctx context.Context) (*dataset.DailyTable, error) {
	rows, err := s.pool.Query(ctx, loadDailySQL)
	if err != nil {
		return nil, &dataset.DataLoadError{Source: dailySource, Err: err}
	}
	defer rows.Close()

	records := make([]dataset.DailyRecord, 0)
	for rows.Next() {
		var (
			r                   dataset.DailyRecord
			date                time.Time
			yr, season, weather int
		)
		if err := rows.Scan(
			&date,
			&yr,
			&season,
			&r.Month,
			&r.Holiday,
			&r.Weekday,
			&r.WorkingDay,
			&weather,
			&r.Temperature,
			&r.FeelsLike,
			&r.Humidity,
			&r.Windspeed,
			&r.Casual,
			&r.Registered,
			&r.RentalCount,
		); err != nil {
			return nil, &dataset.DataLoadError{Source: dailySource, Row: len(records) + 1, Err: err}
		}
		r.Date = date
		r.Year = dataset.Year(yr)
		r.Season = dataset.Season(season)
		r.Weather = dataset.Weather(weather)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &dataset.DataLoadError{Source: dailySource, Err: err}
	}
	return dataset.NewTable(records), nil
}

const loadHourlySQL = `
    SELECT dteday, hr, yr, season, weathersit, cnt
    FROM bikeshare.hourly
    ORDER BY dteday, hr
`

// LoadHourly reads every hourly row in (date, hour) order.
func (s *Store) LoadHourly(ctx context.Context) (*dataset.HourlyTable, error) {
	rows, err := s.pool.Query(ctx, loadHourlySQL)
	if err != nil {
		return nil, &dataset.DataLoadError{Source: hourlySource, Err: err}
	}
	defer rows.Close()

	records := make([]dataset.HourlyRecord, 0)
	for rows.Next() {
		var (
			r                   dataset.HourlyRecord
			date                time.Time
			yr, season, weather int
		)
		if err := rows.Scan(&date, &r.Hour, &yr, &season, &weather, &r.RentalCount); err != nil {
			return nil, &dataset.DataLoadError{Source: hourlySource, Row: len(records) + 1, Err: err}
		}
		r.Date = date
		r.Year = dataset.Year(yr)
		r.Season = dataset.Season(season)
		r.Weather = dataset.Weather(weather)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &dataset.DataLoadError{Source: hourlySource, Err: err}
	}
	return dataset.NewTable(records), nil
}

// LoadTables reads both tables and wraps them in a data context.
func (s *Store) LoadTables(ctx context.Context) (*dataset.Tables, error) {
	daily, err := s.LoadDaily(ctx)
	if err != nil {
		return nil, err
	}
	hourly, err := s.LoadHourly(ctx)
	if err != nil {
		return nil, err
	}
	return dataset.NewTables(daily, hourly), nil
}
