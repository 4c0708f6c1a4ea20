package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/02loveslollipop/bikeshare-dashboard/services/api/dataset"
)

// importBatchSize bounds the number of upserts queued per round trip.
const importBatchSize = 500

const upsertDailySQL = `INSERT INTO bikeshare.daily (dteday, yr, season, mnth, holiday, weekday, workingday, weathersit, temp, atemp, hum, windspeed, casual, registered, cnt)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
ON CONFLICT (dteday) DO UPDATE
SET yr = EXCLUDED.yr,
    season = EXCLUDED.season,
    mnth = EXCLUDED.mnth,
    holiday = EXCLUDED.holiday,
    weekday = EXCLUDED.weekday,
    workingday = EXCLUDED.workingday,
    weathersit = EXCLUDED.weathersit,
    temp = EXCLUDED.temp,
    atemp = EXCLUDED.atemp,
    hum = EXCLUDED.hum,
    windspeed = EXCLUDED.windspeed,
    casual = EXCLUDED.casual,
    registered = EXCLUDED.registered,
    cnt = EXCLUDED.cnt`

// ImportDaily upserts every row of the table into bikeshare.daily.
func (s *Store) ImportDaily(ctx context.Context, table *dataset.DailyTable) (int, error) {
	rows := table.View().Rows()
	return importRows(ctx, s.pool, rows, func(b *pgx.Batch, r dataset.DailyRecord) {
		b.Queue(upsertDailySQL,
			r.Date, int(r.Year), int(r.Season), r.Month, r.Holiday, r.Weekday, r.WorkingDay, int(r.Weather),
			r.Temperature, r.FeelsLike, r.Humidity, r.Windspeed, r.Casual, r.Registered, r.RentalCount)
	})
}

const upsertHourlySQL = `INSERT INTO bikeshare.hourly (dteday, hr, yr, season, weathersit, cnt)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (dteday, hr) DO UPDATE
SET yr = EXCLUDED.yr,
    season = EXCLUDED.season,
    weathersit = EXCLUDED.weathersit,
    cnt = EXCLUDED.cnt`

// ImportHourly upserts every row of the table into bikeshare.hourly.
func (s *Store) ImportHourly(ctx context.Context, table *dataset.HourlyTable) (int, error) {
	rows := table.View().Rows()
	return importRows(ctx, s.pool, rows, func(b *pgx.Batch, r dataset.HourlyRecord) {
		b.Queue(upsertHourlySQL, r.Date, r.Hour, int(r.Year), int(r.Season), int(r.Weather), r.RentalCount)
	})
}

func importRows[T any](ctx context.Context, pool Pool, rows []T, queue func(*pgx.Batch, T)) (int, error) {
	written := 0
	for start := 0; start < len(rows); start += importBatchSize {
		end := start + importBatchSize
		if end > len(rows) {
			end = len(rows)
		}

		batch := &pgx.Batch{}
		for _, r := range rows[start:end] {
			queue(batch, r)
		}
		if err := sendBatch(ctx, pool, batch); err != nil {
			return written, fmt.Errorf("upsert rows %d-%d: %w", start+1, end, err)
		}
		written = end
	}
	return written, nil
}

func sendBatch(ctx context.Context, pool Pool, batch *pgx.Batch) error {
	res := pool.SendBatch(ctx, batch)
	defer res.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := res.Exec(); err != nil {
			return err
		}
	}
	return nil
}
