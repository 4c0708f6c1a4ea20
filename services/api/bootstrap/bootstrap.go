// Package bootstrap wires configuration to the data source and view cache
// shared by the API server and the CLI.
package bootstrap

import (
	"context"

	"github.com/02loveslollipop/bikeshare-dashboard/services/api/config"
	"github.com/02loveslollipop/bikeshare-dashboard/services/api/dashboard"
	"github.com/02loveslollipop/bikeshare-dashboard/services/api/dataset"
	"github.com/02loveslollipop/bikeshare-dashboard/services/api/db"
	"github.com/02loveslollipop/bikeshare-dashboard/services/api/logger"
	"github.com/02loveslollipop/bikeshare-dashboard/services/api/metrics"
)

// Sources returns the day and hour file sources named by cfg.
func Sources(cfg config.Config) (day, hour dataset.Source) {
	return dataset.Source{Path: cfg.DayCSVPath, Delimiter: cfg.DayCSVDelimiter},
		dataset.Source{Path: cfg.HourCSVPath, Delimiter: cfg.HourCSVDelimiter}
}

// LoadTables reads both tables from Postgres when cfg.DatabaseURL is set and
// from the delimited files otherwise. Every failure is a DataLoadError.
func LoadTables(ctx context.Context, cfg config.Config, log logger.Logger) (*dataset.Tables, error) {
	var (
		tables *dataset.Tables
		err    error
	)
	if cfg.DatabaseURL != "" {
		tables, err = loadFromDatabase(ctx, cfg.DatabaseURL)
		if err == nil {
			log.Infof("loaded tables from postgres")
		}
	} else {
		day, hour := Sources(cfg)
		tables, err = dataset.NewLoader(nil).LoadTables(ctx, day, hour)
		if err == nil {
			log.Infof("loaded tables from %s and %s", day.Path, hour.Path)
		}
	}
	if err != nil {
		return nil, err
	}

	metrics.SetTableRows("daily", tables.Daily().Len())
	metrics.SetTableRows("hourly", tables.Hourly().Len())
	log.WithField("daily_rows", tables.Daily().Len()).
		WithField("hourly_rows", tables.Hourly().Len()).
		Infof("dataset ready")
	return tables, nil
}

func loadFromDatabase(ctx context.Context, url string) (*dataset.Tables, error) {
	store, err := db.New(ctx, url)
	if err != nil {
		return nil, &dataset.DataLoadError{Source: "postgres", Err: err}
	}
	defer store.Close()
	return store.LoadTables(ctx)
}

// NewCache returns the view cache named by cfg: Redis when cfg.RedisURL is
// set and reachable, an in-process LRU otherwise. The returned func releases it.
func NewCache(ctx context.Context, cfg config.Config, log logger.Logger) (dashboard.Cache, func(), error) {
	if cfg.RedisURL != "" {
		c, err := dashboard.NewRedisCache(ctx, cfg.RedisURL, cfg.CacheTTL)
		if err == nil {
			log.Infof("view cache: redis (ttl %s)", cfg.CacheTTL)
			return c, func() { _ = c.Close() }, nil
		}
		log.WithError(err).Warnf("redis cache unavailable, falling back to in-process lru")
	}

	c, err := dashboard.NewLRUCache(cfg.CacheSize)
	if err != nil {
		return nil, nil, err
	}
	log.Infof("view cache: in-process lru (%d entries)", cfg.CacheSize)
	return c, func() {}, nil
}
