// Package dashboard renders the full dashboard for one selection: it filters
// the loaded tables, aggregates the views and maps the results to charts.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/02loveslollipop/bikeshare-dashboard/services/api/analytics"
	"github.com/02loveslollipop/bikeshare-dashboard/services/api/dataset"
	"github.com/02loveslollipop/bikeshare-dashboard/services/api/logger"
	"github.com/02loveslollipop/bikeshare-dashboard/services/api/metrics"
	"github.com/02loveslollipop/bikeshare-dashboard/services/api/present"
)

// NoDataWarning is attached to a view model whose selection matched no rows.
const NoDataWarning = "no data for the selected filters"

// ViewModel is everything the front end needs to draw the dashboard.
// Values returned by Render may be shared between callers and must not be
// modified.
type ViewModel struct {
	Selection   analytics.Selection `json:"selection"`
	Warnings    []string            `json:"warnings"`
	Empty       bool                `json:"empty"`
	DailyRows   int                 `json:"daily_rows"`
	HourlyRows  int                 `json:"hourly_rows"`
	Summary     analytics.Summary   `json:"summary"`
	Metrics     []present.Metric    `json:"metrics"`
	Timeline    present.Chart       `json:"timeline"`
	HourlyMean  present.Chart       `json:"hourly_mean"`
	HourlySum   present.Chart       `json:"hourly_sum"`
	Seasons     present.Breakdown   `json:"seasons"`
	Weather     present.Breakdown   `json:"weather"`
	Correlation present.Heatmap     `json:"correlation"`
}

// Views is a normalized selection and the rows it matches.
type Views struct {
	Selection analytics.Selection
	Daily     dataset.DailyView
	Hourly    dataset.HourlyView
	Warnings  []string
}

// Dashboard renders view models over a fixed set of tables.
type Dashboard struct {
	tables *dataset.Tables
	cache  Cache
	log    logger.Logger
}

// Option configures a Dashboard.
type Option func(*Dashboard)

// WithCache stores rendered view models in c.
func WithCache(c Cache) Option {
	return func(d *Dashboard) { d.cache = c }
}

// WithLogger sets the logger used for cache failures.
func WithLogger(l logger.Logger) Option {
	return func(d *Dashboard) { d.log = l }
}

// New returns a Dashboard over tables. Without WithCache nothing is cached.
func New(tables *dataset.Tables, opts ...Option) *Dashboard {
	if tables == nil {
		tables = dataset.NewTables(nil, nil)
	}
	d := &Dashboard{tables: tables, log: logger.Discard()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Tables returns the tables the dashboard reads.
func (d *Dashboard) Tables() *dataset.Tables { return d.tables }

// Select normalizes sel against the observed domain and filters both tables.
// Dropped selection values and empty results are reported as warnings.
func (d *Dashboard) Select(sel analytics.Selection) Views {
	var warnings []string
	norm, err := sel.Normalize(d.tables.Domain())
	if err != nil {
		warnings = append(warnings, err.Error())
		metrics.RecordWarning("invalid_selection")
	}

	v := Views{
		Selection: norm,
		Daily:     analytics.FilterDaily(d.tables.Daily(), norm),
		Hourly:    analytics.FilterHourly(d.tables.Hourly(), norm),
		Warnings:  warnings,
	}
	if v.Daily.Len() == 0 && v.Hourly.Len() == 0 {
		metrics.RecordWarning("no_data")
	}
	return v
}

// Render builds the view model for sel. Unknown selection values are
// dropped with a warning; only a category code without a label fails.
func (d *Dashboard) Render(ctx context.Context, sel analytics.Selection) (*ViewModel, error) {
	start := time.Now()
	views := d.Select(sel)
	key := views.Selection.Key()

	if vm, ok := d.lookup(ctx, key); ok {
		metrics.RecordRender("cached", time.Since(start).Seconds())
		return withWarnings(vm, views.Warnings), nil
	}

	vm, err := Build(views)
	if err != nil {
		metrics.RecordRender("error", time.Since(start).Seconds())
		return nil, err
	}
	d.store(ctx, key, vm)

	metrics.RecordRender("ok", time.Since(start).Seconds())
	return withWarnings(vm, views.Warnings), nil
}

// Build computes the view model of already filtered views. Warnings carried
// by views are not copied into the result.
func Build(v Views) (*ViewModel, error) {
	vm := &ViewModel{
		Selection:  v.Selection,
		DailyRows:  v.Daily.Len(),
		HourlyRows: v.Hourly.Len(),
		Summary:    analytics.Summarize(v.Daily),
		Timeline:   present.TimelineChart(analytics.Timeline(v.Daily)),
	}
	vm.Metrics = present.MetricStrings(vm.Summary)
	vm.Empty = vm.DailyRows == 0 && vm.HourlyRows == 0
	if vm.Empty {
		vm.Warnings = []string{NoDataWarning}
	}

	mean, err := analytics.ByHour(v.Hourly, analytics.OpMean)
	if err != nil {
		return nil, err
	}
	sum, err := analytics.ByHour(v.Hourly, analytics.OpSum)
	if err != nil {
		return nil, err
	}
	vm.HourlyMean = present.HourlyChart(analytics.OpMean, mean)
	vm.HourlySum = present.HourlyChart(analytics.OpSum, sum)

	if vm.Seasons, err = present.SeasonBreakdown(analytics.BySeason(v.Daily)); err != nil {
		return nil, fmt.Errorf("season breakdown: %w", err)
	}
	if vm.Weather, err = present.WeatherBreakdown(analytics.ByWeather(v.Daily)); err != nil {
		return nil, fmt.Errorf("weather breakdown: %w", err)
	}

	m, err := analytics.Correlate(v.Daily, analytics.CorrelationColumns)
	if err != nil {
		return nil, err
	}
	vm.Correlation = present.CorrelationHeatmap(m)

	return vm, nil
}

func (d *Dashboard) lookup(ctx context.Context, key string) (*ViewModel, bool) {
	if d.cache == nil {
		return nil, false
	}
	vm, ok, err := d.cache.Get(ctx, key)
	if err != nil {
		d.log.WithField("cache", d.cache.Name()).WithError(err).Warnf("view cache get %s failed", key)
		return nil, false
	}
	metrics.RecordCacheLookup(d.cache.Name(), ok)
	return vm, ok
}

func (d *Dashboard) store(ctx context.Context, key string, vm *ViewModel) {
	if d.cache == nil {
		return
	}
	if err := d.cache.Set(ctx, key, vm); err != nil && !errors.Is(err, context.Canceled) {
		d.log.WithField("cache", d.cache.Name()).WithError(err).Warnf("view cache set %s failed", key)
	}
}

func withWarnings(vm *ViewModel, warnings []string) *ViewModel {
	if len(warnings) == 0 {
		return vm
	}
	out := *vm
	out.Warnings = make([]string, 0, len(warnings)+len(vm.Warnings))
	out.Warnings = append(out.Warnings, warnings...)
	out.Warnings = append(out.Warnings, vm.Warnings...)
	return &out
}
