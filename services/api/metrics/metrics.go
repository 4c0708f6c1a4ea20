// Package metrics provides Prometheus metrics for the dashboard API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RendersTotal counts dashboard renders by outcome.
	RendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bikeshare",
			Name:      "renders_total",
			Help:      "Total number of dashboard renders",
		},
		[]string{"status"},
	)

	// RenderDuration measures the filter, aggregate and present pass.
	RenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "bikeshare",
			Name:      "render_duration_seconds",
			Help:      "Duration of dashboard renders in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// CacheLookups counts view cache lookups by backend and result.
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bikeshare",
			Name:      "cache_lookups_total",
			Help:      "View cache lookups",
		},
		[]string{"backend", "result"},
	)

	// SelectionWarnings counts selections that referenced unknown values or matched nothing.
	SelectionWarnings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bikeshare",
			Name:      "selection_warnings_total",
			Help:      "Selections that produced warnings",
		},
		[]string{"kind"},
	)

	// TableRows reports the number of loaded rows per table.
	TableRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "bikeshare",
			Name:      "table_rows",
			Help:      "Rows loaded per source table",
		},
		[]string{"table"},
	)
)

// RecordRender records one render.
func RecordRender(status string, seconds float64) {
	RendersTotal.WithLabelValues(status).Inc()
	RenderDuration.Observe(seconds)
}

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(backend string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookups.WithLabelValues(backend, result).Inc()
}

// RecordWarning records a selection warning.
func RecordWarning(kind string) {
	SelectionWarnings.WithLabelValues(kind).Inc()
}

// SetTableRows records the size of a loaded table.
func SetTableRows(table string, rows int) {
	TableRows.WithLabelValues(table).Set(float64(rows))
}
