package present

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/02loveslollipop/bikeshare-dashboard/services/api/analytics"
)

// NoData is shown in place of a metric computed over no rows.
const NoData = "No data"

var printer = message.NewPrinter(language.English)

// Metric is one headline number, ready to display.
type Metric struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// MetricStrings formats a summary with thousands separators. Means are
// shown with no decimal places.
func MetricStrings(s analytics.Summary) []Metric {
	total := printer.Sprintf("%d", s.Total)
	mean, peak := NoData, NoData
	if !s.Empty {
		mean = printer.Sprintf("%.0f", s.Mean)
		peak = printer.Sprintf("%d", s.Max)
	}
	return []Metric{
		{Key: "total", Label: "Total Rentals", Value: total},
		{Key: "mean", Label: "Avg. Rentals per Day", Value: mean},
		{Key: "max", Label: "Max Rentals in a Day", Value: peak},
	}
}

// FormatInt formats n with thousands separators.
func FormatInt(n int) string {
	return printer.Sprintf("%d", n)
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
