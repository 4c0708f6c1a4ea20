package analytics

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/02loveslollipop/bikeshare-dashboard/services/api/dataset"
)

// BoxStats is the five-number summary drawn by a box plot.
type BoxStats struct {
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// CategoryStat aggregates the rental counts of one category code.
type CategoryStat struct {
	Code  int      `json:"code"`
	Count int      `json:"count"`
	Total int      `json:"total"`
	Mean  float64  `json:"mean"`
	Box   BoxStats `json:"box"`
}

// BySeason breaks the view down by season code, ascending.
func BySeason(v dataset.DailyView) []CategoryStat {
	return byCategory(v, func(r dataset.DailyRecord) int { return int(r.Season) })
}

// ByWeather breaks the view down by weather situation code, ascending.
func ByWeather(v dataset.DailyView) []CategoryStat {
	return byCategory(v, func(r dataset.DailyRecord) int { return int(r.Weather) })
}

func byCategory(v dataset.DailyView, key func(dataset.DailyRecord) int) []CategoryStat {
	grouped := make(map[int][]float64)
	v.Each(func(r dataset.DailyRecord) {
		k := key(r)
		grouped[k] = append(grouped[k], float64(r.RentalCount))
	})

	codes := make([]int, 0, len(grouped))
	for k := range grouped {
		codes = append(codes, k)
	}
	sort.Ints(codes)

	out := make([]CategoryStat, 0, len(codes))
	for _, code := range codes {
		values := grouped[code]
		sort.Float64s(values)

		total := 0.0
		for _, x := range values {
			total += x
		}
		out = append(out, CategoryStat{
			Code:  code,
			Count: len(values),
			Total: int(total),
			Mean:  stat.Mean(values, nil),
			Box:   boxStats(values),
		})
	}
	return out
}

// boxStats expects sorted, non-empty input.
func boxStats(sorted []float64) BoxStats {
	return BoxStats{
		Min:    sorted[0],
		Q1:     stat.Quantile(0.25, stat.Empirical, sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Q3:     stat.Quantile(0.75, stat.Empirical, sorted, nil),
		Max:    sorted[len(sorted)-1],
	}
}
