package analytics

import (
	"errors"
	"fmt"
	"time"

	"github.com/02loveslollipop/bikeshare-dashboard/services/api/dataset"
)

// ErrUnknownOp is returned for an hourly aggregation other than mean or sum.
var ErrUnknownOp = errors.New("unknown aggregation")

// Counted is a row carrying a rental count.
type Counted interface {
	Count() int
}

// Summary holds the headline metrics of a view. For an empty view every
// number is zero and Empty is set.
type Summary struct {
	Count int     `json:"count"`
	Total int     `json:"total"`
	Mean  float64 `json:"mean"`
	Max   int     `json:"max"`
	Empty bool    `json:"empty"`
}

// Summarize computes total, mean and max rental count over the view.
func Summarize[T Counted](v dataset.View[T]) Summary {
	n := v.Len()
	if n == 0 {
		return Summary{Empty: true}
	}

	s := Summary{Count: n}
	for i := 0; i < n; i++ {
		c := v.At(i).Count()
		s.Total += c
		if i == 0 || c > s.Max {
			s.Max = c
		}
	}
	s.Mean = float64(s.Total) / float64(n)
	return s
}

// Op selects how hourly counts are combined.
type Op string

const (
	OpMean Op = "mean"
	OpSum  Op = "sum"
)

// ParseOp validates an aggregation name.
func ParseOp(s string) (Op, error) {
	switch Op(s) {
	case OpMean, OpSum:
		return Op(s), nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownOp, s)
	}
}

// HourValue is the aggregate for one hour of the day.
type HourValue struct {
	Hour  int     `json:"hour"`
	Value float64 `json:"value"`
	Rows  int     `json:"rows"`
}

// ByHour aggregates rental counts per hour of day, ascending by hour.
// Hours with no rows are left out.
func ByHour(v dataset.HourlyView, op Op) ([]HourValue, error) {
	if op != OpMean && op != OpSum {
		return nil, fmt.Errorf("%w %q", ErrUnknownOp, op)
	}

	var sums [24]int
	var rows [24]int
	v.Each(func(r dataset.HourlyRecord) {
		if r.Hour < 0 || r.Hour > 23 {
			return
		}
		sums[r.Hour] += r.RentalCount
		rows[r.Hour]++
	})

	out := make([]HourValue, 0, 24)
	for h := 0; h < 24; h++ {
		if rows[h] == 0 {
			continue
		}
		value := float64(sums[h])
		if op == OpMean {
			value /= float64(rows[h])
		}
		out = append(out, HourValue{Hour: h, Value: value, Rows: rows[h]})
	}
	return out, nil
}

// TimePoint is one point of the daily trend.
type TimePoint struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// Timeline returns (date, rental count) pairs in view order.
func Timeline(v dataset.DailyView) []TimePoint {
	out := make([]TimePoint, 0, v.Len())
	v.Each(func(r dataset.DailyRecord) {
		out = append(out, TimePoint{Date: r.Date, Count: r.RentalCount})
	})
	return out
}
