package analytics

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/02loveslollipop/bikeshare-dashboard/services/api/dataset"
)

// ErrUnknownColumn is returned when a correlation column is not numeric.
var ErrUnknownColumn = errors.New("unknown column")

// Column names a numeric column of the daily table.
type Column string

const (
	ColTemperature Column = "temperature"
	ColHumidity    Column = "humidity"
	ColWindspeed   Column = "windspeed"
	ColWeather     Column = "weather_situation"
	ColSeason      Column = "season"
	ColRentalCount Column = "rental_count"
)

// CorrelationColumns is the column set of the dashboard heatmap.
var CorrelationColumns = []Column{
	ColTemperature,
	ColHumidity,
	ColWindspeed,
	ColWeather,
	ColSeason,
	ColRentalCount,
}

func (c Column) value(r dataset.DailyRecord) (float64, bool) {
	switch c {
	case ColTemperature:
		return r.Temperature, true
	case ColHumidity:
		return r.Humidity, true
	case ColWindspeed:
		return r.Windspeed, true
	case ColWeather:
		return float64(r.Weather), true
	case ColSeason:
		return float64(r.Season), true
	case ColRentalCount:
		return float64(r.RentalCount), true
	default:
		return 0, false
	}
}

// Matrix is a square, symmetric correlation matrix. Cells that are
// undefined (fewer than two rows or a constant column) hold NaN.
type Matrix struct {
	Columns []Column
	Values  [][]float64
}

// At returns cell (i, j).
func (m Matrix) At(i, j int) float64 { return m.Values[i][j] }

// Correlate computes Pearson correlation coefficients between every pair of
// columns over the view.
func Correlate(v dataset.DailyView, columns []Column) (Matrix, error) {
	n := v.Len()
	data := make([][]float64, len(columns))
	for k, c := range columns {
		if _, ok := c.value(dataset.DailyRecord{}); !ok {
			return Matrix{}, fmt.Errorf("%w %q", ErrUnknownColumn, c)
		}
		data[k] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		r := v.At(i)
		for k, c := range columns {
			data[k][i], _ = c.value(r)
		}
	}

	varies := make([]bool, len(columns))
	if n >= 2 {
		for k := range columns {
			varies[k] = !constant(data[k])
		}
	}

	m := Matrix{
		Columns: append([]Column(nil), columns...),
		Values:  make([][]float64, len(columns)),
	}
	for i := range columns {
		m.Values[i] = make([]float64, len(columns))
	}
	for i := range columns {
		for j := i; j < len(columns); j++ {
			var r float64
			switch {
			case !varies[i] || !varies[j]:
				r = math.NaN()
			case i == j:
				r = 1
			default:
				r = clamp(stat.Correlation(data[i], data[j], nil))
			}
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m, nil
}

func constant(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}
	return true
}

// clamp removes floating point drift just outside [-1, 1].
func clamp(r float64) float64 {
	if r > 1 {
		return 1
	}
	if r < -1 {
		return -1
	}
	return r
}
