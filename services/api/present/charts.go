package present

import (
	"math"
	"strconv"

	"github.com/02loveslollipop/bikeshare-dashboard/services/api/analytics"
	"github.com/02loveslollipop/bikeshare-dashboard/services/api/dataset"
)

var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// Chart is the render-ready description of one chart.
type Chart struct {
	ChartType  string        `json:"chartType"`
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Series     []ChartSeries `json:"series"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
}

// ChartSeries is a named sequence of points.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint is one (label, value) pair.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// TimelineChart maps the daily trend to a line chart.
func TimelineChart(points []analytics.TimePoint) Chart {
	data := make([]ChartPoint, 0, len(points))
	for _, p := range points {
		data = append(data, ChartPoint{Label: p.Date.Format(dataset.DateLayout), Value: float64(p.Count)})
	}
	return Chart{
		ChartType: "line",
		Title:     "Daily Bike Rentals Trend",
		XAxis:     "Date",
		YAxis:     "Rental Count",
		Series:    []ChartSeries{{Name: "Rentals", Data: data, Color: defaultColors[0]}},
		ShowGrid:  true,
	}
}

// HourlySeries maps hourly aggregates to points labelled by hour.
func HourlySeries(name string, values []analytics.HourValue) ChartSeries {
	data := make([]ChartPoint, 0, len(values))
	for _, v := range values {
		data = append(data, ChartPoint{Label: strconv.Itoa(v.Hour), Value: roundTo2(v.Value)})
	}
	return ChartSeries{Name: name, Data: data}
}

// HourlyChart builds the typical-pattern (mean) or total-load (sum) chart.
func HourlyChart(op analytics.Op, values []analytics.HourValue) Chart {
	c := Chart{ChartType: "bar", XAxis: "Hour", ShowGrid: true}
	switch op {
	case analytics.OpSum:
		c.Title = "Total Rentals by Hour"
		c.YAxis = "Total Rentals"
	default:
		c.Title = "Average Rentals by Hour"
		c.YAxis = "Average Rentals"
	}
	s := HourlySeries(c.YAxis, values)
	s.Color = defaultColors[1]
	c.Series = []ChartSeries{s}
	return c
}

// LabeledBox is a box plot entry for one category.
type LabeledBox struct {
	Label string             `json:"label"`
	Box   analytics.BoxStats `json:"box"`
}

// Breakdown is a categorical view: totals for a bar chart and box
// statistics for a box plot.
type Breakdown struct {
	Totals Chart        `json:"totals"`
	Means  Chart        `json:"means"`
	Boxes  []LabeledBox `json:"boxes"`
}

// SeasonBreakdown labels per-season aggregates.
func SeasonBreakdown(stats []analytics.CategoryStat) (Breakdown, error) {
	return breakdown("Season", stats, func(code int) (string, error) {
		return SeasonLabel(dataset.Season(code))
	})
}

// WeatherBreakdown labels per-weather aggregates.
func WeatherBreakdown(stats []analytics.CategoryStat) (Breakdown, error) {
	return breakdown("Weather Condition", stats, func(code int) (string, error) {
		return WeatherLabel(dataset.Weather(code))
	})
}

func breakdown(axis string, stats []analytics.CategoryStat, label func(int) (string, error)) (Breakdown, error) {
	totals := make([]ChartPoint, 0, len(stats))
	means := make([]ChartPoint, 0, len(stats))
	boxes := make([]LabeledBox, 0, len(stats))
	for _, st := range stats {
		l, err := label(st.Code)
		if err != nil {
			return Breakdown{}, err
		}
		totals = append(totals, ChartPoint{Label: l, Value: float64(st.Total)})
		means = append(means, ChartPoint{Label: l, Value: roundTo2(st.Mean)})
		boxes = append(boxes, LabeledBox{Label: l, Box: st.Box})
	}
	return Breakdown{
		Totals: Chart{
			ChartType: "bar",
			Title:     "Bike Rentals by " + axis,
			XAxis:     axis,
			YAxis:     "Rental Count",
			Series:    []ChartSeries{{Name: "Total", Data: totals, Color: defaultColors[2]}},
			ShowGrid:  true,
		},
		Means: Chart{
			ChartType: "bar",
			Title:     "Average Daily Rentals by " + axis,
			XAxis:     axis,
			YAxis:     "Rental Count",
			Series:    []ChartSeries{{Name: "Average", Data: means, Color: defaultColors[3]}},
			ShowGrid:  true,
		},
		Boxes: boxes,
	}, nil
}

var columnLabels = map[analytics.Column]string{
	analytics.ColTemperature: "Temperature",
	analytics.ColHumidity:    "Humidity",
	analytics.ColWindspeed:   "Windspeed",
	analytics.ColWeather:     "Weather",
	analytics.ColSeason:      "Season",
	analytics.ColRentalCount: "Rentals",
}

// Heatmap is a labelled correlation matrix. Undefined cells are nil so they
// encode as JSON null.
type Heatmap struct {
	Labels []string     `json:"labels"`
	Cells  [][]*float64 `json:"cells"`
}

// CorrelationHeatmap maps a correlation matrix to heatmap cells.
func CorrelationHeatmap(m analytics.Matrix) Heatmap {
	h := Heatmap{
		Labels: make([]string, len(m.Columns)),
		Cells:  make([][]*float64, len(m.Values)),
	}
	for i, c := range m.Columns {
		if l, ok := columnLabels[c]; ok {
			h.Labels[i] = l
		} else {
			h.Labels[i] = string(c)
		}
	}
	for i, row := range m.Values {
		h.Cells[i] = make([]*float64, len(row))
		for j, v := range row {
			if math.IsNaN(v) {
				continue
			}
			r := roundTo2(v)
			h.Cells[i][j] = &r
		}
	}
	return h
}

// DataRow is one row of the processed data table.
type DataRow struct {
	Date        string `json:"date"`
	Season      string `json:"season"`
	Weather     string `json:"weather"`
	RentalCount int    `json:"rental_count"`
}

// DataTable labels the rows of a daily view.
func DataTable(v dataset.DailyView) ([]DataRow, error) {
	out := make([]DataRow, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		r := v.At(i)
		season, err := SeasonLabel(r.Season)
		if err != nil {
			return nil, err
		}
		weather, err := WeatherLabel(r.Weather)
		if err != nil {
			return nil, err
		}
		out = append(out, DataRow{
			Date:        r.Date.Format(dataset.DateLayout),
			Season:      season,
			Weather:     weather,
			RentalCount: r.RentalCount,
		})
	}
	return out, nil
}
