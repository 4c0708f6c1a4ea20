// Package report writes the filtered dashboard data to an XLSX workbook.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/02loveslollipop/bikeshare-dashboard/services/api/dashboard"
	"github.com/02loveslollipop/bikeshare-dashboard/services/api/logger"
	"github.com/02loveslollipop/bikeshare-dashboard/services/api/present"
)

const (
	SummarySheet = "Summary"
	DataSheet    = "Data"
	HourlySheet  = "Hourly"
	SeasonSheet  = "Seasons"
	WeatherSheet = "Weather"
)

// Generator builds XLSX workbooks.
type Generator struct {
	logger logger.Logger
	now    func() time.Time
}

// NewGenerator returns a Generator logging through l.
func NewGenerator(l logger.Logger) *Generator {
	if l == nil {
		l = logger.Discard()
	}
	return &Generator{logger: l.WithField("component", "report"), now: time.Now}
}

// Workbook renders vm and the processed data rows to XLSX bytes.
func (g *Generator) Workbook(vm *dashboard.ViewModel, rows []present.DataRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetDocProps(&excelize.DocProperties{
		Title:   "Bike Sharing Dashboard",
		Subject: "Bike rentals for " + selectionLabel(vm),
		Creator: "bikeshare-dashboard",
		Created: g.now().UTC().Format(time.RFC3339),
	})

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, fmt.Errorf("failed to rename default sheet: %w", err)
	}
	if err := writeSummary(f, bold, vm); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeData(f, bold, rows); err != nil {
		return nil, fmt.Errorf("failed to create data sheet: %w", err)
	}
	if err := writeHourly(f, bold, vm); err != nil {
		return nil, fmt.Errorf("failed to create hourly sheet: %w", err)
	}
	if err := writeBreakdown(f, bold, SeasonSheet, "Season", vm.Seasons); err != nil {
		return nil, fmt.Errorf("failed to create season sheet: %w", err)
	}
	if err := writeBreakdown(f, bold, WeatherSheet, "Weather", vm.Weather); err != nil {
		return nil, fmt.Errorf("failed to create weather sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel to buffer: %w", err)
	}

	g.logger.Infof("Generated report for %s with %d rows", selectionLabel(vm), len(rows))
	return buf.Bytes(), nil
}

func selectionLabel(vm *dashboard.ViewModel) string {
	years := make([]string, len(vm.Selection.Years))
	for i, y := range vm.Selection.Years {
		years[i] = y.String()
	}
	seasons := make([]string, 0, len(vm.Selection.Seasons))
	for _, s := range vm.Selection.Seasons {
		if l, err := present.SeasonLabel(s); err == nil {
			seasons = append(seasons, l)
		}
	}
	return fmt.Sprintf("years [%s], seasons [%s]", strings.Join(years, ", "), strings.Join(seasons, ", "))
}

func header(f *excelize.File, sheet string, style int, cols ...interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &cols); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(cols), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func row(f *excelize.File, sheet string, n int, values ...interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func writeSummary(f *excelize.File, style int, vm *dashboard.ViewModel) error {
	if err := header(f, SummarySheet, style, "Metric", "Value"); err != nil {
		return err
	}
	n := 2
	for _, m := range vm.Metrics {
		if err := row(f, SummarySheet, n, m.Label, m.Value); err != nil {
			return err
		}
		n++
	}
	if err := row(f, SummarySheet, n, "Selection", selectionLabel(vm)); err != nil {
		return err
	}
	n++
	for _, w := range vm.Warnings {
		if err := row(f, SummarySheet, n, "Warning", w); err != nil {
			return err
		}
		n++
	}
	return f.SetColWidth(SummarySheet, "A", "B", 28)
}

func writeData(f *excelize.File, style int, rows []present.DataRow) error {
	if _, err := f.NewSheet(DataSheet); err != nil {
		return err
	}
	if err := header(f, DataSheet, style, "Date", "Season", "Weather", "Rental Count"); err != nil {
		return err
	}
	for i, r := range rows {
		if err := row(f, DataSheet, i+2, r.Date, r.Season, r.Weather, r.RentalCount); err != nil {
			return err
		}
	}
	return nil
}

func writeHourly(f *excelize.File, style int, vm *dashboard.ViewModel) error {
	if _, err := f.NewSheet(HourlySheet); err != nil {
		return err
	}
	if err := header(f, HourlySheet, style, "Hour", "Average Rentals", "Total Rentals"); err != nil {
		return err
	}
	mean := points(vm.HourlyMean)
	sum := points(vm.HourlySum)
	for i, p := range mean {
		var total interface{}
		if i < len(sum) && sum[i].Label == p.Label {
			total = sum[i].Value
		}
		if err := row(f, HourlySheet, i+2, p.Label, p.Value, total); err != nil {
			return err
		}
	}
	return nil
}

func writeBreakdown(f *excelize.File, style int, sheet, axis string, b present.Breakdown) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := header(f, sheet, style, axis, "Total", "Average", "Min", "Q1", "Median", "Q3", "Max"); err != nil {
		return err
	}
	totals := points(b.Totals)
	means := points(b.Means)
	for i, box := range b.Boxes {
		var total, mean interface{}
		if i < len(totals) {
			total = totals[i].Value
		}
		if i < len(means) {
			mean = means[i].Value
		}
		if err := row(f, sheet, i+2, box.Label, total, mean,
			box.Box.Min, box.Box.Q1, box.Box.Median, box.Box.Q3, box.Box.Max); err != nil {
			return err
		}
	}
	return nil
}

func points(c present.Chart) []present.ChartPoint {
	if len(c.Series) == 0 {
		return nil
	}
	return c.Series[0].Data
}
