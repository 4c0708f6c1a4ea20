package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/02loveslollipop/bikeshare-dashboard/services/api/analytics"
	"github.com/02loveslollipop/bikeshare-dashboard/services/api/dashboard"
	"github.com/02loveslollipop/bikeshare-dashboard/services/api/dataset"
	"github.com/02loveslollipop/bikeshare-dashboard/services/api/present"
)

func fixture(t *testing.T) (*dashboard.ViewModel, []present.DataRow) {
	t.Helper()
	d1, _ := time.Parse(dataset.DateLayout, "2011-01-01")
	d2, _ := time.Parse(dataset.DateLayout, "2011-06-01")
	daily := dataset.NewTable([]dataset.DailyRecord{
		{Date: d1, Year: dataset.Year2011, Season: dataset.Spring, Weather: dataset.Clear, RentalCount: 1000},
		{Date: d2, Year: dataset.Year2011, Season: dataset.Summer, Weather: dataset.Mist, RentalCount: 2500},
	})
	hourly := dataset.NewTable([]dataset.HourlyRecord{
		{Date: d1, Hour: 8, Year: dataset.Year2011, Season: dataset.Spring, RentalCount: 40},
		{Date: d2, Hour: 8, Year: dataset.Year2011, Season: dataset.Summer, RentalCount: 60},
	})
	dash := dashboard.New(dataset.NewTables(daily, hourly))

	sel := analytics.SelectAll(dash.Tables().Domain())
	vm, err := dash.Render(context.Background(), sel)
	require.NoError(t, err)
	rows, err := present.DataTable(dash.Select(sel).Daily)
	require.NoError(t, err)
	return vm, rows
}

func TestWorkbook(t *testing.T) {
	vm, rows := fixture(t)

	data, err := NewGenerator(nil).Workbook(vm, rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, DataSheet, HourlySheet, SeasonSheet, WeatherSheet}, f.GetSheetList())

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(summary), 5)
	assert.Equal(t, []string{"Metric", "Value"}, summary[0])
	assert.Equal(t, []string{"Total Rentals", "3,500"}, summary[1])
	assert.Equal(t, []string{"Max Rentals in a Day", "2,500"}, summary[3])
	assert.Equal(t, "Selection", summary[4][0])
	assert.Contains(t, summary[4][1], "2011")

	dataRows, err := f.GetRows(DataSheet)
	require.NoError(t, err)
	require.Len(t, dataRows, 3)
	assert.Equal(t, []string{"2011-06-01", "Summer", "Mist", "2500"}, dataRows[2])

	hourlyRows, err := f.GetRows(HourlySheet)
	require.NoError(t, err)
	require.Len(t, hourlyRows, 2)
	assert.Equal(t, []string{"8", "50", "100"}, hourlyRows[1])

	weatherRows, err := f.GetRows(WeatherSheet)
	require.NoError(t, err)
	require.Len(t, weatherRows, 3)
	assert.Equal(t, "Clear", weatherRows[1][0])
}

func TestWorkbookEmptySelection(t *testing.T) {
	dash := dashboard.New(dataset.NewTables(nil, nil))
	vm, err := dash.Render(context.Background(), analytics.Selection{})
	require.NoError(t, err)

	data, err := NewGenerator(nil).Workbook(vm, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Avg. Rentals per Day", present.NoData}, summary[2])
	assert.Equal(t, []string{"Warning", dashboard.NoDataWarning}, summary[len(summary)-1])

	dataRows, err := f.GetRows(DataSheet)
	require.NoError(t, err)
	assert.Len(t, dataRows, 1)
}
