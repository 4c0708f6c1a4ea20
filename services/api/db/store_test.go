package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/02loveslollipop/bikeshare-dashboard/services/api/dataset"
)

var dailyColumns = []string{
	"dteday", "yr", "season", "mnth", "holiday", "weekday", "workingday", "weathersit",
	"temp", "atemp", "hum", "windspeed", "casual", "registered", "cnt",
}

func newMock(t *testing.T) (pgxmock.PgxPoolIface, *Store) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewWithPool(mock)
}

func date(s string) time.Time {
	d, _ := time.Parse(dataset.DateLayout, s)
	return d
}

func TestLoadDaily(t *testing.T) {
	mock, store := newMock(t)

	mock.ExpectQuery("SELECT dteday, yr, season").
		WillReturnRows(pgxmock.NewRows(dailyColumns).
			AddRow(date("2011-01-01"), 0, 1, 1, false, 6, false, 2, 0.34, 0.36, 0.8, 0.16, 331, 654, 985).
			AddRow(date("2012-07-04"), 1, 3, 7, true, 3, false, 1, 0.8, 0.75, 0.6, 0.1, 3000, 4000, 7000))

	table, err := store.LoadDaily(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	first := table.At(0)
	assert.Equal(t, date("2011-01-01"), first.Date)
	assert.Equal(t, dataset.Year2011, first.Year)
	assert.Equal(t, dataset.Spring, first.Season)
	assert.Equal(t, dataset.Mist, first.Weather)
	assert.Equal(t, 985, first.RentalCount)
	assert.InDelta(t, 0.34, first.Temperature, 1e-9)

	second := table.At(1)
	assert.Equal(t, dataset.Year2012, second.Year)
	assert.True(t, second.Holiday)
	assert.Equal(t, 7, second.Month)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadHourly(t *testing.T) {
	mock, store := newMock(t)

	mock.ExpectQuery("FROM bikeshare.hourly").
		WillReturnRows(pgxmock.NewRows([]string{"dteday", "hr", "yr", "season", "weathersit", "cnt"}).
			AddRow(date("2011-01-01"), 0, 0, 1, 1, 16).
			AddRow(date("2011-01-01"), 1, 0, 1, 1, 40))

	table, err := store.LoadHourly(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, 1, table.At(1).Hour)
	assert.Equal(t, 40, table.At(1).RentalCount)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadQueryErrorIsDataLoadError(t *testing.T) {
	mock, store := newMock(t)
	cause := errors.New(`relation "bikeshare.daily" does not exist`)

	mock.ExpectQuery("FROM bikeshare.daily").WillReturnError(cause)

	_, err := store.LoadDaily(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, dataset.ErrDataLoad))
	assert.True(t, errors.Is(err, cause))

	var loadErr *dataset.DataLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, dailySource, loadErr.Source)
}

func TestLoadTables(t *testing.T) {
	mock, store := newMock(t)

	mock.ExpectQuery("FROM bikeshare.daily").
		WillReturnRows(pgxmock.NewRows(dailyColumns).
			AddRow(date("2011-01-01"), 0, 1, 1, false, 6, false, 2, 0.34, 0.36, 0.8, 0.16, 331, 654, 985))
	mock.ExpectQuery("FROM bikeshare.hourly").
		WillReturnRows(pgxmock.NewRows([]string{"dteday", "hr", "yr", "season", "weathersit", "cnt"}).
			AddRow(date("2011-01-01"), 0, 0, 1, 1, 16))

	tables, err := store.LoadTables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, tables.Daily().Len())
	assert.Equal(t, 1, tables.Hourly().Len())
	assert.Equal(t, []dataset.Year{dataset.Year2011}, tables.Domain().Years)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadTablesStopsOnDailyError(t *testing.T) {
	mock, store := newMock(t)
	mock.ExpectQuery("FROM bikeshare.daily").WillReturnError(errors.New("timeout"))

	_, err := store.LoadTables(context.Background())
	assert.ErrorIs(t, err, dataset.ErrDataLoad)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	mock, store := newMock(t)
	mock.ExpectExec("CREATE SCHEMA IF NOT EXISTS bikeshare").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, store.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportEmptyTablesSkipsDatabase(t *testing.T) {
	mock, store := newMock(t)
	ctx := context.Background()

	n, err := store.ImportDaily(ctx, dataset.NewTable[dataset.DailyRecord](nil))
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = store.ImportHourly(ctx, dataset.NewTable[dataset.HourlyRecord](nil))
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.NoError(t, mock.ExpectationsWereMet())
}
