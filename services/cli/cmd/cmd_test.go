package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/02loveslollipop/bikeshare-dashboard/services/api/dashboard"
	"github.com/02loveslollipop/bikeshare-dashboard/services/api/dataset"
)

const dayCSV = `instant;dteday;season;yr;mnth;holiday;weekday;workingday;weathersit;temp;atemp;hum;windspeed;casual;registered;cnt
1;2011-01-01;1;0;1;0;6;0;2;0.344167;0.363625;0.805833;0.160446;331;654;985
2;2011-01-02;1;0;1;0;0;0;2;0.363478;0.353739;0.696087;0.248539;131;670;801
3;2012-06-01;2;1;6;0;5;1;1;0.6;0.58;0.5;0.2;900;5000;5900
`

const hourCSV = `instant,dteday,season,yr,mnth,hr,holiday,weekday,workingday,weathersit,temp,atemp,hum,windspeed,casual,registered,cnt
1,2011-01-01,1,0,1,0,0,6,0,1,0.24,0.2879,0.81,0,3,13,16
2,2011-01-01,1,0,1,1,0,6,0,1,0.22,0.2727,0.8,0,8,32,40
`

func dataFiles(t *testing.T) (day, hour string) {
	t.Helper()
	dir := t.TempDir()
	day = filepath.Join(dir, "day.csv")
	hour = filepath.Join(dir, "hour.csv")
	require.NoError(t, os.WriteFile(day, []byte(dayCSV), 0o600))
	require.NoError(t, os.WriteFile(hour, []byte(hourCSV), 0o600))
	return day, hour
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeEnv(t, nil, args...)
}

func executeEnv(t *testing.T, env map[string]string, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"DATABASE_URL", "REDIS_URL", "DRY_RUN", "DAY_CSV_DELIMITER", "HOUR_CSV_DELIMITER"} {
		t.Setenv(key, env[key])
	}
	resetFlags(rootCmd)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestSummary(t *testing.T) {
	day, hour := dataFiles(t)

	out, err := execute(t, "summary", "--day", day, "--hour", hour, "--year", "2011")
	require.NoError(t, err)

	assert.Contains(t, out, "Total Rentals")
	assert.Contains(t, out, "1,786")
	assert.Contains(t, out, "Spring")
	assert.Contains(t, out, "Mist")
	assert.NotContains(t, out, "Summer")
}

func TestSummaryJSON(t *testing.T) {
	day, hour := dataFiles(t)

	out, err := execute(t, "summary", "--day", day, "--hour", hour, "--season", "2", "--json")
	require.NoError(t, err)

	var vm dashboard.ViewModel
	require.NoError(t, json.Unmarshal([]byte(out), &vm))
	assert.Equal(t, 5900, vm.Summary.Total)
	assert.Equal(t, []dataset.Season{dataset.Summer}, vm.Selection.Seasons)
}

func TestSummaryWarnsOnUnknownYear(t *testing.T) {
	day, hour := dataFiles(t)

	out, err := execute(t, "summary", "--day", day, "--hour", hour, "--year", "2031")
	require.NoError(t, err)
	assert.Contains(t, out, "warning:")
	assert.Contains(t, out, dashboard.NoDataWarning)
	assert.Contains(t, out, "No data")
}

func TestSummaryFileFlagsOverrideDatabaseURL(t *testing.T) {
	day, hour := dataFiles(t)
	env := map[string]string{"DATABASE_URL": "postgres://%zz"}

	out, err := executeEnv(t, env, "summary", "--day", day, "--hour", hour, "--year", "2011")
	require.NoError(t, err)
	assert.Contains(t, out, "1,786")
}

func TestSummaryUsesDatabaseURLWithoutFileFlags(t *testing.T) {
	env := map[string]string{"DATABASE_URL": "postgres://%zz"}

	_, err := executeEnv(t, env, "summary")
	assert.ErrorIs(t, err, dataset.ErrDataLoad)
}

func TestSummaryMissingFile(t *testing.T) {
	_, hour := dataFiles(t)

	_, err := execute(t, "summary", "--day", filepath.Join(t.TempDir(), "nope.csv"), "--hour", hour)
	assert.ErrorIs(t, err, dataset.ErrDataLoad)
}

func TestExport(t *testing.T) {
	day, hour := dataFiles(t)
	path := filepath.Join(t.TempDir(), "out.xlsx")

	out, err := execute(t, "export", "--day", day, "--hour", hour, "--year", "2011", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 2 rows")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Data")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestImportDryRun(t *testing.T) {
	day, hour := dataFiles(t)

	out, err := execute(t, "import", "--day", day, "--hour", hour, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "parsed 3 daily and 2 hourly rows")
	assert.Contains(t, out, "dry-run")
}

func TestImportRequiresDatabaseURL(t *testing.T) {
	day, hour := dataFiles(t)

	_, err := execute(t, "import", "--day", day, "--hour", hour)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}
