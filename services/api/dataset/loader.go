package dataset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// DateLayout is the textual format of the dteday column.
const DateLayout = "2006-01-02"

// Source names a delimited file (or http/https URL) and its field delimiter.
type Source struct {
	Path      string
	Delimiter rune
}

// Loader reads the day and hour tables into memory.
type Loader struct {
	client *http.Client
}

// NewLoader returns a Loader. client is used for http/https sources; nil
// means a client with a 30s timeout.
func NewLoader(client *http.Client) *Loader {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Loader{client: client}
}

// LoadTables loads both sources and wraps them in a data context.
func (l *Loader) LoadTables(ctx context.Context, day, hour Source) (*Tables, error) {
	daily, err := l.LoadDaily(ctx, day)
	if err != nil {
		return nil, err
	}
	hourly, err := l.LoadHourly(ctx, hour)
	if err != nil {
		return nil, err
	}
	return NewTables(daily, hourly), nil
}

// LoadDaily reads day.csv.
func (l *Loader) LoadDaily(ctx context.Context, src Source) (*DailyTable, error) {
	f, err := l.readFrame(ctx, src)
	if err != nil {
		return nil, err
	}

	dates, err := f.dates("dteday")
	if err != nil {
		return nil, err
	}
	years, err := f.ints("yr")
	if err != nil {
		return nil, err
	}
	seasons, err := f.ints("season")
	if err != nil {
		return nil, err
	}
	weather, err := f.ints("weathersit")
	if err != nil {
		return nil, err
	}
	temp, err := f.floats("temp")
	if err != nil {
		return nil, err
	}
	hum, err := f.floats("hum")
	if err != nil {
		return nil, err
	}
	wind, err := f.floats("windspeed")
	if err != nil {
		return nil, err
	}
	counts, err := f.ints("cnt")
	if err != nil {
		return nil, err
	}

	months, err := f.optionalInts("mnth")
	if err != nil {
		return nil, err
	}
	holiday, err := f.optionalInts("holiday")
	if err != nil {
		return nil, err
	}
	weekday, err := f.optionalInts("weekday")
	if err != nil {
		return nil, err
	}
	working, err := f.optionalInts("workingday")
	if err != nil {
		return nil, err
	}
	atemp, err := f.optionalFloats("atemp")
	if err != nil {
		return nil, err
	}
	casual, err := f.optionalInts("casual")
	if err != nil {
		return nil, err
	}
	registered, err := f.optionalInts("registered")
	if err != nil {
		return nil, err
	}

	rows := make([]DailyRecord, f.rows)
	for i := range rows {
		rows[i] = DailyRecord{
			Date:        dates[i],
			Year:        Year(years[i]),
			Season:      Season(seasons[i]),
			Month:       months[i],
			Holiday:     holiday[i] == 1,
			Weekday:     weekday[i],
			WorkingDay:  working[i] == 1,
			Weather:     Weather(weather[i]),
			Temperature: temp[i],
			FeelsLike:   atemp[i],
			Humidity:    hum[i],
			Windspeed:   wind[i],
			Casual:      casual[i],
			Registered:  registered[i],
			RentalCount: counts[i],
		}
	}
	return NewTable(rows), nil
}

// LoadHourly reads hour.csv.
func (l *Loader) LoadHourly(ctx context.Context, src Source) (*HourlyTable, error) {
	f, err := l.readFrame(ctx, src)
	if err != nil {
		return nil, err
	}

	dates, err := f.dates("dteday")
	if err != nil {
		return nil, err
	}
	hours, err := f.ints("hr")
	if err != nil {
		return nil, err
	}
	years, err := f.ints("yr")
	if err != nil {
		return nil, err
	}
	seasons, err := f.ints("season")
	if err != nil {
		return nil, err
	}
	counts, err := f.ints("cnt")
	if err != nil {
		return nil, err
	}
	weather, err := f.optionalInts("weathersit")
	if err != nil {
		return nil, err
	}

	rows := make([]HourlyRecord, f.rows)
	for i := range rows {
		if hours[i] < 0 || hours[i] > 23 {
			return nil, &DataLoadError{Source: f.source, Column: "hr", Row: i + 1, Err: fmt.Errorf("hour %d out of range 0-23", hours[i])}
		}
		rows[i] = HourlyRecord{
			Date:        dates[i],
			Hour:        hours[i],
			Year:        Year(years[i]),
			Season:      Season(seasons[i]),
			Weather:     Weather(weather[i]),
			RentalCount: counts[i],
		}
	}
	return NewTable(rows), nil
}

// frame is a string-typed dataframe with per-column parsers that report
// the failing row.
type frame struct {
	source string
	df     dataframe.DataFrame
	names  map[string]string
	rows   int
}

func (l *Loader) readFrame(ctx context.Context, src Source) (*frame, error) {
	if src.Path == "" {
		return nil, &DataLoadError{Source: src.Path, Err: errors.New("path is empty")}
	}
	delim := src.Delimiter
	if delim == 0 {
		delim = ','
	}

	data, err := l.read(ctx, src.Path)
	if err != nil {
		return nil, &DataLoadError{Source: src.Path, Err: err}
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.WithDelimiter(delim),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, &DataLoadError{Source: src.Path, Err: df.Err}
	}

	names := make(map[string]string)
	for _, n := range df.Names() {
		names[strings.TrimSpace(n)] = n
	}
	return &frame{source: src.Path, df: df, names: names, rows: df.Nrow()}, nil
}

func (l *Loader) read(ctx context.Context, path string) ([]byte, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return fetch(ctx, l.client, path)
	}
	return os.ReadFile(path)
}

func fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}

func (f *frame) column(name string) ([]string, error) {
	actual, ok := f.names[name]
	if !ok {
		return nil, &DataLoadError{Source: f.source, Column: name, Err: errors.New("column missing")}
	}
	col := f.df.Col(actual)
	if col.Err != nil {
		return nil, &DataLoadError{Source: f.source, Column: name, Err: col.Err}
	}
	return col.Records(), nil
}

func (f *frame) ints(name string) ([]int, error) {
	raw, err := f.column(name)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(raw))
	for i, s := range raw {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, &DataLoadError{Source: f.source, Column: name, Row: i + 1, Err: err}
		}
		out[i] = v
	}
	return out, nil
}

func (f *frame) floats(name string) ([]float64, error) {
	raw, err := f.column(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(raw))
	for i, s := range raw {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, &DataLoadError{Source: f.source, Column: name, Row: i + 1, Err: err}
		}
		out[i] = v
	}
	return out, nil
}

func (f *frame) dates(name string) ([]time.Time, error) {
	raw, err := f.column(name)
	if err != nil {
		return nil, err
	}
	out := make([]time.Time, len(raw))
	for i, s := range raw {
		t, err := time.Parse(DateLayout, strings.TrimSpace(s))
		if err != nil {
			return nil, &DataLoadError{Source: f.source, Column: name, Row: i + 1, Err: err}
		}
		out[i] = t
	}
	return out, nil
}

// optionalInts parses a column that older exports may omit; a missing
// column yields zeros.
func (f *frame) optionalInts(name string) ([]int, error) {
	if _, ok := f.names[name]; !ok {
		return make([]int, f.rows), nil
	}
	return f.ints(name)
}

func (f *frame) optionalFloats(name string) ([]float64, error) {
	if _, ok := f.names[name]; !ok {
		return make([]float64, f.rows), nil
	}
	return f.floats(name)
}
