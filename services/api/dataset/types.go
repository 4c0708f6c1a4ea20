package dataset

import (
	"strconv"
	"time"
)

// Year is the dataset's year code: 0 for 2011, 1 for 2012.
type Year int

const (
	Year2011 Year = 0
	Year2012 Year = 1

	baseYear = 2011
)

// Calendar returns the calendar year the code stands for.
func (y Year) Calendar() int { return baseYear + int(y) }

func (y Year) String() string { return strconv.Itoa(y.Calendar()) }

// YearFromCalendar maps a calendar year back to its code.
func YearFromCalendar(year int) Year { return Year(year - baseYear) }

// Season is the season code, 1 (spring) through 4 (winter).
type Season int

const (
	Spring Season = 1
	Summer Season = 2
	Fall   Season = 3
	Winter Season = 4
)

// Weather is the weather situation code, 1 (clear) through 4 (heavy rain/snow).
type Weather int

const (
	Clear         Weather = 1
	Mist          Weather = 2
	LightRainSnow Weather = 3
	HeavyRainSnow Weather = 4
)

// DailyRecord is one row of day.csv.
type DailyRecord struct {
	Date        time.Time `json:"date"`
	Year        Year      `json:"year"`
	Season      Season    `json:"season"`
	Month       int       `json:"month"`
	Holiday     bool      `json:"holiday"`
	Weekday     int       `json:"weekday"`
	WorkingDay  bool      `json:"working_day"`
	Weather     Weather   `json:"weather_situation"`
	Temperature float64   `json:"temperature"`
	FeelsLike   float64   `json:"feels_like"`
	Humidity    float64   `json:"humidity"`
	Windspeed   float64   `json:"windspeed"`
	Casual      int       `json:"casual"`
	Registered  int       `json:"registered"`
	RentalCount int       `json:"rental_count"`
}

// Bucket returns the filter dimensions of the row.
func (r DailyRecord) Bucket() (Year, Season) { return r.Year, r.Season }

// Count returns the rental count of the row.
func (r DailyRecord) Count() int { return r.RentalCount }

// HourlyRecord is one row of hour.csv.
type HourlyRecord struct {
	Date        time.Time `json:"date"`
	Hour        int       `json:"hour"`
	Year        Year      `json:"year"`
	Season      Season    `json:"season"`
	Weather     Weather   `json:"weather_situation"`
	RentalCount int       `json:"rental_count"`
}

// Bucket returns the filter dimensions of the row.
func (r HourlyRecord) Bucket() (Year, Season) { return r.Year, r.Season }

// Count returns the rental count of the row.
func (r HourlyRecord) Count() int { return r.RentalCount }
