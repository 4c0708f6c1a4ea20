package analytics

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/02loveslollipop/bikeshare-dashboard/services/api/dataset"
)

// ErrInvalidSelection matches every InvalidSelectionError via errors.Is.
var ErrInvalidSelection = errors.New("invalid selection")

// Selection picks rows by year AND season. A value matches when it is in the
// corresponding set; an empty set matches nothing.
type Selection struct {
	Years   []dataset.Year   `json:"years"`
	Seasons []dataset.Season `json:"seasons"`
}

// NewSelection returns a Selection with duplicates removed and values sorted.
func NewSelection(years []dataset.Year, seasons []dataset.Season) Selection {
	ys := make([]dataset.Year, 0, len(years))
	seenY := make(map[dataset.Year]bool, len(years))
	for _, y := range years {
		if !seenY[y] {
			seenY[y] = true
			ys = append(ys, y)
		}
	}
	ss := make([]dataset.Season, 0, len(seasons))
	seenS := make(map[dataset.Season]bool, len(seasons))
	for _, s := range seasons {
		if !seenS[s] {
			seenS[s] = true
			ss = append(ss, s)
		}
	}
	sort.Slice(ys, func(i, j int) bool { return ys[i] < ys[j] })
	sort.Slice(ss, func(i, j int) bool { return ss[i] < ss[j] })
	return Selection{Years: ys, Seasons: ss}
}

// SelectAll selects every year and season of the domain.
func SelectAll(d dataset.Domain) Selection {
	return NewSelection(d.Years, d.Seasons)
}

// IsEmpty reports whether the selection can match no row.
func (s Selection) IsEmpty() bool {
	return len(s.Years) == 0 || len(s.Seasons) == 0
}

// Key is a canonical string form, equal for equal selections.
func (s Selection) Key() string {
	n := NewSelection(s.Years, s.Seasons)
	ys := make([]string, len(n.Years))
	for i, y := range n.Years {
		ys[i] = strconv.Itoa(int(y))
	}
	ss := make([]string, len(n.Seasons))
	for i, v := range n.Seasons {
		ss[i] = strconv.Itoa(int(v))
	}
	return "y=" + strings.Join(ys, ",") + ";s=" + strings.Join(ss, ",")
}

// Normalize drops values the domain never observed. The returned error is
// nil when nothing was dropped; otherwise it lists the dropped values and
// the returned Selection is still usable.
func (s Selection) Normalize(d dataset.Domain) (Selection, error) {
	var badYears []dataset.Year
	var badSeasons []dataset.Season

	years := make([]dataset.Year, 0, len(s.Years))
	for _, y := range s.Years {
		if d.HasYear(y) {
			years = append(years, y)
		} else {
			badYears = append(badYears, y)
		}
	}
	seasons := make([]dataset.Season, 0, len(s.Seasons))
	for _, v := range s.Seasons {
		if d.HasSeason(v) {
			seasons = append(seasons, v)
		} else {
			badSeasons = append(badSeasons, v)
		}
	}

	out := NewSelection(years, seasons)
	if len(badYears) == 0 && len(badSeasons) == 0 {
		return out, nil
	}
	return out, &InvalidSelectionError{UnknownYears: badYears, UnknownSeasons: badSeasons}
}

// InvalidSelectionError lists selection values outside the observed domain.
type InvalidSelectionError struct {
	UnknownYears   []dataset.Year
	UnknownSeasons []dataset.Season
}

func (e *InvalidSelectionError) Error() string {
	var parts []string
	if len(e.UnknownYears) > 0 {
		ys := make([]string, len(e.UnknownYears))
		for i, y := range e.UnknownYears {
			ys[i] = y.String()
		}
		parts = append(parts, "unknown years "+strings.Join(ys, ", "))
	}
	if len(e.UnknownSeasons) > 0 {
		ss := make([]string, len(e.UnknownSeasons))
		for i, s := range e.UnknownSeasons {
			ss[i] = strconv.Itoa(int(s))
		}
		parts = append(parts, "unknown seasons "+strings.Join(ss, ", "))
	}
	return fmt.Sprintf("%s: %s ignored", ErrInvalidSelection, strings.Join(parts, "; "))
}

func (e *InvalidSelectionError) Is(target error) bool { return target == ErrInvalidSelection }
