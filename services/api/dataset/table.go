package dataset

import "sort"

// Table is an immutable, ordered set of rows. Rows are copied in on
// construction and only handed out by value, so a Table can be shared by
// any number of concurrent readers.
type Table[T any] struct {
	rows []T
}

// NewTable copies rows into a new Table.
func NewTable[T any](rows []T) *Table[T] {
	cp := make([]T, len(rows))
	copy(cp, rows)
	return &Table[T]{rows: cp}
}

func (t *Table[T]) Len() int { return len(t.rows) }

// At returns a copy of row i.
func (t *Table[T]) At(i int) T { return t.rows[i] }

// View returns a view over every row of the table.
func (t *Table[T]) View() View[T] {
	idx := make([]int, len(t.rows))
	for i := range idx {
		idx[i] = i
	}
	return View[T]{rows: t.rows, idx: idx}
}

// Subset returns a view over the given row positions, in the order given.
// Positions outside the table are ignored.
func (t *Table[T]) Subset(indices []int) View[T] {
	idx := make([]int, 0, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(t.rows) {
			idx = append(idx, i)
		}
	}
	return View[T]{rows: t.rows, idx: idx}
}

// View is a row subset of a Table. It holds positions into the table
// instead of copying rows.
type View[T any] struct {
	rows []T
	idx  []int
}

func (v View[T]) Len() int { return len(v.idx) }

// At returns a copy of the i-th row of the view.
func (v View[T]) At(i int) T { return v.rows[v.idx[i]] }

// Each calls fn for every row in view order.
func (v View[T]) Each(fn func(T)) {
	for _, i := range v.idx {
		fn(v.rows[i])
	}
}

// Rows returns a copy of the rows in the view.
func (v View[T]) Rows() []T {
	out := make([]T, 0, len(v.idx))
	for _, i := range v.idx {
		out = append(out, v.rows[i])
	}
	return out
}

// Positions returns the table positions backing the view.
func (v View[T]) Positions() []int {
	out := make([]int, len(v.idx))
	copy(out, v.idx)
	return out
}

type (
	DailyTable  = Table[DailyRecord]
	HourlyTable = Table[HourlyRecord]
	DailyView   = View[DailyRecord]
	HourlyView  = View[HourlyRecord]
)

// Domain lists the year and season codes observed in the loaded data.
type Domain struct {
	Years   []Year   `json:"years"`
	Seasons []Season `json:"seasons"`
}

// HasYear reports whether y was observed.
func (d Domain) HasYear(y Year) bool {
	for _, v := range d.Years {
		if v == y {
			return true
		}
	}
	return false
}

// HasSeason reports whether s was observed.
func (d Domain) HasSeason(s Season) bool {
	for _, v := range d.Seasons {
		if v == s {
			return true
		}
	}
	return false
}

// Tables is the read-only data context shared by every request.
type Tables struct {
	daily  *DailyTable
	hourly *HourlyTable
	domain Domain
}

// NewTables builds the data context and records the observed domain.
func NewTables(daily *DailyTable, hourly *HourlyTable) *Tables {
	if daily == nil {
		daily = NewTable[DailyRecord](nil)
	}
	if hourly == nil {
		hourly = NewTable[HourlyRecord](nil)
	}

	years := make(map[Year]struct{})
	seasons := make(map[Season]struct{})
	for _, r := range daily.rows {
		years[r.Year] = struct{}{}
		seasons[r.Season] = struct{}{}
	}
	for _, r := range hourly.rows {
		years[r.Year] = struct{}{}
		seasons[r.Season] = struct{}{}
	}

	d := Domain{
		Years:   make([]Year, 0, len(years)),
		Seasons: make([]Season, 0, len(seasons)),
	}
	for y := range years {
		d.Years = append(d.Years, y)
	}
	for s := range seasons {
		d.Seasons = append(d.Seasons, s)
	}
	sort.Slice(d.Years, func(i, j int) bool { return d.Years[i] < d.Years[j] })
	sort.Slice(d.Seasons, func(i, j int) bool { return d.Seasons[i] < d.Seasons[j] })

	return &Tables{daily: daily, hourly: hourly, domain: d}
}

func (t *Tables) Daily() *DailyTable   { return t.daily }
func (t *Tables) Hourly() *HourlyTable { return t.hourly }

// Domain returns a copy of the observed domain.
func (t *Tables) Domain() Domain {
	return Domain{
		Years:   append([]Year(nil), t.domain.Years...),
		Seasons: append([]Season(nil), t.domain.Seasons...),
	}
}
