package analytics

import "github.com/02loveslollipop/bikeshare-dashboard/services/api/dataset"

// Bucketed is a row that can be filtered by year and season.
type Bucketed interface {
	Bucket() (dataset.Year, dataset.Season)
}

// Filter returns the rows of table whose year and season are both selected,
// in table order. It never modifies the table.
func Filter[T Bucketed](table *dataset.Table[T], sel Selection) dataset.View[T] {
	if sel.IsEmpty() {
		return table.Subset(nil)
	}

	years := make(map[dataset.Year]bool, len(sel.Years))
	for _, y := range sel.Years {
		years[y] = true
	}
	seasons := make(map[dataset.Season]bool, len(sel.Seasons))
	for _, s := range sel.Seasons {
		seasons[s] = true
	}

	n := table.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		y, s := table.At(i).Bucket()
		if years[y] && seasons[s] {
			indices = append(indices, i)
		}
	}
	return table.Subset(indices)
}

// FilterDaily filters the daily table.
func FilterDaily(table *dataset.DailyTable, sel Selection) dataset.DailyView {
	return Filter(table, sel)
}

// FilterHourly filters the hourly table.
func FilterHourly(table *dataset.HourlyTable, sel Selection) dataset.HourlyView {
	return Filter(table, sel)
}
