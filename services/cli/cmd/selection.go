package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/02loveslollipop/bikeshare-dashboard/services/api/analytics"
	"github.com/02loveslollipop/bikeshare-dashboard/services/api/dataset"
)

func addSelectionFlags(c *cobra.Command) {
	c.Flags().IntSlice("year", nil, "calendar years to include (default all)")
	c.Flags().IntSlice("season", nil, "season codes 1-4 to include (default all)")
}

// selectionFromFlags builds the selection; an unset flag selects the whole
// observed domain for that dimension.
func selectionFromFlags(c *cobra.Command, domain dataset.Domain) (analytics.Selection, error) {
	all := analytics.SelectAll(domain)
	years, seasons := all.Years, all.Seasons

	if c.Flags().Changed("year") {
		raw, err := c.Flags().GetIntSlice("year")
		if err != nil {
			return analytics.Selection{}, fmt.Errorf("invalid --year: %w", err)
		}
		years = make([]dataset.Year, 0, len(raw))
		for _, y := range raw {
			years = append(years, dataset.YearFromCalendar(y))
		}
	}
	if c.Flags().Changed("season") {
		raw, err := c.Flags().GetIntSlice("season")
		if err != nil {
			return analytics.Selection{}, fmt.Errorf("invalid --season: %w", err)
		}
		seasons = make([]dataset.Season, 0, len(raw))
		for _, s := range raw {
			seasons = append(seasons, dataset.Season(s))
		}
	}
	return analytics.NewSelection(years, seasons), nil
}
