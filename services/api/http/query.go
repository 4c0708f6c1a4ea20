package http

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/02loveslollipop/bikeshare-dashboard/services/api/analytics"
	"github.com/02loveslollipop/bikeshare-dashboard/services/api/dataset"
)

var seasonNames = map[string]dataset.Season{
	"spring": dataset.Spring,
	"summer": dataset.Summer,
	"fall":   dataset.Fall,
	"winter": dataset.Winter,
}

// parseSelection reads year/years and season/seasons. Each parameter may be
// repeated or hold a comma separated list. An absent dimension selects the
// whole domain; a present but blank one selects nothing.
func parseSelection(c *gin.Context, domain dataset.Domain) (analytics.Selection, error) {
	all := analytics.SelectAll(domain)

	years := all.Years
	if raw, ok := queryList(c, "year", "years"); ok {
		years = make([]dataset.Year, 0, len(raw))
		for _, v := range raw {
			n, err := strconv.Atoi(v)
			if err != nil {
				return analytics.Selection{}, fmt.Errorf("invalid year %q", v)
			}
			years = append(years, dataset.YearFromCalendar(n))
		}
	}

	seasons := all.Seasons
	if raw, ok := queryList(c, "season", "seasons"); ok {
		seasons = make([]dataset.Season, 0, len(raw))
		for _, v := range raw {
			if s, ok := seasonNames[strings.ToLower(v)]; ok {
				seasons = append(seasons, s)
				continue
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				return analytics.Selection{}, fmt.Errorf("invalid season %q", v)
			}
			seasons = append(seasons, dataset.Season(n))
		}
	}

	return analytics.NewSelection(years, seasons), nil
}

// queryList collects the non-blank comma separated values of the given keys.
// ok reports whether any of the keys was present at all.
func queryList(c *gin.Context, keys ...string) (values []string, ok bool) {
	for _, key := range keys {
		raw, present := c.GetQueryArray(key)
		if !present {
			continue
		}
		ok = true
		for _, item := range raw {
			for _, v := range strings.Split(item, ",") {
				if v = strings.TrimSpace(v); v != "" {
					values = append(values, v)
				}
			}
		}
	}
	return values, ok
}
