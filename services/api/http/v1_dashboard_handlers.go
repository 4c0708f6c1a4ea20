package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/02loveslollipop/bikeshare-dashboard/services/api/analytics"
	"github.com/02loveslollipop/bikeshare-dashboard/services/api/dashboard"
	"github.com/02loveslollipop/bikeshare-dashboard/services/api/present"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type yearInfo struct {
	Year int `json:"year"`
	Code int `json:"code"`
}

type seasonInfo struct {
	Code  int    `json:"code"`
	Label string `json:"label"`
}

// handleV1Meta returns the observed years and seasons
// GET /api/v1/meta
func (s *Server) handleV1Meta(c *gin.Context) {
	tables := s.dash.Tables()
	domain := tables.Domain()

	years := make([]yearInfo, 0, len(domain.Years))
	for _, y := range domain.Years {
		years = append(years, yearInfo{Year: y.Calendar(), Code: int(y)})
	}
	seasons := make([]seasonInfo, 0, len(domain.Seasons))
	for _, v := range domain.Seasons {
		label, err := present.SeasonLabel(v)
		if err != nil {
			s.renderError(c, err)
			return
		}
		seasons = append(seasons, seasonInfo{Code: int(v), Label: label})
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"years":   years,
			"seasons": seasons,
		},
		"meta": gin.H{
			"daily_rows":  tables.Daily().Len(),
			"hourly_rows": tables.Hourly().Len(),
		},
	})
}

// handleV1Dashboard renders the full view model
// GET /api/v1/dashboard?year=2011&season=1,2
func (s *Server) handleV1Dashboard(c *gin.Context) {
	sel, ok := s.selection(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	vm, err := s.dash.Render(ctx, sel)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": vm,
		"meta": gin.H{
			"selection": vm.Selection.Key(),
			"warnings":  nonNil(vm.Warnings),
		},
	})
}

// handleV1Daily returns the processed data table
// GET /api/v1/daily
func (s *Server) handleV1Daily(c *gin.Context) {
	views, ok := s.views(c)
	if !ok {
		return
	}

	rows, err := present.DataTable(views.Daily)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": rows,
		"meta": gin.H{
			"count":    len(rows),
			"warnings": warnings(views, views.Daily.Len() == 0),
		},
	})
}

// handleV1Hourly returns hourly aggregates
// GET /api/v1/hourly?op=mean|sum
func (s *Server) handleV1Hourly(c *gin.Context) {
	op, err := analytics.ParseOp(c.DefaultQuery("op", string(analytics.OpMean)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	views, ok := s.views(c)
	if !ok {
		return
	}

	values, err := analytics.ByHour(views.Hourly, op)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"values": values,
			"chart":  present.HourlyChart(op, values),
		},
		"meta": gin.H{
			"op":       op,
			"rows":     views.Hourly.Len(),
			"warnings": warnings(views, views.Hourly.Len() == 0),
		},
	})
}

// handleV1Correlation returns the correlation heatmap
// GET /api/v1/correlation
func (s *Server) handleV1Correlation(c *gin.Context) {
	views, ok := s.views(c)
	if !ok {
		return
	}

	m, err := analytics.Correlate(views.Daily, analytics.CorrelationColumns)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": present.CorrelationHeatmap(m),
		"meta": gin.H{
			"rows":     views.Daily.Len(),
			"warnings": warnings(views, views.Daily.Len() == 0),
		},
	})
}

// handleV1Export streams the filtered view as an XLSX workbook
// GET /api/v1/export.xlsx
func (s *Server) handleV1Export(c *gin.Context) {
	sel, ok := s.selection(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	vm, err := s.dash.Render(ctx, sel)
	if err != nil {
		s.renderError(c, err)
		return
	}
	rows, err := present.DataTable(s.dash.Select(vm.Selection).Daily)
	if err != nil {
		s.renderError(c, err)
		return
	}

	data, err := s.reports.Workbook(vm, rows)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="bikeshare-report.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

func (s *Server) selection(c *gin.Context) (analytics.Selection, bool) {
	sel, err := parseSelection(c, s.dash.Tables().Domain())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return analytics.Selection{}, false
	}
	return sel, true
}

func (s *Server) views(c *gin.Context) (dashboard.Views, bool) {
	sel, ok := s.selection(c)
	if !ok {
		return dashboard.Views{}, false
	}
	return s.dash.Select(sel), true
}

func (s *Server) renderError(c *gin.Context, err error) {
	if errors.Is(err, present.ErrUnmappedCategory) {
		s.log.WithError(err).Errorf("unmapped category in %s", c.Request.URL.Path)
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func warnings(v dashboard.Views, empty bool) []string {
	out := append([]string{}, v.Warnings...)
	if empty {
		out = append(out, dashboard.NoDataWarning)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
