package handlers

import (
	"context"
	"net/http"
	"time"

	"takeout-api/services"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reports *services.ReportService
	loc     *time.Location
}

func NewReportHandler(reports *services.ReportService, loc *time.Location) *ReportHandler {
	if loc == nil {
		loc = time.Local
	}
	return &ReportHandler{reports: reports, loc: loc}
}

// run parses ?begin=&end= and writes whatever the report function returns
func run[T any](h *ReportHandler, c *gin.Context, report func(ctx context.Context, begin, end time.Time) (T, error)) {
	begin, end, err := dateRange(c, h.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := report(c.Request.Context(), begin, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ReportHandler) Turnover(c *gin.Context) {
	run(h, c, h.reports.Turnover)
}

func (h *ReportHandler) Users(c *gin.Context) {
	run(h, c, h.reports.UserGrowth)
}

func (h *ReportHandler) Orders(c *gin.Context) {
	run(h, c, h.reports.OrderStats)
}

func (h *ReportHandler) Top10(c *gin.Context) {
	run(h, c, h.reports.TopSellers)
}
