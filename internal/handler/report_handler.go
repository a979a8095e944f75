package handler

import (
	"net/http"
	"time"

	"listen/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	svc *service.ReportService
}

func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// parseRange reads from/to query params (RFC 3339 dates); defaults to the
// last 30 days.
func parseRange(c *gin.Context) (time.Time, time.Time, bool) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
			return from, to, false
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
			return from, to, false
		}
		to = t
	}
	return from, to, true
}

func (h *ReportHandler) Sales(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		return
	}
	sum, err := h.svc.SalesReport(from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "report failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"from": from, "to": to, "summary": sum})
}

func (h *ReportHandler) Purchases(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		return
	}
	sum, err := h.svc.PurchasesReport(from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "report failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"from": from, "to": to, "summary": sum})
}
