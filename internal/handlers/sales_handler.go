package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *APIHandler) reportDate(c *gin.Context) string {
	if date := c.Query("date"); date != "" {
		return date
	}
	return h.register.Today()
}

// ListSales handles GET /api/sales?date=YYYY-MM-DD, defaulting to today.
func (h *APIHandler) ListSales(c *gin.Context) {
	report, err := h.register.Ledger().DailyReport(h.reportDate(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": report.Date, "sales": report.Sales})
}

func (h *APIHandler) GetDailyReport(c *gin.Context) {
	report, err := h.register.Ledger().DailyReport(h.reportDate(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":     report.Date,
		"summary":  report.Summary,
		"sales":    report.Sales,
		"currency": h.register.Currency(),
	})
}

// ExportSales downloads the sales of one date as moonicafe-sales-<date>.json.
func (h *APIHandler) ExportSales(c *gin.Context) {
	date := h.reportDate(c)
	data, err := h.register.Ledger().ExportDate(date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "moonicafe-sales-"+date+".json"))
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}
