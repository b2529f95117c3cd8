package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/books_backend/internal/core/ports/services"
	"github.com/SscSPs/books_backend/internal/dto"
	"github.com/SscSPs/books_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/receivables-aging", h.getReceivablesAging)
	}
}

// getReceivablesAging godoc
// @Summary Generate receivables aging report
// @Description Classifies every open invoice into current, 1-30, 31-60, 61-90 and 90+ day buckets as of a date
// @Tags reports
// @Produce json
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.ReceivablesAgingResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /reports/receivables-aging [get]
func (h *reportingHandler) getReceivablesAging(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOfStr := c.Query("asOf")
	asOf, err := dto.ParseOptionalDate(asOfStr)
	if err != nil {
		logger.Warn("Invalid asOf date format", slog.String("asOf", asOfStr), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}
	var reportDate time.Time
	if asOf != nil {
		reportDate = *asOf
	}

	report, err := h.reportingService.ReceivablesAging(c.Request.Context(), reportDate)
	if err != nil {
		respondError(c, err, "Failed to generate receivables aging report")
		return
	}

	logger.Info("Receivables aging report generated", slog.Int("row_count", len(report.Rows)))
	c.JSON(http.StatusOK, dto.ToReceivablesAgingResponse(report))
}
