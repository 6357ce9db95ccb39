package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/teampulse/daily-report-api/internal/dto"
	apierrors "github.com/teampulse/daily-report-api/internal/errors"
	"github.com/teampulse/daily-report-api/internal/services"
)

// ReportHandler serves the manager-facing aggregate views.
type ReportHandler struct {
	reportService  *services.ReportService
	summaryService *services.SummaryService
}

// NewReportHandler creates a new ReportHandler. summaryService may be nil
// when no API key is configured.
func NewReportHandler(reportService *services.ReportService, summaryService *services.SummaryService) *ReportHandler {
	return &ReportHandler{
		reportService:  reportService,
		summaryService: summaryService,
	}
}

// TeamBoard returns today's who-reported board, one row per employee.
func (h *ReportHandler) TeamBoard(c *gin.Context) {
	rows, err := h.reportService.TeamBoard(time.Now())
	if err != nil {
		apierrors.InternalError(c, "Failed to build team board")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"team": dto.ToEmployeeRowDTOs(rows),
	})
}

// PendingReport returns outstanding work inside ?range= grouped by employee.
func (h *ReportHandler) PendingReport(c *gin.Context) {
	groups, err := h.reportService.PendingReport(c.Query("range"), time.Now())
	if err != nil {
		apierrors.InternalError(c, "Failed to build pending report")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"report": dto.ToPendingGroupDTOs(groups),
	})
}

// Summarize produces an AI digest of the pending report.
func (h *ReportHandler) Summarize(c *gin.Context) {
	if h.summaryService == nil {
		apierrors.ServiceUnavailable(c, "Summary service is not configured. Please set OPENAI_API_KEY environment variable.")
		return
	}

	type SummarizeRequest struct {
		Range string `json:"range"`
	}

	var req SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	groups, err := h.reportService.PendingReport(req.Range, time.Now())
	if err != nil {
		apierrors.InternalError(c, "Failed to build pending report")
		return
	}

	summary, err := h.summaryService.SummarizePendingReport(c.Request.Context(), groups)
	if err != nil {
		apierrors.InternalError(c, "Failed to generate summary")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": summary,
	})
}
