package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tmzhouw/labor-report-backend/internal/core/domain"
	portssvc "github.com/tmzhouw/labor-report-backend/internal/core/ports/services"
	"github.com/tmzhouw/labor-report-backend/internal/dto"
	"github.com/tmzhouw/labor-report-backend/internal/middleware"
)

// reportHandler handles HTTP requests for the monthly report lifecycle.
type reportHandler struct {
	reportService portssvc.ReportSvcFacade
}

func newReportHandler(rs portssvc.ReportSvcFacade) *reportHandler {
	return &reportHandler{reportService: rs}
}

// RegisterReportRoutes registers routes related to monthly reports.
func RegisterReportRoutes(rg *gin.RouterGroup, reportService portssvc.ReportSvcFacade) {
	h := newReportHandler(reportService)

	reports := rg.Group("/reports")
	{
		reports.GET("/review", h.listForReview)
		reports.POST("/:companyID/:month", h.submit)
		reports.GET("/:companyID/:month", h.getReport)
		reports.POST("/:companyID/:month/approve", h.approve)
		reports.POST("/:companyID/:month/reject", h.reject)
	}
}

// submit godoc
// @Summary Submit the monthly report
// @Description Files the company's headcount report for the month as SUBMITTED. Overwrites a rejected filing for the same month.
// @Tags reports
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param month path string true "Report month (YYYY-MM-01)"
// @Param report body dto.SubmitReportRequest true "Headcount deltas"
// @Success 201 {object} dto.ReportResponse
// @Failure 400 {object} map[string]string "Validation error or not the current month"
// @Failure 403 {object} map[string]string "Principal not bound to the company"
// @Failure 409 {object} map[string]string "Already submitted or approved"
// @Security BearerAuth
// @Router /reports/{companyID}/{month} [post]
func (h *reportHandler) submit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	auth, ok := mustAuth(c)
	if !ok {
		return
	}
	month, ok := monthParam(c, "month")
	if !ok {
		return
	}
	// Filings are only accepted for the calendar month in progress; past
	// months are closed and future months cannot be filed ahead.
	if current := domain.MonthKeyOf(time.Now().UTC()); month != current {
		logger.Warn("Submission for a non-current month refused",
			slog.String("month", month.String()), slog.String("current", current.String()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "reports can only be filed for the current month " + current.String()})
		return
	}
	companyID := c.Param("companyID")

	var req dto.SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Submit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	report, err := h.reportService.Submit(c.Request.Context(), auth, companyID, month, req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Report submitted", slog.String("company_id", companyID), slog.String("month", month.String()))
	c.JSON(http.StatusCreated, dto.ToReportResponse(report))
}

// getReport godoc
// @Summary Get one monthly report
// @Description Retrieves the report for a (company, month) key; absent filings come back with status NOT_FILED.
// @Tags reports
// @Produce json
// @Param companyID path string true "Company ID"
// @Param month path string true "Report month (YYYY-MM-01)"
// @Success 200 {object} dto.ReportResponse
// @Failure 403 {object} map[string]string "Out of scope"
// @Security BearerAuth
// @Router /reports/{companyID}/{month} [get]
func (h *reportHandler) getReport(c *gin.Context) {
	auth, ok := mustAuth(c)
	if !ok {
		return
	}
	month, ok := monthParam(c, "month")
	if !ok {
		return
	}

	report, err := h.reportService.GetReport(c.Request.Context(), auth, c.Param("companyID"), month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToReportResponse(report))
}

// approve godoc
// @Summary Approve a monthly report
// @Description Moves the report to APPROVED, optionally overwriting figures with reviewer corrections. Re-approving an approved report reconciles its figures.
// @Tags reports
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param month path string true "Report month (YYYY-MM-01)"
// @Param corrections body dto.ApproveReportRequest true "Optional corrections"
// @Success 200 {object} dto.ReportResponse
// @Failure 403 {object} map[string]string "Reviewer scope required"
// @Failure 404 {object} map[string]string "Never submitted"
// @Failure 409 {object} map[string]string "Currently rejected"
// @Security BearerAuth
// @Router /reports/{companyID}/{month}/approve [post]
func (h *reportHandler) approve(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	auth, ok := mustAuth(c)
	if !ok {
		return
	}
	month, ok := monthParam(c, "month")
	if !ok {
		return
	}
	companyID := c.Param("companyID")

	var req dto.ApproveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Approve", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	report, err := h.reportService.Approve(c.Request.Context(), auth, companyID, month, req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Report approved", slog.String("company_id", companyID), slog.String("month", month.String()))
	c.JSON(http.StatusOK, dto.ToReportResponse(report))
}

// reject godoc
// @Summary Reject a monthly report
// @Description Moves a SUBMITTED report to REJECTED with a mandatory reason.
// @Tags reports
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param month path string true "Report month (YYYY-MM-01)"
// @Param rejection body dto.RejectReportRequest true "Rejection reason"
// @Success 204 "Rejected"
// @Failure 400 {object} map[string]string "Missing reason"
// @Failure 403 {object} map[string]string "Reviewer scope required"
// @Failure 409 {object} map[string]string "Already approved"
// @Security BearerAuth
// @Router /reports/{companyID}/{month}/reject [post]
func (h *reportHandler) reject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	auth, ok := mustAuth(c)
	if !ok {
		return
	}
	month, ok := monthParam(c, "month")
	if !ok {
		return
	}
	companyID := c.Param("companyID")

	var req dto.RejectReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Reject", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.reportService.Reject(c.Request.Context(), auth, companyID, month, req.Reason); err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Report rejected", slog.String("company_id", companyID), slog.String("month", month.String()))
	c.Status(http.StatusNoContent)
}

// listForReview godoc
// @Summary Review dashboard rows
// @Description Lists the month's reports with anomaly warning badges for still-SUBMITTED filings.
// @Tags reports
// @Produce json
// @Param month query string true "Report month (YYYY-MM-01)"
// @Success 200 {array} dto.ReviewRow
// @Failure 403 {object} map[string]string "Reviewer role required"
// @Security BearerAuth
// @Router /reports/review [get]
func (h *reportHandler) listForReview(c *gin.Context) {
	auth, ok := mustAuth(c)
	if !ok {
		return
	}
	month, err := monthQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, listErr := h.reportService.ListForReview(c.Request.Context(), auth, month)
	if listErr != nil {
		respondError(c, listErr)
		return
	}
	c.JSON(http.StatusOK, rows)
}
