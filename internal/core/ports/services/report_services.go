package services

import (
	"context"

	"github.com/tmzhouw/labor-report-backend/internal/core/domain"
	"github.com/tmzhouw/labor-report-backend/internal/dto"
)

// ReportReaderSvc defines read operations on monthly reports.
type ReportReaderSvc interface {
	// GetReport retrieves the report for one (company, month) key. An absent
	// row is returned as the explicit NOT_FILED variant, not an error.
	GetReport(ctx context.Context, auth domain.Authorization, companyID string, month domain.MonthKey) (*domain.MonthlyReport, error)

	// ListForReview returns the review dashboard rows for a month, each with
	// its anomaly warning. Warnings are surfaced only while a report is still
	// SUBMITTED.
	ListForReview(ctx context.Context, auth domain.Authorization, month domain.MonthKey) ([]dto.ReviewRow, error)
}

// ReportLifecycleSvc defines the state-machine transitions of a report.
type ReportLifecycleSvc interface {
	// Submit files the company's report for the month as SUBMITTED,
	// overwriting a REJECTED row for the same key.
	Submit(ctx context.Context, auth domain.Authorization, companyID string, month domain.MonthKey, req dto.SubmitReportRequest) (*domain.MonthlyReport, error)

	// Approve moves the report to APPROVED, optionally overwriting stored
	// figures with reviewer corrections. Calling it again on an APPROVED
	// report is the reconciliation path and still emits an audit entry.
	Approve(ctx context.Context, auth domain.Authorization, companyID string, month domain.MonthKey, req dto.ApproveReportRequest) (*domain.MonthlyReport, error)

	// Reject moves a SUBMITTED report to REJECTED with a mandatory reason.
	Reject(ctx context.Context, auth domain.Authorization, companyID string, month domain.MonthKey, reason string) error
}

// ReportSvcFacade combines all report operations.
type ReportSvcFacade interface {
	ReportReaderSvc
	ReportLifecycleSvc
}
