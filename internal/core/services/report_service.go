package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tmzhouw/labor-report-backend/internal/apperrors"
	"github.com/tmzhouw/labor-report-backend/internal/core/domain"
	portsrepo "github.com/tmzhouw/labor-report-backend/internal/core/ports/repositories"
	portssvc "github.com/tmzhouw/labor-report-backend/internal/core/ports/services"
	"github.com/tmzhouw/labor-report-backend/internal/dto"
)

// reportService enforces the per-(company, month) report state machine:
//
//	(absent) --submit--> SUBMITTED --approve--> APPROVED
//	                         |                      ^
//	                       reject                 approve (reconciliation)
//	                         v                      |
//	                     REJECTED ------submit------+
type reportService struct {
	BaseService
	companyRepo portsrepo.CompanyRepository
	reportRepo  portsrepo.ReportRepository
	auditSvc    portssvc.AuditSvcFacade
	detector    *AnomalyDetector
}

// NewReportService creates the lifecycle manager.
func NewReportService(companyRepo portsrepo.CompanyRepository, reportRepo portsrepo.ReportRepository, auditSvc portssvc.AuditSvcFacade, detector *AnomalyDetector) portssvc.ReportSvcFacade {
	if detector == nil {
		detector = NewAnomalyDetector(DefaultAnomalyThreshold)
	}
	return &reportService{
		companyRepo: companyRepo,
		reportRepo:  reportRepo,
		auditSvc:    auditSvc,
		detector:    detector,
	}
}

var _ portssvc.ReportSvcFacade = (*reportService)(nil)

// Submit files the month's report as SUBMITTED. employees_total is derived
// from the stored prior month's total (zero when none exists) plus recruits
// minus separations, floored at zero. The stored prior row is always the
// baseline; no reverse derivation from the current month's deltas is done.
func (s *reportService) Submit(ctx context.Context, auth domain.Authorization, companyID string, month domain.MonthKey, req dto.SubmitReportRequest) (*domain.MonthlyReport, error) {
	if !auth.CanSubmitFor(companyID) {
		return nil, apperrors.NewForbiddenError("submission requires the enterprise role bound to the target company")
	}
	if err := validateSubmit(req); err != nil {
		return nil, err
	}

	if _, err := s.companyRepo.FindCompanyByID(ctx, companyID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("companyID", "company "+companyID+" is not registered")
		}
		return nil, fmt.Errorf("failed to load company %s: %w", companyID, err)
	}

	existing, err := s.reportRepo.FindReport(ctx, companyID, month)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to load report %s/%s: %w", companyID, month, err)
	}
	if existing != nil {
		switch existing.Status {
		case domain.StatusSubmitted:
			return nil, apperrors.NewConflictError("report for " + month.String() + " is already submitted and awaiting review")
		case domain.StatusApproved:
			return nil, apperrors.NewConflictError("report for " + month.String() + " is already approved")
		}
		// REJECTED rows are overwritable by design.
	}

	baseline := 0
	prev, err := s.reportRepo.FindReport(ctx, companyID, month.Prev())
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to load baseline %s/%s: %w", companyID, month.Prev(), err)
	}
	if prev != nil {
		baseline = prev.EmployeesTotal
	}

	total := baseline + req.RecruitedNew - req.ResignedTotal
	if total < 0 {
		total = 0
	}

	shortage := domain.ShortageDetail{
		General:    req.Shortage.General,
		Technical:  req.Shortage.Technical,
		Management: req.Shortage.Management,
	}
	report := domain.MonthlyReport{
		CompanyID:          companyID,
		ReportMonth:        month,
		Status:             domain.StatusSubmitted,
		EmployeesTotal:     total,
		RecruitedNew:       req.RecruitedNew,
		ResignedTotal:      req.ResignedTotal,
		Shortage:           shortage,
		ShortageTotal:      shortage.Total(),
		PlannedRecruitment: req.PlannedRecruitment,
		AverageSalary:      req.AverageSalary,
		EntrySalary:        req.EntrySalary,
		RejectReason:       "",
		UpdatedAt:          time.Now().UTC(),
	}

	if err := s.reportRepo.UpsertReport(ctx, report); err != nil {
		s.LogError(ctx, err, "Failed to persist submitted report",
			slog.String("company_id", companyID), slog.String("month", month.String()))
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	s.LogInfo(ctx, "Report submitted",
		slog.String("company_id", companyID),
		slog.String("month", month.String()),
		slog.Int("employees_total", total),
		slog.Int("baseline", baseline))
	return &report, nil
}

// Approve moves the report to APPROVED, applying any reviewer corrections.
// Corrections are the one path allowed to break the baseline derivation;
// shortage_total is recomputed from the corrected or stored detail either
// way. The audit entry is best-effort: a failed append is logged and the
// approval still stands.
func (s *reportService) Approve(ctx context.Context, auth domain.Authorization, companyID string, month domain.MonthKey, req dto.ApproveReportRequest) (*domain.MonthlyReport, error) {
	if !auth.CanReview(companyID) {
		return nil, apperrors.NewForbiddenError("approval requires a reviewer role scoped to the company")
	}
	if err := validateCorrections(req); err != nil {
		return nil, err
	}

	report, err := s.reportRepo.FindReport(ctx, companyID, month)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("reportMonth", "no report filed for "+companyID+" in "+month.String())
		}
		return nil, fmt.Errorf("failed to load report %s/%s: %w", companyID, month, err)
	}
	if report.Status == domain.StatusRejected {
		return nil, apperrors.NewConflictError("report for " + month.String() + " was rejected; the company must resubmit before approval")
	}

	corrected := map[string]any{}
	if req.CorrectedEmployees != nil {
		report.EmployeesTotal = *req.CorrectedEmployees
		corrected["employeesTotal"] = *req.CorrectedEmployees
	}
	if req.CorrectedRecruited != nil {
		report.RecruitedNew = *req.CorrectedRecruited
		corrected["recruitedNew"] = *req.CorrectedRecruited
	}
	if req.CorrectedResigned != nil {
		report.ResignedTotal = *req.CorrectedResigned
		corrected["resignedTotal"] = *req.CorrectedResigned
	}
	if req.CorrectedShortage != nil {
		report.Shortage = domain.ShortageDetail{
			General:    req.CorrectedShortage.General,
			Technical:  req.CorrectedShortage.Technical,
			Management: req.CorrectedShortage.Management,
		}
		corrected["shortage"] = report.Shortage
	}
	if req.CorrectedPlannedRecruitment != nil {
		report.PlannedRecruitment = *req.CorrectedPlannedRecruitment
		corrected["plannedRecruitment"] = *req.CorrectedPlannedRecruitment
	}
	report.ShortageTotal = report.Shortage.Total()

	reconciliation := report.Status == domain.StatusApproved
	report.Status = domain.StatusApproved
	report.RejectReason = ""
	report.UpdatedAt = time.Now().UTC()

	if err := s.reportRepo.UpdateReport(ctx, *report); err != nil {
		s.LogError(ctx, err, "Failed to persist approval",
			slog.String("company_id", companyID), slog.String("month", month.String()))
		return nil, fmt.Errorf("failed to save approval: %w", err)
	}

	detail := map[string]any{
		"month":          month.String(),
		"corrected":      corrected,
		"reconciliation": reconciliation,
	}
	if err := s.auditSvc.Record(ctx, auth.UserID, domain.ActionEditReportData, &companyID, nil, detail); err != nil {
		// Audit writes sit outside the transactional boundary; the approval
		// has already committed.
		s.LogError(ctx, err, "Audit entry lost for approval",
			slog.String("company_id", companyID), slog.String("month", month.String()))
	}

	s.LogInfo(ctx, "Report approved",
		slog.String("company_id", companyID),
		slog.String("month", month.String()),
		slog.Int("corrected_fields", len(corrected)),
		slog.Bool("reconciliation", reconciliation))
	return report, nil
}

// Reject moves a SUBMITTED report to REJECTED with the given reason.
// Rejecting an already REJECTED report just overwrites the reason; rejecting
// an APPROVED report is not supported.
func (s *reportService) Reject(ctx context.Context, auth domain.Authorization, companyID string, month domain.MonthKey, reason string) error {
	if !auth.CanReview(companyID) {
		return apperrors.NewForbiddenError("rejection requires a reviewer role scoped to the company")
	}
	if reason == "" {
		return apperrors.NewValidationFailedError("reason", "a rejection reason is required")
	}

	report, err := s.reportRepo.FindReport(ctx, companyID, month)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("reportMonth", "no report filed for "+companyID+" in "+month.String())
		}
		return fmt.Errorf("failed to load report %s/%s: %w", companyID, month, err)
	}
	if report.Status == domain.StatusApproved {
		return apperrors.NewConflictError("report for " + month.String() + " is approved; approved reports cannot be rejected")
	}

	report.Status = domain.StatusRejected
	report.RejectReason = reason
	report.UpdatedAt = time.Now().UTC()

	if err := s.reportRepo.UpdateReport(ctx, *report); err != nil {
		s.LogError(ctx, err, "Failed to persist rejection",
			slog.String("company_id", companyID), slog.String("month", month.String()))
		return fmt.Errorf("failed to save rejection: %w", err)
	}

	detail := map[string]any{"month": month.String(), "reason": reason}
	if err := s.auditSvc.Record(ctx, auth.UserID, domain.ActionRejectReport, &companyID, nil, detail); err != nil {
		s.LogError(ctx, err, "Audit entry lost for rejection",
			slog.String("company_id", companyID), slog.String("month", month.String()))
	}

	s.LogInfo(ctx, "Report rejected",
		slog.String("company_id", companyID), slog.String("month", month.String()))
	return nil
}

// GetReport returns the report for the key, or the NOT_FILED variant when no
// row exists.
func (s *reportService) GetReport(ctx context.Context, auth domain.Authorization, companyID string, month domain.MonthKey) (*domain.MonthlyReport, error) {
	if !auth.CanSubmitFor(companyID) && !auth.CanReview(companyID) {
		return nil, apperrors.NewForbiddenError("report access requires the owning enterprise or a scoped reviewer")
	}

	report, err := s.reportRepo.FindReport(ctx, companyID, month)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.NotFiledReport(companyID, month), nil
		}
		return nil, fmt.Errorf("failed to load report %s/%s: %w", companyID, month, err)
	}
	return report, nil
}

// ListForReview builds the review dashboard for a month. Each row carries the
// anomaly verdict against the prior month; the verdict is surfaced only while
// the report is still SUBMITTED, so approved swings degrade to informational
// noise.
func (s *reportService) ListForReview(ctx context.Context, auth domain.Authorization, month domain.MonthKey) ([]dto.ReviewRow, error) {
	if !auth.IsReviewer() {
		return nil, apperrors.NewForbiddenError("the review dashboard requires a reviewer role")
	}

	rows, err := s.reportRepo.ListReportRows(ctx, domain.StatsFilter{Month: month})
	if err != nil {
		return nil, fmt.Errorf("failed to scan reports for %s: %w", month, err)
	}
	prevRows, err := s.reportRepo.ListReportRows(ctx, domain.StatsFilter{Month: month.Prev()})
	if err != nil {
		return nil, fmt.Errorf("failed to scan reports for %s: %w", month.Prev(), err)
	}
	prevByCompany := make(map[string]*domain.MonthlyReport, len(prevRows))
	for i := range prevRows {
		prevByCompany[prevRows[i].CompanyID] = &prevRows[i].MonthlyReport
	}

	result := make([]dto.ReviewRow, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		if !auth.CanReview(row.CompanyID) {
			continue
		}
		warning := s.detector.Detect(&row.MonthlyReport, prevByCompany[row.CompanyID])
		if row.Status != domain.StatusSubmitted {
			// The swing may still exist, but only pending reports wear the
			// badge.
			warning.Flagged = false
			warning.Detail = ""
		}
		result = append(result, dto.ReviewRow{
			Report:      dto.ToReportResponse(&row.MonthlyReport),
			CompanyName: row.CompanyName,
			Industry:    row.Industry,
			Town:        row.Town,
			Warning:     warning,
		})
	}
	return result, nil
}

func validateSubmit(req dto.SubmitReportRequest) error {
	switch {
	case req.RecruitedNew < 0:
		return apperrors.NewValidationFailedError("recruitedNew", "must not be negative")
	case req.ResignedTotal < 0:
		return apperrors.NewValidationFailedError("resignedTotal", "must not be negative")
	case req.PlannedRecruitment < 0:
		return apperrors.NewValidationFailedError("plannedRecruitment", "must not be negative")
	case req.Shortage.General < 0 || req.Shortage.Technical < 0 || req.Shortage.Management < 0:
		return apperrors.NewValidationFailedError("shortage", "categories must not be negative")
	}
	return nil
}

func validateCorrections(req dto.ApproveReportRequest) error {
	if req.CorrectedEmployees != nil && *req.CorrectedEmployees < 0 {
		return apperrors.NewValidationFailedError("correctedEmployees", "must not be negative")
	}
	if req.CorrectedRecruited != nil && *req.CorrectedRecruited < 0 {
		return apperrors.NewValidationFailedError("correctedRecruited", "must not be negative")
	}
	if req.CorrectedResigned != nil && *req.CorrectedResigned < 0 {
		return apperrors.NewValidationFailedError("correctedResigned", "must not be negative")
	}
	if req.CorrectedShortage != nil &&
		(req.CorrectedShortage.General < 0 || req.CorrectedShortage.Technical < 0 || req.CorrectedShortage.Management < 0) {
		return apperrors.NewValidationFailedError("correctedShortage", "categories must not be negative")
	}
	if req.CorrectedPlannedRecruitment != nil && *req.CorrectedPlannedRecruitment < 0 {
		return apperrors.NewValidationFailedError("correctedPlannedRecruitment", "must not be negative")
	}
	return nil
}
