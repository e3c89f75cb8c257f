package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tmzhouw/labor-report-backend/internal/core/domain"
)

// ShortageDetailInput carries the three shortage categories of a filing.
type ShortageDetailInput struct {
	General    int `json:"general" binding:"gte=0"`
	Technical  int `json:"technical" binding:"gte=0"`
	Management int `json:"management" binding:"gte=0"`
}

// SubmitReportRequest is the enterprise filing payload. employees_total is
// derived server-side from the prior month's baseline, never accepted from
// the client.
type SubmitReportRequest struct {
	RecruitedNew       int                 `json:"recruitedNew" binding:"gte=0"`
	ResignedTotal      int                 `json:"resignedTotal" binding:"gte=0"`
	Shortage           ShortageDetailInput `json:"shortage"`
	PlannedRecruitment int                 `json:"plannedRecruitment" binding:"gte=0"`
	AverageSalary      decimal.Decimal     `json:"averageSalary"`
	EntrySalary        decimal.Decimal     `json:"entrySalary"`
}

// ApproveReportRequest carries optional reviewer corrections. Nil means keep
// the stored value; corrected employees may break the baseline derivation,
// representing administrator ground truth.
type ApproveReportRequest struct {
	CorrectedEmployees          *int                 `json:"correctedEmployees"`
	CorrectedRecruited          *int                 `json:"correctedRecruited"`
	CorrectedResigned           *int                 `json:"correctedResigned"`
	CorrectedShortage           *ShortageDetailInput `json:"correctedShortage"`
	CorrectedPlannedRecruitment *int                 `json:"correctedPlannedRecruitment"`
}

// RejectReportRequest carries the mandatory rejection reason.
type RejectReportRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ReportResponse mirrors domain.MonthlyReport for the wire.
type ReportResponse struct {
	CompanyID          string                `json:"companyID"`
	ReportMonth        string                `json:"reportMonth"`
	Status             domain.ReportStatus   `json:"status"`
	EmployeesTotal     int                   `json:"employeesTotal"`
	RecruitedNew       int                   `json:"recruitedNew"`
	ResignedTotal      int                   `json:"resignedTotal"`
	Shortage           domain.ShortageDetail `json:"shortage"`
	ShortageTotal      int                   `json:"shortageTotal"`
	PlannedRecruitment int                   `json:"plannedRecruitment"`
	AverageSalary      decimal.Decimal       `json:"averageSalary"`
	EntrySalary        decimal.Decimal       `json:"entrySalary"`
	RejectReason       string                `json:"rejectReason,omitempty"`
	UpdatedAt          time.Time             `json:"updatedAt"`
}

// ToReportResponse converts a domain.MonthlyReport to its wire form.
func ToReportResponse(r *domain.MonthlyReport) ReportResponse {
	return ReportResponse{
		CompanyID:          r.CompanyID,
		ReportMonth:        r.ReportMonth.String(),
		Status:             r.Status,
		EmployeesTotal:     r.EmployeesTotal,
		RecruitedNew:       r.RecruitedNew,
		ResignedTotal:      r.ResignedTotal,
		Shortage:           r.Shortage,
		ShortageTotal:      r.ShortageTotal,
		PlannedRecruitment: r.PlannedRecruitment,
		AverageSalary:      r.AverageSalary,
		EntrySalary:        r.EntrySalary,
		RejectReason:       r.RejectReason,
		UpdatedAt:          r.UpdatedAt,
	}
}

// ReviewRow is one line of the review dashboard: the report, its company and
// the anomaly verdict. Warning.Flagged is false for anything not SUBMITTED.
type ReviewRow struct {
	Report      ReportResponse        `json:"report"`
	CompanyName string                `json:"companyName"`
	Industry    string                `json:"industry"`
	Town        string                `json:"town"`
	Warning     domain.AnomalyWarning `json:"warning"`
}
