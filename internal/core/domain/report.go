package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportStatus is the lifecycle state of a company's report for one month.
// NOT_FILED is never stored; it is the synthesized status for an absent row,
// modeled explicitly so the state machine stays exhaustive.
type ReportStatus string

const (
	StatusNotFiled  ReportStatus = "NOT_FILED"
	StatusSubmitted ReportStatus = "SUBMITTED"
	StatusApproved  ReportStatus = "APPROVED"
	StatusRejected  ReportStatus = "REJECTED"
)

// ShortageDetail breaks the declared headcount gap into the three reporting
// categories.
type ShortageDetail struct {
	General    int `json:"general"`
	Technical  int `json:"technical"`
	Management int `json:"management"` // management and sales
}

// Total returns the shortage headcount across all categories. Stored
// shortage_total must always equal this sum.
func (d ShortageDetail) Total() int {
	return d.General + d.Technical + d.Management
}

// MonthlyReport is the one-per-(company, month) headcount record.
type MonthlyReport struct {
	CompanyID          string          `json:"companyID"`
	ReportMonth        MonthKey        `json:"reportMonth"`
	Status             ReportStatus    `json:"status"`
	EmployeesTotal     int             `json:"employeesTotal"`
	RecruitedNew       int             `json:"recruitedNew"`
	ResignedTotal      int             `json:"resignedTotal"`
	Shortage           ShortageDetail  `json:"shortage"`
	ShortageTotal      int             `json:"shortageTotal"`
	PlannedRecruitment int             `json:"plannedRecruitment"`
	AverageSalary      decimal.Decimal `json:"averageSalary"` // informational
	EntrySalary        decimal.Decimal `json:"entrySalary"`   // informational
	RejectReason       string          `json:"rejectReason,omitempty"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// NotFiledReport synthesizes the explicit NOT_FILED variant for a
// (company, month) key without a stored row.
func NotFiledReport(companyID string, month MonthKey) *MonthlyReport {
	return &MonthlyReport{
		CompanyID:   companyID,
		ReportMonth: month,
		Status:      StatusNotFiled,
	}
}

// ReportRow is a report joined with the attributes of its company, the unit
// the aggregation engine scans.
type ReportRow struct {
	MonthlyReport
	CompanyName string `json:"companyName"`
	Industry    string `json:"industry"`
	Town        string `json:"town"`
}

// StatsFilter narrows the report population before aggregation. Empty fields
// match everything; CompanyName matches as a substring; Month pins the
// reference month and disables the completion fallback.
type StatsFilter struct {
	Industry    string
	Town        string
	CompanyName string
	Month       MonthKey
}

// CompanyOnly strips the month so the same filter can select companies.
func (f StatsFilter) CompanyOnly() CompanyFilter {
	return CompanyFilter{Industry: f.Industry, Town: f.Town, Name: f.CompanyName}
}
