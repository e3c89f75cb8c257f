package repositories

import (
	"context"

	"github.com/tmzhouw/labor-report-backend/internal/core/domain"
)

// ReportRepository persists monthly reports keyed by (company, month).
type ReportRepository interface {
	// UpsertReport writes the full report row, overwriting any existing row
	// for the same (company, month) key. Last writer wins.
	UpsertReport(ctx context.Context, report domain.MonthlyReport) error

	// UpdateReport overwrites an existing row; the row must already exist.
	UpdateReport(ctx context.Context, report domain.MonthlyReport) error

	// FindReport retrieves the row for one (company, month) key.
	FindReport(ctx context.Context, companyID string, month domain.MonthKey) (*domain.MonthlyReport, error)

	// ListReportRows scans reports joined with their company attributes,
	// narrowed by the filter. An empty filter returns the full population.
	ListReportRows(ctx context.Context, filter domain.StatsFilter) ([]domain.ReportRow, error)
}
