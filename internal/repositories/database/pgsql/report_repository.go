package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tmzhouw/labor-report-backend/internal/apperrors"
	"github.com/tmzhouw/labor-report-backend/internal/core/domain"
	portsrepo "github.com/tmzhouw/labor-report-backend/internal/core/ports/repositories"
)

type reportRepository struct {
	BaseRepository
}

// newReportRepository creates a new repository for monthly report data.
func newReportRepository(pool *pgxpool.Pool) portsrepo.ReportRepository {
	return &reportRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportRepository = (*reportRepository)(nil)

const reportColumns = `
	r.company_id, r.report_month, r.status, r.employees_total, r.recruited_new,
	r.resigned_total, r.shortage_general, r.shortage_technical, r.shortage_management,
	r.shortage_total, r.planned_recruitment, r.average_salary, r.entry_salary,
	r.reject_reason, r.updated_at
`

func scanReport(row pgx.Row, report *domain.MonthlyReport) error {
	var month string
	err := row.Scan(
		&report.CompanyID, &month, &report.Status, &report.EmployeesTotal, &report.RecruitedNew,
		&report.ResignedTotal, &report.Shortage.General, &report.Shortage.Technical, &report.Shortage.Management,
		&report.ShortageTotal, &report.PlannedRecruitment, &report.AverageSalary, &report.EntrySalary,
		&report.RejectReason, &report.UpdatedAt,
	)
	if err != nil {
		return err
	}
	report.ReportMonth = domain.MonthKey(month)
	return nil
}

// UpsertReport writes the full row, last writer wins on the (company, month)
// key. Submissions over a REJECTED row land here and clear the reason.
func (r *reportRepository) UpsertReport(ctx context.Context, report domain.MonthlyReport) error {
	query := `
		INSERT INTO monthly_reports (
			company_id, report_month, status, employees_total, recruited_new,
			resigned_total, shortage_general, shortage_technical, shortage_management,
			shortage_total, planned_recruitment, average_salary, entry_salary,
			reject_reason, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (company_id, report_month) DO UPDATE SET
			status = EXCLUDED.status,
			employees_total = EXCLUDED.employees_total,
			recruited_new = EXCLUDED.recruited_new,
			resigned_total = EXCLUDED.resigned_total,
			shortage_general = EXCLUDED.shortage_general,
			shortage_technical = EXCLUDED.shortage_technical,
			shortage_management = EXCLUDED.shortage_management,
			shortage_total = EXCLUDED.shortage_total,
			planned_recruitment = EXCLUDED.planned_recruitment,
			average_salary = EXCLUDED.average_salary,
			entry_salary = EXCLUDED.entry_salary,
			reject_reason = EXCLUDED.reject_reason,
			updated_at = EXCLUDED.updated_at;
	`
	_, err := r.Pool.Exec(ctx, query, reportArgs(report)...)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert report "+report.CompanyID+"/"+report.ReportMonth.String(), err)
	}
	return nil
}

// UpdateReport overwrites an existing row; missing rows are a not-found error.
func (r *reportRepository) UpdateReport(ctx context.Context, report domain.MonthlyReport) error {
	query := `
		UPDATE monthly_reports SET
			status = $3, employees_total = $4, recruited_new = $5, resigned_total = $6,
			shortage_general = $7, shortage_technical = $8, shortage_management = $9,
			shortage_total = $10, planned_recruitment = $11, average_salary = $12,
			entry_salary = $13, reject_reason = $14, updated_at = $15
		WHERE company_id = $1 AND report_month = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, reportArgs(report)...)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update report "+report.CompanyID+"/"+report.ReportMonth.String(), err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *reportRepository) FindReport(ctx context.Context, companyID string, month domain.MonthKey) (*domain.MonthlyReport, error) {
	query := `SELECT ` + reportColumns + ` FROM monthly_reports r WHERE r.company_id = $1 AND r.report_month = $2`
	var report domain.MonthlyReport
	err := scanReport(r.Pool.QueryRow(ctx, query, companyID, month.String()), &report)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find report "+companyID+"/"+month.String(), err)
	}
	return &report, nil
}

// ListReportRows scans reports joined with their company attributes.
func (r *reportRepository) ListReportRows(ctx context.Context, filter domain.StatsFilter) ([]domain.ReportRow, error) {
	where, args := buildCompanyFilter(domain.CompanyFilter{
		Industry: filter.Industry,
		Town:     filter.Town,
		Name:     filter.CompanyName,
	}, "c", 0)
	if filter.Month != "" {
		args = append(args, filter.Month.String())
		placeholder := "$" + strconv.Itoa(len(args))
		if where == "" {
			where = "WHERE r.report_month = " + placeholder
		} else {
			where += " AND r.report_month = " + placeholder
		}
	}

	query := `
		SELECT ` + reportColumns + `, c.name, c.industry, c.town
		FROM monthly_reports r
		JOIN companies c ON c.company_id = r.company_id
		` + where + `
		ORDER BY r.report_month, r.company_id
	`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query report rows", err)
	}
	defer rows.Close()

	result := []domain.ReportRow{}
	for rows.Next() {
		var rr domain.ReportRow
		var month string
		if err := rows.Scan(
			&rr.CompanyID, &month, &rr.Status, &rr.EmployeesTotal, &rr.RecruitedNew,
			&rr.ResignedTotal, &rr.Shortage.General, &rr.Shortage.Technical, &rr.Shortage.Management,
			&rr.ShortageTotal, &rr.PlannedRecruitment, &rr.AverageSalary, &rr.EntrySalary,
			&rr.RejectReason, &rr.UpdatedAt,
			&rr.CompanyName, &rr.Industry, &rr.Town,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan report row", err)
		}
		rr.ReportMonth = domain.MonthKey(month)
		result = append(result, rr)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating report rows", err)
	}
	return result, nil
}

func reportArgs(report domain.MonthlyReport) []any {
	return []any{
		report.CompanyID,
		report.ReportMonth.String(),
		string(report.Status),
		report.EmployeesTotal,
		report.RecruitedNew,
		report.ResignedTotal,
		report.Shortage.General,
		report.Shortage.Technical,
		report.Shortage.Management,
		report.ShortageTotal,
		report.PlannedRecruitment,
		report.AverageSalary,
		report.EntrySalary,
		report.RejectReason,
		report.UpdatedAt,
	}
}
