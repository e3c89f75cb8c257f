package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tmzhouw/labor-report-backend/internal/apperrors"
	"github.com/tmzhouw/labor-report-backend/internal/core/domain"
	portsrepo "github.com/tmzhouw/labor-report-backend/internal/core/ports/repositories"
)

type companyRepository struct {
	BaseRepository
}

// newCompanyRepository creates a new repository for company data.
func newCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepository {
	return &companyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CompanyRepository = (*companyRepository)(nil)

var fullCompanySelectQuery = `
SELECT
	c.company_id, c.name, c.town, c.industry, c.contact_person, c.contact_phone,
	c.manager_id, c.created_at, c.created_by, c.last_updated_at, c.last_updated_by
FROM companies c
`

func (r *companyRepository) getCompanies(ctx context.Context, filterQuery string, args ...any) ([]domain.Company, error) {
	query := fullCompanySelectQuery + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query companies", err)
	}
	defer rows.Close()

	companies := []domain.Company{}
	for rows.Next() {
		var c domain.Company
		if err := rows.Scan(
			&c.CompanyID, &c.Name, &c.Town, &c.Industry, &c.ContactPerson, &c.ContactPhone,
			&c.ManagerID, &c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan company row", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating company rows", err)
	}
	return companies, nil
}

func (r *companyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	query := `
		INSERT INTO companies (
			company_id, name, town, industry, contact_person, contact_phone, manager_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		company.CompanyID,
		company.Name,
		company.Town,
		company.Industry,
		company.ContactPerson,
		company.ContactPhone,
		company.ManagerID,
		company.CreatedAt,
		company.CreatedBy,
		company.LastUpdatedAt,
		company.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("contact phone " + company.ContactPhone + " is already registered")
		}
		return apperrors.NewAppError(500, "failed to save company "+company.CompanyID, err)
	}
	return nil
}

func (r *companyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	query := `
		UPDATE companies SET
			name = $2, town = $3, industry = $4, contact_person = $5, contact_phone = $6,
			manager_id = $7, last_updated_at = $8, last_updated_by = $9
		WHERE company_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		company.CompanyID,
		company.Name,
		company.Town,
		company.Industry,
		company.ContactPerson,
		company.ContactPhone,
		company.ManagerID,
		company.LastUpdatedAt,
		company.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("contact phone " + company.ContactPhone + " is already registered")
		}
		return apperrors.NewAppError(500, "failed to update company "+company.CompanyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *companyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	companies, err := r.getCompanies(ctx, `WHERE c.company_id = $1`, companyID)
	if err != nil {
		return nil, err
	}
	if len(companies) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &companies[0], nil
}

func (r *companyRepository) ListCompanies(ctx context.Context, filter domain.CompanyFilter) ([]domain.Company, error) {
	where, args := buildCompanyFilter(filter, "c", 0)
	return r.getCompanies(ctx, where+" ORDER BY c.name, c.company_id", args...)
}

func (r *companyRepository) CountCompanies(ctx context.Context, filter domain.CompanyFilter) (int, error) {
	where, args := buildCompanyFilter(filter, "c", 0)
	var count int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM companies c `+where, args...).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, apperrors.NewAppError(500, "failed to count companies", err)
	}
	return count, nil
}

// buildCompanyFilter assembles a WHERE clause for company-level filters,
// numbering placeholders from argOffset+1.
func buildCompanyFilter(filter domain.CompanyFilter, alias string, argOffset int) (string, []any) {
	clauses := ""
	args := []any{}
	and := func(clause string, arg any) {
		args = append(args, arg)
		placeholder := "$" + strconv.Itoa(argOffset+len(args))
		if clauses == "" {
			clauses = "WHERE "
		} else {
			clauses += " AND "
		}
		clauses += fmt.Sprintf(clause, alias, placeholder)
	}
	if filter.Industry != "" {
		and("%s.industry = %s", filter.Industry)
	}
	if filter.Town != "" {
		and("%s.town = %s", filter.Town)
	}
	if filter.Name != "" {
		and("%s.name ILIKE %s", "%"+filter.Name+"%")
	}
	return clauses, args
}
