package repositories

import (
	"context"

	"github.com/tmzhouw/labor-report-backend/internal/core/domain"
)

// CompanyRepository persists companies. Contact phone uniqueness is enforced
// by the store; violations surface as conflict errors.
type CompanyRepository interface {
	// SaveCompany inserts a new company.
	SaveCompany(ctx context.Context, company domain.Company) error

	// UpdateCompany overwrites the mutable profile fields of a company.
	UpdateCompany(ctx context.Context, company domain.Company) error

	// FindCompanyByID retrieves a company by its unique identifier.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// ListCompanies retrieves companies matching the filter.
	ListCompanies(ctx context.Context, filter domain.CompanyFilter) ([]domain.Company, error)

	// CountCompanies counts companies matching the filter.
	CountCompanies(ctx context.Context, filter domain.CompanyFilter) (int, error)
}
