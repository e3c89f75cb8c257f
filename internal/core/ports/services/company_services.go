package services

import (
	"context"

	"github.com/tmzhouw/labor-report-backend/internal/core/domain"
	"github.com/tmzhouw/labor-report-backend/internal/dto"
)

// CompanySvcFacade manages the company registry.
type CompanySvcFacade interface {
	// CreateCompany registers a new reporting subject.
	CreateCompany(ctx context.Context, auth domain.Authorization, req dto.CreateCompanyRequest) (*domain.Company, error)

	// UpdateCompany mutates profile fields and manager assignment.
	UpdateCompany(ctx context.Context, auth domain.Authorization, companyID string, req dto.UpdateCompanyRequest) (*domain.Company, error)

	// GetCompany retrieves one company.
	GetCompany(ctx context.Context, auth domain.Authorization, companyID string) (*domain.Company, error)

	// ListCompanies retrieves companies matching the filter.
	ListCompanies(ctx context.Context, auth domain.Authorization, filter domain.CompanyFilter) ([]domain.Company, error)
}
