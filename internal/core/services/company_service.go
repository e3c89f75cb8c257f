package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tmzhouw/labor-report-backend/internal/apperrors"
	"github.com/tmzhouw/labor-report-backend/internal/core/domain"
	portsrepo "github.com/tmzhouw/labor-report-backend/internal/core/ports/repositories"
	portssvc "github.com/tmzhouw/labor-report-backend/internal/core/ports/services"
	"github.com/tmzhouw/labor-report-backend/internal/dto"
)

// companyService manages the company registry. Companies are created and
// mutated by reviewers only and never hard-deleted.
type companyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepository
	auditSvc    portssvc.AuditSvcFacade
}

// NewCompanyService creates a new company service.
func NewCompanyService(repo portsrepo.CompanyRepository, auditSvc portssvc.AuditSvcFacade) portssvc.CompanySvcFacade {
	return &companyService{companyRepo: repo, auditSvc: auditSvc}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// CreateCompany registers a new reporting subject. The store enforces contact
// phone uniqueness; a violation surfaces as a conflict error.
func (s *companyService) CreateCompany(ctx context.Context, auth domain.Authorization, req dto.CreateCompanyRequest) (*domain.Company, error) {
	if !auth.IsReviewer() {
		return nil, apperrors.NewForbiddenError("company registration requires a reviewer role")
	}
	if !domain.IsKnownTown(req.Town) {
		return nil, apperrors.NewValidationFailedError("town", req.Town+" is not a known town")
	}
	if !domain.IsKnownIndustry(req.Industry) {
		return nil, apperrors.NewValidationFailedError("industry", req.Industry+" is not a known industry")
	}

	now := time.Now().UTC()
	company := domain.Company{
		CompanyID:     uuid.NewString(),
		Name:          req.Name,
		Town:          req.Town,
		Industry:      req.Industry,
		ContactPerson: req.ContactPerson,
		ContactPhone:  req.ContactPhone,
		ManagerID:     req.ManagerID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     auth.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: auth.UserID,
		},
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to save company", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save company: %w", err)
	}

	detail := map[string]any{"name": company.Name, "town": company.Town, "industry": company.Industry}
	if err := s.auditSvc.Record(ctx, auth.UserID, domain.ActionCreateEnterprise, &company.CompanyID, nil, detail); err != nil {
		s.LogError(ctx, err, "Audit entry lost for company creation", slog.String("company_id", company.CompanyID))
	}

	s.LogInfo(ctx, "Company registered", slog.String("company_id", company.CompanyID), slog.String("name", company.Name))
	return &company, nil
}

// UpdateCompany mutates profile fields and the manager assignment.
func (s *companyService) UpdateCompany(ctx context.Context, auth domain.Authorization, companyID string, req dto.UpdateCompanyRequest) (*domain.Company, error) {
	if !auth.CanReview(companyID) {
		return nil, apperrors.NewForbiddenError("company updates require a reviewer role scoped to the company")
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("companyID", "company "+companyID+" is not registered")
		}
		return nil, fmt.Errorf("failed to load company %s: %w", companyID, err)
	}

	changed := map[string]any{}
	if req.Name != nil && *req.Name != company.Name {
		company.Name = *req.Name
		changed["name"] = *req.Name
	}
	if req.Town != nil && *req.Town != company.Town {
		if !domain.IsKnownTown(*req.Town) {
			return nil, apperrors.NewValidationFailedError("town", *req.Town+" is not a known town")
		}
		company.Town = *req.Town
		changed["town"] = *req.Town
	}
	if req.Industry != nil && *req.Industry != company.Industry {
		if !domain.IsKnownIndustry(*req.Industry) {
			return nil, apperrors.NewValidationFailedError("industry", *req.Industry+" is not a known industry")
		}
		company.Industry = *req.Industry
		changed["industry"] = *req.Industry
	}
	if req.ContactPerson != nil && *req.ContactPerson != company.ContactPerson {
		company.ContactPerson = *req.ContactPerson
		changed["contactPerson"] = *req.ContactPerson
	}
	if req.ContactPhone != nil && *req.ContactPhone != company.ContactPhone {
		company.ContactPhone = *req.ContactPhone
		changed["contactPhone"] = *req.ContactPhone
	}
	if req.ManagerID != nil {
		company.ManagerID = req.ManagerID
		changed["managerID"] = *req.ManagerID
	}
	if len(changed) == 0 {
		return company, nil
	}

	company.LastUpdatedAt = time.Now().UTC()
	company.LastUpdatedBy = auth.UserID
	if err := s.companyRepo.UpdateCompany(ctx, *company); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to update company", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to update company: %w", err)
	}

	if err := s.auditSvc.Record(ctx, auth.UserID, domain.ActionUpdateEnterprise, &companyID, nil, changed); err != nil {
		s.LogError(ctx, err, "Audit entry lost for company update", slog.String("company_id", companyID))
	}

	s.LogInfo(ctx, "Company updated", slog.String("company_id", companyID), slog.Int("changed_fields", len(changed)))
	return company, nil
}

// GetCompany retrieves one company; enterprises can only read their own.
func (s *companyService) GetCompany(ctx context.Context, auth domain.Authorization, companyID string) (*domain.Company, error) {
	if !auth.IsReviewer() && !auth.CanSubmitFor(companyID) {
		return nil, apperrors.NewForbiddenError("company access requires the owning enterprise or a reviewer role")
	}
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("companyID", "company "+companyID+" is not registered")
		}
		return nil, fmt.Errorf("failed to load company %s: %w", companyID, err)
	}
	return company, nil
}

// ListCompanies retrieves companies matching the filter. Reviewer roles only.
func (s *companyService) ListCompanies(ctx context.Context, auth domain.Authorization, filter domain.CompanyFilter) ([]domain.Company, error) {
	if !auth.IsReviewer() {
		return nil, apperrors.NewForbiddenError("company listing requires a reviewer role")
	}
	companies, err := s.companyRepo.ListCompanies(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}
