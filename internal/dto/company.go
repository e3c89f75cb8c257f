package dto

import (
	"time"

	"github.com/tmzhouw/labor-report-backend/internal/core/domain"
)

// CreateCompanyRequest defines the data needed to register a company.
type CreateCompanyRequest struct {
	Name          string  `json:"name" binding:"required"`
	Town          string  `json:"town" binding:"required"`
	Industry      string  `json:"industry" binding:"required"`
	ContactPerson string  `json:"contactPerson" binding:"required"`
	ContactPhone  string  `json:"contactPhone"`
	ManagerID     *string `json:"managerID"`
}

// UpdateCompanyRequest defines the mutable profile fields. Pointers
// distinguish "not provided" from zero values.
type UpdateCompanyRequest struct {
	Name          *string `json:"name"`
	Town          *string `json:"town"`
	Industry      *string `json:"industry"`
	ContactPerson *string `json:"contactPerson"`
	ContactPhone  *string `json:"contactPhone"`
	ManagerID     *string `json:"managerID"`
}

// CompanyResponse mirrors domain.Company for the wire.
type CompanyResponse struct {
	CompanyID     string    `json:"companyID"`
	Name          string    `json:"name"`
	Town          string    `json:"town"`
	Industry      string    `json:"industry"`
	ContactPerson string    `json:"contactPerson"`
	ContactPhone  string    `json:"contactPhone"`
	ManagerID     *string   `json:"managerID,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToCompanyResponse converts a domain.Company to its wire form.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:     c.CompanyID,
		Name:          c.Name,
		Town:          c.Town,
		Industry:      c.Industry,
		ContactPerson: c.ContactPerson,
		ContactPhone:  c.ContactPhone,
		ManagerID:     c.ManagerID,
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}

// ToListCompanyResponse converts a slice of companies.
func ToListCompanyResponse(companies []domain.Company) []CompanyResponse {
	res := make([]CompanyResponse, len(companies))
	for i := range companies {
		res[i] = ToCompanyResponse(&companies[i])
	}
	return res
}
