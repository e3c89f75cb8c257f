package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tmzhouw/labor-report-backend/internal/core/domain"
	portssvc "github.com/tmzhouw/labor-report-backend/internal/core/ports/services"
	"github.com/tmzhouw/labor-report-backend/internal/dto"
	"github.com/tmzhouw/labor-report-backend/internal/middleware"
)

// companyHandler handles HTTP requests for the company registry.
type companyHandler struct {
	companyService portssvc.CompanySvcFacade
}

func newCompanyHandler(cs portssvc.CompanySvcFacade) *companyHandler {
	return &companyHandler{companyService: cs}
}

// RegisterCompanyRoutes registers routes related to companies.
func RegisterCompanyRoutes(rg *gin.RouterGroup, companyService portssvc.CompanySvcFacade) {
	h := newCompanyHandler(companyService)

	companies := rg.Group("/companies")
	{
		companies.POST("", h.createCompany)
		companies.GET("", h.listCompanies)
		companies.GET("/:companyID", h.getCompany)
		companies.PUT("/:companyID", h.updateCompany)
	}
}

// createCompany godoc
// @Summary Register a company
// @Tags companies
// @Accept json
// @Produce json
// @Param company body dto.CreateCompanyRequest true "Company profile"
// @Success 201 {object} dto.CompanyResponse
// @Failure 400 {object} map[string]string "Unknown town or industry"
// @Failure 409 {object} map[string]string "Contact phone already registered"
// @Security BearerAuth
// @Router /companies [post]
func (h *companyHandler) createCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	auth, ok := mustAuth(c)
	if !ok {
		return
	}

	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCompany", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), auth, req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Company registered", slog.String("company_id", company.CompanyID))
	c.JSON(http.StatusCreated, dto.ToCompanyResponse(company))
}

// getCompany godoc
// @Summary Get a company
// @Tags companies
// @Produce json
// @Param companyID path string true "Company ID"
// @Success 200 {object} dto.CompanyResponse
// @Failure 404 {object} map[string]string "Not registered"
// @Security BearerAuth
// @Router /companies/{companyID} [get]
func (h *companyHandler) getCompany(c *gin.Context) {
	auth, ok := mustAuth(c)
	if !ok {
		return
	}
	company, err := h.companyService.GetCompany(c.Request.Context(), auth, c.Param("companyID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

// listCompanies godoc
// @Summary List companies
// @Tags companies
// @Produce json
// @Param industry query string false "Industry filter"
// @Param town query string false "Town filter"
// @Param name query string false "Name substring filter"
// @Success 200 {array} dto.CompanyResponse
// @Security BearerAuth
// @Router /companies [get]
func (h *companyHandler) listCompanies(c *gin.Context) {
	auth, ok := mustAuth(c)
	if !ok {
		return
	}
	filter := domain.CompanyFilter{
		Industry: c.Query("industry"),
		Town:     c.Query("town"),
		Name:     c.Query("name"),
	}
	companies, err := h.companyService.ListCompanies(c.Request.Context(), auth, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListCompanyResponse(companies))
}

// updateCompany godoc
// @Summary Update a company
// @Tags companies
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param company body dto.UpdateCompanyRequest true "Changed fields"
// @Success 200 {object} dto.CompanyResponse
// @Failure 404 {object} map[string]string "Not registered"
// @Failure 409 {object} map[string]string "Contact phone already registered"
// @Security BearerAuth
// @Router /companies/{companyID} [put]
func (h *companyHandler) updateCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	auth, ok := mustAuth(c)
	if !ok {
		return
	}

	var req dto.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCompany", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	company, err := h.companyService.UpdateCompany(c.Request.Context(), auth, c.Param("companyID"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Company updated", slog.String("company_id", company.CompanyID))
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}
