package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	portssvc "github.com/tmzhouw/labor-report-backend/internal/core/ports/services"
)

// auditHandler serves the administrative audit trail.
type auditHandler struct {
	auditService portssvc.AuditSvcFacade
}

func newAuditHandler(as portssvc.AuditSvcFacade) *auditHandler {
	return &auditHandler{auditService: as}
}

// RegisterAuditRoutes registers routes related to the audit log.
func RegisterAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvcFacade) {
	h := newAuditHandler(auditService)
	rg.GET("/audit", h.listEntries)
}

// listEntries godoc
// @Summary List audit entries
// @Description Administrative actions, newest first.
// @Tags audit
// @Produce json
// @Param limit query int false "Page size (default 100, max 500)"
// @Param offset query int false "Offset"
// @Success 200 {array} domain.AuditLogEntry
// @Failure 403 {object} map[string]string "Reviewer role required"
// @Security BearerAuth
// @Router /audit [get]
func (h *auditHandler) listEntries(c *gin.Context) {
	auth, ok := mustAuth(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	entries, err := h.auditService.List(c.Request.Context(), auth, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
