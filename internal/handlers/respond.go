package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tmzhouw/labor-report-backend/internal/apperrors"
	"github.com/tmzhouw/labor-report-backend/internal/core/domain"
	"github.com/tmzhouw/labor-report-backend/internal/middleware"
)

// respondError maps the core error taxonomy onto HTTP statuses. Validation
// and conflict errors keep their message; anything unclassified is masked as
// a generic 500.
func respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Request failed validation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Request conflicts with existing state", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Requested resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Request forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		logger.Error("Request failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// mustAuth fetches the principal placed by the auth middleware, aborting with
// 401 when it is absent.
func mustAuth(c *gin.Context) (domain.Authorization, bool) {
	auth, ok := middleware.GetAuthFromCtx(c.Request.Context())
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Authorization missing from context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return domain.Authorization{}, false
	}
	return auth, true
}

// monthParam parses the :month path segment into its canonical key.
func monthParam(c *gin.Context, name string) (domain.MonthKey, bool) {
	month, err := domain.ParseMonthKey(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return month, true
}

// monthQuery parses the ?month= query value, defaulting to the current
// calendar month when absent.
func monthQuery(c *gin.Context) (domain.MonthKey, error) {
	raw := c.Query("month")
	if raw == "" {
		return domain.MonthKeyOf(time.Now().UTC()), nil
	}
	return domain.ParseMonthKey(raw)
}
