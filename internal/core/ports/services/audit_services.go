package services

import (
	"context"

	"github.com/tmzhouw/labor-report-backend/internal/core/domain"
)

// AuditSvcFacade records and reads administrative audit entries. Record is
// best-effort from the caller's point of view: triggering business operations
// log a failed append and carry on.
type AuditSvcFacade interface {
	// Record appends one immutable entry.
	Record(ctx context.Context, actorID string, action domain.AuditAction, targetCompanyID, targetUserID *string, detail map[string]any) error

	// List returns entries newest first.
	List(ctx context.Context, auth domain.Authorization, limit, offset int) ([]domain.AuditLogEntry, error)
}
