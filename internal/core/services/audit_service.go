package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tmzhouw/labor-report-backend/internal/apperrors"
	"github.com/tmzhouw/labor-report-backend/internal/core/domain"
	portsrepo "github.com/tmzhouw/labor-report-backend/internal/core/ports/repositories"
	portssvc "github.com/tmzhouw/labor-report-backend/internal/core/ports/services"
)

// auditService appends immutable audit entries. Append failures are the
// caller's to log; business state is never rolled back over a lost entry.
type auditService struct {
	BaseService
	auditRepo portsrepo.AuditRepository
}

// NewAuditService creates a new audit recorder.
func NewAuditService(repo portsrepo.AuditRepository) portssvc.AuditSvcFacade {
	return &auditService{auditRepo: repo}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

// Record appends one entry for a sensitive administrative action.
func (s *auditService) Record(ctx context.Context, actorID string, action domain.AuditAction, targetCompanyID, targetUserID *string, detail map[string]any) error {
	entry := domain.AuditLogEntry{
		EntryID:         uuid.NewString(),
		ActorID:         actorID,
		Action:          action,
		TargetCompanyID: targetCompanyID,
		TargetUserID:    targetUserID,
		Detail:          detail,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.auditRepo.AppendEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to append audit entry",
			"action", string(action), "actor_id", actorID)
		return err
	}
	return nil
}

// List returns entries newest first. Reviewer roles only.
func (s *auditService) List(ctx context.Context, auth domain.Authorization, limit, offset int) ([]domain.AuditLogEntry, error) {
	if !auth.IsReviewer() {
		return nil, apperrors.NewForbiddenError("audit log requires a reviewer role")
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.auditRepo.ListEntries(ctx, limit, offset)
}
