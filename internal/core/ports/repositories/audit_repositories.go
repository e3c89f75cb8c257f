package repositories

import (
	"context"

	"github.com/tmzhouw/labor-report-backend/internal/core/domain"
)

// AuditRepository is the append-only store for administrative audit entries.
type AuditRepository interface {
	// AppendEntry inserts one entry. Entries are never updated or deleted.
	AppendEntry(ctx context.Context, entry domain.AuditLogEntry) error

	// ListEntries returns entries newest first.
	ListEntries(ctx context.Context, limit, offset int) ([]domain.AuditLogEntry, error)
}
