package pgsql

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tmzhouw/labor-report-backend/internal/apperrors"
	"github.com/tmzhouw/labor-report-backend/internal/core/domain"
	portsrepo "github.com/tmzhouw/labor-report-backend/internal/core/ports/repositories"
)

type auditRepository struct {
	BaseRepository
}

// newAuditRepository creates the append-only audit store.
func newAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepository {
	return &auditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepository = (*auditRepository)(nil)

func (r *auditRepository) AppendEntry(ctx context.Context, entry domain.AuditLogEntry) error {
	detail, err := json.Marshal(entry.Detail)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode audit detail", err)
	}
	query := `
		INSERT INTO audit_log_entries (
			entry_id, actor_id, action, target_company_id, target_user_id, detail, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = r.Pool.Exec(ctx, query,
		entry.EntryID,
		entry.ActorID,
		string(entry.Action),
		entry.TargetCompanyID,
		entry.TargetUserID,
		detail,
		entry.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to append audit entry "+entry.EntryID, err)
	}
	return nil
}

func (r *auditRepository) ListEntries(ctx context.Context, limit, offset int) ([]domain.AuditLogEntry, error) {
	query := `
		SELECT entry_id, actor_id, action, target_company_id, target_user_id, detail, created_at
		FROM audit_log_entries
		ORDER BY created_at DESC, entry_id
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query audit entries", err)
	}
	defer rows.Close()

	entries := []domain.AuditLogEntry{}
	for rows.Next() {
		var entry domain.AuditLogEntry
		var detail []byte
		if err := rows.Scan(
			&entry.EntryID, &entry.ActorID, &entry.Action,
			&entry.TargetCompanyID, &entry.TargetUserID, &detail, &entry.CreatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan audit entry", err)
		}
		if len(detail) > 0 {
			if err := json.Unmarshal(detail, &entry.Detail); err != nil {
				return nil, apperrors.NewAppError(500, "failed to decode audit detail", err)
			}
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating audit entries", err)
	}
	return entries, nil
}
