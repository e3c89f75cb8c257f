package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/tmzhouw/labor-report-backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository over one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CompanyRepo: newCompanyRepository(pool),
		ReportRepo:  newReportRepository(pool),
		AuditRepo:   newAuditRepository(pool),
	}
}
