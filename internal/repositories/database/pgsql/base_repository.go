package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository holds the shared connection pool embedded by every
// pgsql repository. All statements here are single-row upserts and
// reads, so repositories run directly against the pool.
type BaseRepository struct {
	Pool *pgxpool.Pool
}
