package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meikuraledutech/postgen"
)

// PGStore implements postgen.Store on PostgreSQL.
type PGStore struct {
	db *pgxpool.Pool
}

// New creates a PGStore backed by db.
func New(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

// Ensure PGStore implements postgen.Store at compile time.
var _ postgen.Store = (*PGStore)(nil)
