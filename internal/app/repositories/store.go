package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/pskth/attendance-management-system/internal/db"
)

// Store is the single pgx-backed persistence type. Its methods are split
// across per-entity files; the service layer consumes it through narrow
// interfaces so tests can substitute an in-memory implementation.
type Store struct {
	db *db.PostgresDB
}

// NewStore creates a store on top of the shared connection pool.
func NewStore(database *db.PostgresDB) *Store {
	return &Store{db: database}
}

// lookupID runs a single-column id query, mapping "no rows" to (0, nil) per
// the LookupStore contract.
func (s *Store) lookupID(ctx context.Context, query string, args ...interface{}) (int64, error) {
	var id int64
	err := s.db.Pool.QueryRow(ctx, query, args...).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}
