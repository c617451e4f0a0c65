package records

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/entrysync/internal/dbx"
	"github.com/pressly/goose/v3"
)

// Store is the local record store. Reads outside a transaction go through
// Repository(); anything that must be atomic goes through Atomic.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for collaborators sharing the database
// (the metadata repository).
func (s *Store) DB() *sql.DB {
	return s.db
}

// Repository returns a repository bound to the database, not to a transaction.
func (s *Store) Repository() Repository {
	return NewSQLiteRepository(s.db)
}

// Atomic runs fn in a single transaction: either every write of fn becomes
// visible or none does.
func (s *Store) Atomic(ctx context.Context, fn func(ctx context.Context, tx Repository) error) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, NewSQLiteRepository(tx))
	})
}

// Snapshot runs fn in a read-only transaction: every read fn makes sees the
// same committed state, and local writes queue until it returns.
func (s *Store) Snapshot(ctx context.Context, fn func(ctx context.Context, tx Repository) error) error {
	return dbx.WithTx(ctx, s.db, &sql.TxOptions{ReadOnly: true}, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, NewSQLiteRepository(tx))
	})
}

// HasDirty reports whether any record awaits a push.
func (s *Store) HasDirty(ctx context.Context) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records WHERE dirty = 1`).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to count dirty records: %w", err)
	}
	return n > 0, nil
}

// SchemaVersion is the highest applied migration version.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	v, err := goose.GetDBVersionContext(ctx, s.db)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return int(v), nil
}
