package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/entrysync/internal/client/models"
	"github.com/dmitrijs2005/entrysync/internal/common"
	"github.com/dmitrijs2005/entrysync/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const recordColumns = `collection, id, data, updated_at, deleted, dirty, synced`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*models.Record, error) {
	r := &models.Record{}
	if err := s.Scan(&r.Collection, &r.ID, &r.Data, &r.UpdatedAt, &r.Deleted, &r.Dirty, &r.Synced); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, collection, id string) (*models.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM records WHERE collection = ? AND id = ?`
	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, collection, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record %s/%s: %w", collection, id, err)
	}
	return rec, nil
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id string) (*models.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM records WHERE id = ? AND deleted = 0 ORDER BY collection LIMIT 1`
	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find record %s: %w", id, err)
	}
	return rec, nil
}

// Put upserts every column. On conflict the row is replaced as a whole.
func (r *SQLiteRepository) Put(ctx context.Context, rec *models.Record) error {
	query := `INSERT INTO records (` + recordColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(collection, id) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at,
			deleted = excluded.deleted,
			dirty = excluded.dirty,
			synced = excluded.synced`
	_, err := r.db.ExecContext(ctx, query,
		rec.Collection, rec.ID, rec.Data, rec.UpdatedAt, rec.Deleted, rec.Dirty, rec.Synced)
	if err != nil {
		return fmt.Errorf("failed to upsert record %s/%s: %w", rec.Collection, rec.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) Remove(ctx context.Context, collection, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM records WHERE collection = ? AND id = ?`, collection, id)
	if err != nil {
		return fmt.Errorf("failed to remove record %s/%s: %w", collection, id, err)
	}
	return nil
}

func (r *SQLiteRepository) ClearDirty(ctx context.Context, collection, id string, guardUpdatedAt int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM records WHERE collection = ? AND id = ? AND updated_at = ? AND dirty = 1 AND deleted = 1`,
		collection, id, guardUpdatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to purge tombstone %s/%s: %w", collection, id, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	} else if n == 1 {
		return true, nil
	}

	res, err = r.db.ExecContext(ctx,
		`UPDATE records SET dirty = 0, synced = 1 WHERE collection = ? AND id = ? AND updated_at = ? AND dirty = 1`,
		collection, id, guardUpdatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to clear dirty flag %s/%s: %w", collection, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n == 1, nil
}

func (r *SQLiteRepository) MarkRemoteDeleted(ctx context.Context, collection, id string, deletedAt int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE records SET remote_deleted_at = MAX(remote_deleted_at, ?) WHERE collection = ? AND id = ?`,
		deletedAt, collection, id)
	if err != nil {
		return fmt.Errorf("failed to mark remote deletion %s/%s: %w", collection, id, err)
	}
	return nil
}

func (r *SQLiteRepository) SettleRemoteDeletes(ctx context.Context) (int, error) {
	_, err := r.db.ExecContext(ctx,
		`UPDATE records SET remote_deleted_at = 0 WHERE remote_deleted_at > 0 AND updated_at > remote_deleted_at`)
	if err != nil {
		return 0, fmt.Errorf("failed to forget overtaken remote deletions: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM records WHERE remote_deleted_at > 0 AND dirty = 0`)
	if err != nil {
		return 0, fmt.Errorf("failed to remove remotely deleted records: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(n), nil
}

func (r *SQLiteRepository) ListDirty(ctx context.Context, collection string) ([]*models.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM records WHERE collection = ? AND dirty = 1 ORDER BY updated_at, id`
	return r.query(ctx, query, collection)
}

func (r *SQLiteRepository) DirtyCollections(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT collection FROM records WHERE dirty = 1 ORDER BY collection`)
	if err != nil {
		return nil, fmt.Errorf("failed to select dirty collections: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) List(ctx context.Context, collection string) ([]*models.Record, error) {
	if collection == "" {
		return r.query(ctx, `SELECT `+recordColumns+` FROM records WHERE deleted = 0 ORDER BY collection, updated_at DESC`)
	}
	return r.query(ctx, `SELECT `+recordColumns+` FROM records WHERE deleted = 0 AND collection = ? ORDER BY updated_at DESC`, collection)
}

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]*models.Record, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select records: %w", err)
	}
	defer rows.Close()

	var result []*models.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
