// Package records provides the PostgreSQL-backed server record store.
package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/entrysync/internal/common"
	"github.com/dmitrijs2005/entrysync/internal/dbx"
	"github.com/dmitrijs2005/entrysync/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetForUpdate(ctx context.Context, userID, collection, id string) (*models.Record, error) {
	query :=
		`SELECT data, updated_at, deleted, version, created_version FROM records
		 WHERE user_id = $1 AND collection = $2 AND id = $3
		 FOR UPDATE
		 `

	rec := &models.Record{UserID: userID, Collection: collection, ID: id}
	err := r.db.QueryRowContext(ctx, query, userID, collection, id).
		Scan(&rec.Data, &rec.UpdatedAt, &rec.Deleted, &rec.Version, &rec.CreatedVersion)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, rec *models.Record) error {
	query :=
		`INSERT INTO records (user_id, collection, id, data, updated_at, deleted, version, created_version)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (user_id, collection, id)
		 DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = EXCLUDED.updated_at,
			deleted = EXCLUDED.deleted,
			version = EXCLUDED.version;
		`
	_, err := r.db.ExecContext(ctx, query,
		rec.UserID, rec.Collection, rec.ID, rec.Data, rec.UpdatedAt, rec.Deleted, rec.Version, rec.CreatedVersion)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Touch(ctx context.Context, userID, collection, id string, version int64) error {
	query := `UPDATE records SET version = $4 WHERE user_id = $1 AND collection = $2 AND id = $3`

	res, err := r.db.ExecContext(ctx, query, userID, collection, id, version)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) SelectUpdated(ctx context.Context, userID string, minVersion int64) ([]*models.Record, error) {
	query :=
		`SELECT collection, id, data, updated_at, deleted, version, created_version FROM records
		 WHERE user_id = $1 AND version > $2
		 ORDER BY version
		 `
	rows, err := r.db.QueryContext(ctx, query, userID, minVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to select records: %w", err)
	}
	defer rows.Close()

	var result []*models.Record
	for rows.Next() {
		item := &models.Record{UserID: userID}
		if err := rows.Scan(&item.Collection, &item.ID, &item.Data, &item.UpdatedAt,
			&item.Deleted, &item.Version, &item.CreatedVersion); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
