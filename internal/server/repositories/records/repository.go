package records

import (
	"context"

	"github.com/dmitrijs2005/entrysync/internal/server/models"
)

type Repository interface {
	// GetForUpdate returns the record and locks its row, or
	// common.ErrorNotFound.
	GetForUpdate(ctx context.Context, userID, collection, id string) (*models.Record, error)
	// Upsert writes rec; CreatedVersion is only taken on insert.
	Upsert(ctx context.Context, rec *models.Record) error
	// Touch moves a record to a new version without changing its content.
	Touch(ctx context.Context, userID, collection, id string, version int64) error
	// SelectUpdated returns the user's records with version > minVersion in
	// version order.
	SelectUpdated(ctx context.Context, userID string, minVersion int64) ([]*models.Record, error)
}
