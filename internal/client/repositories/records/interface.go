// Package records implements the local record store on SQLite: per-record
// reads and writes, dirty-set enumeration, guarded dirty clearing and a
// transaction runner that makes pull application atomic.
package records

import (
	"context"

	"github.com/dmitrijs2005/entrysync/internal/client/models"
)

// Repository describes record operations over a single database handle.
// Bound to a transaction (see Store.Atomic) every call joins that transaction.
type Repository interface {
	// Get returns a record including tombstones, or common.ErrorNotFound.
	Get(ctx context.Context, collection, id string) (*models.Record, error)

	// FindByID looks a live record up by id alone. Ids are UUIDs, so the
	// collection is only needed to disambiguate foreign ids.
	FindByID(ctx context.Context, id string) (*models.Record, error)
	// Put inserts or fully replaces a record, local flags included.
	Put(ctx context.Context, r *models.Record) error

	// Remove physically deletes a record. Removing a missing record is not an error.
	Remove(ctx context.Context, collection, id string) error

	// ClearDirty clears the dirty flag of a record only while its updatedAt
	// still equals guardUpdatedAt. An acknowledged tombstone is removed
	// instead. It reports whether the guard held.
	ClearDirty(ctx context.Context, collection, id string, guardUpdatedAt int64) (bool, error)

	// MarkRemoteDeleted remembers that the server deleted a record at
	// deletedAt while the local copy was dirty. The record itself is left
	// untouched; SettleRemoteDeletes acts on the marker in a later pull.
	MarkRemoteDeleted(ctx context.Context, collection, id string, deletedAt int64) error

	// SettleRemoteDeletes removes clean records whose remembered remote
	// deletion is not older than their updatedAt and forgets markers that a
	// newer write has overtaken. It returns the number of removed records.
	SettleRemoteDeletes(ctx context.Context) (int, error)

	// ListDirty returns all dirty records of a collection, tombstones included.
	ListDirty(ctx context.Context, collection string) ([]*models.Record, error)

	// DirtyCollections lists collections holding at least one dirty record.
	DirtyCollections(ctx context.Context) ([]string, error)

	// List returns live (non-deleted) records; an empty collection lists all.
	List(ctx context.Context, collection string) ([]*models.Record, error)
}
