// Package changeset translates between local record state and the changesets
// exchanged with the server. It reads and writes only through the store
// handles passed to it.
package changeset

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/entrysync/internal/client/models"
	"github.com/dmitrijs2005/entrysync/internal/common"
)

// DirtyReader enumerates the dirty set.
type DirtyReader interface {
	DirtyCollections(ctx context.Context) ([]string, error)
	ListDirty(ctx context.Context, collection string) ([]*models.Record, error)
}

// Tx is the store handle pulls are applied through. Callers pass a
// transaction-bound handle so that all writes of one sync land atomically.
type Tx interface {
	Get(ctx context.Context, collection, id string) (*models.Record, error)
	Put(ctx context.Context, r *models.Record) error
	Remove(ctx context.Context, collection, id string) error
	ClearDirty(ctx context.Context, collection, id string, guardUpdatedAt int64) (bool, error)
	MarkRemoteDeleted(ctx context.Context, collection, id string, deletedAt int64) error
	SettleRemoteDeletes(ctx context.Context) (int, error)
}

// BuildPushChangeset collects every dirty record into a push batch:
// tombstones go to Deleted, records without an acknowledged copy to Created,
// the rest to Updated. It does not write.
func BuildPushChangeset(ctx context.Context, r DirtyReader) (*models.PushBatch, error) {
	collections, err := r.DirtyCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("list dirty collections: %w", err)
	}

	batch := models.NewPushBatch()
	for _, collection := range collections {
		dirty, err := r.ListDirty(ctx, collection)
		if err != nil {
			return nil, fmt.Errorf("list dirty %s: %w", collection, err)
		}
		if len(dirty) == 0 {
			continue
		}

		cs := &models.Changeset{}
		for _, rec := range dirty {
			switch {
			case rec.Deleted:
				if cs.DeletedAt == nil {
					cs.DeletedAt = make(map[string]int64)
				}
				cs.Deleted = append(cs.Deleted, rec.ID)
				cs.DeletedAt[rec.ID] = rec.UpdatedAt
			case !rec.Synced:
				cs.Created = append(cs.Created, rec.Clone())
			default:
				cs.Updated = append(cs.Updated, rec.Clone())
			}
			batch.Versions[rec.Key()] = rec.UpdatedAt
		}
		batch.Changesets[collection] = cs
	}

	if batch.Len() == 0 {
		return nil, ErrEmptyChangeset
	}
	return batch, nil
}

// ApplyResult counts what a pull did to the local store.
type ApplyResult struct {
	Applied         int
	KeptLocal       int
	Removed         int
	DeferredDeletes int
	// SettledDeletes counts records removed for a remote deletion deferred
	// by an earlier pull.
	SettledDeletes int
}

// ApplyPullChangeset merges remote changes into the store record by record
// (see Resolve). Collections are processed in name order.
//
// Remote deletions deferred by earlier pulls are settled first: a record the
// deletion is not older than goes away once it is clean. A deletion deferred
// now is only remembered, so the local copy survives this pull.
func ApplyPullChangeset(ctx context.Context, tx Tx, changes map[string]*models.Changeset) (ApplyResult, error) {
	var res ApplyResult

	settled, err := tx.SettleRemoteDeletes(ctx)
	if err != nil {
		return res, fmt.Errorf("settle deferred deletions: %w", err)
	}
	res.SettledDeletes = settled

	collections := make([]string, 0, len(changes))
	for c := range changes {
		collections = append(collections, c)
	}
	sort.Strings(collections)

	for _, collection := range collections {
		cs := changes[collection]
		if cs == nil {
			continue
		}

		for _, group := range [][]*models.Record{cs.Created, cs.Updated} {
			for _, remote := range group {
				r := remote.Clone()
				r.Collection = collection
				r.Deleted = false
				if err := applyOne(ctx, tx, r, &res); err != nil {
					return res, err
				}
			}
		}

		for _, id := range cs.Deleted {
			r := &models.Record{ID: id, Collection: collection, UpdatedAt: cs.DeletedAt[id], Deleted: true}
			if err := applyOne(ctx, tx, r, &res); err != nil {
				return res, err
			}
		}
	}

	return res, nil
}

func applyOne(ctx context.Context, tx Tx, remote *models.Record, res *ApplyResult) error {
	local, err := tx.Get(ctx, remote.Collection, remote.ID)
	if errors.Is(err, common.ErrorNotFound) {
		local = nil
	} else if err != nil {
		return err
	}

	switch Resolve(local, remote) {
	case DecisionTakeRemote:
		remote.Dirty = false
		remote.Synced = true
		if err := tx.Put(ctx, remote); err != nil {
			return err
		}
		res.Applied++
	case DecisionKeepLocal:
		res.KeptLocal++
	case DecisionRemove:
		if err := tx.Remove(ctx, remote.Collection, remote.ID); err != nil {
			return err
		}
		res.Removed++
	case DecisionDeferDelete:
		if err := tx.MarkRemoteDeleted(ctx, remote.Collection, remote.ID, remote.UpdatedAt); err != nil {
			return err
		}
		res.DeferredDeletes++
	}
	return nil
}

// ClearAcknowledged clears the dirty flag of every accepted record that was
// part of batch, guarded by the updatedAt it had when the batch was built.
// A record edited in the meantime stays dirty and is counted as skipped.
func ClearAcknowledged(ctx context.Context, tx Tx, batch *models.PushBatch, accepted []models.RecordKey) (cleared, skipped int, err error) {
	if batch == nil {
		return 0, 0, nil
	}

	for _, key := range accepted {
		guard, ok := batch.Versions[key]
		if !ok {
			continue
		}

		held, err := tx.ClearDirty(ctx, key.Collection, key.ID, guard)
		if err != nil {
			return cleared, skipped, err
		}
		if held {
			cleared++
		} else {
			skipped++
		}
	}
	return cleared, skipped, nil
}
