package changeset

import (
	"context"
	"sort"
	"time"

	"github.com/dmitrijs2005/entrysync/internal/client/models"
	"github.com/dmitrijs2005/entrysync/internal/common"
)

// memStore is an in-memory stand-in for the record store.
type memStore struct {
	rows map[models.RecordKey]*models.Record
	puts int
	// remoteDeleted holds deferred remote deletions, as MarkRemoteDeleted left them.
	remoteDeleted map[models.RecordKey]int64
}

func newMemStore(recs ...*models.Record) *memStore {
	m := &memStore{
		rows:          make(map[models.RecordKey]*models.Record),
		remoteDeleted: make(map[models.RecordKey]int64),
	}
	for _, r := range recs {
		m.rows[r.Key()] = r.Clone()
	}
	return m
}

func (m *memStore) snapshot() map[models.RecordKey]models.Record {
	out := make(map[models.RecordKey]models.Record, len(m.rows))
	for k, r := range m.rows {
		out[k] = *r.Clone()
	}
	return out
}

func (m *memStore) Get(_ context.Context, collection, id string) (*models.Record, error) {
	r, ok := m.rows[models.RecordKey{Collection: collection, ID: id}]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.Clone(), nil
}

func (m *memStore) Put(_ context.Context, r *models.Record) error {
	m.puts++
	m.rows[r.Key()] = r.Clone()
	return nil
}

func (m *memStore) Remove(_ context.Context, collection, id string) error {
	k := models.RecordKey{Collection: collection, ID: id}
	delete(m.rows, k)
	delete(m.remoteDeleted, k)
	return nil
}

func (m *memStore) ClearDirty(_ context.Context, collection, id string, guard int64) (bool, error) {
	k := models.RecordKey{Collection: collection, ID: id}
	r, ok := m.rows[k]
	if !ok || !r.Dirty || r.UpdatedAt != guard {
		return false, nil
	}
	if r.Deleted {
		delete(m.rows, k)
		delete(m.remoteDeleted, k)
		return true, nil
	}
	r.Dirty = false
	r.Synced = true
	return true, nil
}

func (m *memStore) MarkRemoteDeleted(_ context.Context, collection, id string, deletedAt int64) error {
	k := models.RecordKey{Collection: collection, ID: id}
	if _, ok := m.rows[k]; ok && deletedAt > m.remoteDeleted[k] {
		m.remoteDeleted[k] = deletedAt
	}
	return nil
}

func (m *memStore) SettleRemoteDeletes(context.Context) (int, error) {
	removed := 0
	for k, deletedAt := range m.remoteDeleted {
		r, ok := m.rows[k]
		switch {
		case !ok, r.UpdatedAt > deletedAt:
			delete(m.remoteDeleted, k)
		case !r.Dirty:
			delete(m.rows, k)
			delete(m.remoteDeleted, k)
			removed++
		}
	}
	return removed, nil
}

func (m *memStore) DirtyCollections(context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, r := range m.rows {
		if r.Dirty && !seen[r.Collection] {
			seen[r.Collection] = true
			out = append(out, r.Collection)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *memStore) ListDirty(_ context.Context, collection string) ([]*models.Record, error) {
	var out []*models.Record
	for _, r := range m.rows {
		if r.Dirty && r.Collection == collection {
			out = append(out, r.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func timeAt(ms int64) time.Time {
	return time.UnixMilli(ms)
}
