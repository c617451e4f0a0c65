package client

import (
	pb "github.com/dmitrijs2005/entrysync/api/entrysync/v1"
	"github.com/dmitrijs2005/entrysync/internal/client/models"
)

func toWireChangesets(batch *models.PushBatch) map[string]*pb.Changeset {
	out := make(map[string]*pb.Changeset, len(batch.Changesets))
	for collection, cs := range batch.Changesets {
		w := &pb.Changeset{}
		for _, r := range cs.Created {
			w.Created = append(w.Created, toWireRecord(r))
		}
		for _, r := range cs.Updated {
			w.Updated = append(w.Updated, toWireRecord(r))
		}
		for _, id := range cs.Deleted {
			ts, ok := cs.DeletedAt[id]
			if !ok {
				ts = batch.Versions[models.RecordKey{Collection: collection, ID: id}]
			}
			w.Deleted = append(w.Deleted, &pb.Tombstone{Id: id, UpdatedAt: ts})
		}
		out[collection] = w
	}
	return out
}

func toWireRecord(r *models.Record) *pb.Record {
	return &pb.Record{Id: r.ID, Data: r.Data, UpdatedAt: r.UpdatedAt}
}

func fromWireChangesets(in map[string]*pb.Changeset) map[string]*models.Changeset {
	out := make(map[string]*models.Changeset, len(in))
	for collection, w := range in {
		if w == nil {
			continue
		}
		cs := &models.Changeset{}
		for _, r := range w.Created {
			cs.Created = append(cs.Created, fromWireRecord(collection, r))
		}
		for _, r := range w.Updated {
			cs.Updated = append(cs.Updated, fromWireRecord(collection, r))
		}
		if len(w.Deleted) > 0 {
			cs.DeletedAt = make(map[string]int64, len(w.Deleted))
		}
		for _, t := range w.Deleted {
			cs.Deleted = append(cs.Deleted, t.Id)
			cs.DeletedAt[t.Id] = t.UpdatedAt
		}
		out[collection] = cs
	}
	return out
}

func fromWireRecord(collection string, r *pb.Record) *models.Record {
	return &models.Record{ID: r.Id, Collection: collection, Data: r.Data, UpdatedAt: r.UpdatedAt}
}
