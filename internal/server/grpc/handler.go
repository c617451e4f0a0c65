package grpc

import (
	"context"
	"errors"

	pb "github.com/dmitrijs2005/entrysync/api/entrysync/v1"
	"github.com/dmitrijs2005/entrysync/internal/common"
	"github.com/dmitrijs2005/entrysync/internal/server/models"
	"github.com/dmitrijs2005/entrysync/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Ping(ctx context.Context, req *pb.PingRequest) (*pb.PingResponse, error) {

	return &pb.PingResponse{Status: "OK"}, nil

}

func (s *GRPCServer) Push(ctx context.Context, req *pb.PushRequest) (*pb.PushResponse, error) {

	userID, _ := UserIDFromContext(ctx)

	result, err := s.sync.Push(ctx, userID, changesFromWire(req.Changesets))
	if err != nil {
		return nil, s.toStatus(ctx, "push", err)
	}

	resp := &pb.PushResponse{
		Accepted:        make([]*pb.RecordRef, 0, len(result.Accepted)),
		ServerTimestamp: result.ServerTimestamp,
	}
	for _, ref := range result.Accepted {
		resp.Accepted = append(resp.Accepted, &pb.RecordRef{Collection: ref.Collection, Id: ref.ID})
	}

	return resp, nil

}

func (s *GRPCServer) Pull(ctx context.Context, req *pb.PullRequest) (*pb.PullResponse, error) {

	userID, _ := UserIDFromContext(ctx)

	result, err := s.sync.Pull(ctx, userID, req.GetWatermark(), int(req.GetSchemaVersion()))
	if err != nil {
		return nil, s.toStatus(ctx, "pull", err)
	}

	return &pb.PullResponse{Changes: changesToWire(result.Changes), Watermark: result.Watermark}, nil

}

func (s *GRPCServer) toStatus(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, common.ErrSchemaMismatch):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, services.ErrInvalidChange):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	s.logger.Error(ctx, op+" failed", "error", err)
	return status.Error(codes.Internal, "internal error")
}

func changesFromWire(in map[string]*pb.Changeset) []*models.Change {
	var out []*models.Change
	for collection, cs := range in {
		if cs == nil {
			continue
		}
		for _, r := range cs.Created {
			out = append(out, recordChange(collection, r))
		}
		for _, r := range cs.Updated {
			out = append(out, recordChange(collection, r))
		}
		for _, t := range cs.Deleted {
			if t == nil {
				out = append(out, nil)
				continue
			}
			out = append(out, &models.Change{Collection: collection, ID: t.Id, UpdatedAt: t.UpdatedAt, Deleted: true})
		}
	}
	return out
}

func recordChange(collection string, r *pb.Record) *models.Change {
	if r == nil {
		return nil
	}
	return &models.Change{Collection: collection, ID: r.Id, Data: r.Data, UpdatedAt: r.UpdatedAt}
}

func changesToWire(in map[string]*models.CollectionChanges) map[string]*pb.Changeset {
	out := make(map[string]*pb.Changeset, len(in))
	for collection, cc := range in {
		cs := &pb.Changeset{}
		for _, r := range cc.Created {
			cs.Created = append(cs.Created, &pb.Record{Id: r.ID, Data: r.Data, UpdatedAt: r.UpdatedAt})
		}
		for _, r := range cc.Updated {
			cs.Updated = append(cs.Updated, &pb.Record{Id: r.ID, Data: r.Data, UpdatedAt: r.UpdatedAt})
		}
		for _, r := range cc.Deleted {
			cs.Deleted = append(cs.Deleted, &pb.Tombstone{Id: r.ID, UpdatedAt: r.UpdatedAt})
		}
		out[collection] = cs
	}
	return out
}
