// Package grpc exposes the sync service over gRPC.
package grpc

import (
	"context"
	"net"

	pb "github.com/dmitrijs2005/entrysync/api/entrysync/v1"
	"github.com/dmitrijs2005/entrysync/internal/logging"
	"github.com/dmitrijs2005/entrysync/internal/server/metrics"
	"github.com/dmitrijs2005/entrysync/internal/server/models"
	"google.golang.org/grpc"
)

// SyncService is the part of services.SyncService the handlers call.
type SyncService interface {
	Push(ctx context.Context, userID string, changes []*models.Change) (*models.PushResult, error)
	Pull(ctx context.Context, userID string, cursor int64, schemaVersion int) (*models.PullResult, error)
}

type GRPCServer struct {
	pb.UnimplementedSyncServiceServer
	address   string
	sync      SyncService
	metrics   *metrics.Metrics
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, s SyncService, m *metrics.Metrics, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		sync:      s,
		metrics:   m,
		jwtSecret: []byte(secretKey),
	}
}

// NewServer builds the grpc.Server with the interceptor chain and the sync
// service registered.
func (s *GRPCServer) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(
		s.metrics.UnaryServerInterceptor(),
		s.accessTokenInterceptor,
	))
	srv := grpc.NewServer(opts...)
	pb.RegisterSyncServiceServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
