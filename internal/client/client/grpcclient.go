package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	pb "github.com/dmitrijs2005/entrysync/api/entrysync/v1"
	"github.com/dmitrijs2005/entrysync/internal/client/models"
	"github.com/dmitrijs2005/entrysync/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const pingStatusOK = "OK"

// Timeouts bound the individual RPCs. Zero disables a timeout.
type Timeouts struct {
	Push time.Duration
	Pull time.Duration
	Ping time.Duration
}

type GRPCClient struct {
	endpointURL string
	timeouts    Timeouts
	conn        *grpc.ClientConn
	client      pb.SyncServiceClient

	mu          sync.RWMutex
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := s.AccessToken(); token != "" {
		ctx = withAccessToken(ctx, token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewGRPCClient(endpointURL string, timeouts Timeouts) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeouts: timeouts}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor))
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewSyncServiceClient(conn)
	return nil
}

// SetAccessToken replaces the token attached to subsequent calls.
func (s *GRPCClient) SetAccessToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = token
}

func (s *GRPCClient) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, s.timeouts.Ping)
	defer cancel()

	resp, err := s.client.Ping(ctx, &pb.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != pingStatusOK {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) Push(ctx context.Context, batch *models.PushBatch, w models.Watermark) (*models.PushResult, error) {
	ctx, cancel := withTimeout(ctx, s.timeouts.Push)
	defer cancel()

	req := &pb.PushRequest{
		Changesets:    toWireChangesets(batch),
		Watermark:     w.Cursor,
		SchemaVersion: int32(w.SchemaVersion),
	}

	resp, err := s.client.Push(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}

	res := &models.PushResult{ServerTimestamp: resp.ServerTimestamp}
	for _, ref := range resp.Accepted {
		if ref == nil {
			continue
		}
		res.Accepted = append(res.Accepted, models.RecordKey{Collection: ref.Collection, ID: ref.Id})
	}
	return res, nil
}

func (s *GRPCClient) Pull(ctx context.Context, w models.Watermark) (*models.PullResult, error) {
	ctx, cancel := withTimeout(ctx, s.timeouts.Pull)
	defer cancel()

	resp, err := s.client.Pull(ctx, &pb.PullRequest{Watermark: w.Cursor, SchemaVersion: int32(w.SchemaVersion)})
	if err != nil {
		return nil, s.mapError(err)
	}

	return &models.PullResult{
		Changes:   fromWireChangesets(resp.Changes),
		Watermark: resp.Watermark,
	}, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded, codes.Internal, codes.Unknown,
		codes.ResourceExhausted, codes.Aborted, codes.Canceled:
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	case codes.FailedPrecondition:
		return fmt.Errorf("%w: %s", ErrSchemaMismatch, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
