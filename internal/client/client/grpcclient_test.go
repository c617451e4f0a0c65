package client

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	pb "github.com/dmitrijs2005/entrysync/api/entrysync/v1"
	"github.com/dmitrijs2005/entrysync/internal/client/models"
	"github.com/dmitrijs2005/entrysync/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/proto"
)

/*************
 * Fake wire client
 *************/

type fakeWire struct {
	lastPushReq *pb.PushRequest
	lastPullReq *pb.PullRequest
	deadlines   []time.Duration

	pushResp *pb.PushResponse
	pushErr  error
	pullResp *pb.PullResponse
	pullErr  error
	pingResp *pb.PingResponse
	pingErr  error
}

func (f *fakeWire) recordDeadline(ctx context.Context) {
	if d, ok := ctx.Deadline(); ok {
		f.deadlines = append(f.deadlines, time.Until(d))
	} else {
		f.deadlines = append(f.deadlines, 0)
	}
}

func (f *fakeWire) Push(ctx context.Context, in *pb.PushRequest, opts ...grpc.CallOption) (*pb.PushResponse, error) {
	f.recordDeadline(ctx)
	f.lastPushReq = in
	return f.pushResp, f.pushErr
}

func (f *fakeWire) Pull(ctx context.Context, in *pb.PullRequest, opts ...grpc.CallOption) (*pb.PullResponse, error) {
	f.recordDeadline(ctx)
	f.lastPullReq = in
	return f.pullResp, f.pullErr
}

func (f *fakeWire) Ping(ctx context.Context, in *pb.PingRequest, opts ...grpc.CallOption) (*pb.PingResponse, error) {
	f.recordDeadline(ctx)
	return f.pingResp, f.pingErr
}

/*************
 * accessTokenInterceptor tests
 *************/

func TestInterceptor_AttachesCurrentToken(t *testing.T) {
	c := &GRPCClient{}
	c.SetAccessToken("A1")

	var seen []string
	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		md, _ := metadata.FromOutgoingContext(ctx)
		toks := md.Get(common.AccessTokenHeaderName)
		require.Len(t, toks, 1)
		seen = append(seen, toks[0])
		return nil
	}

	require.NoError(t, c.accessTokenInterceptor(context.Background(), "/svc/Method", nil, nil, nil, invoker))
	c.SetAccessToken("A2")
	require.NoError(t, c.accessTokenInterceptor(context.Background(), "/svc/Method", nil, nil, nil, invoker))

	assert.Equal(t, []string{"A1", "A2"}, seen)
}

func TestInterceptor_ReplacesExistingHeader(t *testing.T) {
	c := &GRPCClient{accessToken: "fresh"}
	ctx := metadata.AppendToOutgoingContext(context.Background(), common.AccessTokenHeaderName, "stale")

	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		md, _ := metadata.FromOutgoingContext(ctx)
		require.Equal(t, []string{"fresh"}, md.Get(common.AccessTokenHeaderName))
		return nil
	}
	require.NoError(t, c.accessTokenInterceptor(ctx, "/svc/Method", nil, nil, nil, invoker))
}

func TestInterceptor_NoTokenNoHeader(t *testing.T) {
	c := &GRPCClient{}
	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		md, _ := metadata.FromOutgoingContext(ctx)
		require.Empty(t, md.Get(common.AccessTokenHeaderName))
		return status.Error(codes.Internal, "boom")
	}
	err := c.accessTokenInterceptor(context.Background(), "/svc/Method", nil, nil, nil, invoker)
	require.Error(t, err)
}

/*************
 * mapError tests
 *************/

func TestMapError(t *testing.T) {
	c := &GRPCClient{}

	require.ErrorIs(t, c.mapError(status.Error(codes.Unauthenticated, "x")), ErrUnauthorized)
	require.ErrorIs(t, c.mapError(status.Error(codes.PermissionDenied, "x")), ErrUnauthorized)
	require.ErrorIs(t, c.mapError(status.Error(codes.Unavailable, "x")), ErrUnavailable)
	require.ErrorIs(t, c.mapError(status.Error(codes.DeadlineExceeded, "x")), ErrUnavailable)
	require.ErrorIs(t, c.mapError(status.Error(codes.Internal, "x")), ErrUnavailable)
	require.ErrorIs(t, c.mapError(status.Error(codes.FailedPrecondition, "x")), ErrSchemaMismatch)
	require.NoError(t, c.mapError(nil))

	e := errors.New("plain")
	require.ErrorContains(t, c.mapError(e), "rpc error:")
	require.ErrorContains(t, c.mapError(status.Error(codes.InvalidArgument, "bad")), "rpc error:")
}

func TestIsRetryable(t *testing.T) {
	c := &GRPCClient{}
	assert.True(t, IsRetryable(c.mapError(status.Error(codes.Unavailable, "x"))))
	assert.False(t, IsRetryable(c.mapError(status.Error(codes.Unauthenticated, "x"))))
	assert.False(t, IsRetryable(errors.New("other")))
}

/*************
 * Ping tests
 *************/

func TestPing_OK(t *testing.T) {
	f := &fakeWire{pingResp: &pb.PingResponse{Status: "OK"}}
	c := &GRPCClient{client: f, timeouts: Timeouts{Ping: time.Second}}
	require.NoError(t, c.Ping(context.Background()))
	require.Greater(t, f.deadlines[0], time.Duration(0))
}

func TestPing_NotOK_ReturnsUnavailable(t *testing.T) {
	f := &fakeWire{pingResp: &pb.PingResponse{Status: "NOT_OK"}}
	c := &GRPCClient{client: f}
	require.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

func TestPing_MapsRPCError(t *testing.T) {
	f := &fakeWire{pingErr: status.Error(codes.Unavailable, "down")}
	c := &GRPCClient{client: f}
	require.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

/*************
 * Push / Pull tests
 *************/

func TestPush_ConvertsBatchAndResult(t *testing.T) {
	f := &fakeWire{pushResp: &pb.PushResponse{
		Accepted:        []*pb.RecordRef{{Collection: "entries", Id: "e1"}, nil, {Collection: "entries", Id: "gone"}},
		ServerTimestamp: 777,
	}}
	c := &GRPCClient{client: f, timeouts: Timeouts{Push: 5 * time.Second, Pull: time.Second}}

	batch := models.NewPushBatch()
	batch.Changesets["entries"] = &models.Changeset{
		Created: []*models.Record{{ID: "e1", Collection: "entries", Data: []byte("draft"), UpdatedAt: 100, Dirty: true}},
		Deleted: []string{"gone"},
	}
	batch.Versions[models.RecordKey{Collection: "entries", ID: "e1"}] = 100
	batch.Versions[models.RecordKey{Collection: "entries", ID: "gone"}] = 90

	res, err := c.Push(context.Background(), batch, models.Watermark{Cursor: 50, SchemaVersion: 2})
	require.NoError(t, err)

	req := f.lastPushReq
	require.NotNil(t, req)
	assert.EqualValues(t, 50, req.Watermark)
	assert.EqualValues(t, 2, req.SchemaVersion)
	cs := req.Changesets["entries"]
	require.Len(t, cs.Created, 1)
	assert.True(t, proto.Equal(&pb.Record{Id: "e1", Data: []byte("draft"), UpdatedAt: 100}, cs.Created[0]))
	require.Len(t, cs.Deleted, 1)
	assert.True(t, proto.Equal(&pb.Tombstone{Id: "gone", UpdatedAt: 90}, cs.Deleted[0]), "tombstone falls back to the batch version")

	assert.EqualValues(t, 777, res.ServerTimestamp)
	assert.Equal(t, []models.RecordKey{{Collection: "entries", ID: "e1"}, {Collection: "entries", ID: "gone"}}, res.Accepted)

	require.Len(t, f.deadlines, 1)
	assert.Greater(t, f.deadlines[0], time.Second, "push uses its own timeout")
}

func TestPush_MapsError(t *testing.T) {
	f := &fakeWire{pushErr: status.Error(codes.Unauthenticated, "token expired")}
	c := &GRPCClient{client: f}

	_, err := c.Push(context.Background(), models.NewPushBatch(), models.Watermark{})
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestPull_ConvertsResponse(t *testing.T) {
	f := &fakeWire{pullResp: &pb.PullResponse{
		Changes: map[string]*pb.Changeset{
			"entries": {
				Created: []*pb.Record{{Id: "a", Data: []byte("x"), UpdatedAt: 10}},
				Updated: []*pb.Record{{Id: "b", UpdatedAt: 11}},
				Deleted: []*pb.Tombstone{{Id: "c", UpdatedAt: 12}},
			},
			"empty": nil,
		},
		Watermark: 120,
	}}
	c := &GRPCClient{client: f}

	res, err := c.Pull(context.Background(), models.Watermark{Cursor: 50, SchemaVersion: 2})
	require.NoError(t, err)
	assert.True(t, proto.Equal(&pb.PullRequest{Watermark: 50, SchemaVersion: 2}, f.lastPullReq))

	assert.EqualValues(t, 120, res.Watermark)
	require.NotContains(t, res.Changes, "empty")
	cs := res.Changes["entries"]
	assert.Equal(t, []*models.Record{{ID: "a", Collection: "entries", Data: []byte("x"), UpdatedAt: 10}}, cs.Created)
	assert.Equal(t, "entries", cs.Updated[0].Collection)
	assert.Equal(t, []string{"c"}, cs.Deleted)
	assert.EqualValues(t, 12, cs.DeletedAt["c"])
}

func TestPull_SchemaMismatch(t *testing.T) {
	f := &fakeWire{pullErr: status.Error(codes.FailedPrecondition, "schema")}
	c := &GRPCClient{client: f}

	_, err := c.Pull(context.Background(), models.Watermark{SchemaVersion: 9})
	require.ErrorIs(t, err, ErrSchemaMismatch)
}

/*************
 * bufconn round trip
 *************/

type tokenEchoServer struct {
	pb.UnimplementedSyncServiceServer
	block chan struct{}
}

func (s *tokenEchoServer) Ping(ctx context.Context, _ *pb.PingRequest) (*pb.PingResponse, error) {
	md, _ := metadata.FromIncomingContext(ctx)
	if got := md.Get(common.AccessTokenHeaderName); len(got) != 1 || got[0] != "secret" {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}
	return &pb.PingResponse{Status: "OK"}, nil
}

func (s *tokenEchoServer) Pull(ctx context.Context, _ *pb.PullRequest) (*pb.PullResponse, error) {
	select {
	case <-s.block:
	case <-ctx.Done():
	}
	return nil, status.FromContextError(ctx.Err()).Err()
}

func TestGRPCClient_OverBufconn(t *testing.T) {
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	impl := &tokenEchoServer{block: make(chan struct{})}
	pb.RegisterSyncServiceServer(srv, impl)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)
	t.Cleanup(func() { close(impl.block) })

	c := &GRPCClient{endpointURL: "passthrough:///bufnet", timeouts: Timeouts{Pull: 50 * time.Millisecond}}
	conn, err := grpc.NewClient(c.endpointURL,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor))
	require.NoError(t, err)
	c.conn = conn
	c.client = pb.NewSyncServiceClient(conn)
	t.Cleanup(func() { _ = c.Close() })

	require.ErrorIs(t, c.Ping(context.Background()), ErrUnauthorized)

	c.SetAccessToken("secret")
	require.NoError(t, c.Ping(context.Background()))

	_, err = c.Pull(context.Background(), models.Watermark{})
	require.ErrorIs(t, err, ErrUnavailable, "pull timeout surfaces as a transport failure")
}
