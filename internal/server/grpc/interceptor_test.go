package grpc

import (
	"context"
	"testing"
	"time"

	pb "github.com/dmitrijs2005/entrysync/api/entrysync/v1"
	"github.com/dmitrijs2005/entrysync/internal/auth"
	"github.com/dmitrijs2005/entrysync/internal/common"
	"github.com/dmitrijs2005/entrysync/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const testSecret = "secret"

func newTestServer(svc SyncService) *GRPCServer {
	return NewGRPCServer("", logging.Nop{}, svc, nil, testSecret)
}

func ctxWithToken(t *testing.T, userID string) context.Context {
	t.Helper()
	tok, err := auth.GenerateToken(userID, []byte(testSecret), time.Hour)
	require.NoError(t, err)
	md := metadata.New(map[string]string{common.AccessTokenHeaderName: tok})
	return metadata.NewIncomingContext(context.Background(), md)
}

func TestInterceptor_PingNeedsNoToken(t *testing.T) {
	s := newTestServer(nil)
	info := &grpc.UnaryServerInfo{FullMethod: pb.SyncService_Ping_FullMethodName}

	called := false
	resp, err := s.accessTokenInterceptor(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		called = true
		return "ok", nil
	})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "ok", resp)
}

func TestInterceptor_MissingToken(t *testing.T) {
	s := newTestServer(nil)
	info := &grpc.UnaryServerInfo{FullMethod: pb.SyncService_Push_FullMethodName}

	_, err := s.accessTokenInterceptor(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler should not be called when token missing")
		return nil, nil
	})
	require.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, "missing token", status.Convert(err).Message())
}

func TestInterceptor_InvalidToken(t *testing.T) {
	s := newTestServer(nil)
	info := &grpc.UnaryServerInfo{FullMethod: pb.SyncService_Pull_FullMethodName}
	md := metadata.New(map[string]string{common.AccessTokenHeaderName: "not-a-valid-jwt"})
	ctx := metadata.NewIncomingContext(context.Background(), md)

	_, err := s.accessTokenInterceptor(ctx, nil, info, func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler should not be called for an invalid token")
		return nil, nil
	})
	require.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestInterceptor_ValidTokenPutsUserIntoContext(t *testing.T) {
	s := newTestServer(nil)
	info := &grpc.UnaryServerInfo{FullMethod: pb.SyncService_Pull_FullMethodName}

	var got string
	_, err := s.accessTokenInterceptor(ctxWithToken(t, "alice"), nil, info, func(ctx context.Context, req any) (any, error) {
		got, _ = UserIDFromContext(ctx)
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", got)
}

func TestUserIDFromContext_Empty(t *testing.T) {
	_, ok := UserIDFromContext(context.Background())
	assert.False(t, ok)
}
