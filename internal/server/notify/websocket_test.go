package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	pb "github.com/dmitrijs2005/entrysync/api/entrysync/v1"
	"github.com/dmitrijs2005/entrysync/internal/auth"
	"github.com/dmitrijs2005/entrysync/internal/client/realtime"
	"github.com/dmitrijs2005/entrysync/internal/common"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protojson"
)

const secret = "test-secret"

func startFeed(t *testing.T, hub *Hub, ping time.Duration) string {
	t.Helper()
	srv := httptest.NewServer(NewHandler(hub, secret, ping, nil))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func bearer(t *testing.T, user string) http.Header {
	t.Helper()
	tok, err := auth.GenerateToken(user, []byte(secret), time.Hour)
	require.NoError(t, err)
	h := http.Header{}
	h.Set(common.AuthorizationHeaderName, common.BearerPrefix+tok)
	return h
}

func TestHandler_RejectsMissingOrBadToken(t *testing.T) {
	url := startFeed(t, NewHub(nil), time.Second)

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	h := http.Header{}
	h.Set(common.AuthorizationHeaderName, common.BearerPrefix+"garbage")
	_, resp, err = websocket.DefaultDialer.Dial(url, h)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHandler_DeliversNotifications(t *testing.T) {
	hub := NewHub(nil)
	url := startFeed(t, hub, time.Second)

	conn, _, err := websocket.DefaultDialer.Dial(url, bearer(t, "alice"))
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Subscribers("alice") == 1 }, time.Second, 5*time.Millisecond)
	hub.Notify("bob", 1)
	hub.Notify("alice", 42)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, frame, err := conn.ReadMessage()
	require.NoError(t, err)
	n := &pb.Notification{}
	require.NoError(t, protojson.Unmarshal(frame, n))
	assert.EqualValues(t, 42, n.GetCursor())
}

func TestHandler_UnsubscribesWhenClientLeaves(t *testing.T) {
	hub := NewHub(nil)
	url := startFeed(t, hub, time.Second)

	conn, _, err := websocket.DefaultDialer.Dial(url, bearer(t, "alice"))
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Subscribers("alice") == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.Subscribers("alice") == 0 }, 2*time.Second, 5*time.Millisecond)
}

func TestHandler_HubCloseEndsFeed(t *testing.T) {
	hub := NewHub(nil)
	url := startFeed(t, hub, time.Second)

	conn, _, err := websocket.DefaultDialer.Dial(url, bearer(t, "alice"))
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.Subscribers("alice") == 1 }, time.Second, 5*time.Millisecond)

	hub.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
}

func TestHandler_WorksWithClientFeed(t *testing.T) {
	hub := NewHub(nil)
	url := startFeed(t, hub, 50*time.Millisecond)

	tok, err := auth.GenerateToken("alice", []byte(secret), time.Hour)
	require.NoError(t, err)
	feed := realtime.NewWebSocketFeed(url, func() string { return tok }, 200*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	sub, err := feed.Subscribe(ctx, "alice")
	require.NoError(t, err)
	defer sub.Close()

	require.Eventually(t, func() bool { return hub.Subscribers("alice") == 1 }, time.Second, 5*time.Millisecond)

	// pings keep the connection alive past the client read timeout
	time.Sleep(400 * time.Millisecond)
	hub.Notify("alice", 7)
	require.NoError(t, sub.Next(ctx))
}
