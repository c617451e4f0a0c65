package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/entrysync/internal/common"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFeedServer(t *testing.T, frames []string, keepOpen bool) (*httptest.Server, chan string) {
	t.Helper()
	upgrader := websocket.Upgrader{}
	auth := make(chan string, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth <- r.Header.Get(common.AuthorizationHeaderName)
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for _, f := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(f)); err != nil {
				return
			}
		}
		if keepOpen {
			// wait for the client's close frame
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv, auth
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + common.ChangesPath
}

func TestWebSocketFeed_DeliversEventsThenCloses(t *testing.T) {
	srv, auth := newFeedServer(t, []string{`{"cursor":"1"}`, `not json`}, false)
	feed := NewWebSocketFeed(wsURL(srv), func() string { return "tok" }, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s, err := feed.Subscribe(ctx, "alice")
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, "Bearer tok", <-auth)

	// both frames may be coalesced into one pending event
	require.NoError(t, s.Next(ctx))
	for {
		err = s.Next(ctx)
		if err != nil {
			break
		}
	}
	assert.ErrorIs(t, err, ErrClosed)
}

func TestWebSocketFeed_NextHonoursContext(t *testing.T) {
	srv, _ := newFeedServer(t, nil, true)
	feed := NewWebSocketFeed(wsURL(srv), func() string { return "" }, 0)

	s, err := feed.Subscribe(context.Background(), "alice")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, s.Next(ctx), context.DeadlineExceeded)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close(), "close is idempotent")
}

func TestWebSocketFeed_RejectedHandshake(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	feed := NewWebSocketFeed(wsURL(srv), func() string { return "bad" }, 0)
	_, err := feed.Subscribe(context.Background(), "alice")
	require.ErrorContains(t, err, "401")
}

func TestWebSocketFeed_ReadTimeout(t *testing.T) {
	srv, _ := newFeedServer(t, nil, true)
	feed := NewWebSocketFeed(wsURL(srv), func() string { return "" }, 30*time.Millisecond)

	s, err := feed.Subscribe(context.Background(), "alice")
	require.NoError(t, err)
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.ErrorIs(t, s.Next(ctx), ErrClosed)
}
