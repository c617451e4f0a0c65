package realtime

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/entrysync/internal/common"
	"github.com/gorilla/websocket"
)

// TokenSource returns the current access token.
type TokenSource func() string

// WebSocketFeed subscribes to the server's change feed over a websocket.
// The principal is identified by the bearer token.
type WebSocketFeed struct {
	url         string
	token       TokenSource
	dialer      *websocket.Dialer
	readTimeout time.Duration
}

// NewWebSocketFeed returns a feed for url (ws:// or wss://). With a non-zero
// readTimeout the connection is considered dead when neither a frame nor a
// ping arrives within it.
func NewWebSocketFeed(url string, token TokenSource, readTimeout time.Duration) *WebSocketFeed {
	return &WebSocketFeed{
		url:         url,
		token:       token,
		dialer:      websocket.DefaultDialer,
		readTimeout: readTimeout,
	}
}

func (f *WebSocketFeed) Subscribe(ctx context.Context, principal string) (Subscription, error) {
	header := http.Header{}
	if tok := f.token(); tok != "" {
		header.Set(common.AuthorizationHeaderName, common.BearerPrefix+tok)
	}

	conn, resp, err := f.dialer.DialContext(ctx, f.url, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial change feed: %s: %w", resp.Status, err)
		}
		return nil, fmt.Errorf("dial change feed: %w", err)
	}

	s := &wsSubscription{
		conn:        conn,
		readTimeout: f.readTimeout,
		events:      make(chan struct{}, 1),
		done:        make(chan struct{}),
	}
	s.extendDeadline()
	conn.SetPingHandler(func(data string) error {
		s.extendDeadline()
		return conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(time.Second))
	})

	go s.readLoop()
	return s, nil
}

type wsSubscription struct {
	conn        *websocket.Conn
	readTimeout time.Duration

	events chan struct{}
	done   chan struct{}
	err    error

	closeOnce sync.Once
}

func (s *wsSubscription) extendDeadline() {
	if s.readTimeout > 0 {
		_ = s.conn.SetReadDeadline(time.Now().Add(s.readTimeout))
	}
}

func (s *wsSubscription) readLoop() {
	defer close(s.done)
	for {
		_, _, err := s.conn.ReadMessage()
		if err != nil {
			s.err = err
			return
		}
		s.extendDeadline()

		// frame content is not inspected, any frame is a change signal
		select {
		case s.events <- struct{}{}:
		default:
			// an undelivered event is pending already; one sync covers both
		}
	}
}

func (s *wsSubscription) Next(ctx context.Context) error {
	select {
	case <-s.events:
		return nil
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.events:
		return nil
	case <-s.done:
		if s.err != nil {
			return fmt.Errorf("%w: %v", ErrClosed, s.err)
		}
		return ErrClosed
	}
}

func (s *wsSubscription) Close() error {
	var err error
	s.closeOnce.Do(func() {
		_ = s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		err = s.conn.Close()
		<-s.done
	})
	return err
}
