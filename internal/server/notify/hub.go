// Package notify fans out "records changed" signals to the realtime change
// feed connections of a user.
package notify

import (
	"sync"

	"github.com/dmitrijs2005/entrysync/internal/server/metrics"
)

// Hub keeps per-user subscriptions. Each subscription holds at most one
// pending cursor; a newer notification replaces an unread one.
type Hub struct {
	mu      sync.Mutex
	streams map[string]map[uint64]chan int64
	nextID  uint64
	closed  bool
	metrics *metrics.Metrics
}

func NewHub(m *metrics.Metrics) *Hub {
	return &Hub{
		streams: make(map[string]map[uint64]chan int64),
		metrics: m,
	}
}

// Subscribe registers a subscription for userID. The channel is closed by
// cancel or by Close.
func (h *Hub) Subscribe(userID string) (<-chan int64, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan int64, 1)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	h.nextID++
	id := h.nextID
	if h.streams[userID] == nil {
		h.streams[userID] = make(map[uint64]chan int64)
	}
	h.streams[userID][id] = ch
	h.metrics.SubscriberAdded()

	var once sync.Once
	return ch, func() {
		once.Do(func() { h.unsubscribe(userID, id) })
	}
}

func (h *Hub) unsubscribe(userID string, id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs := h.streams[userID]
	ch, ok := subs[id]
	if !ok {
		return
	}
	delete(subs, id)
	if len(subs) == 0 {
		delete(h.streams, userID)
	}
	close(ch)
	h.metrics.SubscriberRemoved()
}

// Notify signals every subscription of userID without blocking.
func (h *Hub) Notify(userID string, cursor int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.streams[userID] {
		select {
		case ch <- cursor:
		default:
			// replace the unread value
			select {
			case <-ch:
			default:
			}
			ch <- cursor
		}
	}
}

// Subscribers returns the number of open subscriptions of userID.
func (h *Hub) Subscribers(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.streams[userID])
}

// Close ends every subscription; later subscriptions are closed at once.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for userID, subs := range h.streams {
		for _, ch := range subs {
			close(ch)
			h.metrics.SubscriberRemoved()
		}
		delete(h.streams, userID)
	}
}
