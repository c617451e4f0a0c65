// Package realtime keeps a change-feed subscription open for the signed-in
// principal and turns every notification and every (re)connect into a sync
// request.
package realtime

import (
	"context"
	"errors"
)

// ErrClosed is returned by Next once the subscription is gone.
var ErrClosed = errors.New("subscription closed")

// Feed opens change-feed subscriptions.
type Feed interface {
	Subscribe(ctx context.Context, principal string) (Subscription, error)
}

// Subscription delivers opaque "something changed" events.
type Subscription interface {
	// Next blocks until the next event. Any error means the subscription is
	// no longer usable.
	Next(ctx context.Context) error
	Close() error
}
