package realtime

import (
	"context"
	"time"

	"github.com/dmitrijs2005/entrysync/internal/logging"
	"github.com/sethvargo/go-retry"
)

// Backoff defaults.
const (
	DefaultBaseDelay   = 500 * time.Millisecond
	DefaultMaxDelay    = 30 * time.Second
	DefaultStableAfter = time.Minute
	jitterPercent      = 20
)

// SyncFunc requests a sync. Errors are logged and otherwise ignored.
type SyncFunc func(ctx context.Context) error

// Trigger owns one principal's subscription.
type Trigger struct {
	feed        Feed
	principal   string
	requestSync SyncFunc
	logger      logging.Logger

	baseDelay   time.Duration
	maxDelay    time.Duration
	stableAfter time.Duration
}

func NewTrigger(feed Feed, principal string, requestSync SyncFunc, logger logging.Logger) *Trigger {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Trigger{
		feed:        feed,
		principal:   principal,
		requestSync: requestSync,
		logger:      logger.With("module", "realtime"),
		baseDelay:   DefaultBaseDelay,
		maxDelay:    DefaultMaxDelay,
		stableAfter: DefaultStableAfter,
	}
}

// WithBackoff overrides the reconnect delays. A connection that stayed up
// for stableAfter resets the delay to base.
func (t *Trigger) WithBackoff(base, max, stableAfter time.Duration) *Trigger {
	t.baseDelay = base
	t.maxDelay = max
	t.stableAfter = stableAfter
	return t
}

func (t *Trigger) newBackoff() retry.Backoff {
	b := retry.NewExponential(t.baseDelay)
	b = retry.WithJitterPercent(jitterPercent, b)
	return retry.WithCappedDuration(t.maxDelay, b)
}

// Run blocks until ctx is cancelled. Every successful connect, reconnects
// included, requests one sync since events may have been missed while
// disconnected.
func (t *Trigger) Run(ctx context.Context) error {
	b := t.newBackoff()

	for {
		sub, err := retry.DoValue(ctx, b, func(ctx context.Context) (Subscription, error) {
			s, err := t.feed.Subscribe(ctx, t.principal)
			if err != nil {
				t.logger.Warn(ctx, "change feed subscribe failed", "error", err)
				return nil, retry.RetryableError(err)
			}
			return s, nil
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		connectedAt := time.Now()
		t.logger.Info(ctx, "change feed connected")
		t.sync(ctx, "connect")

		err = t.consume(ctx, sub)
		_ = sub.Close()
		if ctx.Err() != nil {
			return nil
		}
		t.logger.Warn(ctx, "change feed disconnected", "error", err)

		if time.Since(connectedAt) >= t.stableAfter {
			b = t.newBackoff()
		}
		wait, _ := b.Next()
		if !sleep(ctx, wait) {
			return nil
		}
	}
}

func (t *Trigger) consume(ctx context.Context, sub Subscription) error {
	for {
		if err := sub.Next(ctx); err != nil {
			return err
		}
		t.sync(ctx, "notification")
	}
}

func (t *Trigger) sync(ctx context.Context, reason string) {
	if err := t.requestSync(ctx); err != nil {
		t.logger.Debug(ctx, "sync request failed", "reason", reason, "error", err)
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
