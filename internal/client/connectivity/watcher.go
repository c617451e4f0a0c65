// Package connectivity probes the server periodically and reports online
// and offline transitions.
package connectivity

import (
	"context"
	"time"

	"github.com/dmitrijs2005/entrysync/internal/logging"
)

// Pinger probes the server.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Sink receives connectivity changes. The sync orchestrator implements it.
type Sink interface {
	SetOnline(ctx context.Context, online bool)
}

type Watcher struct {
	pinger      Pinger
	sink        Sink
	interval    time.Duration
	pingTimeout time.Duration
	logger      logging.Logger

	known  bool
	online bool
}

func NewWatcher(p Pinger, sink Sink, interval, pingTimeout time.Duration, logger logging.Logger) *Watcher {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Watcher{
		pinger:      p,
		sink:        sink,
		interval:    interval,
		pingTimeout: pingTimeout,
		logger:      logger.With("module", "connectivity"),
	}
}

// Run probes immediately and then on every tick until ctx is done. Only
// changes are reported, plus the first result.
func (w *Watcher) Run(ctx context.Context) {
	w.Check(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Check(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Check probes once and reports the result if it differs from the last one.
func (w *Watcher) Check(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, w.pingTimeout)
	err := w.pinger.Ping(pctx)
	cancel()

	if ctx.Err() != nil {
		return
	}

	online := err == nil
	if w.known && online == w.online {
		return
	}
	w.known = true
	w.online = online

	if online {
		w.logger.Info(ctx, "server reachable")
	} else {
		w.logger.Warn(ctx, "server unreachable", "error", err)
	}
	w.sink.SetOnline(ctx, online)
}
