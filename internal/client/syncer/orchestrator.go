// Package syncer coordinates synchronization: it owns the sync state machine,
// serializes sync attempts, and keeps the realtime trigger alive for the
// signed-in principal.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/entrysync/internal/client/changeset"
	"github.com/dmitrijs2005/entrysync/internal/client/client"
	"github.com/dmitrijs2005/entrysync/internal/client/models"
	"github.com/dmitrijs2005/entrysync/internal/client/realtime"
	"github.com/dmitrijs2005/entrysync/internal/client/repositories/records"
	"github.com/dmitrijs2005/entrysync/internal/logging"
	"golang.org/x/sync/singleflight"
)

const flightKey = "sync"

// Orchestrator is the single entry point for synchronization.
type Orchestrator struct {
	store     RecordStore
	marks     WatermarkStore
	transport client.Transport
	feed      realtime.Feed
	logger    logging.Logger
	now       func() time.Time

	flight singleflight.Group
	// syncMu is held for the whole of a sync attempt.
	syncMu sync.Mutex

	mu               sync.Mutex
	status           models.SyncStatus
	firstSyncPending bool
	subs             map[int]chan models.SyncStatus
	nextSubID        int
	stopTrigger      context.CancelFunc
	triggerDone      chan struct{}
	onSignOut        []func(ctx context.Context, principal string)

	// background work started by the orchestrator itself
	bg sync.WaitGroup
}

// New builds an orchestrator. feed may be nil, in which case no realtime
// trigger runs.
func New(store RecordStore, marks WatermarkStore, transport client.Transport, feed realtime.Feed, logger logging.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Orchestrator{
		store:     store,
		marks:     marks,
		transport: transport,
		feed:      feed,
		logger:    logger.With("module", "syncer"),
		now:       time.Now,
		subs:      make(map[int]chan models.SyncStatus),
	}
}

// Status returns a snapshot of the sync status.
func (o *Orchestrator) Status() models.SyncStatus {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// Subscribe returns a channel receiving the status after every change,
// starting with the current one. A slow reader only misses intermediate
// values, never the latest. The returned func unsubscribes.
func (o *Orchestrator) Subscribe() (<-chan models.SyncStatus, func()) {
	ch := make(chan models.SyncStatus, 1)

	o.mu.Lock()
	id := o.nextSubID
	o.nextSubID++
	o.subs[id] = ch
	ch <- o.status
	o.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			o.mu.Lock()
			delete(o.subs, id)
			o.mu.Unlock()
		})
	}
}

// update mutates the status under the lock and publishes the result.
func (o *Orchestrator) update(fn func(s *models.SyncStatus)) models.SyncStatus {
	o.mu.Lock()
	defer o.mu.Unlock()
	fn(&o.status)
	o.publishLocked()
	return o.status
}

func (o *Orchestrator) publishLocked() {
	for _, ch := range o.subs {
		select {
		case <-ch:
		default:
		}
		ch <- o.status
	}
}

// RequestSync runs a sync or joins the one in flight and returns its
// outcome. While offline it makes no network call: it raises
// HasUnsyncedEntries if dirty records exist and returns ErrOffline.
//
// Cancelling ctx stops waiting, not the sync itself.
func (o *Orchestrator) RequestSync(ctx context.Context) error {
	st := o.Status()
	if st.Principal == "" {
		return ErrSignedOut
	}
	if !st.IsOnline {
		return o.markOffline(ctx)
	}

	ch := o.flight.DoChan(flightKey, func() (any, error) {
		return nil, o.run(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (o *Orchestrator) markOffline(ctx context.Context) error {
	dirty, err := o.store.HasDirty(ctx)
	if err != nil {
		return fmt.Errorf("check dirty records: %w", err)
	}
	if dirty {
		o.update(func(s *models.SyncStatus) {
			s.HasUnsyncedEntries = true
			if s.State != models.StateSyncing {
				s.State = models.StateOfflinePendingLocalChanges
			}
		})
	}
	return ErrOffline
}

func (o *Orchestrator) run(ctx context.Context) error {
	o.syncMu.Lock()
	defer o.syncMu.Unlock()

	o.mu.Lock()
	principal := o.status.Principal
	if principal == "" {
		o.mu.Unlock()
		return ErrSignedOut
	}
	o.status.State = models.StateSyncing
	o.publishLocked()
	o.mu.Unlock()

	started := o.now()
	err := o.execute(ctx)
	if err != nil {
		o.update(func(s *models.SyncStatus) { s.State = models.StateSyncFailed })
		o.logger.Warn(ctx, "sync failed", "error", err, "retryable", client.IsRetryable(err))

		if errors.Is(err, client.ErrUnauthorized) {
			o.goBackground(func() {
				if err := o.signOut(context.Background(), principal); err != nil {
					o.logger.Error(ctx, "sign-out after auth failure", "error", err)
				}
			})
		}
		return err
	}

	o.mu.Lock()
	o.status.State = models.StateIdle
	o.status.LastSyncAt = o.now()
	o.status.HasUnsyncedEntries = false
	o.status.SyncAvailable = false
	o.firstSyncPending = false
	o.publishLocked()
	o.mu.Unlock()

	o.logger.Debug(ctx, "sync finished", "took", o.now().Sub(started))
	return nil
}

// execute performs one sync round. Any error leaves the watermark and the
// dirty flags as they were.
func (o *Orchestrator) execute(ctx context.Context) error {
	stored, err := o.marks.Read(ctx)
	if err != nil {
		return fmt.Errorf("read watermark: %w", err)
	}
	live, err := o.store.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	mark := stored
	if stored.SchemaVersion != live {
		// an incremental diff across a schema change is not well defined
		mark = models.Watermark{SchemaVersion: live}
		if !stored.IsZero() {
			o.logger.Info(ctx, "local schema changed, full resync", "stored", stored.SchemaVersion, "live", live)
		}
	}

	var batch *models.PushBatch
	err = o.store.Snapshot(ctx, func(ctx context.Context, tx records.Repository) error {
		var err error
		batch, err = changeset.BuildPushChangeset(ctx, tx)
		return err
	})
	if errors.Is(err, changeset.ErrEmptyChangeset) {
		batch = nil
	} else if err != nil {
		return fmt.Errorf("build push: %w", err)
	}

	var accepted []models.RecordKey
	if batch != nil {
		res, err := o.transport.Push(ctx, batch, mark)
		if err != nil {
			return fmt.Errorf("push: %w", err)
		}
		accepted = res.Accepted
	}

	// the pull uses the pre-push watermark
	pull, err := o.transport.Pull(ctx, mark)
	if errors.Is(err, client.ErrSchemaMismatch) && mark.Cursor != 0 {
		o.logger.Info(ctx, "server requested full resync", "cursor", mark.Cursor)
		mark.Cursor = 0
		pull, err = o.transport.Pull(ctx, mark)
	}
	if err != nil {
		return fmt.Errorf("pull: %w", err)
	}

	var (
		applied          changeset.ApplyResult
		cleared, skipped int
	)
	err = o.store.Atomic(ctx, func(ctx context.Context, tx records.Repository) error {
		var err error
		applied, err = changeset.ApplyPullChangeset(ctx, tx, pull.Changes)
		if err != nil {
			return fmt.Errorf("apply pull: %w", err)
		}
		cleared, skipped, err = changeset.ClearAcknowledged(ctx, tx, batch, accepted)
		if err != nil {
			return fmt.Errorf("clear dirty: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := o.marks.Commit(ctx, models.Watermark{Cursor: pull.Watermark, SchemaVersion: live}); err != nil {
		return fmt.Errorf("commit watermark: %w", err)
	}

	o.logger.Info(ctx, "sync round complete",
		"pushed", batch.Len(),
		"accepted", len(accepted),
		"applied", applied.Applied,
		"kept_local", applied.KeptLocal,
		"removed", applied.Removed,
		"deferred_deletes", applied.DeferredDeletes,
		"settled_deletes", applied.SettledDeletes,
		"cleared", cleared,
		"still_dirty", skipped,
		"watermark", pull.Watermark,
	)
	return nil
}

// SetOnline records a connectivity change. Regaining connectivity starts
// the first sync after sign-in if it has not happened yet; otherwise it
// only raises SyncAvailable when unsynced entries exist.
func (o *Orchestrator) SetOnline(ctx context.Context, online bool) {
	o.mu.Lock()
	regained := online && !o.status.IsOnline
	o.status.IsOnline = online
	startFirst := false
	if regained {
		if o.status.Principal != "" && o.firstSyncPending {
			startFirst = true
		} else if o.status.HasUnsyncedEntries {
			o.status.SyncAvailable = true
		}
		if o.status.State == models.StateOfflinePendingLocalChanges {
			o.status.State = models.StateIdle
		}
	}
	if !online {
		o.status.SyncAvailable = false
	}
	o.publishLocked()
	o.mu.Unlock()

	if regained {
		o.logger.Info(ctx, "connectivity regained")
	} else if !online {
		o.logger.Debug(ctx, "offline")
	}

	if startFirst {
		o.goBackground(func() {
			if err := o.RequestSync(context.Background()); err != nil {
				o.logger.Warn(context.Background(), "first sync after sign-in failed", "error", err)
			}
		})
	}
}

// SignIn makes principal the active one. Sync progress recorded for another
// principal is discarded. The first sync runs right away when online, or
// as soon as connectivity returns.
func (o *Orchestrator) SignIn(ctx context.Context, principal string) error {
	if principal == "" {
		return errors.New("empty principal")
	}

	current := o.Status().Principal
	if current == principal {
		return nil
	}
	if current != "" {
		if err := o.SignOut(ctx); err != nil {
			return err
		}
	}

	reset, err := o.marks.BindPrincipal(ctx, principal)
	if err != nil {
		return fmt.Errorf("bind principal: %w", err)
	}
	if reset {
		o.logger.Info(ctx, "principal changed, sync progress reset")
	}

	o.mu.Lock()
	o.status.Principal = principal
	o.status.State = models.StateIdle
	o.status.SyncAvailable = false
	o.firstSyncPending = true
	online := o.status.IsOnline
	if o.feed != nil {
		tctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		o.stopTrigger = cancel
		o.triggerDone = done
		trigger := realtime.NewTrigger(o.feed, principal, o.RequestSync, o.logger)
		go func() {
			defer close(done)
			if err := trigger.Run(tctx); err != nil {
				o.logger.Error(tctx, "realtime trigger stopped", "error", err)
			}
		}()
	}
	o.publishLocked()
	o.mu.Unlock()

	o.logger.Info(ctx, "signed in", "principal", principal)

	if online {
		o.goBackground(func() {
			if err := o.RequestSync(context.Background()); err != nil {
				o.logger.Warn(context.Background(), "first sync after sign-in failed", "error", err)
			}
		})
	}
	return nil
}

// OnSignOut registers fn to run after every sign-out with the principal that
// was signed out, including the one the orchestrator starts itself when the
// server rejects the credentials.
func (o *Orchestrator) OnSignOut(fn func(ctx context.Context, principal string)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onSignOut = append(o.onSignOut, fn)
}

// SignOut stops the realtime trigger, lets an in-flight sync finish, and
// forgets the sync progress.
func (o *Orchestrator) SignOut(ctx context.Context) error {
	return o.signOut(ctx, "")
}

// signOut signs out only if expect is empty or still the active principal.
func (o *Orchestrator) signOut(ctx context.Context, expect string) error {
	o.mu.Lock()
	principal := o.status.Principal
	if principal == "" || (expect != "" && expect != principal) {
		o.mu.Unlock()
		return nil
	}
	o.status.Principal = ""
	o.firstSyncPending = false
	stop, done := o.stopTrigger, o.triggerDone
	o.stopTrigger, o.triggerDone = nil, nil
	hooks := append(([]func(context.Context, string))(nil), o.onSignOut...)
	o.publishLocked()
	o.mu.Unlock()

	defer func() {
		for _, fn := range hooks {
			fn(ctx, principal)
		}
	}()

	if err := o.teardown(ctx, stop, done); err != nil {
		return err
	}

	if err := o.marks.Reset(ctx); err != nil {
		return fmt.Errorf("reset watermark: %w", err)
	}

	o.update(func(s *models.SyncStatus) {
		s.State = models.StateIdle
		s.SyncAvailable = false
	})
	o.logger.Info(ctx, "signed out", "principal", principal)
	return nil
}

// teardown stops the trigger and waits for an in-flight sync.
func (o *Orchestrator) teardown(ctx context.Context, stop context.CancelFunc, done chan struct{}) error {
	if stop != nil {
		stop()
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	// wait for a running attempt
	o.syncMu.Lock()
	defer o.syncMu.Unlock()
	return nil
}

// Close stops background work without signing out. Sync progress is kept.
func (o *Orchestrator) Close(ctx context.Context) error {
	o.mu.Lock()
	stop, done := o.stopTrigger, o.triggerDone
	o.stopTrigger, o.triggerDone = nil, nil
	o.mu.Unlock()

	if err := o.teardown(ctx, stop, done); err != nil {
		return err
	}

	waited := make(chan struct{})
	go func() {
		o.bg.Wait()
		close(waited)
	}()
	select {
	case <-waited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (o *Orchestrator) goBackground(fn func()) {
	o.bg.Add(1)
	go func() {
		defer o.bg.Done()
		fn()
	}()
}
