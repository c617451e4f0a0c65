package syncer

import (
	"context"
	"sync"
	"testing"

	"github.com/dmitrijs2005/entrysync/internal/client/localdb"
	"github.com/dmitrijs2005/entrysync/internal/client/models"
	"github.com/dmitrijs2005/entrysync/internal/client/realtime"
	"github.com/dmitrijs2005/entrysync/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/entrysync/internal/client/repositories/records"
	"github.com/dmitrijs2005/entrysync/internal/client/watermark"
	"github.com/stretchr/testify/require"
)

type fakeTransport struct {
	mu     sync.Mutex
	pushes []*models.PushBatch
	pulls  []models.Watermark

	// pushFn and pullFn default to "accept everything" and "nothing new".
	pushFn func(ctx context.Context, batch *models.PushBatch) (*models.PushResult, error)
	pullFn func(ctx context.Context, w models.Watermark) (*models.PullResult, error)
}

func acceptAll(batch *models.PushBatch) *models.PushResult {
	res := &models.PushResult{ServerTimestamp: 1}
	for k := range batch.Versions {
		res.Accepted = append(res.Accepted, k)
	}
	return res
}

func (f *fakeTransport) Push(ctx context.Context, batch *models.PushBatch, _ models.Watermark) (*models.PushResult, error) {
	f.mu.Lock()
	f.pushes = append(f.pushes, batch)
	fn := f.pushFn
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, batch)
	}
	return acceptAll(batch), nil
}

func (f *fakeTransport) Pull(ctx context.Context, w models.Watermark) (*models.PullResult, error) {
	f.mu.Lock()
	f.pulls = append(f.pulls, w)
	fn := f.pullFn
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, w)
	}
	return &models.PullResult{Changes: map[string]*models.Changeset{}, Watermark: w.Cursor}, nil
}

func (f *fakeTransport) Ping(context.Context) error { return nil }
func (f *fakeTransport) Close() error               { return nil }

func (f *fakeTransport) counts() (pushes, pulls int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pushes), len(f.pulls)
}

func (f *fakeTransport) pullMarks() []models.Watermark {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Watermark(nil), f.pulls...)
}

type env struct {
	orch      *Orchestrator
	store     *records.Store
	marks     *watermark.Store
	transport *fakeTransport
}

func newEnv(t *testing.T, feed realtime.Feed) *env {
	t.Helper()
	db, err := localdb.InitDatabase(context.Background(), t.TempDir()+"/client.db")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := records.NewStore(db)
	marks := watermark.NewStore(metadata.NewSQLiteRepository(db))
	tr := &fakeTransport{}
	o := New(store, marks, tr, feed, nil)
	t.Cleanup(func() { _ = o.Close(context.Background()) })

	return &env{orch: o, store: store, marks: marks, transport: tr}
}

// signedInOnline puts the orchestrator straight into the signed-in, online
// state without running the first sync.
func (e *env) signedInOnline(t *testing.T, principal string) {
	t.Helper()
	_, err := e.marks.BindPrincipal(context.Background(), principal)
	require.NoError(t, err)
	e.orch.mu.Lock()
	e.orch.status.Principal = principal
	e.orch.status.IsOnline = true
	e.orch.mu.Unlock()
}

func (e *env) put(t *testing.T, r *models.Record) {
	t.Helper()
	require.NoError(t, e.store.Repository().Put(context.Background(), r))
}

func (e *env) get(t *testing.T, collection, id string) *models.Record {
	t.Helper()
	r, err := e.store.Repository().Get(context.Background(), collection, id)
	require.NoError(t, err)
	return r
}

func (e *env) watermark(t *testing.T) models.Watermark {
	t.Helper()
	w, err := e.marks.Read(context.Background())
	require.NoError(t, err)
	return w
}

// fakeFeed counts subscriptions; each one blocks until closed or cancelled.
type fakeFeed struct {
	mu         sync.Mutex
	principals []string
	subs       []*blockingSub
}

func (f *fakeFeed) Subscribe(_ context.Context, principal string) (realtime.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := &blockingSub{closed: make(chan struct{})}
	f.principals = append(f.principals, principal)
	f.subs = append(f.subs, s)
	return s, nil
}

func (f *fakeFeed) snapshot() ([]string, []*blockingSub) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.principals...), append([]*blockingSub(nil), f.subs...)
}

type blockingSub struct {
	once   sync.Once
	closed chan struct{}
}

func (s *blockingSub) Next(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.closed:
		return realtime.ErrClosed
	}
}

func (s *blockingSub) Close() error {
	s.once.Do(func() { close(s.closed) })
	return nil
}

func (s *blockingSub) isClosed() bool {
	select {
	case <-s.closed:
		return true
	default:
		return false
	}
}
