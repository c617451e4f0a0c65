package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/entrysync/internal/client/client"
	"github.com/dmitrijs2005/entrysync/internal/client/config"
	"github.com/dmitrijs2005/entrysync/internal/client/connectivity"
	"github.com/dmitrijs2005/entrysync/internal/client/localdb"
	"github.com/dmitrijs2005/entrysync/internal/client/models"
	"github.com/dmitrijs2005/entrysync/internal/client/realtime"
	"github.com/dmitrijs2005/entrysync/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/entrysync/internal/client/repositories/records"
	"github.com/dmitrijs2005/entrysync/internal/client/services"
	"github.com/dmitrijs2005/entrysync/internal/client/syncer"
	"github.com/dmitrijs2005/entrysync/internal/client/watermark"
	"github.com/dmitrijs2005/entrysync/internal/logging"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// SyncEngine is the orchestrator surface used by the REPL.
type SyncEngine interface {
	RequestSync(ctx context.Context) error
	Status() models.SyncStatus
	Subscribe() (<-chan models.SyncStatus, func())
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	records services.RecordService
	session services.SessionService
	sync    SyncEngine
	out     io.Writer

	// set by NewApp only
	db        *sql.DB
	transport *client.GRPCClient
	engine    *syncer.Orchestrator
	watcher   *connectivity.Watcher
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := localdb.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	transport, err := client.NewGRPCClient(c.ServerEndpointAddr, client.Timeouts{
		Push: c.PushTimeout,
		Pull: c.PullTimeout,
		Ping: c.PingTimeout,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	var feed realtime.Feed
	if c.RealtimeURL != "" {
		feed = realtime.NewWebSocketFeed(c.RealtimeURL, transport.AccessToken, c.RealtimeReadTimeout)
	}

	store := records.NewStore(db)
	marks := watermark.NewStore(metadata.NewSQLiteRepository(db))
	engine := syncer.New(store, marks, transport, feed, logger)
	session := services.NewSessionService(db, transport, engine, logger)
	engine.OnSignOut(session.SessionEnded)

	return &App{
		config:    c,
		logger:    logger.With("module", "cli"),
		records:   services.NewRecordService(store),
		session:   session,
		sync:      engine,
		out:       os.Stdout,
		db:        db,
		transport: transport,
		engine:    engine,
		watcher:   connectivity.NewWatcher(transport, engine, c.OnlineCheckInterval, c.PingTimeout, logger),
	}, nil
}

// Run restores or starts the session, runs background work and the REPL
// until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.startSession(ctx); err != nil {
		a.logger.Error(ctx, "session not started", "error", err)
		fmt.Fprintln(a.out, "Not signed in:", err)
	}

	notices, unsubNotices := a.sync.Subscribe()
	defer unsubNotices()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.watcher.Run(gctx)
		return nil
	})
	g.Go(func() error {
		a.announce(gctx, notices)
		return nil
	})

	fmt.Fprintln(a.out, "entrysync client (type 'help' for commands)")
	runREPL(ctx, a, a.prompt, os.Stdin, term.IsTerminal(int(os.Stdin.Fd())))

	cancel()
	err := g.Wait()
	return errors.Join(err, a.Close(context.Background()))
}

func (a *App) startSession(ctx context.Context) error {
	if a.config.AccessToken != "" {
		_, err := a.session.SignIn(ctx, a.config.AccessToken)
		return err
	}
	_, err := a.session.Restore(ctx)
	return err
}

// Close stops background sync work and releases the connection and the
// database. The session stays stored for the next start.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.engine != nil {
		errs = append(errs, a.engine.Close(ctx))
	}
	if a.transport != nil {
		errs = append(errs, a.transport.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}

// announce tells the user once each time a sync becomes available.
func (a *App) announce(ctx context.Context, statuses <-chan models.SyncStatus) {
	var available bool
	for {
		select {
		case <-ctx.Done():
			return
		case st, ok := <-statuses:
			if !ok {
				return
			}
			if st.SyncAvailable && !available {
				fmt.Fprintln(a.out, "Back online with unsynced changes. Type 'sync' to synchronize.")
			}
			available = st.SyncAvailable
		}
	}
}
