// Package server wires the reference sync server: Postgres storage, the
// gRPC sync service, the realtime change feed and the metrics endpoint.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/entrysync/internal/common"
	"github.com/dmitrijs2005/entrysync/internal/logging"
	"github.com/dmitrijs2005/entrysync/internal/server/config"
	"github.com/dmitrijs2005/entrysync/internal/server/metrics"
	"github.com/dmitrijs2005/entrysync/internal/server/notify"
	"github.com/dmitrijs2005/entrysync/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/entrysync/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/entrysync/internal/server/grpc"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	hub        *notify.Hub
	grpcServer *gs.GRPCServer
	httpServer *http.Server
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {

	rm := repomanager.NewPostgresRepositoryManager()
	db, err := repomanager.Open(ctx, c.DatabaseDSN, rm)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	hub := notify.NewHub(m)
	syncService := services.NewSyncService(db, rm, c, hub, m, logger)

	mux := http.NewServeMux()
	mux.Handle(common.ChangesPath, notify.NewHandler(hub, c.SecretKey, c.PingInterval, logger))
	mux.Handle("/metrics", metrics.Handler(reg))

	return &App{
		config:     c,
		logger:     logger.With("module", "app"),
		db:         db,
		hub:        hub,
		grpcServer: gs.NewGRPCServer(c.EndpointAddrGRPC, logger, syncService, m, c.SecretKey),
		httpServer: &http.Server{Addr: c.EndpointAddrHTTP, Handler: mux, ReadHeaderTimeout: 10 * time.Second},
	}, nil
}

func (app *App) runHTTPServer(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping HTTP server...")
		// open websockets are hijacked and not waited for; closing the hub ends them
		app.hub.Close()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = app.httpServer.Shutdown(sctx)
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", app.httpServer.Addr)
	if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Run serves until ctx is cancelled or one of the servers fails.
func (app *App) Run(ctx context.Context) error {

	app.logger.Info(ctx, "Starting app...")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.grpcServer.Run(gctx) })
	g.Go(func() error { return app.runHTTPServer(gctx) })

	err := g.Wait()

	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error(ctx, "closing database", "error", cerr)
	}
	app.logger.Info(ctx, "App stopped")

	return err
}
