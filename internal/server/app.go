// Package server initializes and runs the bankaccounts server.
// It opens and migrates the store, loads the signing key, seeds the initial
// principal, and runs the HTTP API and the gRPC endpoint until shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/bankaccounts/internal/logging"
	"github.com/dmitrijs2005/bankaccounts/internal/server/auth"
	"github.com/dmitrijs2005/bankaccounts/internal/server/config"
	"github.com/dmitrijs2005/bankaccounts/internal/server/httpapi"
	"github.com/dmitrijs2005/bankaccounts/internal/server/keys"
	"github.com/dmitrijs2005/bankaccounts/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bankaccounts/internal/server/seed"
	"github.com/dmitrijs2005/bankaccounts/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	gs "github.com/dmitrijs2005/bankaccounts/internal/server/grpc"
)

// logOutput is where the JSON log lines go.
var logOutput io.Writer = os.Stdout

const shutdownTimeout = 5 * time.Second

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	api        *httpapi.API
	grpcServer *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(logOutput, c.LogLevel)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	secret, err := keys.Load(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("signing key error: %w", err)
	}

	tokens, err := auth.NewTokenService(secret, c.TokenLifetime, auth.WithIssuer(c.Issuer))
	if err != nil {
		return nil, fmt.Errorf("token service error: %w", err)
	}

	hasher, err := auth.NewPasswordHasher(c.PasswordHasher)
	if err != nil {
		return nil, err
	}

	rm, err := repomanager.NewRepositoryManager(c.DatabaseDriver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(repomanager.SQLDriverName(c.DatabaseDriver), c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if c.DatabaseDriver == config.DriverSQLite {
		// modernc sqlite serializes writers; one connection avoids SQLITE_BUSY
		db.SetMaxOpenConns(1)
	}

	repomanager.SetLogger(logger.With("module", "migrations"))
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	us, err := services.NewUserService(db, rm, hasher, tokens)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	as := services.NewAccountService(db, rm)

	if err := seed.Principal(ctx, us, c.SeedIdentifier, c.SeedSecret, logger.With("module", "seed")); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed error: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	api := httpapi.New(us, as, auth.NewGate(tokens, c.PublicPaths), logger, httpapi.WithRegistry(reg))
	grpcServer := gs.NewGRPCServer(c.GRPCAddr, auth.NewGate(tokens, gs.PublicMethods()), logger)

	return &App{
		config:     c,
		logger:     logger,
		db:         db,
		api:        api,
		grpcServer: grpcServer,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	srv := &http.Server{
		Addr:              app.config.HTTPAddr,
		Handler:           app.api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "Starting HTTP server", "address", app.config.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	case <-ctx.Done():
		app.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "HTTP shutdown error", "error", err)
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, err.Error())
		}
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.grpcServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves HTTP and gRPC until ctx is cancelled, a signal arrives, or either
// server fails. The database is closed before Run returns.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
