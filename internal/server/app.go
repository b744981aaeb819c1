// Package server initializes and runs the auth service: it loads the
// configuration snapshot, connects to the store, applies migrations, and
// starts the REST endpoint with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/edusys/eduauth/internal/logging"
	"github.com/edusys/eduauth/internal/server/config"
	"github.com/edusys/eduauth/internal/server/httpapi"
	"github.com/edusys/eduauth/internal/server/repositories/repomanager"
	"github.com/edusys/eduauth/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, cfg.Debug)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	// the database container may come up after us
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	backoff := retry.WithMaxDuration(30*time.Second, retry.NewFibonacci(500*time.Millisecond))
	if err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	us := services.NewUserService(db, rm, cfg)
	rs := services.NewRoleService(db, rm, cfg)
	sec := httpapi.NewSecurity(cfg, us)
	srv := httpapi.NewServer(cfg.EndpointAddr, logger, sec, us, rs)

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "debug", app.config.Debug)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
