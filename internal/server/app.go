// Package server wires the companion upload server: PostgreSQL with
// migrations, the object store, the upload service and the gRPC
// endpoint. It stops gracefully on SIGINT, SIGTERM or SIGQUIT.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/mediaup/internal/logging"
	"github.com/dmitrijs2005/mediaup/internal/server/config"
	"github.com/dmitrijs2005/mediaup/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/mediaup/internal/server/services"
	"github.com/dmitrijs2005/mediaup/internal/server/storage"

	gs "github.com/dmitrijs2005/mediaup/internal/server/grpc"
)

type App struct {
	config        *config.Config
	logger        logging.Logger
	db            *sql.DB
	uploadService *services.UploadService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSON(os.Stdout, slog.LevelInfo)

	db, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	store, err := storage.New(ctx, c.Storage())
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	return newApp(c, logger, db, rm, store), nil
}

func newApp(c *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager, st storage.ObjectStore) *App {
	return &App{
		config:        c,
		logger:        logger,
		db:            db,
		uploadService: services.NewUploadService(db, rm, c, st, logger),
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the database.
func (app *App) Run(ctx context.Context) error {

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...", "storage_backend", app.config.StorageBackend, "bucket", app.config.S3Bucket)

	s, err := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.uploadService, app.config.SecretKey)
	if err != nil {
		return err
	}

	runErr := s.Run(ctx)
	if runErr != nil {
		app.logger.Error(ctx, "gRPC server stopped", "error", runErr)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
	return runErr
}
