// Package server initializes and runs the catalog server.
// It opens the record store, applies migrations, connects the object store,
// handles graceful shutdown and starts the REST API.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/scpcatalog/internal/dbx"
	"github.com/dmitrijs2005/scpcatalog/internal/logging"
	"github.com/dmitrijs2005/scpcatalog/internal/server/config"
	"github.com/dmitrijs2005/scpcatalog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/scpcatalog/internal/server/rest"
	"github.com/dmitrijs2005/scpcatalog/internal/server/services"
	"github.com/dmitrijs2005/scpcatalog/internal/server/storage"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *sql.DB
	entryService *services.EntryService
	imageService *services.ImageService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewLogger(c.LogFormat, c.LogLevel, os.Stdout)

	db, err := dbx.Open(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := repomanager.New(c.DatabaseDriver)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	store, err := storage.NewS3Store(ctx, storage.Options{
		Region:       c.S3Region,
		AccessKey:    c.S3RootUser,
		SecretKey:    c.S3RootPassword,
		BaseEndpoint: c.S3BaseEndpoint,
		Bucket:       c.S3Bucket,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("object store init error: %w", err)
	}

	if err := store.EnsureBucket(ctx); err != nil {
		logger.Warn(ctx, "bucket check failed, uploads may not work", "bucket", store.Bucket(), "error", err)
	}

	es := services.NewEntryService(db, rm, store, logger)
	is := services.NewImageService(store, logger, c.MaxImageSize, c.UploadURLValidityDuration)

	return &App{config: c, logger: logger, db: db, entryService: es, imageService: is}, nil
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

	handler := rest.NewRouter(rest.RouterConfig{
		Handlers:    rest.NewHandlers(app.entryService, app.imageService, app.logger),
		Health:      rest.NewHealthHandler(app.db),
		Metrics:     rest.NewMetrics(),
		Logger:      app.logger,
		SecretKey:   app.config.SecretKey,
		CORSOrigins: app.config.CORSAllowedOrigins,
	})

	s := rest.NewServer(app.config.HTTPAddr, handler, app.logger, app.config.ShutdownTimeout)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "addr", app.config.HTTPAddr, "driver", app.config.DatabaseDriver)
	if app.config.SecretKey == "" {
		app.logger.Warn(ctx, "secret_key is empty, write routes are unauthenticated")
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
