package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	consolehttp "github.com/foriam/console/internal/console/http"
	"github.com/foriam/console/internal/console/obs"
	"github.com/foriam/console/internal/console/store"
	"github.com/foriam/console/internal/console/store/drivers/sqlite"
	"github.com/foriam/console/pkg/iamsdk"
	"github.com/foriam/console/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// Application is the web console with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	storage *sqlite.Store
	metrics *obs.Metrics
	client  *iamsdk.Client

	server *http.Server
	router *consolehttp.Router
}

// New creates an Application. Storage is opened and migrated before the
// API client is built so the first request already sees a persisted session.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "iam-console",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
			Output:  cfg.LogOutput,
		}),
		metrics: obs.NewMetrics(),
	}

	if err := app.initStorage(); err != nil {
		return nil, err
	}

	app.initClient()
	app.initHTTP()

	return app, nil
}

// Handler returns the console's root handler.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Client returns the API client the console uses.
func (app *Application) Client() *iamsdk.Client {
	return app.client
}

// Run serves until SIGINT/SIGTERM or a server error.
func (app *Application) Run() error {
	app.logger.Info("iam console starting", "port", app.cfg.Port, "api_url", app.cfg.APIURL, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			_ = app.closeStorage()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests within the grace period and closes storage.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down iam console...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.closeStorage(); err != nil {
		return err
	}

	app.logger.Info("iam console stopped")
	return nil
}

func (app *Application) closeStorage() error {
	if err := app.storage.Close(); err != nil {
		app.logger.Error("error closing storage", "error", err)
		return err
	}
	return nil
}

func (app *Application) initStorage() error {
	st, err := OpenStorage(app.cfg.StorageFile)
	if err != nil {
		return err
	}
	app.storage = st

	app.logger.Info("storage migrations applied successfully", "file", app.cfg.StorageFile)
	return nil
}

func (app *Application) initClient() {
	app.client = iamsdk.New(iamsdk.Config{
		BaseURL:   app.cfg.APIURL,
		Tokens:    store.NewSessionSlot(app.storage),
		Navigator: consolehttp.Navigator{},
		Transport: app.metrics.InstrumentTransport(http.DefaultTransport),
		Logger:    app.logger,
	})
}

func (app *Application) initHTTP() {
	handler := consolehttp.NewHandler(app.client, app.logger, app.cfg.Production())

	router := consolehttp.NewRouter(handler, app.metrics, app.storage, BuildVersion, app.logger)
	router.ApplyRoutes()
	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

// OpenStorage opens the SQLite file at path and brings its schema up to date.
func OpenStorage(path string) (*sqlite.Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	st, err := sqlite.NewStore(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	if err := st.ApplyMigrations(); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to apply storage migrations: %w", err)
	}
	return st, nil
}
