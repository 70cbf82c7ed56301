package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/accountvault/internal/vault/http"
	"github.com/aussiebroadwan/accountvault/internal/vault/service"
	"github.com/aussiebroadwan/accountvault/internal/vault/store"
	"github.com/aussiebroadwan/accountvault/internal/vault/store/drivers/sqlite"
	"github.com/aussiebroadwan/accountvault/pkg/cryptox"
	"github.com/aussiebroadwan/accountvault/pkg/jwtx"
	"github.com/aussiebroadwan/accountvault/pkg/otelx"
	"github.com/aussiebroadwan/accountvault/pkg/slogx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"

	serviceName = "accountvault"
)

// Application encapsulates the vault service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db           store.Store
	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	otelShutdown otelx.ShutdownFunc
	keyRefresher *service.KeyRefresher
	adminAuth    *service.AdminAuthenticator
	sealer       *cryptox.Sealer

	// Services
	allocator *service.Allocator
	inventory *service.Inventory
	catalog   *service.Catalog

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: serviceName,
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	ctx := context.Background()

	shutdown, err := otelx.Setup(ctx, otelx.Config{
		ServiceName:    serviceName,
		ServiceVersion: BuildVersion,
		Endpoint:       cfg.OTelEndpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	app.otelShutdown = shutdown
	if cfg.OTelEndpoint != "" {
		app.logger.Info("tracing enabled", "endpoint", cfg.OTelEndpoint)
	}

	if app.sealer, err = InitSealer(cfg, app.logger); err != nil {
		return nil, fmt.Errorf("failed to initialize sealer: %w", err)
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.keys, app.verifier, app.keyRefresher, err = InitVerifier(ctx, cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize token verification: %w", err)
	}

	if app.adminAuth, err = InitAdminAuth(cfg, app.logger); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler returns the fully wired HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.server.Handler
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.keyRefresher.Start()

	app.logger.Info("vault service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down vault service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.keyRefresher.Stop()

	if err := app.otelShutdown(ctx); err != nil {
		app.logger.Error("error flushing traces", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("vault service stopped")
	return nil
}

// initDatabase opens the store and applies migrations
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(app.cfg.DatabaseFile, app.sealer)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.allocator = &service.Allocator{
		Store:      app.db,
		DailyLimit: app.cfg.DailyLimit,
	}
	app.inventory = &service.Inventory{Store: app.db}
	app.catalog = &service.Catalog{
		Store:      app.db,
		DailyLimit: app.cfg.DailyLimit,
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	// Rate limiters are built when routes are registered.
	app.cfg.ApplyRateLimits()

	router := httpapi.NewRouter(
		app.keys,
		app.verifier,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.Allocator = app.allocator
	router.Inventory = app.inventory
	router.Catalog = app.catalog
	router.AdminAuth = app.adminAuth
	router.ApplyRoutes()

	app.router = router

	var handler http.Handler = router
	if app.cfg.OTelEndpoint != "" {
		handler = otelhttp.NewHandler(router, "http.server")
	}

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
