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

	httpapi "github.com/zeepkist/gtr-auth/internal/auth/http"
	"github.com/zeepkist/gtr-auth/internal/auth/service"
	"github.com/zeepkist/gtr-auth/internal/auth/store"
	"github.com/zeepkist/gtr-auth/internal/auth/store/drivers/postgres"
	"github.com/zeepkist/gtr-auth/internal/auth/store/drivers/sqlite"
	"github.com/zeepkist/gtr-auth/pkg/jwtx"
	"github.com/zeepkist/gtr-auth/pkg/slogx"
	"github.com/zeepkist/gtr-auth/pkg/steamx"
)

// BuildVersion should be set at build time via ldflags.
var BuildVersion = "v1.0.0"

// Application encapsulates the auth service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	signer *jwtx.Signer
	steam  *steamx.Client
	openID *steamx.OpenID

	gameTokenService     *service.TokenService
	externalTokenService *service.TokenService
	userService          *service.UserService

	server *http.Server
	router *httpapi.Router
}

// New builds the application. Configuration is validated here so a bad
// deployment fails at startup, not on the first login.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "gtr-auth",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	signer, err := jwtx.NewSigner(cfg.SigningKey)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token signer: %w", err)
	}
	app.signer = signer

	steam, err := steamx.New(steamx.Config{
		APIKey: cfg.SteamAPIKey,
		AppID:  uint32(cfg.SteamAppID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize steam client: %w", err)
	}
	app.steam = steam
	app.openID = steamx.NewOpenID()

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("auth service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"database_driver", app.cfg.DatabaseDriver,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

// initDatabase opens the configured driver and applies migrations.
func (app *Application) initDatabase() error {
	var (
		db  store.Store
		err error
	)

	switch app.cfg.DatabaseDriver {
	case "postgres":
		db, err = postgres.NewStore(app.cfg.DatabaseURL)
	case "sqlite":
		dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
		db, err = sqlite.NewStore(dsn)
	default:
		return fmt.Errorf("unknown database driver %q", app.cfg.DatabaseDriver)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes the business logic services.
func (app *Application) initServices() {
	app.gameTokenService = service.NewGameTokenService(
		app.signer, app.db, app.cfg.AccessTokenTTL, app.cfg.RefreshTokenTTL)
	app.externalTokenService = service.NewExternalTokenService(
		app.signer, app.db, app.cfg.AccessTokenTTL, app.cfg.RefreshTokenTTL)

	app.userService = &service.UserService{Store: app.db}
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		BuildVersion,
		app.cfg.MinimumModVersion,
		app.cfg.SteamRealm,
		app.db,
		app.logger,
	)

	router.GameTokenService = app.gameTokenService
	router.ExternalTokenService = app.externalTokenService
	router.UserService = app.userService
	router.TicketVerifier = app.steam
	router.OpenID = app.openID
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
