package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/lessonboard/lessonboard/internal/config"
	"github.com/lessonboard/lessonboard/internal/platform/inertia"
	"github.com/lessonboard/lessonboard/internal/platform/postgres"
	"github.com/lessonboard/lessonboard/internal/service/auth"
	"github.com/lessonboard/lessonboard/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	categoryStore store.CategoryStore
	lessonStore   store.LessonStore
	roleStore     store.RoleStore
	userStore     store.UserStore
	transactor    store.Transactor

	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	renderer         *inertia.Renderer
}

// newApplication creates a new application instance with all dependencies initialized.
// The database connection must already be established.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	app.renderer, err = inertia.NewRenderer(cfg.View, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize page renderer: %w", err)
	}

	app.categoryStore = postgres.NewPostgresCategoryStore(db, logger)
	app.lessonStore = postgres.NewPostgresLessonStore(db, logger)
	app.roleStore = postgres.NewPostgresRoleStore(db, logger)
	app.userStore = postgres.NewPostgresUserStore(db, cfg.Auth.BCryptCost, logger)
	app.transactor = store.NewDBTransactor(db)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router, err := app.setupRouter()
	if err != nil {
		return fmt.Errorf("failed to set up router: %w", err)
	}

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
