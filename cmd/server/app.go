package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskdeck-api/internal/config"
	"github.com/phrazzld/taskdeck-api/internal/events"
	"github.com/phrazzld/taskdeck-api/internal/platform/postgres"
	"github.com/phrazzld/taskdeck-api/internal/service"
	"github.com/phrazzld/taskdeck-api/internal/service/auth"
	"github.com/phrazzld/taskdeck-api/internal/store"
	"github.com/phrazzld/taskdeck-api/internal/task"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	taskStore         store.TaskStore
	categoryStore     store.CategoryStore
	priorityStore     store.PriorityStore
	tagStore          store.TagStore
	notificationStore store.NotificationStore

	// Services
	jwtService          auth.JWTService
	taskService         service.TaskService
	categoryService     service.CategoryService
	priorityService     service.PriorityService
	tagService          service.TagService
	notificationService service.NotificationService
	seeder              *service.DefaultsSeeder

	// Event fan-out
	broadcaster *events.Broadcaster

	// Background jobs
	dueSoonNotifier *task.DueSoonNotifier
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger and
// database connection that must be established before initialization.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
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

	app.taskStore = postgres.NewPostgresTaskStore(db, logger)
	app.categoryStore = postgres.NewPostgresCategoryStore(db)
	app.priorityStore = postgres.NewPostgresPriorityStore(db)
	app.tagStore = postgres.NewPostgresTagStore(db)
	app.notificationStore = postgres.NewPostgresNotificationStore(db)

	app.broadcaster = events.NewBroadcaster(logger)

	resolver, err := service.NewTaskResolver(app.categoryStore, app.priorityStore, app.tagStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task resolver: %w", err)
	}

	app.taskService, err = service.NewTaskService(
		app.taskStore,
		app.notificationStore,
		resolver,
		app.broadcaster,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.categoryService, err = service.NewCategoryService(app.categoryStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create category service: %w", err)
	}

	app.priorityService, err = service.NewPriorityService(app.priorityStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create priority service: %w", err)
	}

	app.tagService, err = service.NewTagService(app.tagStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create tag service: %w", err)
	}

	app.notificationService, err = service.NewNotificationService(app.notificationStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification service: %w", err)
	}

	app.seeder, err = service.NewDefaultsSeeder(app.categoryStore, app.priorityStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create defaults seeder: %w", err)
	}

	if cfg.Reminder.Enabled {
		app.dueSoonNotifier, err = task.NewDueSoonNotifier(
			app.taskStore,
			app.notificationStore,
			cfg.Reminder,
			logger,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create due-soon notifier: %w", err)
		}
		if err := app.dueSoonNotifier.Start(); err != nil {
			return nil, fmt.Errorf("failed to start due-soon notifier: %w", err)
		}
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.dueSoonNotifier != nil {
		app.dueSoonNotifier.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
