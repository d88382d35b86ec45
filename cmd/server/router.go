package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/taskdeck-api/internal/api"
	apiMiddleware "github.com/phrazzld/taskdeck-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	categoryHandler := api.NewCategoryHandler(app.categoryService, app.logger)
	priorityHandler := api.NewPriorityHandler(app.priorityService, app.logger)
	tagHandler := api.NewTagHandler(app.tagService, app.logger)
	notificationHandler := api.NewNotificationHandler(app.notificationService, app.logger)
	seedHandler := api.NewSeedHandler(app.seeder, app.logger)
	wsHandler := api.NewWSHandler(app.broadcaster, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Route("/tasks", func(r chi.Router) {
				r.Post("/", taskHandler.CreateTask)
				r.Get("/", taskHandler.ListTasks)
				r.Get("/{id}", taskHandler.GetTask)
				r.Patch("/{id}", taskHandler.UpdateTask)
				r.Delete("/{id}", taskHandler.DeleteTask)
				r.Post("/{id}/subtasks", taskHandler.AddSubtask)
				r.Patch("/{id}/subtasks/{subtaskId}", taskHandler.UpdateSubtask)
				r.Delete("/{id}/subtasks/{subtaskId}", taskHandler.DeleteSubtask)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Post("/", categoryHandler.CreateCategory)
				r.Get("/", categoryHandler.ListCategories)
				r.Patch("/{id}", categoryHandler.UpdateCategory)
				r.Delete("/{id}", categoryHandler.DeleteCategory)
			})

			r.Route("/priorities", func(r chi.Router) {
				r.Post("/", priorityHandler.CreatePriority)
				r.Get("/", priorityHandler.ListPriorities)
				r.Patch("/{id}", priorityHandler.UpdatePriority)
				r.Delete("/{id}", priorityHandler.DeletePriority)
			})

			r.Route("/tags", func(r chi.Router) {
				r.Post("/", tagHandler.CreateTag)
				r.Get("/", tagHandler.ListTags)
				r.Patch("/{id}", tagHandler.UpdateTag)
				r.Delete("/{id}", tagHandler.DeleteTag)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.ListNotifications)
				r.Patch("/read-all", notificationHandler.MarkAllNotificationsRead)
				r.Patch("/{id}/read", notificationHandler.MarkNotificationRead)
				r.Delete("/{id}", notificationHandler.DeleteNotification)
				r.Delete("/", notificationHandler.ClearNotifications)
			})

			r.Post("/defaults", seedHandler.SeedDefaults)

			// WebSocket event stream; clients send an explicit join frame
			// after connecting.
			r.Get("/ws", wsHandler.ServeHTTP)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
