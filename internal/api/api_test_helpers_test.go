package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/taskdeck-api/internal/api/shared"
	"github.com/phrazzld/taskdeck-api/internal/domain"
	"github.com/phrazzld/taskdeck-api/internal/events"
	"github.com/phrazzld/taskdeck-api/internal/mocks"
	"github.com/phrazzld/taskdeck-api/internal/service"
)

// testEnv wires handlers over in-memory stores for handler tests.
type testEnv struct {
	userID      uuid.UUID
	category    *domain.Category
	priority    *domain.Priority
	tag         *domain.Tag
	tasks       *mocks.MemoryTaskStore
	notifs      *mocks.MemoryNotificationStore
	broadcaster *events.Broadcaster
	router      chi.Router
}

// newTestEnv builds a router with all task routes mounted, with auth
// replaced by a middleware that injects env.userID into the context.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	log := slog.Default()
	userID := uuid.New()

	categories := mocks.NewMemoryCategoryStore()
	priorities := mocks.NewMemoryPriorityStore()
	tags := mocks.NewMemoryTagStore()
	taskStore := mocks.NewMemoryTaskStore()
	notifStore := mocks.NewMemoryNotificationStore()
	broadcaster := events.NewBroadcaster(log)

	category, err := domain.NewCategory(userID, "Work", "#3B82F6")
	require.NoError(t, err)
	require.NoError(t, categories.Create(ctx, category))
	priority, err := domain.NewPriority(userID, "High", domain.PriorityHigh, "#EF4444")
	require.NoError(t, err)
	require.NoError(t, priorities.Create(ctx, priority))
	tag, err := domain.NewTag(userID, "urgent", "#DC2626")
	require.NoError(t, err)
	require.NoError(t, tags.Create(ctx, tag))

	resolver, err := service.NewTaskResolver(categories, priorities, tags, log)
	require.NoError(t, err)
	taskService, err := service.NewTaskService(taskStore, notifStore, resolver, broadcaster, log)
	require.NoError(t, err)
	categoryService, err := service.NewCategoryService(categories, log)
	require.NoError(t, err)
	priorityService, err := service.NewPriorityService(priorities, log)
	require.NoError(t, err)
	tagService, err := service.NewTagService(tags, log)
	require.NoError(t, err)
	notificationService, err := service.NewNotificationService(notifStore, log)
	require.NoError(t, err)
	seeder, err := service.NewDefaultsSeeder(categories, priorities, log)
	require.NoError(t, err)

	taskHandler := NewTaskHandler(taskService, log)
	categoryHandler := NewCategoryHandler(categoryService, log)
	priorityHandler := NewPriorityHandler(priorityService, log)
	tagHandler := NewTagHandler(tagService, log)
	notificationHandler := NewNotificationHandler(notificationService, log)
	seedHandler := NewSeedHandler(seeder, log)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})

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

	return &testEnv{
		userID:      userID,
		category:    category,
		priority:    priority,
		tag:         tag,
		tasks:       taskStore,
		notifs:      notifStore,
		broadcaster: broadcaster,
		router:      r,
	}
}

// do executes a request against the env router and returns the recorder.
func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

// createTask creates a task through the API and returns the decoded detail.
func (e *testEnv) createTask(t *testing.T, title string) *domain.TaskDetail {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/tasks", map[string]any{
		"title":       title,
		"category_id": e.category.ID,
		"priority_id": e.priority.ID,
		"due_date":    time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC),
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var detail domain.TaskDetail
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &detail))
	return &detail
}
