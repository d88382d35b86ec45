package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/taskdeck-api/internal/domain"
	"github.com/phrazzld/taskdeck-api/internal/store"
)

// TaskResolver dereferences a task's category, priority and tag IDs into the
// embedded objects consumers receive. A dangling reference (the category was
// deleted after the task was created) resolves to nil rather than an error;
// only infrastructure failures propagate.
type TaskResolver struct {
	categoryStore store.CategoryStore
	priorityStore store.PriorityStore
	tagStore      store.TagStore
	logger        *slog.Logger
}

// NewTaskResolver creates a TaskResolver.
// If logger is nil, a default logger will be used.
func NewTaskResolver(
	categoryStore store.CategoryStore,
	priorityStore store.PriorityStore,
	tagStore store.TagStore,
	logger *slog.Logger,
) (*TaskResolver, error) {
	if categoryStore == nil {
		return nil, domain.NewValidationError("categoryStore", "cannot be nil", domain.ErrValidation)
	}
	if priorityStore == nil {
		return nil, domain.NewValidationError("priorityStore", "cannot be nil", domain.ErrValidation)
	}
	if tagStore == nil {
		return nil, domain.NewValidationError("tagStore", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskResolver{
		categoryStore: categoryStore,
		priorityStore: priorityStore,
		tagStore:      tagStore,
		logger:        logger.With(slog.String("component", "task_resolver")),
	}, nil
}

// Resolve builds the TaskDetail for a single task.
func (r *TaskResolver) Resolve(ctx context.Context, task *domain.Task) (*domain.TaskDetail, error) {
	detail := &domain.TaskDetail{
		Task:    *task,
		TagList: []*domain.Tag{},
	}

	category, err := r.categoryStore.GetByID(ctx, task.CategoryID)
	switch {
	case err == nil:
		detail.Category = category
	case !store.IsNotFoundError(err):
		return nil, err
	}

	priority, err := r.priorityStore.GetByID(ctx, task.PriorityID)
	switch {
	case err == nil:
		detail.Priority = priority
	case !store.IsNotFoundError(err):
		return nil, err
	}

	for _, tagID := range task.Tags {
		tag, err := r.tagStore.GetByID(ctx, tagID)
		if err != nil {
			if store.IsNotFoundError(err) {
				continue
			}
			return nil, err
		}
		detail.TagList = append(detail.TagList, tag)
	}

	return detail, nil
}

// ResolveAll builds TaskDetails for a slice of tasks, preserving order.
func (r *TaskResolver) ResolveAll(ctx context.Context, tasks []*domain.Task) ([]*domain.TaskDetail, error) {
	details := make([]*domain.TaskDetail, 0, len(tasks))
	for _, task := range tasks {
		detail, err := r.Resolve(ctx, task)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}
