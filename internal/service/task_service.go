package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskdeck-api/internal/domain"
	"github.com/phrazzld/taskdeck-api/internal/domain/recurrence"
	"github.com/phrazzld/taskdeck-api/internal/events"
	"github.com/phrazzld/taskdeck-api/internal/platform/logger"
	"github.com/phrazzld/taskdeck-api/internal/store"
)

// CreateTaskInput carries the caller-supplied fields for a new task.
type CreateTaskInput struct {
	Title       string
	Description string
	CategoryID  uuid.UUID
	PriorityID  uuid.UUID
	DueDate     time.Time
	Image       string
	Tags        []uuid.UUID
	Recurrence  *domain.RecurrencePattern
}

// TaskPatch is a partial update of a task. Nil pointer fields are left
// unchanged. Setting Completed takes precedence over Status when both are
// present, mirroring how clients toggle completion.
type TaskPatch struct {
	Title       *string
	Description *string
	CategoryID  *uuid.UUID
	PriorityID  *uuid.UUID
	Status      *domain.TaskStatus
	DueDate     *time.Time
	Completed   *bool
	Image       *string
	Tags        *[]uuid.UUID
	Recurrence  *domain.RecurrencePattern

	// ClearRecurrence removes the recurrence pattern. It wins over
	// Recurrence when both are set.
	ClearRecurrence bool
}

// SubtaskPatch is a partial update of a single subtask.
type SubtaskPatch struct {
	Title     *string
	Completed *bool
}

// TaskService provides task lifecycle operations: CRUD, subtask management,
// completion handling and recurrence successor spawning. Every operation
// checks that the requesting user owns the task it touches.
type TaskService interface {
	// CreateTask creates a new task owned by the given user.
	CreateTask(ctx context.Context, userID uuid.UUID, input CreateTaskInput) (*domain.TaskDetail, error)

	// GetTask retrieves a single task with its references resolved.
	GetTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.TaskDetail, error)

	// ListTasks retrieves all of the user's tasks, newest first.
	ListTasks(ctx context.Context, userID uuid.UUID) ([]*domain.TaskDetail, error)

	// UpdateTask applies a partial update. Completing a recurring task
	// spawns its successor atomically with the update.
	UpdateTask(ctx context.Context, userID, taskID uuid.UUID, patch TaskPatch) (*domain.TaskDetail, error)

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error

	// AddSubtask appends a subtask to the task's checklist.
	AddSubtask(ctx context.Context, userID, taskID uuid.UUID, title string) (*domain.TaskDetail, error)

	// UpdateSubtask applies a partial update to one subtask.
	UpdateSubtask(ctx context.Context, userID, taskID, subtaskID uuid.UUID, patch SubtaskPatch) (*domain.TaskDetail, error)

	// DeleteSubtask removes a subtask. Removing a subtask that is already
	// gone is a no-op, not an error.
	DeleteSubtask(ctx context.Context, userID, taskID, subtaskID uuid.UUID) (*domain.TaskDetail, error)
}

// taskServiceImpl implements the TaskService interface.
type taskServiceImpl struct {
	taskStore         store.TaskStore
	notificationStore store.NotificationStore
	resolver          *TaskResolver
	publisher         events.Publisher
	locks             *taskLocker
	logger            *slog.Logger
}

// Ensure taskServiceImpl implements TaskService
var _ TaskService = (*taskServiceImpl)(nil)

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	taskStore store.TaskStore,
	notificationStore store.NotificationStore,
	resolver *TaskResolver,
	publisher events.Publisher,
	logger *slog.Logger,
) (TaskService, error) {
	if taskStore == nil {
		return nil, domain.NewValidationError("taskStore", "cannot be nil", domain.ErrValidation)
	}
	if notificationStore == nil {
		return nil, domain.NewValidationError("notificationStore", "cannot be nil", domain.ErrValidation)
	}
	if resolver == nil {
		return nil, domain.NewValidationError("resolver", "cannot be nil", domain.ErrValidation)
	}
	if publisher == nil {
		return nil, domain.NewValidationError("publisher", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskStore:         taskStore,
		notificationStore: notificationStore,
		resolver:          resolver,
		publisher:         publisher,
		locks:             newTaskLocker(),
		logger:            logger.With(slog.String("component", "task_service")),
	}, nil
}

// CreateTask implements TaskService.CreateTask.
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	userID uuid.UUID,
	input CreateTaskInput,
) (*domain.TaskDetail, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(
		userID,
		input.Title,
		input.Description,
		input.CategoryID,
		input.PriorityID,
		input.DueDate,
	)
	if err != nil {
		return nil, err
	}

	task.Image = input.Image
	if len(input.Tags) > 0 {
		task.Tags = append([]uuid.UUID{}, input.Tags...)
	}
	if input.Recurrence != nil {
		r := input.Recurrence.Clone()
		task.Recurrence = &r
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, userID, task.CategoryID, task.PriorityID, task.Tags); err != nil {
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	log.Debug("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", userID.String()))

	if err := s.notify(ctx, userID, domain.NotificationSystem,
		"Task created",
		fmt.Sprintf("Task %q was created", task.Title),
		&task.ID); err != nil {
		log.Error("failed to record notification",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return nil, NewTaskServiceError("create_task", "failed to record notification", err)
	}

	detail, err := s.resolver.Resolve(ctx, task)
	if err != nil {
		return nil, NewTaskServiceError("create_task", "failed to resolve task references", err)
	}

	s.publisher.Publish(userID, events.KindTaskCreated, detail)
	return detail, nil
}

// GetTask implements TaskService.GetTask.
func (s *taskServiceImpl) GetTask(
	ctx context.Context,
	userID, taskID uuid.UUID,
) (*domain.TaskDetail, error) {
	task, err := s.loadOwned(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	detail, err := s.resolver.Resolve(ctx, task)
	if err != nil {
		return nil, NewTaskServiceError("get_task", "failed to resolve task references", err)
	}
	return detail, nil
}

// ListTasks implements TaskService.ListTasks.
func (s *taskServiceImpl) ListTasks(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.TaskDetail, error) {
	tasks, err := s.taskStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}

	details, err := s.resolver.ResolveAll(ctx, tasks)
	if err != nil {
		return nil, NewTaskServiceError("list_tasks", "failed to resolve task references", err)
	}
	return details, nil
}

// UpdateTask implements TaskService.UpdateTask.
//
// The read-modify-write cycle runs under the per-task lock, so two
// concurrent updates of the same task serialize: the second applies to the
// state the first committed. In particular, two concurrent completions of a
// recurring task produce exactly one successor, because the second update
// sees the task already completed.
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	userID, taskID uuid.UUID,
	patch TaskPatch,
) (*domain.TaskDetail, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.locks.Lock(taskID)
	defer s.locks.Unlock(taskID)

	task, err := s.loadOwned(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	wasCompleted := task.Completed
	prevDueDate := task.DueDate
	prevRecurrence := task.Recurrence

	if err := s.applyPatch(ctx, task, patch); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	task.UpdatedAt = now

	if err := task.Validate(); err != nil {
		return nil, err
	}

	// Completion is edge-triggered and judged on the state the task had
	// before the patch: only the false -> true transition of an
	// already-recurring task spawns a successor, and the next occurrence
	// steps from the pre-patch due date. A patch that completes a
	// non-recurring task while attaching a pattern spawns nothing, and a
	// patch that moves the due date while completing does not shift the
	// successor.
	var successor *domain.Task
	if !wasCompleted && task.Completed && prevRecurrence != nil {
		nextDue, ok, err := recurrence.NextOccurrence(prevDueDate, prevRecurrence)
		if err != nil {
			return nil, NewTaskServiceError("update_task", "failed to compute next occurrence", err)
		}
		if ok {
			successor = task.SpawnSuccessor(nextDue, now)
			r := prevRecurrence.Clone()
			successor.Recurrence = &r
		} else {
			log.Debug("recurrence series ended, no successor spawned",
				slog.String("task_id", task.ID.String()))
		}
	}

	if successor != nil {
		// The completion patch and its successor persist atomically: a
		// crash between the two must not lose the spawned occurrence.
		err = store.RunInTransaction(ctx, s.taskStore.DB(), func(ctx context.Context, tx *sql.Tx) error {
			txStore := s.taskStore.WithTx(tx)
			if err := txStore.Update(ctx, task); err != nil {
				return err
			}
			return txStore.Create(ctx, successor)
		})
	} else {
		err = s.taskStore.Update(ctx, task)
	}
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		log.Error("failed to persist task update",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return nil, NewTaskServiceError("update_task", "failed to save task", err)
	}

	if !wasCompleted && task.Completed {
		if err := s.notify(ctx, userID, domain.NotificationTaskCompleted,
			"Task completed",
			fmt.Sprintf("Task %q was completed", task.Title),
			&task.ID); err != nil {
			log.Error("failed to record notification",
				slog.String("error", err.Error()),
				slog.String("task_id", task.ID.String()))
			return nil, NewTaskServiceError("update_task", "failed to record notification", err)
		}
	}

	detail, err := s.resolver.Resolve(ctx, task)
	if err != nil {
		return nil, NewTaskServiceError("update_task", "failed to resolve task references", err)
	}
	s.publisher.Publish(userID, events.KindTaskUpdated, detail)

	if successor != nil {
		log.Info("spawned recurrence successor",
			slog.String("task_id", task.ID.String()),
			slog.String("successor_id", successor.ID.String()),
			slog.Time("next_due", successor.DueDate))
		if successorDetail, err := s.resolver.Resolve(ctx, successor); err != nil {
			log.Warn("failed to resolve successor for broadcast",
				slog.String("error", err.Error()),
				slog.String("successor_id", successor.ID.String()))
		} else {
			s.publisher.Publish(userID, events.KindTaskCreated, successorDetail)
		}
	}

	return detail, nil
}

// DeleteTask implements TaskService.DeleteTask.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.locks.Lock(taskID)
	defer s.locks.Unlock(taskID)

	if _, err := s.loadOwned(ctx, userID, taskID); err != nil {
		return err
	}

	if err := s.taskStore.Delete(ctx, taskID); err != nil {
		if store.IsNotFoundError(err) {
			return err
		}
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	// Deletion broadcasts the ID alone; the full entity is gone.
	s.publisher.Publish(userID, events.KindTaskDeleted, events.DeletedPayload{ID: taskID})
	return nil
}

// AddSubtask implements TaskService.AddSubtask.
func (s *taskServiceImpl) AddSubtask(
	ctx context.Context,
	userID, taskID uuid.UUID,
	title string,
) (*domain.TaskDetail, error) {
	if title == "" {
		return nil, domain.NewValidationError("title", "cannot be empty", domain.ErrValidation)
	}

	return s.mutate(ctx, userID, taskID, "add_subtask", func(task *domain.Task, now time.Time) error {
		task.Subtasks = append(task.Subtasks, domain.NewSubtask(title, len(task.Subtasks), now))
		return nil
	})
}

// UpdateSubtask implements TaskService.UpdateSubtask.
func (s *taskServiceImpl) UpdateSubtask(
	ctx context.Context,
	userID, taskID, subtaskID uuid.UUID,
	patch SubtaskPatch,
) (*domain.TaskDetail, error) {
	return s.mutate(ctx, userID, taskID, "update_subtask", func(task *domain.Task, now time.Time) error {
		i := task.FindSubtask(subtaskID)
		if i < 0 {
			return ErrSubtaskNotFound
		}
		if patch.Title != nil {
			if *patch.Title == "" {
				return domain.NewValidationError("title", "cannot be empty", domain.ErrValidation)
			}
			task.Subtasks[i].Title = *patch.Title
		}
		if patch.Completed != nil {
			task.Subtasks[i].Completed = *patch.Completed
		}
		return nil
	})
}

// DeleteSubtask implements TaskService.DeleteSubtask.
func (s *taskServiceImpl) DeleteSubtask(
	ctx context.Context,
	userID, taskID, subtaskID uuid.UUID,
) (*domain.TaskDetail, error) {
	return s.mutate(ctx, userID, taskID, "delete_subtask", func(task *domain.Task, now time.Time) error {
		i := task.FindSubtask(subtaskID)
		if i < 0 {
			// Idempotent: deleting an already-removed subtask succeeds.
			return nil
		}
		task.Subtasks = append(task.Subtasks[:i], task.Subtasks[i+1:]...)
		return nil
	})
}

// mutate runs a locked read-modify-write cycle on a task and broadcasts the
// result. Used by the subtask operations; UpdateTask has its own cycle
// because of successor spawning.
func (s *taskServiceImpl) mutate(
	ctx context.Context,
	userID, taskID uuid.UUID,
	operation string,
	fn func(task *domain.Task, now time.Time) error,
) (*domain.TaskDetail, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.locks.Lock(taskID)
	defer s.locks.Unlock(taskID)

	task, err := s.loadOwned(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := fn(task, now); err != nil {
		return nil, err
	}
	task.UpdatedAt = now

	if err := s.taskStore.Update(ctx, task); err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		log.Error("failed to persist task update",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()),
			slog.String("operation", operation))
		return nil, NewTaskServiceError(operation, "failed to save task", err)
	}

	detail, err := s.resolver.Resolve(ctx, task)
	if err != nil {
		return nil, NewTaskServiceError(operation, "failed to resolve task references", err)
	}
	s.publisher.Publish(userID, events.KindTaskUpdated, detail)
	return detail, nil
}

// loadOwned fetches a task and verifies the requesting user owns it.
// A missing task yields the store's not-found error; an existing task owned
// by someone else yields ErrNotOwned.
func (s *taskServiceImpl) loadOwned(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		return nil, NewTaskServiceError("get_task", "failed to load task", err)
	}
	if task.UserID != userID {
		return nil, ErrNotOwned
	}
	return task, nil
}

// applyPatch copies the set fields of the patch onto the task, validating
// reference ownership for any changed category, priority or tags.
func (s *taskServiceImpl) applyPatch(ctx context.Context, task *domain.Task, patch TaskPatch) error {
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.DueDate != nil {
		task.DueDate = *patch.DueDate
	}
	if patch.Image != nil {
		task.Image = *patch.Image
	}

	if patch.Status != nil {
		if !patch.Status.IsValid() {
			return domain.ErrInvalidStatus
		}
		task.SetStatus(*patch.Status)
	}
	if patch.Completed != nil {
		task.SetCompleted(*patch.Completed)
	}

	if patch.ClearRecurrence {
		task.Recurrence = nil
	} else if patch.Recurrence != nil {
		if err := patch.Recurrence.Validate(); err != nil {
			return err
		}
		r := patch.Recurrence.Clone()
		task.Recurrence = &r
	}

	categoryID := task.CategoryID
	if patch.CategoryID != nil {
		categoryID = *patch.CategoryID
	}
	priorityID := task.PriorityID
	if patch.PriorityID != nil {
		priorityID = *patch.PriorityID
	}
	tags := task.Tags
	if patch.Tags != nil {
		tags = *patch.Tags
	}

	if patch.CategoryID != nil || patch.PriorityID != nil || patch.Tags != nil {
		if err := s.checkReferences(ctx, task.UserID, categoryID, priorityID, tags); err != nil {
			return err
		}
	}

	task.CategoryID = categoryID
	task.PriorityID = priorityID
	if patch.Tags != nil {
		task.Tags = append([]uuid.UUID{}, tags...)
	}

	return nil
}

// checkReferences verifies the category, priority and tags exist and belong
// to the given user. A reference to a missing or foreign entity is a caller
// input error, not a forbidden access: the task mutation itself is on the
// caller's own resource.
func (s *taskServiceImpl) checkReferences(
	ctx context.Context,
	userID, categoryID, priorityID uuid.UUID,
	tags []uuid.UUID,
) error {
	category, err := s.resolver.categoryStore.GetByID(ctx, categoryID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return fmt.Errorf("category %s: %w", categoryID, ErrReferenceNotOwned)
		}
		return NewTaskServiceError("check_references", "failed to load category", err)
	}
	if category.UserID != userID {
		return fmt.Errorf("category %s: %w", categoryID, ErrReferenceNotOwned)
	}

	priority, err := s.resolver.priorityStore.GetByID(ctx, priorityID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return fmt.Errorf("priority %s: %w", priorityID, ErrReferenceNotOwned)
		}
		return NewTaskServiceError("check_references", "failed to load priority", err)
	}
	if priority.UserID != userID {
		return fmt.Errorf("priority %s: %w", priorityID, ErrReferenceNotOwned)
	}

	for _, tagID := range tags {
		tag, err := s.resolver.tagStore.GetByID(ctx, tagID)
		if err != nil {
			if store.IsNotFoundError(err) {
				return fmt.Errorf("tag %s: %w", tagID, ErrReferenceNotOwned)
			}
			return NewTaskServiceError("check_references", "failed to load tag", err)
		}
		if tag.UserID != userID {
			return fmt.Errorf("tag %s: %w", tagID, ErrReferenceNotOwned)
		}
	}

	return nil
}

// notify records a lifecycle notification. A failing notification sink fails
// the operation: the stored notification is part of the mutation's contract,
// unlike the best-effort event broadcast.
func (s *taskServiceImpl) notify(
	ctx context.Context,
	userID uuid.UUID,
	notifType domain.NotificationType,
	title, message string,
	taskID *uuid.UUID,
) error {
	notification, err := domain.NewNotification(userID, notifType, title, message, taskID)
	if err != nil {
		return err
	}
	return s.notificationStore.Create(ctx, notification)
}
