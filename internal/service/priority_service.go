package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskdeck-api/internal/domain"
	"github.com/phrazzld/taskdeck-api/internal/platform/logger"
	"github.com/phrazzld/taskdeck-api/internal/store"
)

// PriorityPatch is a partial update of a priority. Nil fields are unchanged.
type PriorityPatch struct {
	Name  *string
	Level *domain.PriorityLevel
	Color *string
}

// PriorityService provides ownership-checked CRUD for priorities.
type PriorityService interface {
	CreatePriority(ctx context.Context, userID uuid.UUID, name string, level domain.PriorityLevel, color string) (*domain.Priority, error)
	ListPriorities(ctx context.Context, userID uuid.UUID) ([]*domain.Priority, error)
	UpdatePriority(ctx context.Context, userID, priorityID uuid.UUID, patch PriorityPatch) (*domain.Priority, error)
	DeletePriority(ctx context.Context, userID, priorityID uuid.UUID) error
}

type priorityServiceImpl struct {
	priorityStore store.PriorityStore
	logger        *slog.Logger
}

var _ PriorityService = (*priorityServiceImpl)(nil)

// NewPriorityService creates a new PriorityService.
func NewPriorityService(priorityStore store.PriorityStore, logger *slog.Logger) (PriorityService, error) {
	if priorityStore == nil {
		return nil, domain.NewValidationError("priorityStore", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &priorityServiceImpl{
		priorityStore: priorityStore,
		logger:        logger.With(slog.String("component", "priority_service")),
	}, nil
}

func (s *priorityServiceImpl) CreatePriority(
	ctx context.Context,
	userID uuid.UUID,
	name string,
	level domain.PriorityLevel,
	color string,
) (*domain.Priority, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	priority, err := domain.NewPriority(userID, name, level, color)
	if err != nil {
		return nil, err
	}

	if err := s.priorityStore.Create(ctx, priority); err != nil {
		log.Error("failed to create priority",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewTaskServiceError("create_priority", "failed to save priority", err)
	}
	return priority, nil
}

func (s *priorityServiceImpl) ListPriorities(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Priority, error) {
	priorities, err := s.priorityStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewTaskServiceError("list_priorities", "failed to list priorities", err)
	}
	return priorities, nil
}

func (s *priorityServiceImpl) UpdatePriority(
	ctx context.Context,
	userID, priorityID uuid.UUID,
	patch PriorityPatch,
) (*domain.Priority, error) {
	priority, err := s.loadOwned(ctx, userID, priorityID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		priority.Name = *patch.Name
	}
	if patch.Level != nil {
		priority.Level = *patch.Level
	}
	if patch.Color != nil {
		priority.Color = *patch.Color
	}
	if err := priority.Validate(); err != nil {
		return nil, err
	}
	priority.UpdatedAt = time.Now().UTC()

	if err := s.priorityStore.Update(ctx, priority); err != nil {
		return nil, NewTaskServiceError("update_priority", "failed to save priority", err)
	}
	return priority, nil
}

func (s *priorityServiceImpl) DeletePriority(ctx context.Context, userID, priorityID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, userID, priorityID); err != nil {
		return err
	}
	if err := s.priorityStore.Delete(ctx, priorityID); err != nil {
		if store.IsNotFoundError(err) {
			return err
		}
		return NewTaskServiceError("delete_priority", "failed to delete priority", err)
	}
	return nil
}

func (s *priorityServiceImpl) loadOwned(
	ctx context.Context,
	userID, priorityID uuid.UUID,
) (*domain.Priority, error) {
	priority, err := s.priorityStore.GetByID(ctx, priorityID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		return nil, NewTaskServiceError("get_priority", "failed to load priority", err)
	}
	if priority.UserID != userID {
		return nil, ErrNotOwned
	}
	return priority, nil
}
