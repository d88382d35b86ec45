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

// CategoryPatch is a partial update of a category. Nil fields are unchanged.
type CategoryPatch struct {
	Name  *string
	Color *string
}

// CategoryService provides ownership-checked CRUD for categories.
// Deleting a category leaves tasks that referenced it with a dangling
// reference; the resolver renders those as absent rather than failing.
type CategoryService interface {
	CreateCategory(ctx context.Context, userID uuid.UUID, name, color string) (*domain.Category, error)
	ListCategories(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error)
	UpdateCategory(ctx context.Context, userID, categoryID uuid.UUID, patch CategoryPatch) (*domain.Category, error)
	DeleteCategory(ctx context.Context, userID, categoryID uuid.UUID) error
}

type categoryServiceImpl struct {
	categoryStore store.CategoryStore
	logger        *slog.Logger
}

var _ CategoryService = (*categoryServiceImpl)(nil)

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryStore store.CategoryStore, logger *slog.Logger) (CategoryService, error) {
	if categoryStore == nil {
		return nil, domain.NewValidationError("categoryStore", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &categoryServiceImpl{
		categoryStore: categoryStore,
		logger:        logger.With(slog.String("component", "category_service")),
	}, nil
}

func (s *categoryServiceImpl) CreateCategory(
	ctx context.Context,
	userID uuid.UUID,
	name, color string,
) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	category, err := domain.NewCategory(userID, name, color)
	if err != nil {
		return nil, err
	}

	if err := s.categoryStore.Create(ctx, category); err != nil {
		log.Error("failed to create category",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewTaskServiceError("create_category", "failed to save category", err)
	}
	return category, nil
}

func (s *categoryServiceImpl) ListCategories(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Category, error) {
	categories, err := s.categoryStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewTaskServiceError("list_categories", "failed to list categories", err)
	}
	return categories, nil
}

func (s *categoryServiceImpl) UpdateCategory(
	ctx context.Context,
	userID, categoryID uuid.UUID,
	patch CategoryPatch,
) (*domain.Category, error) {
	category, err := s.loadOwned(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		category.Name = *patch.Name
	}
	if patch.Color != nil {
		category.Color = *patch.Color
	}
	if err := category.Validate(); err != nil {
		return nil, err
	}
	category.UpdatedAt = time.Now().UTC()

	if err := s.categoryStore.Update(ctx, category); err != nil {
		return nil, NewTaskServiceError("update_category", "failed to save category", err)
	}
	return category, nil
}

func (s *categoryServiceImpl) DeleteCategory(ctx context.Context, userID, categoryID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, userID, categoryID); err != nil {
		return err
	}
	if err := s.categoryStore.Delete(ctx, categoryID); err != nil {
		if store.IsNotFoundError(err) {
			return err
		}
		return NewTaskServiceError("delete_category", "failed to delete category", err)
	}
	return nil
}

func (s *categoryServiceImpl) loadOwned(
	ctx context.Context,
	userID, categoryID uuid.UUID,
) (*domain.Category, error) {
	category, err := s.categoryStore.GetByID(ctx, categoryID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		return nil, NewTaskServiceError("get_category", "failed to load category", err)
	}
	if category.UserID != userID {
		return nil, ErrNotOwned
	}
	return category, nil
}
