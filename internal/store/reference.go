package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskdeck-api/internal/domain"
)

// CategoryStore defines the interface for category data persistence.
type CategoryStore interface {
	// Create saves a new category to the store.
	Create(ctx context.Context, category *domain.Category) error

	// GetByID retrieves a category by its unique ID.
	// Returns ErrCategoryNotFound if the category does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)

	// ListByUser retrieves all categories owned by the given user.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error)

	// Update replaces the stored state of an existing category.
	Update(ctx context.Context, category *domain.Category) error

	// Delete removes a category from the store by its ID.
	Delete(ctx context.Context, id uuid.UUID) error
}

// PriorityStore defines the interface for priority data persistence.
type PriorityStore interface {
	// Create saves a new priority to the store.
	Create(ctx context.Context, priority *domain.Priority) error

	// GetByID retrieves a priority by its unique ID.
	// Returns ErrPriorityNotFound if the priority does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Priority, error)

	// ListByUser retrieves all priorities owned by the given user.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Priority, error)

	// Update replaces the stored state of an existing priority.
	Update(ctx context.Context, priority *domain.Priority) error

	// Delete removes a priority from the store by its ID.
	Delete(ctx context.Context, id uuid.UUID) error
}

// TagStore defines the interface for tag data persistence.
type TagStore interface {
	// Create saves a new tag to the store.
	Create(ctx context.Context, tag *domain.Tag) error

	// GetByID retrieves a tag by its unique ID.
	// Returns ErrTagNotFound if the tag does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tag, error)

	// ListByUser retrieves all tags owned by the given user.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Tag, error)

	// Update replaces the stored state of an existing tag.
	Update(ctx context.Context, tag *domain.Tag) error

	// Delete removes a tag from the store by its ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
