package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/taskdeck-api/internal/domain"
	"github.com/phrazzld/taskdeck-api/internal/store"
)

// PostgresCategoryStore implements the store.CategoryStore interface using
// a PostgreSQL database as the storage backend.
type PostgresCategoryStore struct {
	db store.DBTX
}

// NewPostgresCategoryStore creates a new PostgreSQL implementation of the
// CategoryStore interface.
func NewPostgresCategoryStore(db store.DBTX) *PostgresCategoryStore {
	return &PostgresCategoryStore{db: db}
}

// Ensure PostgresCategoryStore implements store.CategoryStore interface
var _ store.CategoryStore = (*PostgresCategoryStore)(nil)

// Create implements store.CategoryStore.Create
func (s *PostgresCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	if err := category.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO categories (id, user_id, name, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.db.ExecContext(ctx, query,
		category.ID, category.UserID, category.Name, category.Color,
		category.CreatedAt, category.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: category %q", store.ErrDuplicate, category.Name)
		}
		return store.NewStoreError("category", "create", "failed to insert category", err)
	}

	return nil
}

// GetByID implements store.CategoryStore.GetByID
func (s *PostgresCategoryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	query := `
		SELECT id, user_id, name, color, created_at, updated_at
		FROM categories WHERE id = $1`

	var c domain.Category
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.UserID, &c.Name, &c.Color, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCategoryNotFound
		}
		return nil, store.NewStoreError("category", "get", "failed to query category", err)
	}

	return &c, nil
}

// ListByUser implements store.CategoryStore.ListByUser
func (s *PostgresCategoryStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	query := `
		SELECT id, user_id, name, color, created_at, updated_at
		FROM categories WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, store.NewStoreError("category", "list", "failed to query categories", err)
	}
	defer func() { _ = rows.Close() }()

	categories := []*domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, store.NewStoreError("category", "scan", "failed to scan category row", err)
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("category", "scan", "row iteration failed", err)
	}

	return categories, nil
}

// Update implements store.CategoryStore.Update
func (s *PostgresCategoryStore) Update(ctx context.Context, category *domain.Category) error {
	if err := category.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE categories SET name = $2, color = $3, updated_at = $4
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		category.ID, category.Name, category.Color, category.UpdatedAt)
	if err != nil {
		return store.NewStoreError("category", "update", "failed to update category", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("category", "update", "failed to read affected rows", err)
	}
	if affected == 0 {
		return store.ErrCategoryNotFound
	}

	return nil
}

// Delete implements store.CategoryStore.Delete
func (s *PostgresCategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return store.NewStoreError("category", "delete", "failed to delete category", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("category", "delete", "failed to read affected rows", err)
	}
	if affected == 0 {
		return store.ErrCategoryNotFound
	}

	return nil
}
