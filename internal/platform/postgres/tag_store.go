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

// PostgresTagStore implements the store.TagStore interface using a
// PostgreSQL database as the storage backend.
type PostgresTagStore struct {
	db store.DBTX
}

// NewPostgresTagStore creates a new PostgreSQL implementation of the
// TagStore interface.
func NewPostgresTagStore(db store.DBTX) *PostgresTagStore {
	return &PostgresTagStore{db: db}
}

// Ensure PostgresTagStore implements store.TagStore interface
var _ store.TagStore = (*PostgresTagStore)(nil)

// Create implements store.TagStore.Create
func (s *PostgresTagStore) Create(ctx context.Context, tag *domain.Tag) error {
	if err := tag.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO tags (id, user_id, name, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.db.ExecContext(ctx, query,
		tag.ID, tag.UserID, tag.Name, tag.Color, tag.CreatedAt, tag.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: tag %q", store.ErrDuplicate, tag.Name)
		}
		return store.NewStoreError("tag", "create", "failed to insert tag", err)
	}

	return nil
}

// GetByID implements store.TagStore.GetByID
func (s *PostgresTagStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tag, error) {
	query := `
		SELECT id, user_id, name, color, created_at, updated_at
		FROM tags WHERE id = $1`

	var t domain.Tag
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.UserID, &t.Name, &t.Color, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTagNotFound
		}
		return nil, store.NewStoreError("tag", "get", "failed to query tag", err)
	}

	return &t, nil
}

// ListByUser implements store.TagStore.ListByUser
func (s *PostgresTagStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Tag, error) {
	query := `
		SELECT id, user_id, name, color, created_at, updated_at
		FROM tags WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, store.NewStoreError("tag", "list", "failed to query tags", err)
	}
	defer func() { _ = rows.Close() }()

	tags := []*domain.Tag{}
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.Color, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, store.NewStoreError("tag", "scan", "failed to scan tag row", err)
		}
		tags = append(tags, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("tag", "scan", "row iteration failed", err)
	}

	return tags, nil
}

// Update implements store.TagStore.Update
func (s *PostgresTagStore) Update(ctx context.Context, tag *domain.Tag) error {
	if err := tag.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `UPDATE tags SET name = $2, color = $3, updated_at = $4 WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, tag.ID, tag.Name, tag.Color, tag.UpdatedAt)
	if err != nil {
		return store.NewStoreError("tag", "update", "failed to update tag", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("tag", "update", "failed to read affected rows", err)
	}
	if affected == 0 {
		return store.ErrTagNotFound
	}

	return nil
}

// Delete implements store.TagStore.Delete
func (s *PostgresTagStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return store.NewStoreError("tag", "delete", "failed to delete tag", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("tag", "delete", "failed to read affected rows", err)
	}
	if affected == 0 {
		return store.ErrTagNotFound
	}

	return nil
}
