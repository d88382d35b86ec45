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

// PostgresPriorityStore implements the store.PriorityStore interface using
// a PostgreSQL database as the storage backend.
type PostgresPriorityStore struct {
	db store.DBTX
}

// NewPostgresPriorityStore creates a new PostgreSQL implementation of the
// PriorityStore interface.
func NewPostgresPriorityStore(db store.DBTX) *PostgresPriorityStore {
	return &PostgresPriorityStore{db: db}
}

// Ensure PostgresPriorityStore implements store.PriorityStore interface
var _ store.PriorityStore = (*PostgresPriorityStore)(nil)

// Create implements store.PriorityStore.Create
func (s *PostgresPriorityStore) Create(ctx context.Context, priority *domain.Priority) error {
	if err := priority.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO priorities (id, user_id, name, level, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, query,
		priority.ID, priority.UserID, priority.Name, string(priority.Level),
		priority.Color, priority.CreatedAt, priority.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: priority %q", store.ErrDuplicate, priority.Name)
		}
		return store.NewStoreError("priority", "create", "failed to insert priority", err)
	}

	return nil
}

// GetByID implements store.PriorityStore.GetByID
func (s *PostgresPriorityStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Priority, error) {
	query := `
		SELECT id, user_id, name, level, color, created_at, updated_at
		FROM priorities WHERE id = $1`

	var (
		p     domain.Priority
		level string
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.UserID, &p.Name, &level, &p.Color, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrPriorityNotFound
		}
		return nil, store.NewStoreError("priority", "get", "failed to query priority", err)
	}
	p.Level = domain.PriorityLevel(level)

	return &p, nil
}

// ListByUser implements store.PriorityStore.ListByUser
func (s *PostgresPriorityStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Priority, error) {
	query := `
		SELECT id, user_id, name, level, color, created_at, updated_at
		FROM priorities WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, store.NewStoreError("priority", "list", "failed to query priorities", err)
	}
	defer func() { _ = rows.Close() }()

	priorities := []*domain.Priority{}
	for rows.Next() {
		var (
			p     domain.Priority
			level string
		)
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &level, &p.Color, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, store.NewStoreError("priority", "scan", "failed to scan priority row", err)
		}
		p.Level = domain.PriorityLevel(level)
		priorities = append(priorities, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("priority", "scan", "row iteration failed", err)
	}

	return priorities, nil
}

// Update implements store.PriorityStore.Update
func (s *PostgresPriorityStore) Update(ctx context.Context, priority *domain.Priority) error {
	if err := priority.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE priorities SET name = $2, level = $3, color = $4, updated_at = $5
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		priority.ID, priority.Name, string(priority.Level), priority.Color,
		priority.UpdatedAt)
	if err != nil {
		return store.NewStoreError("priority", "update", "failed to update priority", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("priority", "update", "failed to read affected rows", err)
	}
	if affected == 0 {
		return store.ErrPriorityNotFound
	}

	return nil
}

// Delete implements store.PriorityStore.Delete
func (s *PostgresPriorityStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM priorities WHERE id = $1`, id)
	if err != nil {
		return store.NewStoreError("priority", "delete", "failed to delete priority", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("priority", "delete", "failed to read affected rows", err)
	}
	if affected == 0 {
		return store.ErrPriorityNotFound
	}

	return nil
}
