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

// PostgresNotificationStore implements the store.NotificationStore interface
// using a PostgreSQL database as the storage backend.
type PostgresNotificationStore struct {
	db store.DBTX
}

// NewPostgresNotificationStore creates a new PostgreSQL implementation of
// the NotificationStore interface.
func NewPostgresNotificationStore(db store.DBTX) *PostgresNotificationStore {
	return &PostgresNotificationStore{db: db}
}

// Ensure PostgresNotificationStore implements store.NotificationStore interface
var _ store.NotificationStore = (*PostgresNotificationStore)(nil)

// Create implements store.NotificationStore.Create
func (s *PostgresNotificationStore) Create(ctx context.Context, notification *domain.Notification) error {
	if err := notification.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO notifications (id, user_id, type, title, message, read, task_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.db.ExecContext(ctx, query,
		notification.ID, notification.UserID, string(notification.Type),
		notification.Title, notification.Message, notification.Read,
		notification.TaskID, notification.CreatedAt)
	if err != nil {
		return store.NewStoreError("notification", "create", "failed to insert notification", err)
	}

	return nil
}

// GetByID implements store.NotificationStore.GetByID
func (s *PostgresNotificationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	query := `
		SELECT id, user_id, type, title, message, read, task_id, created_at
		FROM notifications WHERE id = $1`

	n, err := scanNotification(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotificationNotFound
		}
		return nil, store.NewStoreError("notification", "get", "failed to query notification", err)
	}

	return n, nil
}

// ListByUser implements store.NotificationStore.ListByUser
func (s *PostgresNotificationStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*domain.Notification, error) {
	query := `
		SELECT id, user_id, type, title, message, read, task_id, created_at
		FROM notifications WHERE user_id = $1 ORDER BY created_at DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, store.NewStoreError("notification", "list", "failed to query notifications", err)
	}
	defer func() { _ = rows.Close() }()

	notifications := []*domain.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, store.NewStoreError("notification", "scan", "failed to scan notification row", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("notification", "scan", "row iteration failed", err)
	}

	return notifications, nil
}

// ExistsForTask implements store.NotificationStore.ExistsForTask
func (s *PostgresNotificationStore) ExistsForTask(
	ctx context.Context,
	userID, taskID uuid.UUID,
	notifType domain.NotificationType,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM notifications
			WHERE user_id = $1 AND task_id = $2 AND type = $3
		)`

	var exists bool
	err := s.db.QueryRowContext(ctx, query, userID, taskID, string(notifType)).Scan(&exists)
	if err != nil {
		return false, store.NewStoreError("notification", "exists", "failed to query notification", err)
	}

	return exists, nil
}

// Update implements store.NotificationStore.Update
func (s *PostgresNotificationStore) Update(ctx context.Context, notification *domain.Notification) error {
	if err := notification.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `UPDATE notifications SET read = $2 WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, notification.ID, notification.Read)
	if err != nil {
		return store.NewStoreError("notification", "update", "failed to update notification", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("notification", "update", "failed to read affected rows", err)
	}
	if affected == 0 {
		return store.ErrNotificationNotFound
	}

	return nil
}

// MarkAllReadByUser implements store.NotificationStore.MarkAllReadByUser
func (s *PostgresNotificationStore) MarkAllReadByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE`, userID)
	if err != nil {
		return store.NewStoreError("notification", "mark_all_read", "failed to mark notifications read", err)
	}
	return nil
}

// Delete implements store.NotificationStore.Delete
func (s *PostgresNotificationStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return store.NewStoreError("notification", "delete", "failed to delete notification", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("notification", "delete", "failed to read affected rows", err)
	}
	if affected == 0 {
		return store.ErrNotificationNotFound
	}

	return nil
}

// DeleteByUser implements store.NotificationStore.DeleteByUser
func (s *PostgresNotificationStore) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM notifications WHERE user_id = $1`, userID)
	if err != nil {
		return store.NewStoreError("notification", "delete_all", "failed to delete notifications", err)
	}
	return nil
}

// scanNotification reads one notification row.
func scanNotification(row rowScanner) (*domain.Notification, error) {
	var (
		n      domain.Notification
		nType  string
		taskID uuid.NullUUID
	)

	err := row.Scan(&n.ID, &n.UserID, &nType, &n.Title, &n.Message, &n.Read, &taskID, &n.CreatedAt)
	if err != nil {
		return nil, err
	}

	n.Type = domain.NotificationType(nType)
	if taskID.Valid {
		id := taskID.UUID
		n.TaskID = &id
	}

	return &n, nil
}
