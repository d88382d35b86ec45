package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskdeck-api/internal/domain"
)

// NotificationStore defines the interface for notification persistence.
// It is the sink for lifecycle notifications emitted by the task service.
type NotificationStore interface {
	// Create saves a new notification to the store.
	Create(ctx context.Context, notification *domain.Notification) error

	// GetByID retrieves a notification by its unique ID.
	// Returns ErrNotificationNotFound if the notification does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)

	// ListByUser retrieves notifications owned by the given user, newest
	// first, capped at limit (limit <= 0 means no cap).
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Notification, error)

	// ExistsForTask reports whether the user already has a notification of
	// the given type referencing the given task. Used by the reminder job
	// to avoid duplicate due-soon notifications.
	ExistsForTask(ctx context.Context, userID, taskID uuid.UUID, notifType domain.NotificationType) (bool, error)

	// Update replaces the stored state of an existing notification.
	// Only the read flag is expected to change after creation.
	Update(ctx context.Context, notification *domain.Notification) error

	// MarkAllReadByUser flags every notification owned by the given user
	// as read.
	MarkAllReadByUser(ctx context.Context, userID uuid.UUID) error

	// Delete removes a notification from the store by its ID.
	// Returns ErrNotificationNotFound if the notification does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByUser removes all notifications owned by the given user.
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
