package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskdeck-api/internal/domain"
	"github.com/phrazzld/taskdeck-api/internal/store"
)

// notificationListLimit caps how many notifications a list call returns.
const notificationListLimit = 50

// NotificationService provides read and housekeeping operations over a
// user's notifications. Creation happens inside the task service and the
// reminder job, never through this interface.
type NotificationService interface {
	// ListNotifications retrieves the user's newest notifications, capped
	// at 50.
	ListNotifications(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error)

	// MarkRead flags a notification as read.
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) (*domain.Notification, error)

	// MarkAllRead flags every one of the user's notifications as read.
	MarkAllRead(ctx context.Context, userID uuid.UUID) error

	// DeleteNotification removes a single notification.
	DeleteNotification(ctx context.Context, userID, notificationID uuid.UUID) error

	// ClearNotifications removes all of the user's notifications.
	ClearNotifications(ctx context.Context, userID uuid.UUID) error
}

type notificationServiceImpl struct {
	notificationStore store.NotificationStore
	logger            *slog.Logger
}

var _ NotificationService = (*notificationServiceImpl)(nil)

// NewNotificationService creates a new NotificationService.
func NewNotificationService(
	notificationStore store.NotificationStore,
	logger *slog.Logger,
) (NotificationService, error) {
	if notificationStore == nil {
		return nil, domain.NewValidationError("notificationStore", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &notificationServiceImpl{
		notificationStore: notificationStore,
		logger:            logger.With(slog.String("component", "notification_service")),
	}, nil
}

func (s *notificationServiceImpl) ListNotifications(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Notification, error) {
	notifications, err := s.notificationStore.ListByUser(ctx, userID, notificationListLimit)
	if err != nil {
		return nil, NewTaskServiceError("list_notifications", "failed to list notifications", err)
	}
	return notifications, nil
}

func (s *notificationServiceImpl) MarkRead(
	ctx context.Context,
	userID, notificationID uuid.UUID,
) (*domain.Notification, error) {
	notification, err := s.loadOwned(ctx, userID, notificationID)
	if err != nil {
		return nil, err
	}

	if notification.Read {
		return notification, nil
	}
	notification.Read = true

	if err := s.notificationStore.Update(ctx, notification); err != nil {
		return nil, NewTaskServiceError("mark_read", "failed to save notification", err)
	}
	return notification, nil
}

func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.notificationStore.MarkAllReadByUser(ctx, userID); err != nil {
		return NewTaskServiceError("mark_all_read", "failed to mark notifications read", err)
	}
	return nil
}

func (s *notificationServiceImpl) DeleteNotification(
	ctx context.Context,
	userID, notificationID uuid.UUID,
) error {
	if _, err := s.loadOwned(ctx, userID, notificationID); err != nil {
		return err
	}
	if err := s.notificationStore.Delete(ctx, notificationID); err != nil {
		if store.IsNotFoundError(err) {
			return err
		}
		return NewTaskServiceError("delete_notification", "failed to delete notification", err)
	}
	return nil
}

func (s *notificationServiceImpl) ClearNotifications(ctx context.Context, userID uuid.UUID) error {
	if err := s.notificationStore.DeleteByUser(ctx, userID); err != nil {
		return NewTaskServiceError("clear_notifications", "failed to clear notifications", err)
	}
	return nil
}

func (s *notificationServiceImpl) loadOwned(
	ctx context.Context,
	userID, notificationID uuid.UUID,
) (*domain.Notification, error) {
	notification, err := s.notificationStore.GetByID(ctx, notificationID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		return nil, NewTaskServiceError("get_notification", "failed to load notification", err)
	}
	if notification.UserID != userID {
		return nil, ErrNotOwned
	}
	return notification, nil
}
