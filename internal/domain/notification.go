package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Notification-specific validation errors
var (
	// ErrNotificationTitleEmpty is returned when a notification's title is empty.
	ErrNotificationTitleEmpty = errors.New("notification title cannot be empty")

	// ErrNotificationMessageEmpty is returned when a notification's message is empty.
	ErrNotificationMessageEmpty = errors.New("notification message cannot be empty")
)

// NotificationType classifies a user-visible notification.
type NotificationType string

// Valid notification types.
const (
	NotificationTaskDue       NotificationType = "task-due"
	NotificationTaskCompleted NotificationType = "task-completed"
	NotificationTaskAssigned  NotificationType = "task-assigned"
	NotificationSystem        NotificationType = "system"
)

// IsValid reports whether the type is one of the known values.
func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationTaskDue, NotificationTaskCompleted,
		NotificationTaskAssigned, NotificationSystem:
		return true
	default:
		return false
	}
}

// Notification is a user-visible record of a lifecycle event. It is created
// by the task service, mutated only by read-toggling, and deleted
// individually or in bulk by its owner.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	TaskID    *uuid.UUID       `json:"task_id,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// NewNotification creates a new unread Notification owned by the given user.
// taskID may be nil for notifications not tied to a specific task.
func NewNotification(
	userID uuid.UUID,
	notifType NotificationType,
	title, message string,
	taskID *uuid.UUID,
) (*Notification, error) {
	n := &Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      notifType,
		Title:     title,
		Message:   message,
		Read:      false,
		TaskID:    taskID,
		CreatedAt: time.Now().UTC(),
	}

	if err := n.Validate(); err != nil {
		return nil, err
	}

	return n, nil
}

// Validate checks if the Notification has valid data.
func (n *Notification) Validate() error {
	if n.ID == uuid.Nil {
		return ErrInvalidID
	}
	if n.UserID == uuid.Nil {
		return ErrOwnerIDEmpty
	}
	if !n.Type.IsValid() {
		return ErrInvalidNotificationType
	}
	if n.Title == "" {
		return ErrNotificationTitleEmpty
	}
	if n.Message == "" {
		return ErrNotificationMessageEmpty
	}
	return nil
}
