package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/taskdeck-api/internal/domain"
	"github.com/phrazzld/taskdeck-api/internal/store"
)

// MemoryNotificationStore is an in-memory store.NotificationStore.
type MemoryNotificationStore struct {
	mu            sync.RWMutex
	notifications map[uuid.UUID]*domain.Notification

	CreateErr error
	GetErr    error
	ListErr   error
}

var _ store.NotificationStore = (*MemoryNotificationStore)(nil)

// NewMemoryNotificationStore creates an empty MemoryNotificationStore.
func NewMemoryNotificationStore() *MemoryNotificationStore {
	return &MemoryNotificationStore{notifications: make(map[uuid.UUID]*domain.Notification)}
}

func (m *MemoryNotificationStore) Create(ctx context.Context, notification *domain.Notification) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications[notification.ID] = cloneNotification(notification)
	return nil
}

func (m *MemoryNotificationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	notification, ok := m.notifications[id]
	if !ok {
		return nil, store.ErrNotificationNotFound
	}
	return cloneNotification(notification), nil
}

func (m *MemoryNotificationStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*domain.Notification, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Notification
	for _, notification := range m.notifications {
		if notification.UserID == userID {
			out = append(out, cloneNotification(notification))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryNotificationStore) ExistsForTask(
	ctx context.Context,
	userID, taskID uuid.UUID,
	notifType domain.NotificationType,
) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, notification := range m.notifications {
		if notification.UserID == userID &&
			notification.Type == notifType &&
			notification.TaskID != nil && *notification.TaskID == taskID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryNotificationStore) Update(ctx context.Context, notification *domain.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.notifications[notification.ID]; !ok {
		return store.ErrNotificationNotFound
	}
	m.notifications[notification.ID] = cloneNotification(notification)
	return nil
}

func (m *MemoryNotificationStore) MarkAllReadByUser(ctx context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, notification := range m.notifications {
		if notification.UserID == userID {
			notification.Read = true
		}
	}
	return nil
}

func (m *MemoryNotificationStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.notifications[id]; !ok {
		return store.ErrNotificationNotFound
	}
	delete(m.notifications, id)
	return nil
}

func (m *MemoryNotificationStore) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, notification := range m.notifications {
		if notification.UserID == userID {
			delete(m.notifications, id)
		}
	}
	return nil
}

// ByUser returns a copy of the user's notifications in arbitrary order.
func (m *MemoryNotificationStore) ByUser(userID uuid.UUID) []*domain.Notification {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Notification
	for _, notification := range m.notifications {
		if notification.UserID == userID {
			out = append(out, cloneNotification(notification))
		}
	}
	return out
}

func cloneNotification(n *domain.Notification) *domain.Notification {
	c := *n
	if n.TaskID != nil {
		id := *n.TaskID
		c.TaskID = &id
	}
	return &c
}
