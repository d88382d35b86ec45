package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskdeck-api/internal/domain"
	"github.com/phrazzld/taskdeck-api/internal/store"
)

// MemoryTaskStore is an in-memory store.TaskStore.
type MemoryTaskStore struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]*domain.Task

	// db is returned by DB(); tests that exercise transactional paths set
	// it to an sqlmock connection.
	db *sql.DB

	// Error injection. When set, the corresponding method returns the
	// error instead of touching the map.
	CreateErr error
	GetErr    error
	UpdateErr error
	DeleteErr error
	ListErr   error
}

// Ensure MemoryTaskStore implements store.TaskStore
var _ store.TaskStore = (*MemoryTaskStore)(nil)

// NewMemoryTaskStore creates an empty MemoryTaskStore.
func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{tasks: make(map[uuid.UUID]*domain.Task)}
}

// SetDB sets the connection returned by DB().
func (m *MemoryTaskStore) SetDB(db *sql.DB) { m.db = db }

func (m *MemoryTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.tasks[task.ID]; exists {
		return store.NewStoreError("task", "create", "duplicate ID", store.ErrDuplicate)
	}
	m.tasks[task.ID] = cloneTask(task)
	return nil
}

func (m *MemoryTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	task, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return cloneTask(task), nil
}

func (m *MemoryTaskStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Task
	for _, task := range m.tasks {
		if task.UserID == userID {
			out = append(out, cloneTask(task))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryTaskStore) ListDueBetween(ctx context.Context, from, to time.Time) ([]*domain.Task, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Task
	for _, task := range m.tasks {
		if task.Completed {
			continue
		}
		if !task.DueDate.Before(from) && task.DueDate.Before(to) {
			out = append(out, cloneTask(task))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

func (m *MemoryTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[task.ID]; !ok {
		return store.ErrTaskNotFound
	}
	m.tasks[task.ID] = cloneTask(task)
	return nil
}

func (m *MemoryTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

// WithTx returns the store itself: memory writes are not transactional, and
// tests assert on the end state, not on rollback behavior.
func (m *MemoryTaskStore) WithTx(tx *sql.Tx) store.TaskStore { return m }

func (m *MemoryTaskStore) DB() *sql.DB { return m.db }

// Len reports the number of stored tasks.
func (m *MemoryTaskStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tasks)
}

// All returns a copy of every stored task.
func (m *MemoryTaskStore) All() []*domain.Task {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Task, 0, len(m.tasks))
	for _, task := range m.tasks {
		out = append(out, cloneTask(task))
	}
	return out
}

func cloneTask(t *domain.Task) *domain.Task {
	c := *t
	c.Subtasks = append([]domain.Subtask{}, t.Subtasks...)
	c.Tags = append([]uuid.UUID{}, t.Tags...)
	c.Attachments = append([]domain.Attachment{}, t.Attachments...)
	if t.Recurrence != nil {
		r := t.Recurrence.Clone()
		c.Recurrence = &r
	}
	if t.ParentTaskID != nil {
		id := *t.ParentTaskID
		c.ParentTaskID = &id
	}
	return &c
}
