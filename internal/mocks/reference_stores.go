package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/taskdeck-api/internal/domain"
	"github.com/phrazzld/taskdeck-api/internal/store"
)

// MemoryCategoryStore is an in-memory store.CategoryStore.
type MemoryCategoryStore struct {
	mu         sync.RWMutex
	categories map[uuid.UUID]*domain.Category

	CreateErr error
	GetErr    error
	ListErr   error
}

var _ store.CategoryStore = (*MemoryCategoryStore)(nil)

// NewMemoryCategoryStore creates an empty MemoryCategoryStore.
func NewMemoryCategoryStore() *MemoryCategoryStore {
	return &MemoryCategoryStore{categories: make(map[uuid.UUID]*domain.Category)}
}

func (m *MemoryCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *category
	m.categories[category.ID] = &c
	return nil
}

func (m *MemoryCategoryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	category, ok := m.categories[id]
	if !ok {
		return nil, store.ErrCategoryNotFound
	}
	c := *category
	return &c, nil
}

func (m *MemoryCategoryStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Category
	for _, category := range m.categories {
		if category.UserID == userID {
			c := *category
			out = append(out, &c)
		}
	}
	return out, nil
}

func (m *MemoryCategoryStore) Update(ctx context.Context, category *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[category.ID]; !ok {
		return store.ErrCategoryNotFound
	}
	c := *category
	m.categories[category.ID] = &c
	return nil
}

func (m *MemoryCategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return store.ErrCategoryNotFound
	}
	delete(m.categories, id)
	return nil
}

// MemoryPriorityStore is an in-memory store.PriorityStore.
type MemoryPriorityStore struct {
	mu         sync.RWMutex
	priorities map[uuid.UUID]*domain.Priority

	CreateErr error
	GetErr    error
	ListErr   error
}

var _ store.PriorityStore = (*MemoryPriorityStore)(nil)

// NewMemoryPriorityStore creates an empty MemoryPriorityStore.
func NewMemoryPriorityStore() *MemoryPriorityStore {
	return &MemoryPriorityStore{priorities: make(map[uuid.UUID]*domain.Priority)}
}

func (m *MemoryPriorityStore) Create(ctx context.Context, priority *domain.Priority) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p := *priority
	m.priorities[priority.ID] = &p
	return nil
}

func (m *MemoryPriorityStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Priority, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	priority, ok := m.priorities[id]
	if !ok {
		return nil, store.ErrPriorityNotFound
	}
	p := *priority
	return &p, nil
}

func (m *MemoryPriorityStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Priority, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Priority
	for _, priority := range m.priorities {
		if priority.UserID == userID {
			p := *priority
			out = append(out, &p)
		}
	}
	return out, nil
}

func (m *MemoryPriorityStore) Update(ctx context.Context, priority *domain.Priority) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.priorities[priority.ID]; !ok {
		return store.ErrPriorityNotFound
	}
	p := *priority
	m.priorities[priority.ID] = &p
	return nil
}

func (m *MemoryPriorityStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.priorities[id]; !ok {
		return store.ErrPriorityNotFound
	}
	delete(m.priorities, id)
	return nil
}

// MemoryTagStore is an in-memory store.TagStore.
type MemoryTagStore struct {
	mu   sync.RWMutex
	tags map[uuid.UUID]*domain.Tag

	CreateErr error
	GetErr    error
	ListErr   error
}

var _ store.TagStore = (*MemoryTagStore)(nil)

// NewMemoryTagStore creates an empty MemoryTagStore.
func NewMemoryTagStore() *MemoryTagStore {
	return &MemoryTagStore{tags: make(map[uuid.UUID]*domain.Tag)}
}

func (m *MemoryTagStore) Create(ctx context.Context, tag *domain.Tag) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t := *tag
	m.tags[tag.ID] = &t
	return nil
}

func (m *MemoryTagStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tag, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	tag, ok := m.tags[id]
	if !ok {
		return nil, store.ErrTagNotFound
	}
	t := *tag
	return &t, nil
}

func (m *MemoryTagStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Tag, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Tag
	for _, tag := range m.tags {
		if tag.UserID == userID {
			t := *tag
			out = append(out, &t)
		}
	}
	return out, nil
}

func (m *MemoryTagStore) Update(ctx context.Context, tag *domain.Tag) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tags[tag.ID]; !ok {
		return store.ErrTagNotFound
	}
	t := *tag
	m.tags[tag.ID] = &t
	return nil
}

func (m *MemoryTagStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tags[id]; !ok {
		return store.ErrTagNotFound
	}
	delete(m.tags, id)
	return nil
}
