package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/taskdeck-api/internal/domain"
	"github.com/phrazzld/taskdeck-api/internal/mocks"
	"github.com/phrazzld/taskdeck-api/internal/store"
)

func TestCategoryServiceOwnership(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	categories := mocks.NewMemoryCategoryStore()
	svc, err := NewCategoryService(categories, nil)
	require.NoError(t, err)

	owner := uuid.New()
	intruder := uuid.New()

	category, err := svc.CreateCategory(ctx, owner, "Work", "#3B82F6")
	require.NoError(t, err)

	name := "Job"
	_, err = svc.UpdateCategory(ctx, intruder, category.ID, CategoryPatch{Name: &name})
	assert.ErrorIs(t, err, ErrNotOwned)

	err = svc.DeleteCategory(ctx, intruder, category.ID)
	assert.ErrorIs(t, err, ErrNotOwned)

	updated, err := svc.UpdateCategory(ctx, owner, category.ID, CategoryPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Job", updated.Name)
	assert.Equal(t, "#3B82F6", updated.Color, "unpatched field unchanged")

	require.NoError(t, svc.DeleteCategory(ctx, owner, category.ID))
	err = svc.DeleteCategory(ctx, owner, category.ID)
	assert.ErrorIs(t, err, store.ErrCategoryNotFound)
}

func TestCategoryServiceValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, err := NewCategoryService(mocks.NewMemoryCategoryStore(), nil)
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, uuid.New(), "", "#fff")
	assert.ErrorIs(t, err, domain.ErrCategoryNameEmpty)
}

func TestPriorityServiceLevels(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, err := NewPriorityService(mocks.NewMemoryPriorityStore(), nil)
	require.NoError(t, err)

	owner := uuid.New()
	priority, err := svc.CreatePriority(ctx, owner, "High", domain.PriorityHigh, "#EF4444")
	require.NoError(t, err)

	bad := domain.PriorityLevel("critical")
	_, err = svc.UpdatePriority(ctx, owner, priority.ID, PriorityPatch{Level: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidPriorityLevel)

	medium := domain.PriorityMedium
	updated, err := svc.UpdatePriority(ctx, owner, priority.ID, PriorityPatch{Level: &medium})
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityMedium, updated.Level)
}

func TestTagServiceOwnership(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, err := NewTagService(mocks.NewMemoryTagStore(), nil)
	require.NoError(t, err)

	owner := uuid.New()
	tag, err := svc.CreateTag(ctx, owner, "urgent", "#DC2626")
	require.NoError(t, err)

	err = svc.DeleteTag(ctx, uuid.New(), tag.ID)
	assert.ErrorIs(t, err, ErrNotOwned)

	tags, err := svc.ListTags(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestDefaultsSeeder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	categories := mocks.NewMemoryCategoryStore()
	priorities := mocks.NewMemoryPriorityStore()
	seeder, err := NewDefaultsSeeder(categories, priorities, nil)
	require.NoError(t, err)

	userID := uuid.New()
	require.NoError(t, seeder.SeedUser(ctx, userID))

	seededCategories, err := categories.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, seededCategories, 5)

	seededPriorities, err := priorities.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, seededPriorities, 3)

	levels := map[domain.PriorityLevel]bool{}
	for _, p := range seededPriorities {
		levels[p.Level] = true
	}
	assert.True(t, levels[domain.PriorityLow])
	assert.True(t, levels[domain.PriorityMedium])
	assert.True(t, levels[domain.PriorityHigh])

	// Seeding again does not duplicate.
	require.NoError(t, seeder.SeedUser(ctx, userID))
	seededCategories, err = categories.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, seededCategories, 5)

	// A different user gets their own set.
	otherID := uuid.New()
	require.NoError(t, seeder.SeedUser(ctx, otherID))
	otherCategories, err := categories.ListByUser(ctx, otherID)
	require.NoError(t, err)
	assert.Len(t, otherCategories, 5)
}
