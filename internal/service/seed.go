package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskdeck-api/internal/domain"
	"github.com/phrazzld/taskdeck-api/internal/platform/logger"
	"github.com/phrazzld/taskdeck-api/internal/store"
)

// Default reference data created for a user on first contact. Users can
// rename or delete any of these afterwards.
var (
	defaultCategories = []struct {
		Name  string
		Color string
	}{
		{"Work", "#3B82F6"},
		{"Personal", "#10B981"},
		{"Shopping", "#F59E0B"},
		{"Health", "#EF4444"},
		{"Learning", "#8B5CF6"},
	}

	defaultPriorities = []struct {
		Name  string
		Level domain.PriorityLevel
		Color string
	}{
		{"Low", domain.PriorityLow, "#10B981"},
		{"Medium", domain.PriorityMedium, "#F59E0B"},
		{"High", domain.PriorityHigh, "#EF4444"},
	}
)

// DefaultsSeeder creates the starter categories and priorities for a user.
type DefaultsSeeder struct {
	categoryStore store.CategoryStore
	priorityStore store.PriorityStore
	logger        *slog.Logger
}

// NewDefaultsSeeder creates a DefaultsSeeder.
func NewDefaultsSeeder(
	categoryStore store.CategoryStore,
	priorityStore store.PriorityStore,
	logger *slog.Logger,
) (*DefaultsSeeder, error) {
	if categoryStore == nil {
		return nil, domain.NewValidationError("categoryStore", "cannot be nil", domain.ErrValidation)
	}
	if priorityStore == nil {
		return nil, domain.NewValidationError("priorityStore", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultsSeeder{
		categoryStore: categoryStore,
		priorityStore: priorityStore,
		logger:        logger.With(slog.String("component", "defaults_seeder")),
	}, nil
}

// SeedUser creates the default categories and priorities for the given user
// if the user has none yet. Seeding an already-seeded user is a no-op.
func (s *DefaultsSeeder) SeedUser(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	categories, err := s.categoryStore.ListByUser(ctx, userID)
	if err != nil {
		return NewTaskServiceError("seed_user", "failed to list categories", err)
	}
	if len(categories) == 0 {
		for _, c := range defaultCategories {
			category, err := domain.NewCategory(userID, c.Name, c.Color)
			if err != nil {
				return err
			}
			if err := s.categoryStore.Create(ctx, category); err != nil {
				return NewTaskServiceError("seed_user", "failed to create default category", err)
			}
		}
		log.Info("seeded default categories",
			slog.String("user_id", userID.String()),
			slog.Int("count", len(defaultCategories)))
	}

	priorities, err := s.priorityStore.ListByUser(ctx, userID)
	if err != nil {
		return NewTaskServiceError("seed_user", "failed to list priorities", err)
	}
	if len(priorities) == 0 {
		for _, p := range defaultPriorities {
			priority, err := domain.NewPriority(userID, p.Name, p.Level, p.Color)
			if err != nil {
				return err
			}
			if err := s.priorityStore.Create(ctx, priority); err != nil {
				return NewTaskServiceError("seed_user", "failed to create default priority", err)
			}
		}
		log.Info("seeded default priorities",
			slog.String("user_id", userID.String()),
			slog.Int("count", len(defaultPriorities)))
	}

	return nil
}
