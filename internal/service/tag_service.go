package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskdeck-api/internal/domain"
	"github.com/phrazzld/taskdeck-api/internal/platform/logger"
	"github.com/phrazzld/taskdeck-api/internal/store"
)

// TagPatch is a partial update of a tag. Nil fields are unchanged.
type TagPatch struct {
	Name  *string
	Color *string
}

// TagService provides ownership-checked CRUD for tags.
type TagService interface {
	CreateTag(ctx context.Context, userID uuid.UUID, name, color string) (*domain.Tag, error)
	ListTags(ctx context.Context, userID uuid.UUID) ([]*domain.Tag, error)
	UpdateTag(ctx context.Context, userID, tagID uuid.UUID, patch TagPatch) (*domain.Tag, error)
	DeleteTag(ctx context.Context, userID, tagID uuid.UUID) error
}

type tagServiceImpl struct {
	tagStore store.TagStore
	logger   *slog.Logger
}

var _ TagService = (*tagServiceImpl)(nil)

// NewTagService creates a new TagService.
func NewTagService(tagStore store.TagStore, logger *slog.Logger) (TagService, error) {
	if tagStore == nil {
		return nil, domain.NewValidationError("tagStore", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &tagServiceImpl{
		tagStore: tagStore,
		logger:   logger.With(slog.String("component", "tag_service")),
	}, nil
}

func (s *tagServiceImpl) CreateTag(
	ctx context.Context,
	userID uuid.UUID,
	name, color string,
) (*domain.Tag, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tag, err := domain.NewTag(userID, name, color)
	if err != nil {
		return nil, err
	}

	if err := s.tagStore.Create(ctx, tag); err != nil {
		log.Error("failed to create tag",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewTaskServiceError("create_tag", "failed to save tag", err)
	}
	return tag, nil
}

func (s *tagServiceImpl) ListTags(ctx context.Context, userID uuid.UUID) ([]*domain.Tag, error) {
	tags, err := s.tagStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewTaskServiceError("list_tags", "failed to list tags", err)
	}
	return tags, nil
}

func (s *tagServiceImpl) UpdateTag(
	ctx context.Context,
	userID, tagID uuid.UUID,
	patch TagPatch,
) (*domain.Tag, error) {
	tag, err := s.loadOwned(ctx, userID, tagID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		tag.Name = *patch.Name
	}
	if patch.Color != nil {
		tag.Color = *patch.Color
	}
	if err := tag.Validate(); err != nil {
		return nil, err
	}
	tag.UpdatedAt = time.Now().UTC()

	if err := s.tagStore.Update(ctx, tag); err != nil {
		return nil, NewTaskServiceError("update_tag", "failed to save tag", err)
	}
	return tag, nil
}

func (s *tagServiceImpl) DeleteTag(ctx context.Context, userID, tagID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, userID, tagID); err != nil {
		return err
	}
	if err := s.tagStore.Delete(ctx, tagID); err != nil {
		if store.IsNotFoundError(err) {
			return err
		}
		return NewTaskServiceError("delete_tag", "failed to delete tag", err)
	}
	return nil
}

func (s *tagServiceImpl) loadOwned(ctx context.Context, userID, tagID uuid.UUID) (*domain.Tag, error) {
	tag, err := s.tagStore.GetByID(ctx, tagID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		return nil, NewTaskServiceError("get_tag", "failed to load tag", err)
	}
	if tag.UserID != userID {
		return nil, ErrNotOwned
	}
	return tag, nil
}
