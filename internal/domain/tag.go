package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrTagNameEmpty is returned when a tag's name is empty.
var ErrTagNameEmpty = errors.New("tag name cannot be empty")

// Tag is a user-owned free-form label attached to tasks by ID.
type Tag struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTag creates a new Tag owned by the given user.
func NewTag(userID uuid.UUID, name, color string) (*Tag, error) {
	now := time.Now().UTC()
	t := &Tag{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

// Validate checks if the Tag has valid data.
func (t *Tag) Validate() error {
	if t.ID == uuid.Nil {
		return ErrInvalidID
	}
	if t.UserID == uuid.Nil {
		return ErrOwnerIDEmpty
	}
	if t.Name == "" {
		return ErrTagNameEmpty
	}
	return nil
}
