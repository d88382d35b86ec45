package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Reference-entity validation errors
var (
	// ErrCategoryNameEmpty is returned when a category's name is empty.
	ErrCategoryNameEmpty = errors.New("category name cannot be empty")

	// ErrOwnerIDEmpty is returned when an owned entity is missing its user ID.
	ErrOwnerIDEmpty = errors.New("user ID cannot be empty")
)

// Category is a user-owned grouping for tasks.
type Category struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCategory creates a new Category owned by the given user.
func NewCategory(userID uuid.UUID, name, color string) (*Category, error) {
	now := time.Now().UTC()
	c := &Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks if the Category has valid data.
func (c *Category) Validate() error {
	if c.ID == uuid.Nil {
		return ErrInvalidID
	}
	if c.UserID == uuid.Nil {
		return ErrOwnerIDEmpty
	}
	if c.Name == "" {
		return ErrCategoryNameEmpty
	}
	return nil
}
