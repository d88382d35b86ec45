package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Priority-specific validation errors
var (
	// ErrPriorityNameEmpty is returned when a priority's name is empty.
	ErrPriorityNameEmpty = errors.New("priority name cannot be empty")

	// ErrInvalidPriorityLevel is returned when a priority level is not one
	// of the known values.
	ErrInvalidPriorityLevel = errors.New("invalid priority level")
)

// PriorityLevel orders priorities for display and sorting.
type PriorityLevel string

// Valid priority levels.
const (
	PriorityLow    PriorityLevel = "low"
	PriorityMedium PriorityLevel = "medium"
	PriorityHigh   PriorityLevel = "high"
)

// IsValid reports whether the level is one of the known values.
func (l PriorityLevel) IsValid() bool {
	switch l {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Priority is a user-owned urgency label for tasks.
type Priority struct {
	ID        uuid.UUID     `json:"id"`
	UserID    uuid.UUID     `json:"user_id"`
	Name      string        `json:"name"`
	Level     PriorityLevel `json:"level"`
	Color     string        `json:"color"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// NewPriority creates a new Priority owned by the given user.
func NewPriority(userID uuid.UUID, name string, level PriorityLevel, color string) (*Priority, error) {
	now := time.Now().UTC()
	p := &Priority{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Level:     level,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate checks if the Priority has valid data.
func (p *Priority) Validate() error {
	if p.ID == uuid.Nil {
		return ErrInvalidID
	}
	if p.UserID == uuid.Nil {
		return ErrOwnerIDEmpty
	}
	if p.Name == "" {
		return ErrPriorityNameEmpty
	}
	if !p.Level.IsValid() {
		return ErrInvalidPriorityLevel
	}
	return nil
}
