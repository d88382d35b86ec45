package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskdeck-api/internal/domain"
	"github.com/phrazzld/taskdeck-api/internal/service"
)

// Request structures for the task endpoints. Responses reuse the domain
// types directly (TaskDetail and friends marshal to the wire shape).

// RecurrenceRequest defines a recurrence pattern in a request payload.
type RecurrenceRequest struct {
	Frequency  string     `json:"frequency"              validate:"required,oneof=daily weekly monthly yearly"`
	Interval   int        `json:"interval"               validate:"required,min=1"`
	DaysOfWeek []int      `json:"days_of_week,omitempty" validate:"omitempty,dive,min=0,max=6"`
	DayOfMonth int        `json:"day_of_month,omitempty" validate:"omitempty,min=1,max=31"`
	EndDate    *time.Time `json:"end_date,omitempty"`
}

// ToDomain converts the request pattern to its domain form.
func (r *RecurrenceRequest) ToDomain() *domain.RecurrencePattern {
	if r == nil {
		return nil
	}
	return &domain.RecurrencePattern{
		Frequency:  domain.RecurrenceFrequency(r.Frequency),
		Interval:   r.Interval,
		DaysOfWeek: r.DaysOfWeek,
		DayOfMonth: r.DayOfMonth,
		EndDate:    r.EndDate,
	}
}

// CreateTaskRequest defines the payload for creating a task.
type CreateTaskRequest struct {
	Title       string             `json:"title"                 validate:"required,max=500"`
	Description string             `json:"description,omitempty" validate:"max=5000"`
	CategoryID  uuid.UUID          `json:"category_id"           validate:"required"`
	PriorityID  uuid.UUID          `json:"priority_id"           validate:"required"`
	DueDate     time.Time          `json:"due_date"              validate:"required"`
	Image       string             `json:"image,omitempty"`
	Tags        []uuid.UUID        `json:"tags,omitempty"`
	Recurrence  *RecurrenceRequest `json:"recurrence,omitempty"`
}

// ToInput converts the request to the service-layer input.
func (r *CreateTaskRequest) ToInput() service.CreateTaskInput {
	return service.CreateTaskInput{
		Title:       r.Title,
		Description: r.Description,
		CategoryID:  r.CategoryID,
		PriorityID:  r.PriorityID,
		DueDate:     r.DueDate,
		Image:       r.Image,
		Tags:        r.Tags,
		Recurrence:  r.Recurrence.ToDomain(),
	}
}

// UpdateTaskRequest defines the payload for a partial task update.
// Absent fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string            `json:"title,omitempty"       validate:"omitempty,min=1,max=500"`
	Description *string            `json:"description,omitempty" validate:"omitempty,max=5000"`
	CategoryID  *uuid.UUID         `json:"category_id,omitempty"`
	PriorityID  *uuid.UUID         `json:"priority_id,omitempty"`
	Status      *string            `json:"status,omitempty"      validate:"omitempty,oneof=pending in-progress completed"`
	DueDate     *time.Time         `json:"due_date,omitempty"`
	Completed   *bool              `json:"completed,omitempty"`
	Image       *string            `json:"image,omitempty"`
	Tags        *[]uuid.UUID       `json:"tags,omitempty"`
	Recurrence  *RecurrenceRequest `json:"recurrence,omitempty"`

	// ClearRecurrence removes the recurrence pattern; it wins over
	// Recurrence when both are present.
	ClearRecurrence bool `json:"clear_recurrence,omitempty"`
}

// ToPatch converts the request to the service-layer patch.
func (r *UpdateTaskRequest) ToPatch() service.TaskPatch {
	patch := service.TaskPatch{
		Title:           r.Title,
		Description:     r.Description,
		CategoryID:      r.CategoryID,
		PriorityID:      r.PriorityID,
		DueDate:         r.DueDate,
		Completed:       r.Completed,
		Image:           r.Image,
		Tags:            r.Tags,
		Recurrence:      r.Recurrence.ToDomain(),
		ClearRecurrence: r.ClearRecurrence,
	}
	if r.Status != nil {
		status := domain.TaskStatus(*r.Status)
		patch.Status = &status
	}
	return patch
}

// CreateSubtaskRequest defines the payload for adding a subtask.
type CreateSubtaskRequest struct {
	Title string `json:"title" validate:"required,max=500"`
}

// UpdateSubtaskRequest defines the payload for a partial subtask update.
type UpdateSubtaskRequest struct {
	Title     *string `json:"title,omitempty" validate:"omitempty,min=1,max=500"`
	Completed *bool   `json:"completed,omitempty"`
}

// ToPatch converts the request to the service-layer patch.
func (r *UpdateSubtaskRequest) ToPatch() service.SubtaskPatch {
	return service.SubtaskPatch{Title: r.Title, Completed: r.Completed}
}

// CreateCategoryRequest defines the payload for creating a category.
type CreateCategoryRequest struct {
	Name  string `json:"name"            validate:"required,max=100"`
	Color string `json:"color,omitempty" validate:"omitempty,max=32"`
}

// UpdateCategoryRequest defines the payload for a partial category update.
type UpdateCategoryRequest struct {
	Name  *string `json:"name,omitempty"  validate:"omitempty,min=1,max=100"`
	Color *string `json:"color,omitempty" validate:"omitempty,max=32"`
}

// CreatePriorityRequest defines the payload for creating a priority.
type CreatePriorityRequest struct {
	Name  string `json:"name"            validate:"required,max=100"`
	Level string `json:"level"           validate:"required,oneof=low medium high"`
	Color string `json:"color,omitempty" validate:"omitempty,max=32"`
}

// UpdatePriorityRequest defines the payload for a partial priority update.
type UpdatePriorityRequest struct {
	Name  *string `json:"name,omitempty"  validate:"omitempty,min=1,max=100"`
	Level *string `json:"level,omitempty" validate:"omitempty,oneof=low medium high"`
	Color *string `json:"color,omitempty" validate:"omitempty,max=32"`
}

// CreateTagRequest defines the payload for creating a tag.
type CreateTagRequest struct {
	Name  string `json:"name"            validate:"required,max=100"`
	Color string `json:"color,omitempty" validate:"omitempty,max=32"`
}

// UpdateTagRequest defines the payload for a partial tag update.
type UpdateTagRequest struct {
	Name  *string `json:"name,omitempty"  validate:"omitempty,min=1,max=100"`
	Color *string `json:"color,omitempty" validate:"omitempty,max=32"`
}
