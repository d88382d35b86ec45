package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Task-specific validation errors
var (
	// ErrTaskIDEmpty is returned when a task ID is empty or nil.
	ErrTaskIDEmpty = errors.New("task ID cannot be empty")

	// ErrTaskUserIDEmpty is returned when a task's user ID is empty or nil.
	ErrTaskUserIDEmpty = errors.New("task user ID cannot be empty")

	// ErrTaskTitleEmpty is returned when a task's title is empty.
	ErrTaskTitleEmpty = errors.New("task title cannot be empty")

	// ErrTaskCategoryEmpty is returned when a task's category reference is missing.
	ErrTaskCategoryEmpty = errors.New("task category ID cannot be empty")

	// ErrTaskPriorityEmpty is returned when a task's priority reference is missing.
	ErrTaskPriorityEmpty = errors.New("task priority ID cannot be empty")

	// ErrTaskDueDateEmpty is returned when a task's due date is missing.
	ErrTaskDueDateEmpty = errors.New("task due date cannot be empty")

	// ErrTaskCompletedMismatch is returned when the completed flag disagrees
	// with the status field.
	ErrTaskCompletedMismatch = errors.New("task completed flag must match status")
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

// Valid task statuses.
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// IsValid reports whether the status is one of the known values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// Subtask is a checklist item embedded in a task. Ordering is append-only:
// a new subtask always takes the next order index.
type Subtask struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSubtask creates a new Subtask with a fresh ID and the given order index.
func NewSubtask(title string, order int, now time.Time) Subtask {
	return Subtask{
		ID:        uuid.New(),
		Title:     title,
		Completed: false,
		Order:     order,
		CreatedAt: now,
	}
}

// Attachment is a file reference embedded in a task. The file itself lives
// in external storage; only the metadata is kept here.
type Attachment struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	Size       int64     `json:"size"`
	Type       string    `json:"type"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Task represents a user-owned task with optional subtasks, tags,
// attachments and a recurrence pattern. ParentTaskID links a recurrence
// successor back to the task that spawned it; it is never an ownership
// pointer.
type Task struct {
	ID           uuid.UUID          `json:"id"`
	UserID       uuid.UUID          `json:"user_id"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	CategoryID   uuid.UUID          `json:"category_id"`
	PriorityID   uuid.UUID          `json:"priority_id"`
	Status       TaskStatus         `json:"status"`
	DueDate      time.Time          `json:"due_date"`
	Completed    bool               `json:"completed"`
	Image        string             `json:"image,omitempty"`
	Subtasks     []Subtask          `json:"subtasks"`
	Tags         []uuid.UUID        `json:"tags"`
	Attachments  []Attachment       `json:"attachments"`
	Recurrence   *RecurrencePattern `json:"recurrence,omitempty"`
	ParentTaskID *uuid.UUID         `json:"parent_task_id,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// NewTask creates a new Task owned by the given user.
// It generates a new UUID for the task ID and sets the creation/update
// timestamps. Returns an error if validation fails.
func NewTask(
	userID uuid.UUID,
	title, description string,
	categoryID, priorityID uuid.UUID,
	dueDate time.Time,
) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		CategoryID:  categoryID,
		PriorityID:  priorityID,
		Status:      TaskStatusPending,
		DueDate:     dueDate,
		Completed:   false,
		Subtasks:    []Subtask{},
		Tags:        []uuid.UUID{},
		Attachments: []Attachment{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}

	if t.UserID == uuid.Nil {
		return ErrTaskUserIDEmpty
	}

	if t.Title == "" {
		return ErrTaskTitleEmpty
	}

	if t.CategoryID == uuid.Nil {
		return ErrTaskCategoryEmpty
	}

	if t.PriorityID == uuid.Nil {
		return ErrTaskPriorityEmpty
	}

	if t.DueDate.IsZero() {
		return ErrTaskDueDateEmpty
	}

	if !t.Status.IsValid() {
		return ErrInvalidStatus
	}

	// Invariant: completed == true iff status == completed.
	if t.Completed != (t.Status == TaskStatusCompleted) {
		return ErrTaskCompletedMismatch
	}

	if t.Recurrence != nil {
		if err := t.Recurrence.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// SetCompleted updates the completed flag and keeps the status field
// consistent with it. Marking a non-completed task incomplete leaves the
// existing pending/in-progress status untouched.
func (t *Task) SetCompleted(completed bool) {
	t.Completed = completed
	if completed {
		t.Status = TaskStatusCompleted
	} else if t.Status == TaskStatusCompleted {
		t.Status = TaskStatusPending
	}
}

// SetStatus updates the status field and keeps the completed flag
// consistent with it.
func (t *Task) SetStatus(status TaskStatus) {
	t.Status = status
	t.Completed = status == TaskStatusCompleted
}

// SpawnSuccessor builds the next occurrence of a recurring task.
// The successor keeps the owner, title, description, category, priority,
// image, tags and recurrence pattern of the original. Its status is reset to
// pending, every subtask gets a fresh ID with its completed flag cleared,
// and ParentTaskID points back at the original task.
func (t *Task) SpawnSuccessor(nextDue time.Time, now time.Time) *Task {
	parentID := t.ID

	subtasks := make([]Subtask, len(t.Subtasks))
	for i, st := range t.Subtasks {
		subtasks[i] = Subtask{
			ID:        uuid.New(),
			Title:     st.Title,
			Completed: false,
			Order:     st.Order,
			CreatedAt: now,
		}
	}

	tags := make([]uuid.UUID, len(t.Tags))
	copy(tags, t.Tags)

	var recurrence *RecurrencePattern
	if t.Recurrence != nil {
		r := t.Recurrence.Clone()
		recurrence = &r
	}

	return &Task{
		ID:           uuid.New(),
		UserID:       t.UserID,
		Title:        t.Title,
		Description:  t.Description,
		CategoryID:   t.CategoryID,
		PriorityID:   t.PriorityID,
		Status:       TaskStatusPending,
		DueDate:      nextDue,
		Completed:    false,
		Image:        t.Image,
		Subtasks:     subtasks,
		Tags:         tags,
		Attachments:  []Attachment{},
		Recurrence:   recurrence,
		ParentTaskID: &parentID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// FindSubtask returns the index of the subtask with the given ID, or -1.
func (t *Task) FindSubtask(id uuid.UUID) int {
	for i, st := range t.Subtasks {
		if st.ID == id {
			return i
		}
	}
	return -1
}

// TaskDetail is the resolved form of a Task: the category, priority and tag
// references are dereferenced into embedded objects so that consumers (API
// responses, broadcast payloads) do not have to issue follow-up fetches.
type TaskDetail struct {
	Task
	Category *Category `json:"category,omitempty"`
	Priority *Priority `json:"priority,omitempty"`
	TagList  []*Tag    `json:"tag_list"`
}
