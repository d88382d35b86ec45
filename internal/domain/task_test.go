package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTask(t *testing.T) *Task {
	t.Helper()
	task, err := NewTask(
		uuid.New(),
		"Write report",
		"quarterly numbers",
		uuid.New(),
		uuid.New(),
		time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return task
}

func TestNewTaskValidation(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	category := uuid.New()
	priority := uuid.New()
	due := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		userID   uuid.UUID
		title    string
		category uuid.UUID
		priority uuid.UUID
		due      time.Time
		wantErr  error
	}{
		{"valid", owner, "Task", category, priority, due, nil},
		{"missing owner", uuid.Nil, "Task", category, priority, due, ErrTaskUserIDEmpty},
		{"missing title", owner, "", category, priority, due, ErrTaskTitleEmpty},
		{"missing category", owner, "Task", uuid.Nil, priority, due, ErrTaskCategoryEmpty},
		{"missing priority", owner, "Task", category, uuid.Nil, due, ErrTaskPriorityEmpty},
		{"missing due date", owner, "Task", category, priority, time.Time{}, ErrTaskDueDateEmpty},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			task, err := NewTask(tc.userID, tc.title, "", tc.category, tc.priority, tc.due)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, task)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, TaskStatusPending, task.Status)
			assert.False(t, task.Completed)
		})
	}
}

func TestTaskCompletedStatusInvariant(t *testing.T) {
	t.Parallel()

	task := validTask(t)

	// Completed flag and status must agree.
	task.Completed = true
	assert.ErrorIs(t, task.Validate(), ErrTaskCompletedMismatch)

	task.Status = TaskStatusCompleted
	assert.NoError(t, task.Validate())

	task.Completed = false
	assert.ErrorIs(t, task.Validate(), ErrTaskCompletedMismatch)
}

func TestTaskSetCompleted(t *testing.T) {
	t.Parallel()

	task := validTask(t)
	task.Status = TaskStatusInProgress

	task.SetCompleted(true)
	assert.Equal(t, TaskStatusCompleted, task.Status)
	assert.True(t, task.Completed)

	task.SetCompleted(false)
	assert.Equal(t, TaskStatusPending, task.Status)
	assert.False(t, task.Completed)

	// Un-completing a pending task leaves the status alone.
	task.Status = TaskStatusInProgress
	task.SetCompleted(false)
	assert.Equal(t, TaskStatusInProgress, task.Status)
}

func TestTaskValidateRejectsBadRecurrence(t *testing.T) {
	t.Parallel()

	task := validTask(t)

	task.Recurrence = &RecurrencePattern{Frequency: FrequencyDaily, Interval: 0}
	assert.ErrorIs(t, task.Validate(), ErrInvalidRecurrence)

	task.Recurrence = &RecurrencePattern{Frequency: FrequencyWeekly, Interval: 1, DaysOfWeek: []int{7}}
	assert.ErrorIs(t, task.Validate(), ErrInvalidRecurrence)

	task.Recurrence = &RecurrencePattern{Frequency: FrequencyMonthly, Interval: 1, DayOfMonth: 32}
	assert.ErrorIs(t, task.Validate(), ErrInvalidRecurrence)

	task.Recurrence = &RecurrencePattern{Frequency: FrequencyMonthly, Interval: 1, DayOfMonth: 31}
	assert.NoError(t, task.Validate())
}

func TestSpawnSuccessorResetsSubtasks(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	task := validTask(t)
	task.Recurrence = &RecurrencePattern{Frequency: FrequencyDaily, Interval: 1}
	task.Tags = []uuid.UUID{uuid.New(), uuid.New()}
	task.Image = "uploads/report.png"
	task.Subtasks = []Subtask{
		NewSubtask("outline", 0, now),
		NewSubtask("draft", 1, now),
	}
	task.Subtasks[0].Completed = true
	task.Subtasks[1].Completed = true

	next := task.DueDate.AddDate(0, 0, 1)
	successor := task.SpawnSuccessor(next, now)

	require.NoError(t, successor.Validate())
	assert.NotEqual(t, task.ID, successor.ID)
	assert.Equal(t, task.Title, successor.Title)
	assert.Equal(t, task.Image, successor.Image)
	assert.Equal(t, task.Tags, successor.Tags)
	require.NotNil(t, successor.Recurrence)
	assert.Equal(t, *task.Recurrence, *successor.Recurrence)
	require.NotNil(t, successor.ParentTaskID)
	assert.Equal(t, task.ID, *successor.ParentTaskID)

	require.Len(t, successor.Subtasks, 2)
	for i, st := range successor.Subtasks {
		assert.False(t, st.Completed, "successor subtasks start uncompleted")
		assert.NotEqual(t, task.Subtasks[i].ID, st.ID, "successor subtasks get fresh IDs")
		assert.Equal(t, task.Subtasks[i].Title, st.Title)
		assert.Equal(t, task.Subtasks[i].Order, st.Order)
	}

	// Successor pattern is a copy, not shared memory.
	successor.Recurrence.Interval = 5
	assert.Equal(t, 1, task.Recurrence.Interval)
}

func TestFindSubtask(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	task := validTask(t)
	task.Subtasks = []Subtask{
		NewSubtask("one", 0, now),
		NewSubtask("two", 1, now),
	}

	assert.Equal(t, 1, task.FindSubtask(task.Subtasks[1].ID))
	assert.Equal(t, -1, task.FindSubtask(uuid.New()))
}
