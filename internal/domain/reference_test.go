package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	category, err := NewCategory(userID, "Work", "#3B82F6")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, category.ID)
	assert.Equal(t, userID, category.UserID)
	assert.Equal(t, "Work", category.Name)

	_, err = NewCategory(userID, "", "#3B82F6")
	assert.ErrorIs(t, err, ErrCategoryNameEmpty)

	_, err = NewCategory(uuid.Nil, "Work", "#3B82F6")
	assert.ErrorIs(t, err, ErrOwnerIDEmpty)
}

func TestNewPriority(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name    string
		level   PriorityLevel
		wantErr error
	}{
		{"low is valid", PriorityLow, nil},
		{"medium is valid", PriorityMedium, nil},
		{"high is valid", PriorityHigh, nil},
		{"unknown level rejected", PriorityLevel("urgent"), ErrInvalidPriorityLevel},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			priority, err := NewPriority(userID, "Some", tc.level, "#EF4444")
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.level, priority.Level)
		})
	}

	_, err := NewPriority(userID, "", PriorityLow, "#EF4444")
	assert.ErrorIs(t, err, ErrPriorityNameEmpty)
}

func TestNewTag(t *testing.T) {
	t.Parallel()

	tag, err := NewTag(uuid.New(), "urgent", "#DC2626")
	require.NoError(t, err)
	assert.Equal(t, "urgent", tag.Name)

	_, err = NewTag(uuid.New(), "", "#DC2626")
	assert.ErrorIs(t, err, ErrTagNameEmpty)
}

func TestNewNotificationValidation(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	taskID := uuid.New()

	n, err := NewNotification(userID, NotificationTaskDue, "Task due soon", "Task \"report\" is due", &taskID)
	require.NoError(t, err)
	assert.False(t, n.Read)
	require.NotNil(t, n.TaskID)
	assert.Equal(t, taskID, *n.TaskID)

	_, err = NewNotification(userID, NotificationType("popup"), "title", "message", nil)
	assert.ErrorIs(t, err, ErrInvalidNotificationType)

	_, err = NewNotification(userID, NotificationSystem, "", "message", nil)
	assert.ErrorIs(t, err, ErrNotificationTitleEmpty)

	_, err = NewNotification(userID, NotificationSystem, "title", "", nil)
	assert.ErrorIs(t, err, ErrNotificationMessageEmpty)
}
