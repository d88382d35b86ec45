package recurrence

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/taskdeck-api/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextOccurrenceDaily(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		current  time.Time
		interval int
		expected time.Time
	}{
		{
			name:     "interval 1 advances one day",
			current:  date(2025, time.January, 10),
			interval: 1,
			expected: date(2025, time.January, 11),
		},
		{
			name:     "interval 3 advances three days",
			current:  date(2025, time.January, 30),
			interval: 3,
			expected: date(2025, time.February, 2),
		},
		{
			name:     "crosses a year boundary",
			current:  date(2024, time.December, 31),
			interval: 1,
			expected: date(2025, time.January, 1),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			pattern := &domain.RecurrencePattern{
				Frequency: domain.FrequencyDaily,
				Interval:  tc.interval,
			}

			next, ok, err := NextOccurrence(tc.current, pattern)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tc.expected, next)
		})
	}
}

func TestNextOccurrenceWeekly(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		current    time.Time
		interval   int
		daysOfWeek []int
		expected   time.Time
	}{
		{
			name:     "no weekday set advances exactly interval weeks",
			current:  date(2025, time.January, 6), // Monday
			interval: 2,
			expected: date(2025, time.January, 20),
		},
		{
			// A Mon/Wed list stepping from a Monday lands on the
			// following Wednesday, not simply +7 days.
			name:       "monday with mon-wed list lands on wednesday",
			current:    date(2025, time.January, 6), // Monday
			interval:   1,
			daysOfWeek: []int{1, 3},
			expected:   date(2025, time.January, 15), // Wed after the +7 baseline
		},
		{
			name:       "unsorted list behaves like sorted",
			current:    date(2025, time.January, 6),
			interval:   1,
			daysOfWeek: []int{3, 1},
			expected:   date(2025, time.January, 15),
		},
		{
			name:       "wraps to smallest listed weekday",
			current:    date(2025, time.January, 10), // Friday
			interval:   1,
			daysOfWeek: []int{1}, // Monday only
			expected:   date(2025, time.January, 20), // Monday after the Friday baseline
		},
		{
			name:       "listed day equal to baseline weekday moves a full week",
			current:    date(2025, time.January, 6), // Monday
			interval:   1,
			daysOfWeek: []int{1}, // Monday only
			expected:   date(2025, time.January, 20),
		},
		{
			name:       "sunday as index zero is selectable",
			current:    date(2025, time.January, 6), // Monday
			interval:   1,
			daysOfWeek: []int{0},
			expected:   date(2025, time.January, 19), // Sunday after the +7 baseline
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			pattern := &domain.RecurrencePattern{
				Frequency:  domain.FrequencyWeekly,
				Interval:   tc.interval,
				DaysOfWeek: tc.daysOfWeek,
			}

			next, ok, err := NextOccurrence(tc.current, pattern)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tc.expected, next)
		})
	}
}

func TestNextOccurrenceMonthly(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		current    time.Time
		interval   int
		dayOfMonth int
		expected   time.Time
	}{
		{
			name:     "plain monthly advances one month",
			current:  date(2025, time.January, 10),
			interval: 1,
			expected: date(2025, time.February, 10),
		},
		{
			name:       "day of month forces the day",
			current:    date(2025, time.January, 10),
			interval:   1,
			dayOfMonth: 15,
			expected:   date(2025, time.February, 15),
		},
		{
			name:       "short month clamps to last day",
			current:    date(2025, time.January, 31),
			interval:   1,
			dayOfMonth: 31,
			expected:   date(2025, time.February, 28),
		},
		{
			name:       "leap february clamps to the 29th",
			current:    date(2024, time.January, 31),
			interval:   1,
			dayOfMonth: 31,
			expected:   date(2024, time.February, 29),
		},
		{
			name:     "interval 3 advances a quarter",
			current:  date(2025, time.November, 5),
			interval: 3,
			expected: date(2026, time.February, 5),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			pattern := &domain.RecurrencePattern{
				Frequency:  domain.FrequencyMonthly,
				Interval:   tc.interval,
				DayOfMonth: tc.dayOfMonth,
			}

			next, ok, err := NextOccurrence(tc.current, pattern)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tc.expected, next)
		})
	}
}

func TestNextOccurrenceYearly(t *testing.T) {
	t.Parallel()

	pattern := &domain.RecurrencePattern{
		Frequency: domain.FrequencyYearly,
		Interval:  2,
	}

	next, ok, err := NextOccurrence(date(2025, time.March, 14), pattern)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, date(2027, time.March, 14), next)
}

func TestNextOccurrenceEndDate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		current  time.Time
		endDate  time.Time
		expectOK bool
	}{
		{
			name:     "occurrence before end date continues the series",
			current:  date(2025, time.January, 10),
			endDate:  date(2025, time.January, 12),
			expectOK: true,
		},
		{
			name:     "occurrence exactly on end date ends the series",
			current:  date(2025, time.January, 10),
			endDate:  date(2025, time.January, 11),
			expectOK: false,
		},
		{
			name:     "occurrence after end date ends the series",
			current:  date(2025, time.January, 10),
			endDate:  date(2025, time.January, 5),
			expectOK: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			end := tc.endDate
			pattern := &domain.RecurrencePattern{
				Frequency: domain.FrequencyDaily,
				Interval:  1,
				EndDate:   &end,
			}

			next, ok, err := NextOccurrence(tc.current, pattern)
			require.NoError(t, err)
			assert.Equal(t, tc.expectOK, ok)
			if tc.expectOK {
				assert.Equal(t, tc.current.AddDate(0, 0, 1), next)
			} else {
				assert.True(t, next.IsZero())
			}
		})
	}
}

func TestNextOccurrenceUnknownFrequency(t *testing.T) {
	t.Parallel()

	pattern := &domain.RecurrencePattern{
		Frequency: domain.RecurrenceFrequency("hourly"),
		Interval:  1,
	}

	_, ok, err := NextOccurrence(date(2025, time.January, 10), pattern)
	assert.False(t, ok)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestNextOccurrenceNilPattern(t *testing.T) {
	t.Parallel()

	_, ok, err := NextOccurrence(date(2025, time.January, 10), nil)
	assert.False(t, ok)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestNextOccurrenceIsPure(t *testing.T) {
	t.Parallel()

	// The calculator must not mutate the pattern it is given.
	end := date(2026, time.January, 1)
	pattern := &domain.RecurrencePattern{
		Frequency:  domain.FrequencyWeekly,
		Interval:   1,
		DaysOfWeek: []int{5, 1, 3},
		EndDate:    &end,
	}

	first, ok, err := NextOccurrence(date(2025, time.January, 6), pattern)
	require.NoError(t, err)
	require.True(t, ok)

	second, ok, err := NextOccurrence(date(2025, time.January, 6), pattern)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, first, second)
	assert.Equal(t, []int{5, 1, 3}, pattern.DaysOfWeek, "input slice order must be preserved")
}

func TestSpawnSuccessorUsesComputedDate(t *testing.T) {
	t.Parallel()

	// End-to-end shape of the spawn flow at the domain level: complete a
	// monthly task due Jan 10 with dayOfMonth 15 and the successor is due
	// Feb 15 with reset subtasks.
	now := time.Now().UTC()
	task, err := domain.NewTask(
		uuid.New(), "Pay rent", "", uuid.New(), uuid.New(), date(2025, time.January, 10))
	require.NoError(t, err)
	task.Recurrence = &domain.RecurrencePattern{
		Frequency:  domain.FrequencyMonthly,
		Interval:   1,
		DayOfMonth: 15,
	}
	task.Subtasks = []domain.Subtask{
		domain.NewSubtask("transfer money", 0, now),
	}
	task.Subtasks[0].Completed = true

	next, ok, err := NextOccurrence(task.DueDate, task.Recurrence)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, date(2025, time.February, 15), next)

	successor := task.SpawnSuccessor(next, now)
	assert.Equal(t, task.UserID, successor.UserID)
	assert.Equal(t, next, successor.DueDate)
	require.NotNil(t, successor.ParentTaskID)
	assert.Equal(t, task.ID, *successor.ParentTaskID)
	assert.False(t, successor.Completed)
	assert.Equal(t, domain.TaskStatusPending, successor.Status)
	require.Len(t, successor.Subtasks, 1)
	assert.False(t, successor.Subtasks[0].Completed)
	assert.NotEqual(t, task.Subtasks[0].ID, successor.Subtasks[0].ID)
}
