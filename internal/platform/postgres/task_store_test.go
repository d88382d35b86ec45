package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/taskdeck-api/internal/domain"
	"github.com/phrazzld/taskdeck-api/internal/store"
)

var taskColumnNames = []string{
	"id", "user_id", "title", "description", "category_id", "priority_id",
	"status", "due_date", "completed", "image", "subtasks", "tags",
	"attachments", "recurrence", "parent_task_id", "created_at", "updated_at",
}

func newMockTaskStore(t *testing.T) (*PostgresTaskStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresTaskStore(db, nil), mock
}

func validTask(t *testing.T) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(
		uuid.New(), "write report", "quarterly numbers",
		uuid.New(), uuid.New(),
		time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return task
}

func taskRow(task *domain.Task, recurrence []byte) *sqlmock.Rows {
	return sqlmock.NewRows(taskColumnNames).AddRow(
		task.ID, task.UserID, task.Title, task.Description,
		task.CategoryID, task.PriorityID, string(task.Status), task.DueDate,
		task.Completed, task.Image, []byte(`[]`), []byte(`[]`),
		[]byte(`[]`), recurrence, nil, task.CreatedAt, task.UpdatedAt,
	)
}

func TestTaskStoreCreate(t *testing.T) {
	t.Parallel()

	s, mock := newMockTaskStore(t)
	task := validTask(t)

	mock.ExpectExec(`INSERT INTO tasks`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Create(context.Background(), task))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskStoreCreateRejectsInvalidTask(t *testing.T) {
	t.Parallel()

	s, _ := newMockTaskStore(t)
	task := validTask(t)
	task.Title = ""

	err := s.Create(context.Background(), task)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestTaskStoreGetByID(t *testing.T) {
	t.Parallel()

	s, mock := newMockTaskStore(t)
	task := validTask(t)

	mock.ExpectQuery(`(?s)SELECT .+ FROM tasks WHERE id = \$1`).
		WithArgs(task.ID).
		WillReturnRows(taskRow(task, nil))

	got, err := s.GetByID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, got.ID)
	assert.Equal(t, task.Title, got.Title)
	assert.Nil(t, got.Recurrence)
	assert.Empty(t, got.Subtasks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskStoreGetByIDNotFound(t *testing.T) {
	t.Parallel()

	s, mock := newMockTaskStore(t)
	id := uuid.New()

	mock.ExpectQuery(`(?s)SELECT .+ FROM tasks WHERE id = \$1`).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err := s.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskStoreGetByIDDecodesRecurrence(t *testing.T) {
	t.Parallel()

	s, mock := newMockTaskStore(t)
	task := validTask(t)
	recurrence := []byte(`{"frequency":"weekly","interval":2,"days_of_week":[1,4]}`)

	mock.ExpectQuery(`(?s)SELECT .+ FROM tasks WHERE id = \$1`).
		WithArgs(task.ID).
		WillReturnRows(taskRow(task, recurrence))

	got, err := s.GetByID(context.Background(), task.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Recurrence)
	assert.Equal(t, domain.FrequencyWeekly, got.Recurrence.Frequency)
	assert.Equal(t, 2, got.Recurrence.Interval)
	assert.Equal(t, []int{1, 4}, got.Recurrence.DaysOfWeek)
}

func TestTaskStoreUpdateNotFound(t *testing.T) {
	t.Parallel()

	s, mock := newMockTaskStore(t)
	task := validTask(t)

	mock.ExpectExec(`UPDATE tasks`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Update(context.Background(), task)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskStoreDelete(t *testing.T) {
	t.Parallel()

	s, mock := newMockTaskStore(t)
	id := uuid.New()

	mock.ExpectExec(`DELETE FROM tasks WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Delete(context.Background(), id))

	mock.ExpectExec(`DELETE FROM tasks WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, s.Delete(context.Background(), id), store.ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskStoreListDueBetween(t *testing.T) {
	t.Parallel()

	s, mock := newMockTaskStore(t)
	task := validTask(t)
	from := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	mock.ExpectQuery(`(?s)SELECT .+ FROM tasks\s+WHERE completed = FALSE AND due_date >= \$1 AND due_date < \$2`).
		WithArgs(from, to).
		WillReturnRows(taskRow(task, nil))

	tasks, err := s.ListDueBetween(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskStoreWithTxSharesConnection(t *testing.T) {
	t.Parallel()

	s, mock := newMockTaskStore(t)
	task := validTask(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO tasks`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.RunInTransaction(context.Background(), s.DB(), func(ctx context.Context, tx *sql.Tx) error {
		return s.WithTx(tx).Create(ctx, task)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
