package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskdeck-api/internal/domain"
	"github.com/phrazzld/taskdeck-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface using a
// PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	sqlDB  *sql.DB // nil when running inside a transaction
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db *sql.DB, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		sqlDB:  db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

const taskColumns = `id, user_id, title, description, category_id, priority_id,
	status, due_date, completed, image, subtasks, tags, attachments,
	recurrence, parent_task_id, created_at, updated_at`

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	subtasks, tags, attachments, recurrence, err := marshalTaskFields(task)
	if err != nil {
		return store.NewStoreError("task", "create", "failed to encode embedded fields", err)
	}

	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err = s.db.ExecContext(ctx, query,
		task.ID, task.UserID, task.Title, task.Description,
		task.CategoryID, task.PriorityID, string(task.Status), task.DueDate,
		task.Completed, task.Image, subtasks, tags, attachments, recurrence,
		task.ParentTaskID, task.CreatedAt, task.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: task %s", store.ErrDuplicate, task.ID)
		}
		return store.NewStoreError("task", "create", "failed to insert task", err)
	}

	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		return nil, store.NewStoreError("task", "get", "failed to query task", err)
	}

	return task, nil
}

// ListByUser implements store.TaskStore.ListByUser
func (s *PostgresTaskStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, store.NewStoreError("task", "list", "failed to query tasks", err)
	}
	defer func() { _ = rows.Close() }()

	return collectTasks(rows)
}

// ListDueBetween implements store.TaskStore.ListDueBetween
func (s *PostgresTaskStore) ListDueBetween(ctx context.Context, from, to time.Time) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + `
		FROM tasks
		WHERE completed = FALSE AND due_date >= $1 AND due_date < $2
		ORDER BY due_date`

	rows, err := s.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, store.NewStoreError("task", "list_due", "failed to query tasks", err)
	}
	defer func() { _ = rows.Close() }()

	return collectTasks(rows)
}

// Update implements store.TaskStore.Update
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	subtasks, tags, attachments, recurrence, err := marshalTaskFields(task)
	if err != nil {
		return store.NewStoreError("task", "update", "failed to encode embedded fields", err)
	}

	query := `
		UPDATE tasks
		SET title = $2, description = $3, category_id = $4, priority_id = $5,
			status = $6, due_date = $7, completed = $8, image = $9,
			subtasks = $10, tags = $11, attachments = $12, recurrence = $13,
			parent_task_id = $14, updated_at = $15
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		task.ID, task.Title, task.Description, task.CategoryID,
		task.PriorityID, string(task.Status), task.DueDate, task.Completed,
		task.Image, subtasks, tags, attachments, recurrence,
		task.ParentTaskID, task.UpdatedAt)
	if err != nil {
		return store.NewStoreError("task", "update", "failed to update task", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("task", "update", "failed to read affected rows", err)
	}
	if affected == 0 {
		return store.ErrTaskNotFound
	}

	return nil
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return store.NewStoreError("task", "delete", "failed to delete task", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("task", "delete", "failed to read affected rows", err)
	}
	if affected == 0 {
		return store.ErrTaskNotFound
	}

	return nil
}

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		sqlDB:  nil,
		logger: s.logger,
	}
}

// DB implements store.TaskStore.DB
func (s *PostgresTaskStore) DB() *sql.DB {
	return s.sqlDB
}

// marshalTaskFields encodes the JSONB-backed task fields.
func marshalTaskFields(task *domain.Task) (subtasks, tags, attachments []byte, recurrence any, err error) {
	if subtasks, err = json.Marshal(task.Subtasks); err != nil {
		return nil, nil, nil, nil, err
	}
	if tags, err = json.Marshal(task.Tags); err != nil {
		return nil, nil, nil, nil, err
	}
	if attachments, err = json.Marshal(task.Attachments); err != nil {
		return nil, nil, nil, nil, err
	}
	if task.Recurrence != nil {
		raw, merr := json.Marshal(task.Recurrence)
		if merr != nil {
			return nil, nil, nil, nil, merr
		}
		recurrence = raw
	}
	return subtasks, tags, attachments, recurrence, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask reads one task row, decoding the JSONB columns.
func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task           domain.Task
		status         string
		subtasksRaw    []byte
		tagsRaw        []byte
		attachmentsRaw []byte
		recurrenceRaw  []byte
		parentTaskID   uuid.NullUUID
	)

	err := row.Scan(
		&task.ID, &task.UserID, &task.Title, &task.Description,
		&task.CategoryID, &task.PriorityID, &status, &task.DueDate,
		&task.Completed, &task.Image, &subtasksRaw, &tagsRaw,
		&attachmentsRaw, &recurrenceRaw, &parentTaskID,
		&task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, err
	}

	task.Status = domain.TaskStatus(status)
	if parentTaskID.Valid {
		id := parentTaskID.UUID
		task.ParentTaskID = &id
	}

	if err := json.Unmarshal(subtasksRaw, &task.Subtasks); err != nil {
		return nil, fmt.Errorf("failed to decode subtasks: %w", err)
	}
	if err := json.Unmarshal(tagsRaw, &task.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	if err := json.Unmarshal(attachmentsRaw, &task.Attachments); err != nil {
		return nil, fmt.Errorf("failed to decode attachments: %w", err)
	}
	if len(recurrenceRaw) > 0 {
		var pattern domain.RecurrencePattern
		if err := json.Unmarshal(recurrenceRaw, &pattern); err != nil {
			return nil, fmt.Errorf("failed to decode recurrence: %w", err)
		}
		task.Recurrence = &pattern
	}

	return &task, nil
}

// collectTasks drains rows into a task slice.
func collectTasks(rows *sql.Rows) ([]*domain.Task, error) {
	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, store.NewStoreError("task", "scan", "failed to scan task row", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("task", "scan", "row iteration failed", err)
	}
	return tasks, nil
}
