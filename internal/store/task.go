package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskdeck-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
//
// Ownership is not enforced here: callers (the task service) must re-check
// every loaded entity against the requesting user. List methods that take a
// user ID are owner-scoped at the query level so that a bypassed
// caller-identity check still cannot leak another user's rows.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns validation errors if the task data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListByUser retrieves all tasks owned by the given user, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// ListDueBetween retrieves uncompleted tasks, across all users, whose
	// due date falls within [from, to). Used by the reminder job.
	ListDueBetween(ctx context.Context, from, to time.Time) ([]*domain.Task, error)

	// Update replaces the stored state of an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	// Callers are expected to hold the per-task serialization lock for the
	// read-modify-write cycle this participates in.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new TaskStore instance that uses the provided
	// transaction. This allows multiple operations (e.g., persisting a
	// completion patch together with its recurrence successor) to execute
	// atomically via RunInTransaction.
	WithTx(tx *sql.Tx) TaskStore

	// DB returns the underlying database connection for transaction
	// management.
	DB() *sql.DB
}
