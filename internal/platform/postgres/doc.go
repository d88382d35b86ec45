// Package postgres provides PostgreSQL implementations of the store
// interfaces, using database/sql over the pgx stdlib driver. Embedded task
// structures (subtasks, tags, attachments, recurrence) are persisted as
// JSONB columns.
package postgres
