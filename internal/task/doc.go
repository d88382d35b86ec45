// Package task runs background jobs over the task store. The only job is
// the due-soon notifier; it creates notifications and never mutates tasks.
package task
