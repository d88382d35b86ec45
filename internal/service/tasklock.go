package service

import (
	"sync"

	"github.com/google/uuid"
)

// taskLocker serializes read-modify-write cycles per task ID. Two concurrent
// mutations of the same task queue behind one another instead of racing; the
// second observes the first's committed state. Mutations of different tasks
// proceed in parallel.
//
// Entries are reference-counted and removed when the last holder unlocks, so
// the map does not grow with the lifetime set of task IDs.
type taskLocker struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*taskLockEntry
}

type taskLockEntry struct {
	mu   sync.Mutex
	refs int
}

func newTaskLocker() *taskLocker {
	return &taskLocker{locks: make(map[uuid.UUID]*taskLockEntry)}
}

// Lock acquires the lock for the given task ID, blocking until it is free.
func (l *taskLocker) Lock(id uuid.UUID) {
	l.mu.Lock()
	entry, ok := l.locks[id]
	if !ok {
		entry = &taskLockEntry{}
		l.locks[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
}

// Unlock releases the lock for the given task ID.
func (l *taskLocker) Unlock(id uuid.UUID) {
	l.mu.Lock()
	entry, ok := l.locks[id]
	if !ok {
		l.mu.Unlock()
		panic("taskLocker: unlock of unheld task lock")
	}
	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, id)
	}
	l.mu.Unlock()

	entry.mu.Unlock()
}
