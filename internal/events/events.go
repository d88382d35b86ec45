package events

import (
	"github.com/google/uuid"
)

// Kind identifies a task lifecycle event.
type Kind string

// Task lifecycle event kinds.
const (
	KindTaskCreated Kind = "task:created"
	KindTaskUpdated Kind = "task:updated"
	KindTaskDeleted Kind = "task:deleted"
)

// Event is a single lifecycle event as delivered to a session.
// For created/updated events the payload is the fully resolved task; for
// deleted events it is a DeletedPayload carrying only the task ID.
type Event struct {
	Kind    Kind `json:"kind"`
	Payload any  `json:"payload"`
}

// DeletedPayload is the payload of a task:deleted event.
type DeletedPayload struct {
	ID uuid.UUID `json:"id"`
}

// Session is a live client connection capable of receiving events.
// Send must not block: implementations buffer or drop.
type Session interface {
	// ID returns the session's unique identifier.
	ID() string

	// Send delivers an event to the session. Returns an error if the event
	// was dropped (e.g., slow consumer); the broadcaster logs and moves on.
	Send(event Event) error
}

// Publisher is the narrow interface services use to emit events.
type Publisher interface {
	// Publish delivers an event to every session in the given user's room.
	Publish(userID uuid.UUID, kind Kind, payload any)
}
