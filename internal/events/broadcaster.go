package events

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Broadcaster maintains the user-to-sessions room registry and fans events
// out to it. Join, Leave and Publish are all safe for concurrent use: a
// session disconnecting must not corrupt an in-flight broadcast to the same
// room.
type Broadcaster struct {
	mu sync.RWMutex

	// rooms maps a user ID to the sessions currently joined to that
	// user's room.
	rooms map[uuid.UUID]map[string]Session

	// members maps a session ID back to the room it joined, so Leave does
	// not need the user ID.
	members map[string]uuid.UUID

	logger *slog.Logger
}

// NewBroadcaster creates an empty Broadcaster.
// If logger is nil, a default logger will be used.
func NewBroadcaster(logger *slog.Logger) *Broadcaster {
	if logger == nil {
		logger = slog.Default()
	}

	return &Broadcaster{
		rooms:   make(map[uuid.UUID]map[string]Session),
		members: make(map[string]uuid.UUID),
		logger:  logger.With(slog.String("component", "broadcaster")),
	}
}

// Ensure Broadcaster implements Publisher
var _ Publisher = (*Broadcaster)(nil)

// Join adds a session to the given user's room. A session already joined to
// a room is moved: it never belongs to two rooms at once.
func (b *Broadcaster) Join(session Session, userID uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if prev, ok := b.members[session.ID()]; ok {
		b.removeLocked(session.ID(), prev)
	}

	room, ok := b.rooms[userID]
	if !ok {
		room = make(map[string]Session)
		b.rooms[userID] = room
	}
	room[session.ID()] = session
	b.members[session.ID()] = userID

	b.logger.Debug("session joined room",
		slog.String("session_id", session.ID()),
		slog.String("user_id", userID.String()),
		slog.Int("room_size", len(room)))
}

// Leave removes a session from whatever room it joined. Leaving a session
// that never joined is a no-op.
func (b *Broadcaster) Leave(sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	userID, ok := b.members[sessionID]
	if !ok {
		return
	}
	b.removeLocked(sessionID, userID)

	b.logger.Debug("session left room",
		slog.String("session_id", sessionID),
		slog.String("user_id", userID.String()))
}

// removeLocked drops a session from a room; callers hold the write lock.
func (b *Broadcaster) removeLocked(sessionID string, userID uuid.UUID) {
	if room, ok := b.rooms[userID]; ok {
		delete(room, sessionID)
		if len(room) == 0 {
			delete(b.rooms, userID)
		}
	}
	delete(b.members, sessionID)
}

// Publish implements Publisher. It delivers the event to every session in
// the user's room. Delivery failures are logged, never returned: a lost
// broadcast is not an error for the mutation that triggered it.
func (b *Broadcaster) Publish(userID uuid.UUID, kind Kind, payload any) {
	b.mu.RLock()
	room := b.rooms[userID]
	sessions := make([]Session, 0, len(room))
	for _, s := range room {
		sessions = append(sessions, s)
	}
	b.mu.RUnlock()

	if len(sessions) == 0 {
		return
	}

	event := Event{Kind: kind, Payload: payload}
	for _, session := range sessions {
		if err := session.Send(event); err != nil {
			b.logger.Warn("dropped event for session",
				slog.String("session_id", session.ID()),
				slog.String("user_id", userID.String()),
				slog.String("kind", string(kind)),
				slog.String("error", err.Error()))
		}
	}
}
