package events

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSession records delivered events for assertions.
type fakeSession struct {
	id string

	mu     sync.Mutex
	events []Event
	fail   bool
}

func newFakeSession() *fakeSession {
	return &fakeSession{id: uuid.NewString()}
}

func (s *fakeSession) ID() string { return s.id }

func (s *fakeSession) Send(event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("session buffer full")
	}
	s.events = append(s.events, event)
	return nil
}

func (s *fakeSession) received() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

func TestPublishDeliversToOwnRoomOnly(t *testing.T) {
	t.Parallel()

	b := NewBroadcaster(nil)
	alice := uuid.New()
	bob := uuid.New()

	aliceSession := newFakeSession()
	bobSession := newFakeSession()
	b.Join(aliceSession, alice)
	b.Join(bobSession, bob)

	b.Publish(alice, KindTaskCreated, map[string]string{"title": "write tests"})

	require.Len(t, aliceSession.received(), 1)
	assert.Equal(t, KindTaskCreated, aliceSession.received()[0].Kind)
	assert.Empty(t, bobSession.received(), "other users' sessions must not receive the event")
}

func TestPublishRequiresJoin(t *testing.T) {
	t.Parallel()

	b := NewBroadcaster(nil)
	owner := uuid.New()
	session := newFakeSession()

	// Published before the session joins: not replayed.
	b.Publish(owner, KindTaskCreated, nil)
	b.Join(session, owner)
	assert.Empty(t, session.received())

	b.Publish(owner, KindTaskUpdated, nil)
	require.Len(t, session.received(), 1)
	assert.Equal(t, KindTaskUpdated, session.received()[0].Kind)
}

func TestPublishDeliversToAllSessionsOfUser(t *testing.T) {
	t.Parallel()

	b := NewBroadcaster(nil)
	owner := uuid.New()

	first := newFakeSession()
	second := newFakeSession()
	b.Join(first, owner)
	b.Join(second, owner)

	b.Publish(owner, KindTaskDeleted, DeletedPayload{ID: uuid.New()})

	assert.Len(t, first.received(), 1)
	assert.Len(t, second.received(), 1)
}

func TestLeaveStopsDelivery(t *testing.T) {
	t.Parallel()

	b := NewBroadcaster(nil)
	owner := uuid.New()
	session := newFakeSession()

	b.Join(session, owner)
	b.Leave(session.ID())
	b.Publish(owner, KindTaskUpdated, nil)

	assert.Empty(t, session.received())

	// Leaving twice is harmless.
	b.Leave(session.ID())
}

func TestRejoinMovesSessionBetweenRooms(t *testing.T) {
	t.Parallel()

	b := NewBroadcaster(nil)
	alice := uuid.New()
	bob := uuid.New()
	session := newFakeSession()

	b.Join(session, alice)
	b.Join(session, bob)

	b.Publish(alice, KindTaskCreated, nil)
	assert.Empty(t, session.received(), "session moved rooms, old room must not reach it")

	b.Publish(bob, KindTaskCreated, nil)
	assert.Len(t, session.received(), 1)
}

func TestSendFailureDoesNotStopFanOut(t *testing.T) {
	t.Parallel()

	b := NewBroadcaster(nil)
	owner := uuid.New()

	broken := newFakeSession()
	broken.fail = true
	healthy := newFakeSession()
	b.Join(broken, owner)
	b.Join(healthy, owner)

	b.Publish(owner, KindTaskUpdated, nil)

	assert.Len(t, healthy.received(), 1, "healthy session still receives after a failed send")
}

func TestConcurrentJoinLeavePublish(t *testing.T) {
	t.Parallel()

	b := NewBroadcaster(nil)
	owner := uuid.New()

	// A stable session that must survive the churn.
	stable := newFakeSession()
	b.Join(stable, owner)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s := newFakeSession()
			b.Join(s, owner)
			b.Leave(s.ID())
		}()
		go func() {
			defer wg.Done()
			b.Publish(owner, KindTaskUpdated, nil)
		}()
	}
	wg.Wait()

	assert.Len(t, stable.received(), 50, "stable session sees every publish")
}
