package mocks

import (
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/taskdeck-api/internal/events"
)

// PublishedEvent records one Publish call on a CapturingPublisher.
type PublishedEvent struct {
	UserID  uuid.UUID
	Kind    events.Kind
	Payload any
}

// CapturingPublisher is an events.Publisher that records every publish for
// later assertions.
type CapturingPublisher struct {
	mu     sync.Mutex
	events []PublishedEvent
}

var _ events.Publisher = (*CapturingPublisher)(nil)

// NewCapturingPublisher creates an empty CapturingPublisher.
func NewCapturingPublisher() *CapturingPublisher {
	return &CapturingPublisher{}
}

func (p *CapturingPublisher) Publish(userID uuid.UUID, kind events.Kind, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, PublishedEvent{UserID: userID, Kind: kind, Payload: payload})
}

// Events returns a copy of the recorded publishes in order.
func (p *CapturingPublisher) Events() []PublishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]PublishedEvent, len(p.events))
	copy(out, p.events)
	return out
}

// OfKind returns the recorded publishes with the given kind, in order.
func (p *CapturingPublisher) OfKind(kind events.Kind) []PublishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []PublishedEvent
	for _, e := range p.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
