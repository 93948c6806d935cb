package testutil

import (
	"context"
	"sync"

	"github.com/thenoetrevino/embudo/internal/events"
)

// RecordingPublisher is an events.EventPublisher that keeps every event it is
// handed. Listen returns a channel tests can feed through Push.
type RecordingPublisher struct {
	mu      sync.Mutex
	sent    []events.Event
	ch      chan events.Event
	SendErr error
}

// NewRecordingPublisher returns an empty RecordingPublisher.
func NewRecordingPublisher() *RecordingPublisher {
	return &RecordingPublisher{ch: make(chan events.Event, 16)}
}

func (p *RecordingPublisher) Connect(ctx context.Context) error { return nil }

func (p *RecordingPublisher) SendEvent(event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.SendErr != nil {
		return p.SendErr
	}
	p.sent = append(p.sent, event)
	return nil
}

func (p *RecordingPublisher) Listen(ctx context.Context) (<-chan events.Event, error) {
	return p.ch, nil
}

func (p *RecordingPublisher) Subscribe(boardID int) error { return nil }

func (p *RecordingPublisher) Origin() string { return "recording" }

func (p *RecordingPublisher) Close() error { return nil }

// Push delivers an event to Listen's channel as if it came from another client.
func (p *RecordingPublisher) Push(event events.Event) {
	p.ch <- event
}

// Sent returns a copy of the events sent so far.
func (p *RecordingPublisher) Sent() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.sent...)
}

// BoardIDs returns the board of every event sent so far.
func (p *RecordingPublisher) BoardIDs() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	ids := make([]int, 0, len(p.sent))
	for _, e := range p.sent {
		ids = append(ids, e.BoardID)
	}
	return ids
}

var _ events.EventPublisher = (*RecordingPublisher)(nil)
