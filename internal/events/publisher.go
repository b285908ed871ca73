package events

import (
	"context"
	"log/slog"
	"sync"
)

// Discard drops every event.
var Discard Publisher = discard{}

type discard struct{}

func (discard) Publish(context.Context, Event) error { return nil }

// LogPublisher writes every event to the default slog logger.
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, event Event) error {
	slog.InfoContext(ctx, "session event", "event", event.Type, "payload", string(event.Payload))
	return nil
}

// Recorder keeps published events in memory so a caller can list them later.
// A non-positive limit keeps everything.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	limit  int
}

func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit}
}

func (r *Recorder) Publish(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, event)
	if r.limit > 0 && len(r.events) > r.limit {
		r.events = append([]Event(nil), r.events[len(r.events)-r.limit:]...)
	}
	return nil
}

// Events returns a copy of the recorded events, oldest first.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// MultiPublisher publishes to every publisher in order and stops at the first error.
type MultiPublisher []Publisher

func (m MultiPublisher) Publish(ctx context.Context, event Event) error {
	for _, p := range m {
		if err := p.Publish(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
