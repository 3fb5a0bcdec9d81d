package godedupcleaner

import (
	"sync"
	"time"
)

// ProgressEvent is a single progress update. Total is zero for message-only
// events emitted before the amount of work is known.
type ProgressEvent struct {
	Current   int
	Total     int
	Message   string
	Completed bool
}

// ProgressSink receives progress events. Implementations must be safe for
// concurrent use; the library never blocks on a sink beyond the Publish call.
type ProgressSink interface {
	Publish(event ProgressEvent)
}

// NopSink discards all progress events.
type NopSink struct{}

// Publish implements ProgressSink.
func (NopSink) Publish(ProgressEvent) {}

// CollectorSink records every published event. Intended for tests.
type CollectorSink struct {
	mu     sync.Mutex
	events []ProgressEvent
}

// Publish implements ProgressSink.
func (s *CollectorSink) Publish(event ProgressEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

// Events returns a copy of the recorded events.
func (s *CollectorSink) Events() []ProgressEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ProgressEvent, len(s.events))
	copy(out, s.events)
	return out
}

// throttledSink forwards events to an underlying sink at a bounded rate so a
// slow consumer (a rendered progress bar) cannot be flooded. Completed and
// message-only events always pass through.
type throttledSink struct {
	sink     ProgressSink
	interval time.Duration

	mu   sync.Mutex
	last time.Time
}

// NewThrottledSink wraps sink so intermediate events are forwarded at most
// once per interval. A non-positive interval returns sink unchanged.
func NewThrottledSink(sink ProgressSink, interval time.Duration) ProgressSink {
	if interval <= 0 {
		return sink
	}
	return &throttledSink{sink: sink, interval: interval}
}

// Publish implements ProgressSink.
func (t *throttledSink) Publish(event ProgressEvent) {
	if event.Completed || event.Total == 0 {
		t.sink.Publish(event)
		return
	}

	t.mu.Lock()
	now := time.Now()
	if now.Sub(t.last) < t.interval {
		t.mu.Unlock()
		return
	}
	t.last = now
	t.mu.Unlock()

	t.sink.Publish(event)
}
