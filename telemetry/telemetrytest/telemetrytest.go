// Package telemetrytest provides a Sink that records everything it
// receives, for use in tests.
package telemetrytest

import (
	"context"
	"sync"

	"github.com/funnelkit/funnelkit/telemetry"
)

// Sink records every emitted event, in order. The zero value is ready to
// use. Safe for concurrent use.
type Sink struct {
	mtx    sync.Mutex
	events []telemetry.Event
}

// Emit implements telemetry.Sink.
func (s *Sink) Emit(_ context.Context, e telemetry.Event) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.events = append(s.events, e)
}

// Events returns a copy of everything recorded so far.
func (s *Sink) Events() []telemetry.Event {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	events := make([]telemetry.Event, len(s.events))
	copy(events, s.events)
	return events
}

// Reset discards everything recorded so far.
func (s *Sink) Reset() {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.events = s.events[:0]
}
