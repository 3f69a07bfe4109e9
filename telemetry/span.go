package telemetry

import (
	"context"
	"time"
)

// Span measures the wall-clock duration of a single user interaction.
// It is the explicit form of a start-timestamp closure: StartInteraction
// captures now, Finish reports elapsed.
type Span struct {
	funnel    *Funnel
	name      string
	startedAt time.Time
}

// StartInteraction captures a start timestamp for the named interaction.
// The measurement is reported when Finish is called.
func (f *Funnel) StartInteraction(name string) *Span {
	return &Span{
		funnel:    f,
		name:      name,
		startedAt: f.now(),
	}
}

// Finish emits the elapsed duration since StartInteraction, in rounded
// milliseconds, as a Performance event. Finish may be called more than
// once; every call measures from the original start, so repeated calls
// report non-decreasing durations. There is deliberately no single-use
// guard: callers may re-read a running interaction.
func (s *Span) Finish(ctx context.Context) {
	elapsed := s.funnel.now().Sub(s.startedAt)
	s.funnel.TrackEvent(ctx, "Performance", "interaction",
		WithLabel(s.name),
		WithValue(int64(elapsed.Round(time.Millisecond)/time.Millisecond)),
	)
}
