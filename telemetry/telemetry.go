package telemetry

import "context"

// Event is the canonical shape every instrumentation call is normalized
// into before it reaches a Sink. Category and Action are always present
// and non-empty; Label and Value are optional and pass through to the
// sink untouched.
type Event struct {
	Category string
	Action   string
	Label    string // optional; empty means absent
	Value    int64
	HasValue bool
}

// Sink describes the analytics backend that receives normalized events.
// Emit is fire-and-forget: it has no return value, no retry, and no
// caller-visible failure mode. Whatever a sink does with transport errors
// is the sink's concern alone.
type Sink interface {
	Emit(ctx context.Context, e Event)
}

// SinkFunc is an adapter to allow use of ordinary functions as Sinks.
type SinkFunc func(ctx context.Context, e Event)

// Emit implements Sink by calling f(ctx, e).
func (f SinkFunc) Emit(ctx context.Context, e Event) {
	f(ctx, e)
}

// nopSink is what a nil sink normalizes to. The public no-op backend
// lives in the discard subpackage.
type nopSink struct{}

func (nopSink) Emit(context.Context, Event) {}

type multiSink []Sink

// NewMultiSink returns a wrapper around multiple Sinks. Each event is
// forwarded to every sink, in the order they're declared.
func NewMultiSink(sinks ...Sink) Sink {
	return multiSink(sinks)
}

func (m multiSink) Emit(ctx context.Context, e Event) {
	for _, s := range m {
		s.Emit(ctx, e)
	}
}
