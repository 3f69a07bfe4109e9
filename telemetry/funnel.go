package telemetry

import (
	"context"
	"time"

	"github.com/go-kit/log"
)

// Funnel is the single entry point for instrumentation. It normalizes
// arbitrary (category, action, label, value) tuples into Events and
// forwards them to its Sink, but only while armed: an unarmed funnel
// silently drops everything. Arming is queried before every emission.
type Funnel struct {
	sink   Sink
	armed  func() bool
	now    func() time.Time
	logger log.Logger
}

// Option sets an optional parameter for the Funnel.
type Option func(*Funnel)

// WithArming overrides the armed check. The default check is whether a
// sink was configured at construction; an override lets callers tie
// arming to e.g. a consent toggle, queried before every emission.
func WithArming(armed func() bool) Option {
	return func(f *Funnel) { f.armed = armed }
}

// WithClock overrides the time source used for interaction measurement.
// Useful in tests.
func WithClock(now func() time.Time) Option {
	return func(f *Funnel) { f.now = now }
}

// WithLogger sets a logger for debug breadcrumbs. The funnel never logs
// on the unarmed path: dropped telemetry is not a failure.
func WithLogger(logger log.Logger) Option {
	return func(f *Funnel) { f.logger = logger }
}

// NewFunnel returns a Funnel forwarding to the given sink. A nil sink
// yields a permanently unarmed funnel, which is a valid and common
// configuration: an application run without a tracking ID instruments
// itself exactly as usual, and all of it lands nowhere.
func NewFunnel(sink Sink, options ...Option) *Funnel {
	configured := sink != nil
	if !configured {
		sink = nopSink{}
	}
	f := &Funnel{
		sink:   sink,
		armed:  func() bool { return configured },
		now:    time.Now,
		logger: log.NewNopLogger(),
	}
	for _, option := range options {
		option(f)
	}
	return f
}

// EventOption sets an optional field on an Event.
type EventOption func(*Event)

// WithLabel attaches a label to the event.
func WithLabel(label string) EventOption {
	return func(e *Event) { e.Label = label }
}

// WithValue attaches a numeric value to the event.
func WithValue(value int64) EventOption {
	return func(e *Event) { e.Value, e.HasValue = value, true }
}

// TrackEvent forwards one normalized event to the sink, fire-and-forget.
// If the funnel is unarmed this is a silent no-op, not an error.
func (f *Funnel) TrackEvent(ctx context.Context, category, action string, options ...EventOption) {
	if !f.armed() {
		return
	}
	e := Event{Category: category, Action: action}
	for _, option := range options {
		option(&e)
	}
	f.logger.Log("category", e.Category, "action", e.Action, "label", e.Label)
	f.sink.Emit(ctx, e)
}

// TrackServiceInteraction records an interaction with a named service
// offering, e.g. TrackServiceInteraction(ctx, "Portfolio Review", "Click").
func (f *Funnel) TrackServiceInteraction(ctx context.Context, service, interaction string) {
	f.TrackEvent(ctx, "Service", interaction, WithLabel(service))
}

// TrackMarketView records a view of a market intelligence page.
func (f *Funnel) TrackMarketView(ctx context.Context, market string) {
	f.TrackEvent(ctx, "Market Intelligence", "View", WithLabel(market))
}
