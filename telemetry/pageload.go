package telemetry

import (
	"context"
	"time"
)

// Timing is the host environment's navigation timing facility. It is
// queried, not owned: the host decides what "navigation start" and "load
// event end" mean.
type Timing interface {
	NavigationStart() time.Time
	LoadEventEnd() time.Time
}

// LoadSignal delivers the host environment's "load completed" signal.
// OnLoad registers a handler to run when the signal fires; the signal
// fires at most once per page lifetime, so the handler does too.
type LoadSignal interface {
	OnLoad(func())
}

// LoadSignalFunc is an adapter to allow use of ordinary registration
// functions as LoadSignals.
type LoadSignalFunc func(func())

// OnLoad implements LoadSignal.
func (f LoadSignalFunc) OnLoad(fn func()) { f(fn) }

// MeasurePageLoad registers a one-shot handler on the load signal. When
// it fires, the elapsed time from navigation start to load event end is
// emitted as a Performance event, in milliseconds. The handler runs on
// whatever goroutine or loop the signal delivers on; ordering relative
// to other load handlers is the host's business.
func (f *Funnel) MeasurePageLoad(ctx context.Context, signal LoadSignal, timing Timing) {
	signal.OnLoad(func() {
		loadTime := timing.LoadEventEnd().Sub(timing.NavigationStart())
		f.TrackEvent(ctx, "Performance", "load",
			WithLabel("Page Load Time"),
			WithValue(int64(loadTime.Round(time.Millisecond)/time.Millisecond)),
		)
	})
}
