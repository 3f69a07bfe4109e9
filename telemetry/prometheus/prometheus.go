// Package prometheus implements a Prometheus backend for package
// telemetry, for keeping server-side counts of the event stream
// alongside whatever analytics product the funnel feeds.
package prometheus

import (
	"context"

	"github.com/funnelkit/funnelkit/telemetry"

	"github.com/prometheus/client_golang/prometheus"
)

// Sink counts every emitted event by category and action, and observes
// the values of events that carry one in a histogram. Prometheus has
// strong opinions about dimensionality, so labels beyond category and
// action are dropped: free-form event labels would blow up cardinality.
type Sink struct {
	events *prometheus.CounterVec
	values *prometheus.HistogramVec
}

// NewSink returns a Sink registered with the given registerer. Passing
// prometheus.DefaultRegisterer is the common case.
func NewSink(reg prometheus.Registerer) *Sink {
	s := &Sink{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "funnel",
			Name:      "events_total",
			Help:      "Telemetry events forwarded through the funnel.",
		}, []string{"category", "action"}),
		values: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "funnel",
			Name:      "event_value",
			Help:      "Values carried by telemetry events, e.g. durations in ms.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}, []string{"category", "action"}),
	}
	reg.MustRegister(s.events, s.values)
	return s
}

// Emit implements telemetry.Sink.
func (s *Sink) Emit(_ context.Context, e telemetry.Event) {
	labels := prometheus.Labels{"category": e.Category, "action": e.Action}
	s.events.With(labels).Inc()
	if e.HasValue {
		s.values.With(labels).Observe(float64(e.Value))
	}
}
