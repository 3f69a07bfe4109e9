// Package influx implements an InfluxDB backend for package telemetry,
// for keeping a queryable server-side mirror of the event stream.
//
// Events become points in a single measurement, tagged by category and
// action, with the optional label and value carried as fields. Buffering
// and delivery follow the same best-effort contract as the other
// backends: a full buffer drops, a failed write is logged and forgotten.
package influx

import (
	"context"
	"time"

	"github.com/funnelkit/funnelkit/telemetry"

	"github.com/go-kit/log"
	influxdb "github.com/influxdata/influxdb1-client/v2"
	"github.com/pkg/errors"
)

// BatchPointsWriter captures the write side of an InfluxDB client.
// The influxdb client satisfies this interface.
type BatchPointsWriter interface {
	Write(bp influxdb.BatchPoints) error
}

// Sink buffers telemetry events and writes them to InfluxDB as points.
type Sink struct {
	client        BatchPointsWriter
	conf          influxdb.BatchPointsConfig
	measurement   string
	flushInterval time.Duration
	now           func() time.Time
	logger        log.Logger

	eventc chan telemetry.Event
	quitc  chan chan struct{}
}

// SinkOption sets an optional parameter for the Sink.
type SinkOption func(*Sink)

// WithMeasurement overrides the measurement points are written under.
// The default is "events".
func WithMeasurement(m string) SinkOption {
	return func(s *Sink) { s.measurement = m }
}

// WithFlushInterval overrides how often buffered points are written.
func WithFlushInterval(d time.Duration) SinkOption {
	return func(s *Sink) { s.flushInterval = d }
}

// WithClock overrides the timestamp source for points. Useful in tests.
func WithClock(now func() time.Time) SinkOption {
	return func(s *Sink) { s.now = now }
}

// NewSink returns a Sink writing through the given client with the given
// batch configuration, and starts its flush loop. Call Stop to drain and
// terminate the loop.
func NewSink(client BatchPointsWriter, conf influxdb.BatchPointsConfig, logger log.Logger, options ...SinkOption) *Sink {
	s := &Sink{
		client:        client,
		conf:          conf,
		measurement:   "events",
		flushInterval: 10 * time.Second,
		now:           time.Now,
		logger:        logger,
		eventc:        make(chan telemetry.Event, 256),
		quitc:         make(chan chan struct{}),
	}
	for _, option := range options {
		option(s)
	}
	go s.loop()
	return s
}

// Emit implements telemetry.Sink. It never blocks: a full buffer means
// the event is dropped.
func (s *Sink) Emit(_ context.Context, e telemetry.Event) {
	select {
	case s.eventc <- e:
	default:
	}
}

// Stop flushes any buffered events and terminates the flush loop.
func (s *Sink) Stop() {
	q := make(chan struct{})
	s.quitc <- q
	<-q
}

func (s *Sink) loop() {
	ticker := time.NewTicker(s.flushInterval)
	defer ticker.Stop()

	var batch []telemetry.Event
	for {
		select {
		case e := <-s.eventc:
			batch = append(batch, e)

		case <-ticker.C:
			if len(batch) > 0 {
				s.flush(batch)
				batch = batch[:0]
			}

		case q := <-s.quitc:
			for {
				select {
				case e := <-s.eventc:
					batch = append(batch, e)
				default:
					if len(batch) > 0 {
						s.flush(batch)
					}
					close(q)
					return
				}
			}
		}
	}
}

func (s *Sink) flush(batch []telemetry.Event) {
	if err := s.write(batch); err != nil {
		s.logger.Log("during", "flush", "err", err)
	}
}

func (s *Sink) write(batch []telemetry.Event) error {
	bp, err := influxdb.NewBatchPoints(s.conf)
	if err != nil {
		return errors.Wrap(err, "creating batch")
	}
	for _, e := range batch {
		tags := map[string]string{
			"category": e.Category,
			"action":   e.Action,
		}
		fields := map[string]interface{}{
			"count": 1,
		}
		if e.Label != "" {
			fields["label"] = e.Label
		}
		if e.HasValue {
			fields["value"] = e.Value
		}
		pt, err := influxdb.NewPoint(s.measurement, tags, fields, s.now())
		if err != nil {
			return errors.Wrap(err, "creating point")
		}
		bp.AddPoint(pt)
	}
	return errors.Wrap(s.client.Write(bp), "writing batch")
}
