package influx

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/funnelkit/funnelkit/telemetry"

	"github.com/go-kit/log"
	influxdb "github.com/influxdata/influxdb1-client/v2"
)

type bufWriter struct {
	mtx     sync.Mutex
	batches []influxdb.BatchPoints
}

func (w *bufWriter) Write(bp influxdb.BatchPoints) error {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	w.batches = append(w.batches, bp)
	return nil
}

func (w *bufWriter) lines() []string {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	var lines []string
	for _, bp := range w.batches {
		for _, pt := range bp.Points() {
			lines = append(lines, pt.String())
		}
	}
	return lines
}

func TestSinkWritesPoints(t *testing.T) {
	w := &bufWriter{}
	now := time.Unix(3000, 0)
	s := NewSink(w, influxdb.BatchPointsConfig{Database: "telemetry"}, log.NewNopLogger(),
		WithFlushInterval(time.Hour),
		WithClock(func() time.Time { return now }),
	)

	s.Emit(context.Background(), telemetry.Event{
		Category: "Market Intelligence",
		Action:   "View",
		Label:    "NASDAQ",
	})
	s.Emit(context.Background(), telemetry.Event{
		Category: "Performance",
		Action:   "interaction",
		Label:    "chat-open",
		Value:    120,
		HasValue: true,
	})
	s.Stop()

	lines := w.lines()
	if want, have := 2, len(lines); want != have {
		t.Fatalf("points: want %d, have %d", want, have)
	}
	if !strings.HasPrefix(lines[0], `events,action=View,category=Market\ Intelligence `) {
		t.Errorf("unexpected point: %s", lines[0])
	}
	if !strings.Contains(lines[0], `label="NASDAQ"`) {
		t.Errorf("missing label field: %s", lines[0])
	}
	if strings.Contains(lines[0], "value=") {
		t.Errorf("value should be absent: %s", lines[0])
	}
	if !strings.Contains(lines[1], "value=120i") {
		t.Errorf("missing value field: %s", lines[1])
	}
}

func TestSinkCustomMeasurement(t *testing.T) {
	w := &bufWriter{}
	s := NewSink(w, influxdb.BatchPointsConfig{}, log.NewNopLogger(),
		WithFlushInterval(time.Hour),
		WithMeasurement("site_events"),
	)
	s.Emit(context.Background(), telemetry.Event{Category: "X", Action: "Y"})
	s.Stop()

	lines := w.lines()
	if want, have := 1, len(lines); want != have {
		t.Fatalf("points: want %d, have %d", want, have)
	}
	if !strings.HasPrefix(lines[0], "site_events,") {
		t.Errorf("unexpected measurement: %s", lines[0])
	}
}
