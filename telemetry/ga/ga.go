// Package ga implements a Google Analytics 4 backend for package
// telemetry, speaking the Measurement Protocol.
//
// Events are buffered and posted in batches, either every flush interval
// or as soon as a batch reaches the protocol's size limit, whichever
// comes first. Delivery is best-effort and at-most-once: if the buffer is
// full the event is dropped, and transport errors are logged, never
// surfaced. That matches the contract of package telemetry, where
// instrumentation must not become load-bearing.
package ga

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/funnelkit/funnelkit/telemetry"

	"github.com/go-kit/log"
	"github.com/pkg/errors"
)

// DefaultURL is the Measurement Protocol collection endpoint.
const DefaultURL = "https://www.google-analytics.com/mp/collect"

// maxBatchSize is the Measurement Protocol limit on events per request.
const maxBatchSize = 25

// Sink buffers telemetry events and posts them to Google Analytics.
type Sink struct {
	url           string
	measurementID string
	apiSecret     string
	clientID      string
	client        *http.Client
	flushInterval time.Duration
	logger        log.Logger

	eventc chan telemetry.Event
	quitc  chan chan struct{}
}

// SinkOption sets an optional parameter for the Sink.
type SinkOption func(*Sink)

// WithURL overrides the collection endpoint. Useful in tests.
func WithURL(url string) SinkOption {
	return func(s *Sink) { s.url = url }
}

// WithHTTPClient overrides the HTTP client used to post batches.
func WithHTTPClient(client *http.Client) SinkOption {
	return func(s *Sink) { s.client = client }
}

// WithClientID overrides the client_id reported with every batch. The
// default is "server", which is appropriate when the sink mirrors events
// that already carry no per-user identity.
func WithClientID(id string) SinkOption {
	return func(s *Sink) { s.clientID = id }
}

// WithFlushInterval overrides how often a partial batch is posted.
func WithFlushInterval(d time.Duration) SinkOption {
	return func(s *Sink) { s.flushInterval = d }
}

// WithBufferSize overrides the size of the event buffer. When the buffer
// is full, Emit drops events rather than block its caller.
func WithBufferSize(n int) SinkOption {
	return func(s *Sink) { s.eventc = make(chan telemetry.Event, n) }
}

// NewSink returns a Sink posting to Google Analytics under the given
// measurement ID and API secret, and starts its flush loop. Call Stop to
// drain and terminate the loop.
func NewSink(measurementID, apiSecret string, logger log.Logger, options ...SinkOption) *Sink {
	s := &Sink{
		url:           DefaultURL,
		measurementID: measurementID,
		apiSecret:     apiSecret,
		clientID:      "server",
		client:        http.DefaultClient,
		flushInterval: 5 * time.Second,
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
			if len(batch) >= maxBatchSize {
				s.flush(batch)
				batch = batch[:0]
			}

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
					if len(batch) >= maxBatchSize {
						s.flush(batch)
						batch = batch[:0]
					}
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
	if err := s.post(batch); err != nil {
		s.logger.Log("during", "flush", "err", err)
	}
}

type mpEvent struct {
	Name   string                 `json:"name"`
	Params map[string]interface{} `json:"params"`
}

type mpPayload struct {
	ClientID string    `json:"client_id"`
	Events   []mpEvent `json:"events"`
}

func (s *Sink) post(batch []telemetry.Event) error {
	payload := mpPayload{
		ClientID: s.clientID,
		Events:   make([]mpEvent, 0, len(batch)),
	}
	for _, e := range batch {
		params := map[string]interface{}{
			"event_category": e.Category,
		}
		if e.Label != "" {
			params["event_label"] = e.Label
		}
		if e.HasValue {
			params["value"] = e.Value
		}
		payload.Events = append(payload.Events, mpEvent{
			Name:   e.Action,
			Params: params,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "marshaling batch")
	}

	u := s.url + "?" + url.Values{
		"measurement_id": []string{s.measurementID},
		"api_secret":     []string{s.apiSecret},
	}.Encode()

	resp, err := s.client.Post(u, "application/json", bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "posting batch")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return errors.Errorf("collection endpoint returned %s", resp.Status)
	}
	return nil
}
