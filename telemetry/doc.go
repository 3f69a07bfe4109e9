// Package telemetry provides a funnel for application instrumentation
// events. All instrumentation calls route through a single entry point,
// which normalizes them into a canonical Event and forwards them to a
// configured Sink, fire-and-forget. Telemetry is never load-bearing: an
// unconfigured sink makes every operation a silent no-op, and no
// operation in this package returns an error to its caller.
package telemetry
