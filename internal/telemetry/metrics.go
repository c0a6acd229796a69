// Package telemetry records request and upstream metrics.
package telemetry

import "time"

// Metric names and dimensions.
const (
	MetricRequestCount    = "RequestCount"
	MetricRequestLatency  = "RequestLatency"
	MetricUpstreamCount   = "UpstreamCallCount"
	MetricUpstreamLatency = "UpstreamCallLatency"

	DimMethod  = "Method"
	DimRoute   = "Route"
	DimStatus  = "Status"
	DimCall    = "Call"
	DimOutcome = "Outcome"
)

// Upstream call outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Collector is implemented by every metrics backend.
type Collector interface {
	RecordRequest(method, route, status string, duration time.Duration)
	RecordUpstream(call, outcome string, duration time.Duration)
}

// Noop discards all metrics.
type Noop struct{}

var _ Collector = Noop{}

func (Noop) RecordRequest(_, _, _ string, _ time.Duration) {}
func (Noop) RecordUpstream(_, _ string, _ time.Duration)   {}
