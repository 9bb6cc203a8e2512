// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// ObserveRequest records one served request. route is the matched route
	// pattern, or "fallback" for the echo catch-all.
	ObserveRequest(route string, status int, duration time.Duration)

	// AddEchoedBytes records bytes returned by the echo fallback.
	AddEchoedBytes(n int)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}

// RequestKey identifies a request counter.
type RequestKey struct {
	Route  string
	Status int
}
