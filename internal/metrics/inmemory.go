package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	Requests               map[RequestKey]uint64
	RequestDurationCount   uint64
	RequestDurationTotalNs int64
	EchoedBytes            uint64
}

// InMemoryRecorder stores metrics in memory.
type InMemoryRecorder struct {
	requests               sync.Map // RequestKey -> *atomic.Uint64
	requestDurationCount   uint64
	requestDurationTotalNs int64
	echoedBytes            uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	requests := make(map[RequestKey]uint64)
	m.requests.Range(func(k, v any) bool {
		requests[k.(RequestKey)] = v.(*atomic.Uint64).Load()
		return true
	})

	return Snapshot{
		Requests:               requests,
		RequestDurationCount:   atomic.LoadUint64(&m.requestDurationCount),
		RequestDurationTotalNs: atomic.LoadInt64(&m.requestDurationTotalNs),
		EchoedBytes:            atomic.LoadUint64(&m.echoedBytes),
	}
}

// ObserveRequest increments the route/status counter and records duration.
func (m *InMemoryRecorder) ObserveRequest(route string, status int, duration time.Duration) {
	key := RequestKey{Route: route, Status: status}
	counter, ok := m.requests.Load(key)
	if !ok {
		counter, _ = m.requests.LoadOrStore(key, new(atomic.Uint64))
	}
	counter.(*atomic.Uint64).Add(1)

	atomic.AddUint64(&m.requestDurationCount, 1)
	atomic.AddInt64(&m.requestDurationTotalNs, duration.Nanoseconds())
}

// AddEchoedBytes increments the echoed byte counter.
func (m *InMemoryRecorder) AddEchoedBytes(n int) {
	if n <= 0 {
		return
	}
	atomic.AddUint64(&m.echoedBytes, uint64(n))
}
