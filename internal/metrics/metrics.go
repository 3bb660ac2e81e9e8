package metrics

import (
	"sync"
	"time"
)

type operationStats struct {
	calls       int
	errors      int
	lastLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about store operations and
// forwards everything to OpenTelemetry instruments when configured.
type Recorder struct {
	mu     sync.Mutex
	stats  map[string]*operationStats
	checks int
	failed int
	otel   *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*operationStats),
		otel:  otel,
	}
}

// RecordStoreOperation counts a store call and stores its latency. err should be nil for
// outcomes the caller treats as expected (not found, invalid id).
func (r *Recorder) RecordStoreOperation(backend, operation string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	stats := r.ensureStats(operation)
	stats.calls++
	stats.lastLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordStoreOperation(backend, operation, duration, err)
	}
}

// RecordStoreCheck tracks a background store health check.
func (r *Recorder) RecordStoreCheck(duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.checks++
	if err != nil {
		r.failed++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordStoreCheck(duration, err)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// Snapshot is a copy of the counters for one store operation.
type Snapshot struct {
	Calls       int
	Errors      int
	LastLatency time.Duration
}

// Snapshot returns the current stats for operation.
func (r *Recorder) Snapshot(operation string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stats, ok := r.stats[operation]
	if !ok {
		return Snapshot{}
	}
	return Snapshot{
		Calls:       stats.calls,
		Errors:      stats.errors,
		LastLatency: stats.lastLatency,
	}
}

// StoreCalls returns the total calls recorded for an operation.
func (r *Recorder) StoreCalls(operation string) int {
	return r.Snapshot(operation).Calls
}

// StoreErrors returns the failed calls recorded for an operation.
func (r *Recorder) StoreErrors(operation string) int {
	return r.Snapshot(operation).Errors
}

// StoreChecks returns the number of health checks run and how many failed.
func (r *Recorder) StoreChecks() (total, failed int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.checks, r.failed
}

// ensureStats must be called with r.mu held.
func (r *Recorder) ensureStats(operation string) *operationStats {
	stats, ok := r.stats[operation]
	if !ok {
		stats = &operationStats{}
		r.stats[operation] = stats
	}
	return stats
}
