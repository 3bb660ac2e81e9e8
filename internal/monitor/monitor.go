// Package monitor runs periodic store health checks that back the readiness probe.
package monitor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/game-catalog-service/internal/logging"
	"github.com/preston-bernstein/game-catalog-service/internal/metrics"
)

const (
	defaultInterval = 30 * time.Second
	defaultTimeout  = 5 * time.Second
	// Readiness flips after this many failed checks in a row.
	maxConsecutiveFailures = 3
)

// Pinger is the slice of the store the monitor needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Monitor pings the store on an interval and tracks recent health.
type Monitor struct {
	target   Pinger
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	timeout  time.Duration
	now      func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool
	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the store.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the store has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < maxConsecutiveFailures
}

// New constructs a Monitor with sane defaults.
func New(target Pinger, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Monitor{
		target:   target,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		timeout:  defaultTimeout,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start begins checking until the context is cancelled or Stop is called.
func (m *Monitor) Start(ctx context.Context) {
	m.startMu.Lock()
	if m.started {
		m.startMu.Unlock()
		return
	}
	m.started = true
	m.startMu.Unlock()

	m.ticker = time.NewTicker(m.interval)
	go func() {
		logging.Info(m.logger, "store monitor started", slog.Int64(logging.FieldDurationMS, m.interval.Milliseconds()))
		m.Check(ctx)
		for {
			select {
			case <-ctx.Done():
				m.ticker.Stop()
				logging.Info(m.logger, "store monitor stopped")
				return
			case <-m.done:
				m.ticker.Stop()
				logging.Info(m.logger, "store monitor stopped")
				return
			case <-m.ticker.C:
				m.Check(ctx)
			}
		}
	}()
}

// Stop halts the check loop.
func (m *Monitor) Stop(ctx context.Context) error {
	_ = ctx
	m.stopOnce.Do(func() {
		close(m.done)
	})
	return nil
}

// Check pings the store once and records the outcome.
func (m *Monitor) Check(ctx context.Context) {
	start := m.now()
	m.recordAttempt(start)

	pingCtx, cancel := context.WithTimeout(ctx, m.timeout)
	err := m.target.Ping(pingCtx)
	cancel()

	m.metrics.RecordStoreCheck(m.now().Sub(start), err)
	if err != nil {
		logging.Error(m.logger, "store check failed", err, slog.Int64(logging.FieldDurationMS, m.now().Sub(start).Milliseconds()))
		m.recordFailure(err, start)
		return
	}
	m.recordSuccess(start)
}

func (m *Monitor) recordAttempt(at time.Time) {
	m.statusMu.Lock()
	defer m.statusMu.Unlock()
	m.status.LastAttempt = at
}

func (m *Monitor) recordSuccess(at time.Time) {
	m.statusMu.Lock()
	defer m.statusMu.Unlock()
	if m.status.ConsecutiveFailures > 0 {
		logging.Info(m.logger, "store recovered", "failures", m.status.ConsecutiveFailures)
	}
	m.status.ConsecutiveFailures = 0
	m.status.LastError = ""
	m.status.LastSuccess = at
}

func (m *Monitor) recordFailure(err error, at time.Time) {
	m.statusMu.Lock()
	defer m.statusMu.Unlock()
	m.status.ConsecutiveFailures++
	m.status.LastError = err.Error()
	m.status.LastAttempt = at
}

// Status returns a snapshot of the store's recent health.
func (m *Monitor) Status() Status {
	m.statusMu.RLock()
	defer m.statusMu.RUnlock()
	return m.status
}
