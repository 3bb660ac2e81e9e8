package testutil

import (
	"context"
	"net/http"

	"github.com/preston-bernstein/game-catalog-service/internal/monitor"
)

// StubMonitor implements the server's store monitor for tests.
type StubMonitor struct {
	StartCalls int
	StopCalls  int
	Err        error
	StatusVal  monitor.Status
}

func (m *StubMonitor) Start(context.Context) {
	m.StartCalls++
}

func (m *StubMonitor) Stop(context.Context) error {
	m.StopCalls++
	return m.Err
}

func (m *StubMonitor) Status() monitor.Status {
	return m.StatusVal
}

// StubHTTPServer implements the server's httpServer for tests. ListenErr is returned from
// ListenAndServe; set it to http.ErrServerClosed to mimic a clean stop.
type StubHTTPServer struct {
	AddrVal       string
	HandlerVal    http.Handler
	ListenCalls   int
	ShutdownCalls int
	ListenErr     error
	ShutdownErr   error
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.ListenCalls++
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(context.Context) error {
	s.ShutdownCalls++
	return s.ShutdownErr
}

func (s *StubHTTPServer) Addr() string {
	return s.AddrVal
}

func (s *StubHTTPServer) Handler() http.Handler {
	if s.HandlerVal == nil {
		return http.NotFoundHandler()
	}
	return s.HandlerVal
}

// BlockingHTTPServer simulates a shutdown that waits on Unblock or the context deadline.
type BlockingHTTPServer struct {
	StubHTTPServer
	Unblock chan struct{}
}

func (b *BlockingHTTPServer) Shutdown(ctx context.Context) error {
	b.ShutdownCalls++
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.Unblock:
		return nil
	}
}
