package testutil

import (
	"context"
	"net/http"
	"testing"

	"github.com/preston-bernstein/game-catalog-service/internal/metrics"
)

// NewRecorderWithShutdown returns a recorder and a no-op shutdown to simplify tests.
func NewRecorderWithShutdown() (*metrics.Recorder, func(context.Context) error) {
	return metrics.NewRecorder(), func(context.Context) error { return nil }
}

// NewTelemetry sets up exported metrics for a test and shuts the meter provider down on cleanup.
// The returned handler serves the Prometheus scrape output.
func NewTelemetry(t *testing.T) (*metrics.Recorder, http.Handler) {
	t.Helper()
	rec, handler, shutdown, err := metrics.Setup(context.Background(), metrics.TelemetryConfig{
		Enabled:     true,
		ServiceName: "game-catalog-service-test",
	})
	if err != nil {
		t.Fatalf("metrics setup: %v", err)
	}
	t.Cleanup(func() { _ = shutdown(context.Background()) })
	return rec, handler
}
