package main

import (
	"testing"
)

// Smoke test to ensure main honors SKIP_SERVER_RUN and does not block test runs.
func TestMainSkipsWhenEnvSet(t *testing.T) {
	t.Setenv("SKIP_SERVER_RUN", "1")
	main()
}

func TestRunFailsOnInvalidConfig(t *testing.T) {
	t.Setenv("STORE_CONNECT_ATTEMPTS", "not-a-number")
	if code := run(); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}

func TestRunFailsOnUnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "cassandra")
	t.Setenv("STORE_CONNECT_ATTEMPTS", "1")
	t.Setenv("METRICS_ENABLED", "false")
	if code := run(); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}
