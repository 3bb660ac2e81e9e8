package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/game-catalog-service/internal/config"
	"github.com/preston-bernstein/game-catalog-service/internal/metrics"
	"github.com/preston-bernstein/game-catalog-service/internal/store"
	"github.com/preston-bernstein/game-catalog-service/internal/testutil"
)

func memoryConfig() config.Config {
	return config.Config{
		Port: "0",
		Store: config.StoreConfig{
			Backend:         "memory",
			ConnectAttempts: 1,
			CheckInterval:   5 * time.Millisecond,
		},
		Metrics: config.MetricsConfig{Enabled: false},
	}
}

func TestNewConstructsServer(t *testing.T) {
	srv, err := New(context.Background(), memoryConfig(), nil)
	if err != nil {
		t.Fatalf("expected server, got %v", err)
	}
	if srv.Handler() == nil || srv.store == nil || srv.monitor == nil {
		t.Fatalf("expected wired server, got %+v", srv)
	}
}

func TestNewFailsOnUnknownBackend(t *testing.T) {
	cfg := memoryConfig()
	cfg.Store.Backend = "cassandra"

	if _, err := New(context.Background(), cfg, nil); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestServerServesHealthAndGames(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv, err := newServerWithMetrics(ctx, memoryConfig(), nil, metrics.NewRecorder())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	srv.monitor.Start(ctx)
	defer func() { _ = srv.monitor.Stop(ctx) }()

	router := srv.Handler()
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/health", nil), http.StatusOK)

	deadline := time.Now().Add(500 * time.Millisecond)
	for !srv.monitor.Status().IsReady() {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for store monitor")
		}
		time.Sleep(5 * time.Millisecond)
	}
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/ready", nil), http.StatusOK)

	rr := testutil.ServeJSON(t, router, http.MethodPost, "/api/game/create", testutil.SampleInput())
	testutil.AssertStatus(t, rr, http.StatusCreated)

	rr = testutil.Serve(router, http.MethodGet, "/api/game/get", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var list []map[string]string
	testutil.DecodeJSON(t, rr, &list)
	if len(list) != 1 {
		t.Fatalf("expected 1 game, got %d", len(list))
	}
	if srv.metrics.StoreCalls(store.OpCreate) != 1 {
		t.Fatalf("expected instrumented store to record the create, got %d", srv.metrics.StoreCalls(store.OpCreate))
	}
}

func TestServerReadyFailsWhenStorePingFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st := testutil.NewStubStore()
	srv := newServerWithStore(memoryConfig(), nil, metrics.NewRecorder(), st, nil, nil)
	st.SetPingErr(errors.New("connection refused"))

	srv.monitor.Start(ctx)
	defer func() { _ = srv.monitor.Stop(ctx) }()

	deadline := time.Now().Add(500 * time.Millisecond)
	for st.PingCalls() < 3 {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for store checks")
		}
		time.Sleep(5 * time.Millisecond)
	}
	testutil.AssertStatus(t, testutil.Serve(srv.Handler(), http.MethodGet, "/ready", nil), http.StatusServiceUnavailable)
}

func TestGracefulShutdownStopsComponentsAndClosesStore(t *testing.T) {
	st := testutil.NewStubStore()
	mon := &testutil.StubMonitor{}
	httpSrv := &testutil.StubHTTPServer{}

	srv := newServerWithDeps(config.Config{}, nil, st, httpSrv, mon)
	srv.gracefulShutdown()

	if mon.StopCalls != 1 {
		t.Fatalf("expected monitor Stop to be called once, got %d", mon.StopCalls)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls)
	}
	if st.CloseCalls() != 1 {
		t.Fatalf("expected store Close to be called once, got %d", st.CloseCalls())
	}
}

func TestGracefulShutdownTimesOutLongRunningShutdown(t *testing.T) {
	mon := &testutil.StubMonitor{}
	blocking := &testutil.BlockingHTTPServer{
		StubHTTPServer: testutil.StubHTTPServer{AddrVal: ":0", HandlerVal: http.NewServeMux()},
		Unblock:        make(chan struct{}),
	}

	original := shutdownTimeout
	shutdownTimeout = 5 * time.Millisecond
	defer func() { shutdownTimeout = original }()

	srv := newServerWithDeps(config.Config{}, nil, testutil.NewStubStore(), blocking, mon)

	start := time.Now()
	srv.gracefulShutdown()
	elapsed := time.Since(start)

	if blocking.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", blocking.ShutdownCalls)
	}
	if elapsed > 200*time.Millisecond {
		t.Fatalf("shutdown took too long: %s", elapsed)
	}
}

func TestGracefulShutdownContinuesWhenStepsFail(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	st := testutil.NewStubStore()
	st.CloseErr = errors.New("close failure")
	mon := &testutil.StubMonitor{Err: errors.New("stop failure")}
	httpSrv := &testutil.StubHTTPServer{ShutdownErr: errors.New("shutdown failure")}

	srv := newServerWithDeps(config.Config{}, logger, st, httpSrv, mon)
	srv.gracefulShutdown()

	if httpSrv.ShutdownCalls != 1 || st.CloseCalls() != 1 {
		t.Fatalf("expected every step to run, shutdown=%d close=%d", httpSrv.ShutdownCalls, st.CloseCalls())
	}
	if buf.Len() == 0 {
		t.Fatalf("expected failures to be logged")
	}
}

func TestServerStartHandlesListenErrorAndStops(t *testing.T) {
	srv := newServerWithDeps(config.Config{}, nil, testutil.NewStubStore(), &testutil.StubHTTPServer{ListenErr: errors.New("listen failure")}, &testutil.StubMonitor{})

	var wg sync.WaitGroup
	wg.Add(1)
	stopCalled := make(chan struct{})
	stop := func() {
		close(stopCalled)
		wg.Done()
	}

	srv.startServer(stop)

	select {
	case <-stopCalled:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected stop to be called on listen failure")
	}

	wg.Wait()
}

func TestRunCancelsAndStopsComponents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st := testutil.NewStubStore()
	mon := &testutil.StubMonitor{}
	httpSrv := &testutil.StubHTTPServer{ListenErr: http.ErrServerClosed}

	srv := newServerWithDeps(config.Config{}, nil, st, httpSrv, mon)

	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("run did not return after cancel")
	}

	if mon.StartCalls != 1 {
		t.Fatalf("expected monitor Start called once, got %d", mon.StartCalls)
	}
	if mon.StopCalls != 1 {
		t.Fatalf("expected monitor Stop called once, got %d", mon.StopCalls)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown called once, got %d", httpSrv.ShutdownCalls)
	}
	if st.CloseCalls() != 1 {
		t.Fatalf("expected store Close called once, got %d", st.CloseCalls())
	}
}
