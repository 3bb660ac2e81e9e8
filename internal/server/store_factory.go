package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/preston-bernstein/game-catalog-service/internal/config"
	"github.com/preston-bernstein/game-catalog-service/internal/logging"
	"github.com/preston-bernstein/game-catalog-service/internal/metrics"
	"github.com/preston-bernstein/game-catalog-service/internal/store"
)

type openFunc func(ctx context.Context, cfg store.Config) (store.Store, error)

type backoffFunc func(attempt int) time.Duration

// storeFactory connects to the configured backend with retries and wraps it with instrumentation.
type storeFactory struct {
	logger      *slog.Logger
	metrics     *metrics.Recorder
	open        openFunc
	maxAttempts int
	backoffFn   backoffFunc
}

func newStoreFactory(cfg config.StoreConfig, logger *slog.Logger, recorder *metrics.Recorder) storeFactory {
	backoff := cfg.ConnectBackoff
	return storeFactory{
		logger:      logger,
		metrics:     recorder,
		open:        store.Open,
		maxAttempts: max(cfg.ConnectAttempts, 1),
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

// build opens the backend and confirms it answers a ping. Each failed attempt waits
// attempt*backoff before the next one.
func (f storeFactory) build(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	var lastErr error

	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		s, err := f.connect(ctx, cfg)
		if err == nil {
			logging.Info(f.logger, "store connected",
				slog.String(logging.FieldBackend, cfg.Backend),
				slog.Int(logging.FieldAttempt, attempt),
			)
			return store.NewInstrumented(s, cfg.Backend, f.logger, f.metrics), nil
		}
		lastErr = err

		if attempt == f.maxAttempts {
			break
		}

		logging.Warn(f.logger, "store connect retry",
			slog.String(logging.FieldBackend, cfg.Backend),
			slog.Int(logging.FieldAttempt, attempt),
			slog.Int("max_attempts", f.maxAttempts),
			logging.Err(err),
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.backoffFn(attempt)):
		}
	}

	return nil, fmt.Errorf("connect %s store after %d attempts: %w", cfg.Backend, f.maxAttempts, lastErr)
}

func (f storeFactory) connect(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	s, err := f.open(ctx, cfg.Open())
	if err != nil {
		return nil, err
	}
	if err := s.Ping(ctx); err != nil {
		_ = s.Close(ctx)
		return nil, fmt.Errorf("ping %s store: %w", cfg.Backend, err)
	}
	return s, nil
}
