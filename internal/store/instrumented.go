package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	domaingames "github.com/preston-bernstein/game-catalog-service/internal/domain/games"
	"github.com/preston-bernstein/game-catalog-service/internal/logging"
	"github.com/preston-bernstein/game-catalog-service/internal/metrics"
)

// Operation names used for metrics and logs.
const (
	OpCreate = "create"
	OpList   = "list"
	OpFind   = "find_by_id"
	OpUpdate = "update_by_id"
	OpDelete = "delete_by_id"
	OpPing   = "ping"
)

// instrumentedStore wraps a Store with latency/error metrics and failure logging.
type instrumentedStore struct {
	inner   Store
	backend string
	logger  *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time
}

// NewInstrumented decorates inner. Not-found and invalid-id outcomes are not counted as errors.
func NewInstrumented(inner Store, backend string, logger *slog.Logger, recorder *metrics.Recorder) Store {
	return &instrumentedStore{
		inner:   inner,
		backend: backend,
		logger:  logger,
		metrics: recorder,
		now:     time.Now,
	}
}

func (s *instrumentedStore) Create(ctx context.Context, game domaingames.Game) (domaingames.Game, error) {
	start := s.now()
	created, err := s.inner.Create(ctx, game)
	s.observe(ctx, OpCreate, start, err, created.ID)
	return created, err
}

func (s *instrumentedStore) List(ctx context.Context) ([]domaingames.Game, error) {
	start := s.now()
	games, err := s.inner.List(ctx)
	s.observe(ctx, OpList, start, err, "")
	return games, err
}

func (s *instrumentedStore) FindByID(ctx context.Context, id string) (domaingames.Game, error) {
	start := s.now()
	game, err := s.inner.FindByID(ctx, id)
	s.observe(ctx, OpFind, start, err, id)
	return game, err
}

func (s *instrumentedStore) UpdateByID(ctx context.Context, id string, patch domaingames.GamePatch) (domaingames.Game, error) {
	start := s.now()
	game, err := s.inner.UpdateByID(ctx, id, patch)
	s.observe(ctx, OpUpdate, start, err, id)
	return game, err
}

func (s *instrumentedStore) DeleteByID(ctx context.Context, id string) (domaingames.Game, error) {
	start := s.now()
	game, err := s.inner.DeleteByID(ctx, id)
	s.observe(ctx, OpDelete, start, err, id)
	return game, err
}

// Ping is not recorded here; the monitor records its own checks.
func (s *instrumentedStore) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}

func (s *instrumentedStore) Close(ctx context.Context) error {
	return s.inner.Close(ctx)
}

func (s *instrumentedStore) observe(ctx context.Context, op string, start time.Time, err error, id string) {
	duration := s.now().Sub(start)
	failure := err
	if IsExpected(err) {
		failure = nil
	}
	s.metrics.RecordStoreOperation(s.backend, op, duration, failure)
	if failure == nil {
		return
	}
	args := []any{
		slog.String(logging.FieldBackend, s.backend),
		slog.String(logging.FieldOperation, op),
		slog.Int64(logging.FieldDurationMS, duration.Milliseconds()),
	}
	if id != "" {
		args = append(args, slog.String(logging.FieldGameID, id))
	}
	logging.ErrorContext(ctx, s.logger, "store operation failed", failure, args...)
}

// IsExpected reports whether err is a domain outcome rather than a store failure.
func IsExpected(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidID)
}
