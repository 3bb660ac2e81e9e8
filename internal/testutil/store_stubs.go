package testutil

import (
	"context"
	"sync"

	domaingames "github.com/preston-bernstein/game-catalog-service/internal/domain/games"
	"github.com/preston-bernstein/game-catalog-service/internal/store"
)

// StubStore wraps a MemoryStore and lets tests fail Ping or observe Close.
type StubStore struct {
	*store.MemoryStore

	mu         sync.Mutex
	PingErr    error
	CloseErr   error
	pingCalls  int
	closeCalls int
}

// NewStubStore returns an empty StubStore.
func NewStubStore() *StubStore {
	return &StubStore{MemoryStore: store.NewMemoryStore()}
}

func (s *StubStore) Ping(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pingCalls++
	if s.PingErr != nil {
		return s.PingErr
	}
	return s.MemoryStore.Ping(ctx)
}

func (s *StubStore) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeCalls++
	return s.CloseErr
}

// SetPingErr changes the Ping result while other goroutines may be pinging.
func (s *StubStore) SetPingErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.PingErr = err
}

// PingCalls reports how many times Ping ran.
func (s *StubStore) PingCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pingCalls
}

// CloseCalls reports how many times Close ran.
func (s *StubStore) CloseCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeCalls
}

var _ store.Store = (*StubStore)(nil)

// Games is a convenience for listing a store's contents in assertions.
func Games(s store.Store) []domaingames.Game {
	list, _ := s.List(context.Background())
	return list
}
