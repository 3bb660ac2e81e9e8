package store

import (
	"context"
	"sort"
	"sync"

	domaingames "github.com/preston-bernstein/game-catalog-service/internal/domain/games"
)

// MemoryStore keeps games in a mutex-guarded map.
type MemoryStore struct {
	mu    sync.RWMutex
	games map[string]domaingames.Game
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games: make(map[string]domaingames.Game),
	}
}

// Create assigns a new id and stores the game.
func (s *MemoryStore) Create(ctx context.Context, game domaingames.Game) (domaingames.Game, error) {
	if err := ctx.Err(); err != nil {
		return domaingames.Game{}, err
	}
	game.ID = NewID()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = game
	return game, nil
}

// List returns a copy of every game ordered by id.
func (s *MemoryStore) List(ctx context.Context) ([]domaingames.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domaingames.Game, 0, len(s.games))
	for _, g := range s.games {
		result = append(result, g)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// FindByID retrieves a game by id.
func (s *MemoryStore) FindByID(ctx context.Context, id string) (domaingames.Game, error) {
	id, err := canonicalID(id)
	if err != nil {
		return domaingames.Game{}, err
	}
	if err := ctx.Err(); err != nil {
		return domaingames.Game{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[id]
	if !ok {
		return domaingames.Game{}, ErrNotFound
	}
	return g, nil
}

// UpdateByID applies the patch to the stored game.
func (s *MemoryStore) UpdateByID(ctx context.Context, id string, patch domaingames.GamePatch) (domaingames.Game, error) {
	id, err := canonicalID(id)
	if err != nil {
		return domaingames.Game{}, err
	}
	if err := ctx.Err(); err != nil {
		return domaingames.Game{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[id]
	if !ok {
		return domaingames.Game{}, ErrNotFound
	}
	g = patch.Apply(g)
	s.games[id] = g
	return g, nil
}

// DeleteByID removes a game and returns it.
func (s *MemoryStore) DeleteByID(ctx context.Context, id string) (domaingames.Game, error) {
	id, err := canonicalID(id)
	if err != nil {
		return domaingames.Game{}, err
	}
	if err := ctx.Err(); err != nil {
		return domaingames.Game{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[id]
	if !ok {
		return domaingames.Game{}, ErrNotFound
	}
	delete(s.games, id)
	return g, nil
}

// Ping always succeeds for the memory backend.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close is a no-op.
func (s *MemoryStore) Close(context.Context) error {
	return nil
}
