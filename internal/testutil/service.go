package testutil

import (
	"context"
	"testing"

	"github.com/preston-bernstein/game-catalog-service/internal/app/games"
	domaingames "github.com/preston-bernstein/game-catalog-service/internal/domain/games"
	"github.com/preston-bernstein/game-catalog-service/internal/store"
)

// NewSeededStore returns a fresh in-memory store holding one sample game, a service over it and
// the seeded game's id.
func NewSeededStore(t *testing.T) (*store.MemoryStore, *games.Service, string) {
	t.Helper()
	ms := store.NewMemoryStore()
	svc := games.NewService(ms)
	seeded, err := svc.Create(context.Background(), SampleInput())
	if err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}
	return ms, svc, seeded.ID
}

// NewServiceWithGames builds a games service backed by an in-memory store preloaded with games.
// Ids on the supplied games are ignored; the returned games carry the assigned ones.
func NewServiceWithGames(t *testing.T, g []domaingames.Game) (*games.Service, []domaingames.Game) {
	t.Helper()
	ms := store.NewMemoryStore()
	created := make([]domaingames.Game, 0, len(g))
	for _, game := range g {
		saved, err := ms.Create(context.Background(), game)
		if err != nil {
			t.Fatalf("failed to preload game: %v", err)
		}
		created = append(created, saved)
	}
	return games.NewService(ms), created
}

// StoreInspector reads store contents for assertions without going through HTTP.
type StoreInspector struct {
	t     *testing.T
	store store.Store
}

// NewStoreInspector wraps s for test assertions.
func NewStoreInspector(t *testing.T, s store.Store) StoreInspector {
	return StoreInspector{t: t, store: s}
}

// Count returns the number of stored games.
func (i StoreInspector) Count() int {
	i.t.Helper()
	list, err := i.store.List(context.Background())
	if err != nil {
		i.t.Fatalf("list games: %v", err)
	}
	return len(list)
}

// Get returns the stored game and whether it exists.
func (i StoreInspector) Get(id string) (domaingames.Game, bool) {
	i.t.Helper()
	game, err := i.store.FindByID(context.Background(), id)
	if err != nil {
		return domaingames.Game{}, false
	}
	return game, true
}
