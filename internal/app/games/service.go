package games

import (
	"context"

	domaingames "github.com/preston-bernstein/game-catalog-service/internal/domain/games"
	"github.com/preston-bernstein/game-catalog-service/internal/store"
)

// Service coordinates game operations: validation first, then the store.
type Service struct {
	store store.Store
}

// NewService constructs a Service with the provided Store.
func NewService(s store.Store) *Service {
	return &Service{store: s}
}

// Create validates in and persists a new game.
func (s *Service) Create(ctx context.Context, in CreateInput) (domaingames.Game, error) {
	if err := ValidateCreate(in); err != nil {
		return domaingames.Game{}, err
	}
	return s.store.Create(ctx, domaingames.Game{
		Title:       in.Title,
		ReleaseDate: in.ReleaseDate,
		Genre:       in.Genre,
	})
}

// Games returns every stored game.
func (s *Service) Games(ctx context.Context) ([]domaingames.Game, error) {
	games, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if games == nil {
		games = []domaingames.Game{}
	}
	return games, nil
}

// GameByID returns a single game.
func (s *Service) GameByID(ctx context.Context, id string) (domaingames.Game, error) {
	return s.store.FindByID(ctx, id)
}

// Update validates in and applies its fields to the target game.
func (s *Service) Update(ctx context.Context, in UpdateInput) (domaingames.Game, error) {
	if err := ValidateUpdate(in); err != nil {
		return domaingames.Game{}, err
	}
	return s.store.UpdateByID(ctx, in.ID, in.Patch())
}

// Delete removes a game and returns what was removed.
func (s *Service) Delete(ctx context.Context, id string) (domaingames.Game, error) {
	return s.store.DeleteByID(ctx, id)
}
