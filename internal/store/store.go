// Package store holds the record store adapter for games and its backends.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	domaingames "github.com/preston-bernstein/game-catalog-service/internal/domain/games"
)

var (
	// ErrNotFound is returned when a well-formed id matches no document.
	ErrNotFound = errors.New("game not found")
	// ErrInvalidID is returned when an id is not a valid object id. It is detected before any I/O.
	ErrInvalidID = errors.New("invalid game id")
)

// Store is the record store adapter used by the games service.
type Store interface {
	Create(ctx context.Context, game domaingames.Game) (domaingames.Game, error)
	List(ctx context.Context) ([]domaingames.Game, error)
	FindByID(ctx context.Context, id string) (domaingames.Game, error)
	UpdateByID(ctx context.Context, id string, patch domaingames.GamePatch) (domaingames.Game, error)
	// DeleteByID removes the document and returns it as it was before removal.
	DeleteByID(ctx context.Context, id string) (domaingames.Game, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// ParseID validates id against the object id format shared by every backend.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}

// canonicalID validates id and returns its lowercase hex form, the key every backend stores under.
func canonicalID(id string) (string, error) {
	oid, err := ParseID(id)
	if err != nil {
		return "", err
	}
	return oid.Hex(), nil
}

// NewID mints a fresh object id in hex form.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

func decodeGame(raw string) (domaingames.Game, error) {
	var game domaingames.Game
	if err := json.Unmarshal([]byte(raw), &game); err != nil {
		return domaingames.Game{}, fmt.Errorf("decode game: %w", err)
	}
	return game, nil
}
