package testutil

import (
	"github.com/preston-bernstein/game-catalog-service/internal/app/games"
	domaingames "github.com/preston-bernstein/game-catalog-service/internal/domain/games"
)

const (
	SampleTitle       = "Hades"
	SampleReleaseDate = "2020-09-17"
	SampleGenre       = "Roguelike"
)

// SampleInput returns a valid create payload.
func SampleInput() games.CreateInput {
	return games.CreateInput{
		Title:       SampleTitle,
		ReleaseDate: SampleReleaseDate,
		Genre:       SampleGenre,
	}
}

// SampleGame returns a game fixture with the provided id.
func SampleGame(id string) domaingames.Game {
	return domaingames.Game{
		ID:          id,
		Title:       SampleTitle,
		ReleaseDate: SampleReleaseDate,
		Genre:       SampleGenre,
	}
}
