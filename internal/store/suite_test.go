package store

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domaingames "github.com/preston-bernstein/game-catalog-service/internal/domain/games"
)

func sampleGame() domaingames.Game {
	return domaingames.Game{
		Title:       "Super Mario Bros",
		ReleaseDate: "September 1985",
		Genre:       "Platformer",
	}
}

func strPtr(s string) *string { return &s }

// runStoreSuite exercises the adapter contract against a fresh store per subtest.
func runStoreSuite(t *testing.T, newStore func(t *testing.T) Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("create assigns id", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, sampleGame())
		require.NoError(t, err)

		_, err = ParseID(created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Super Mario Bros", created.Title)
		assert.Equal(t, "September 1985", created.ReleaseDate)
		assert.Equal(t, "Platformer", created.Genre)
	})

	t.Run("create ignores caller id", func(t *testing.T) {
		s := newStore(t)
		in := sampleGame()
		in.ID = "caller-supplied"
		created, err := s.Create(ctx, in)
		require.NoError(t, err)
		assert.NotEqual(t, "caller-supplied", created.ID)
	})

	t.Run("list empty returns empty slice", func(t *testing.T) {
		s := newStore(t)
		games, err := s.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, games)
		assert.Empty(t, games)
	})

	t.Run("list returns created games", func(t *testing.T) {
		s := newStore(t)
		first, err := s.Create(ctx, sampleGame())
		require.NoError(t, err)
		second := sampleGame()
		second.Title = "The Legend of Zelda"
		_, err = s.Create(ctx, second)
		require.NoError(t, err)

		games, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, games, 2)
		assert.Contains(t, games, first)
	})

	t.Run("find by id", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, sampleGame())
		require.NoError(t, err)

		found, err := s.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, found)
	})

	t.Run("find malformed id", func(t *testing.T) {
		s := newStore(t)
		_, err := s.FindByID(ctx, "not-an-id")
		assert.ErrorIs(t, err, ErrInvalidID)
	})

	t.Run("find absent id", func(t *testing.T) {
		s := newStore(t)
		_, err := s.FindByID(ctx, NewID())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("update applies only supplied fields", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, sampleGame())
		require.NoError(t, err)

		updated, err := s.UpdateByID(ctx, created.ID, domaingames.GamePatch{Title: strPtr("Super Mario Bros 3")})
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "Super Mario Bros 3", updated.Title)
		assert.Equal(t, created.ReleaseDate, updated.ReleaseDate)
		assert.Equal(t, created.Genre, updated.Genre)

		found, err := s.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, updated, found)
	})

	t.Run("update absent and malformed ids", func(t *testing.T) {
		s := newStore(t)
		_, err := s.UpdateByID(ctx, NewID(), domaingames.GamePatch{Genre: strPtr("RPG")})
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = s.UpdateByID(ctx, "123", domaingames.GamePatch{Genre: strPtr("RPG")})
		assert.ErrorIs(t, err, ErrInvalidID)
	})

	t.Run("delete removes document", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, sampleGame())
		require.NoError(t, err)

		removed, err := s.DeleteByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, removed)

		_, err = s.FindByID(ctx, created.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		games, err := s.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, games)
	})

	t.Run("delete absent and malformed ids", func(t *testing.T) {
		s := newStore(t)
		_, err := s.DeleteByID(ctx, NewID())
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = s.DeleteByID(ctx, "zzzzzzzzzzzzzzzzzzzzzzzz")
		assert.ErrorIs(t, err, ErrInvalidID)
	})

	t.Run("ids match regardless of hex case", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, sampleGame())
		require.NoError(t, err)
		upper := strings.ToUpper(created.ID)

		found, err := s.FindByID(ctx, upper)
		require.NoError(t, err)
		assert.Equal(t, created, found)

		updated, err := s.UpdateByID(ctx, upper, domaingames.GamePatch{Genre: strPtr("Action")})
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "Action", updated.Genre)

		removed, err := s.DeleteByID(ctx, upper)
		require.NoError(t, err)
		assert.Equal(t, created.ID, removed.ID)

		_, err = s.FindByID(ctx, created.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("ping", func(t *testing.T) {
		s := newStore(t)
		assert.NoError(t, s.Ping(ctx))
	})
}
