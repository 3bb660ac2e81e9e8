package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s, err := NewRedisStore(RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s, mr
}

func TestRedisStore(t *testing.T) {
	runStoreSuite(t, func(t *testing.T) Store {
		s, _ := newTestRedisStore(t)
		return s
	})
}

func TestRedisStoreKeysAndIndex(t *testing.T) {
	s, mr := newTestRedisStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, sampleGame())
	require.NoError(t, err)

	assert.True(t, mr.Exists(redisKey(created.ID)))
	ok, err := mr.SIsMember(redisIndexKey, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = s.DeleteByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, mr.Exists(redisKey(created.ID)))
}

func TestRedisStoreListSkipsDanglingIndexEntries(t *testing.T) {
	s, mr := newTestRedisStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, sampleGame())
	require.NoError(t, err)
	_, err = mr.SAdd(redisIndexKey, NewID())
	require.NoError(t, err)

	games, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, created.ID, games[0].ID)
}

func TestRedisStorePingFailsWhenServerDown(t *testing.T) {
	s, mr := newTestRedisStore(t)
	mr.Close()

	assert.Error(t, s.Ping(context.Background()))
}

func TestNewRedisStoreRequiresAddr(t *testing.T) {
	_, err := NewRedisStore(RedisConfig{})
	assert.Error(t, err)
}
