package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	domaingames "github.com/preston-bernstein/game-catalog-service/internal/domain/games"
)

const (
	redisKeyPrefix = "game:"
	redisIndexKey  = "games"
	// Optimistic transactions are re-run when a watched key changes underneath them.
	redisMaxTxAttempts = 5
)

// RedisConfig holds the connection details for the redis backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisStore keeps each game as a JSON document under game:<id>, indexed by the games set.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore builds an instrumented redis client. It does not dial; use Ping to verify reachability.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis addr is required")
	}
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    []string{cfg.Addr},
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := redisotel.InstrumentTracing(client); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to instrument redis: %w", err)
	}
	if err := redisotel.InstrumentMetrics(client); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to instrument redis metrics: %w", err)
	}
	return newRedisStoreWithClient(client), nil
}

func newRedisStoreWithClient(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Create(ctx context.Context, game domaingames.Game) (domaingames.Game, error) {
	game.ID = NewID()
	data, err := json.Marshal(game)
	if err != nil {
		return domaingames.Game{}, fmt.Errorf("encode game: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, redisKey(game.ID), data, 0)
		pipe.SAdd(ctx, redisIndexKey, game.ID)
		return nil
	})
	if err != nil {
		return domaingames.Game{}, fmt.Errorf("store game: %w", err)
	}
	return game, nil
}

func (s *RedisStore) List(ctx context.Context) ([]domaingames.Game, error) {
	ids, err := s.client.SMembers(ctx, redisIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list game ids: %w", err)
	}
	result := make([]domaingames.Game, 0, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	sort.Strings(ids)

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = redisKey(id)
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("load games: %w", err)
	}
	for _, v := range vals {
		// Skip index entries whose document vanished between SMEMBERS and MGET.
		raw, ok := v.(string)
		if !ok {
			continue
		}
		game, err := decodeGame(raw)
		if err != nil {
			return nil, err
		}
		result = append(result, game)
	}
	return result, nil
}

func (s *RedisStore) FindByID(ctx context.Context, id string) (domaingames.Game, error) {
	id, err := canonicalID(id)
	if err != nil {
		return domaingames.Game{}, err
	}
	raw, err := s.client.Get(ctx, redisKey(id)).Result()
	if err != nil {
		return domaingames.Game{}, redisErr("load game", err)
	}
	return decodeGame(raw)
}

func (s *RedisStore) UpdateByID(ctx context.Context, id string, patch domaingames.GamePatch) (domaingames.Game, error) {
	id, err := canonicalID(id)
	if err != nil {
		return domaingames.Game{}, err
	}
	key := redisKey(id)
	var updated domaingames.Game
	err = s.watch(ctx, key, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Result()
		if err != nil {
			return redisErr("load game", err)
		}
		current, err := decodeGame(raw)
		if err != nil {
			return err
		}
		updated = patch.Apply(current)
		data, err := json.Marshal(updated)
		if err != nil {
			return fmt.Errorf("encode game: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	})
	if err != nil {
		return domaingames.Game{}, err
	}
	return updated, nil
}

func (s *RedisStore) DeleteByID(ctx context.Context, id string) (domaingames.Game, error) {
	id, err := canonicalID(id)
	if err != nil {
		return domaingames.Game{}, err
	}
	key := redisKey(id)
	var removed domaingames.Game
	err = s.watch(ctx, key, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Result()
		if err != nil {
			return redisErr("load game", err)
		}
		removed, err = decodeGame(raw)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			pipe.SRem(ctx, redisIndexKey, id)
			return nil
		})
		return err
	})
	if err != nil {
		return domaingames.Game{}, err
	}
	return removed, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close(context.Context) error {
	return s.client.Close()
}

// watch runs fn in a WATCH/MULTI transaction on key, re-running it when the key changed concurrently.
func (s *RedisStore) watch(ctx context.Context, key string, fn func(tx *redis.Tx) error) error {
	for attempt := 0; attempt < redisMaxTxAttempts; attempt++ {
		err := s.client.Watch(ctx, fn, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return fmt.Errorf("update game %s: %w", key, redis.TxFailedErr)
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}

func redisErr(op string, err error) error {
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
