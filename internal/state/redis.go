package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/mercado/app/services"
)

// redisClient is the subset of *redis.Client the store uses.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Close() error
}

// RedisStore keeps the snapshot JSON under a single key, without expiry.
type RedisStore struct {
	client redisClient
	key    string
}

func NewRedisStore(client redisClient, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Describe() string { return "redis:" + s.key }

func (s *RedisStore) Close() error { return s.client.Close() }

func (s *RedisStore) Load(ctx context.Context) (services.State, bool, error) {
	val, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return services.State{}, false, nil
		}
		return services.State{}, false, fmt.Errorf("state: redis get %s: %w", s.key, err)
	}
	snap, err := Decode(val)
	if err != nil {
		return services.State{}, false, err
	}
	st, err := snap.State()
	if err != nil {
		return services.State{}, false, err
	}
	return st, true, nil
}

func (s *RedisStore) Save(ctx context.Context, st services.State) error {
	data, err := Encode(FromState(st))
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("state: redis set %s: %w", s.key, err)
	}
	return nil
}
