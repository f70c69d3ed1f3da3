package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	redisClient *redis.Client
	namespace   string
}

// NewRedisStore wraps a redis client as a durable key/value store.
func NewRedisStore(redisClient *redis.Client, namespace string) Store {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &redisStore{
		redisClient: redisClient,
		namespace:   namespace,
	}
}

func (s *redisStore) key(key string) string {
	return s.namespace + ":" + key
}

func (s *redisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.redisClient.Get(ctx, s.key(key)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil // Key not written yet
		}
		return "", fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return val, nil
}

func (s *redisStore) Set(ctx context.Context, key, value string) error {
	if err := s.redisClient.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, keys ...string) error {
	full := make([]string, len(keys))
	for i, key := range keys {
		full[i] = s.key(key)
	}
	if err := s.redisClient.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("failed to delete keys %v: %w", keys, err)
	}
	return nil
}
