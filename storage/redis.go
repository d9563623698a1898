package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisSlot stores the slot value as a plain Redis string.
type RedisSlot struct {
	client *redis.Client
	prefix string
}

// NewRedisSlot returns a slot whose keys are namespaced with prefix (may be empty).
func NewRedisSlot(client *redis.Client, prefix string) *RedisSlot {
	return &RedisSlot{client: client, prefix: prefix}
}

func (r *RedisSlot) key(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}

func (r *RedisSlot) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSlotEmpty
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (r *RedisSlot) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.key(key), value, 0).Err()
}
