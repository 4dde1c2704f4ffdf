package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/secondhand/console/internal/infrastructure/config"
)

// RedisSlot stores the value under a prefixed Redis key, letting several
// console installations on one host share a session.
type RedisSlot struct {
	client *redis.Client
	key    string
}

// NewRedisSlot connects to Redis and verifies the connection.
func NewRedisSlot(ctx context.Context, cfg config.RedisConfig, key string) (*RedisSlot, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisSlotWithClient(client, cfg.KeyPrefix, key), nil
}

// NewRedisSlotWithClient creates a slot with an existing Redis client.
func NewRedisSlotWithClient(client *redis.Client, keyPrefix, key string) *RedisSlot {
	return &RedisSlot{client: client, key: keyPrefix + key}
}

// Key returns the full Redis key.
func (r *RedisSlot) Key() string {
	return r.key
}

func (r *RedisSlot) Load(ctx context.Context) (string, error) {
	value, err := r.client.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("loading session: %w", err)
	}
	return value, nil
}

func (r *RedisSlot) Save(ctx context.Context, value string) error {
	if err := r.client.Set(ctx, r.key, value, 0).Err(); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

func (r *RedisSlot) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// Close closes the Redis client.
func (r *RedisSlot) Close() error {
	return r.client.Close()
}
