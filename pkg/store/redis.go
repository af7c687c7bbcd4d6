package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures a Redis-backed KV.
type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
}

// RedisKV stores values as plain Redis strings without expiry.
type RedisKV struct {
	client redis.UniversalClient
	owned  bool
}

// NewRedisKV connects to Redis and verifies the connection with PING.
func NewRedisKV(ctx context.Context, cfg RedisConfig) (*RedisKV, error) {
	if cfg.Addr == "" {
		cfg.Addr = "localhost:6379"
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 2 * time.Second
	}
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: redis %s: %v", ErrUnavailable, cfg.Addr, err)
	}
	return &RedisKV{client: client, owned: true}, nil
}

// NewRedisKVFromClient wraps an existing client. Close leaves it open.
func NewRedisKVFromClient(client redis.UniversalClient) *RedisKV {
	return &RedisKV{client: client}
}

// Get retrieves a value. redis.Nil is a miss.
func (r *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Set stores a value with no expiry.
func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

// Close closes the client when this KV created it.
func (r *RedisKV) Close() error {
	if !r.owned {
		return nil
	}
	return r.client.Close()
}

var _ KV = (*RedisKV)(nil)
