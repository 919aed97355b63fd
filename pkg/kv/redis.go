package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/streetcaps511-a11y/gmcaps-backend/pkg/config"
	"github.com/streetcaps511-a11y/gmcaps-backend/pkg/logger"
)

const keyNamespace = "gmcaps"

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// RedisStore backs the key/value surface with Redis. Entries have no TTL:
// like local storage, values live until overwritten or deleted.
type RedisStore struct {
	store cmdable
	raw   *redis.Client
}

// NewRedisStore bootstraps a Redis-backed store and verifies connectivity.
func NewRedisStore(ctx context.Context, cfg config.RedisConfig, logg *logger.Logger) (*RedisStore, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	if logg != nil {
		logg.Info(ctx, "redis storage connected")
	}
	return &RedisStore{store: raw, raw: raw}, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" {
		return nil, errors.New("redis url is required")
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	if r.store == nil {
		return nil, errors.New("redis store not initialized")
	}
	value, err := r.store.Get(ctx, r.buildKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if r.store == nil {
		return errors.New("redis store not initialized")
	}
	return r.store.Set(ctx, r.buildKey(key), value, 0).Err()
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	if r.store == nil {
		return errors.New("redis store not initialized")
	}
	return r.store.Del(ctx, r.buildKey(key)).Err()
}

func (r *RedisStore) Ping(ctx context.Context) error {
	if r.store == nil {
		return errors.New("redis store not initialized")
	}
	return r.store.Ping(ctx).Err()
}

func (r *RedisStore) Close() error {
	if r.raw == nil {
		return nil
	}
	return r.raw.Close()
}

func (r *RedisStore) buildKey(key string) string {
	return keyNamespace + ":" + key
}
