// Package kv is the flat key/value persistence layer: the server-side
// equivalent of the storefront's browser local storage. Values are opaque
// byte payloads stored under fixed string keys.
package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/streetcaps511-a11y/gmcaps-backend/pkg/config"
	"github.com/streetcaps511-a11y/gmcaps-backend/pkg/logger"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("kv: key not found")

// Store is the persistence surface the domain depends on.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// Open builds the store selected by the storage config.
func Open(ctx context.Context, cfg *config.Config, logg *logger.Logger) (Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	switch cfg.Storage.NormalizedDriver() {
	case config.StorageDriverFile:
		return NewFileStore(cfg.Storage.DataDir)
	case config.StorageDriverRedis:
		return NewRedisStore(ctx, cfg.Redis, logg)
	case config.StorageDriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
