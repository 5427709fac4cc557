// Package store keeps small string preferences behind one interface with
// file, memory and Redis backends.
package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/username/weekcal/internal/config"
)

// Store is a flat key/value store of strings.
type Store interface {
	// Get returns the value of key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
	Close() error
}

// New creates the store selected by cfg.Type
func New(ctx context.Context, cfg *config.StoreConfig, logger *zap.Logger) (Store, error) {
	switch cfg.Type {
	case "", "file":
		return NewFileStore(cfg.GetPath(), logger), nil
	case "memory":
		return NewMemoryStore(), nil
	case "redis":
		client, err := NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client, cfg.KeyPrefix, logger), nil
	default:
		return nil, fmt.Errorf("unknown store type '%s'", cfg.Type)
	}
}
