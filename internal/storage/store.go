package storage

import (
	"context"
	"fmt"

	"github.com/fakhrymubarak/weather-dashboard/internal/config"
	"github.com/fakhrymubarak/weather-dashboard/internal/redis"
)

// Keys of the persisted dashboard state. Values are JSON encoded.
const (
	FavoritesKey = "favorites"
	DarkModeKey  = "darkMode"
)

// Store is a string-keyed key-value store holding JSON-encoded values.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Open returns the backend selected by store.driver. The redis backend must answer a ping.
func Open(ctx context.Context, driver string) (Store, error) {
	switch driver {
	case "", "redis":
		client := redis.GetClient()
		if err := redis.Ping(ctx, client); err != nil {
			return nil, fmt.Errorf("redis at %s unreachable: %w", config.GetRedisAddr(), err)
		}
		return NewRedisStore(client, config.GetStorePrefix()), nil
	case "sqlite":
		return NewSQLiteStore(config.GetSQLitePath())
	case "memory":
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", driver)
}
