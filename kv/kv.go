// Package kv is the string-keyed persistent storage that favorites live in.
//
// Backends: a gache JSON file on the afero filesystem (default), a bbolt database,
// a redis server, and an in-memory map for tests.
package kv

import (
	"context"
	"fmt"
	"strings"

	"github.com/cinedex/cinedex/key"
	"github.com/cinedex/cinedex/where"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Store reads and writes whole string values by key.
type Store interface {
	// Get returns the value stored under key, or None if nothing is stored.
	Get(ctx context.Context, key string) (mo.Option[string], error)
	// Set replaces the value stored under key.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend.
	Close() error
}

// Backend names accepted by storage.backend.
const (
	BackendFile   = "file"
	BackendBolt   = "bolt"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Backends lists every backend name.
var Backends = []string{BackendFile, BackendBolt, BackendRedis, BackendMemory}

// Open opens the backend selected by storage.backend.
func Open(ctx context.Context) (Store, error) {
	switch backend := strings.ToLower(viper.GetString(key.StorageBackend)); backend {
	case "", BackendFile:
		return NewFile(where.Favorites()), nil
	case BackendBolt:
		return NewBolt(where.FavoritesDB())
	case BackendRedis:
		return NewRedis(ctx, RedisOptions{
			Addr:     viper.GetString(key.StorageRedisAddr),
			Password: viper.GetString(key.StorageRedisPassword),
			DB:       viper.GetInt(key.StorageRedisDB),
			Prefix:   viper.GetString(key.StorageRedisPrefix),
		})
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q, expected one of %s", backend, strings.Join(Backends, ", "))
	}
}
