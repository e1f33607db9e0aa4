// Package tokenstore persists the session bearer token between runs under a
// fixed key, either in a local YAML file or in Redis.
package tokenstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"supportdesk/internal/shared/config"
)

// DefaultKey is the key the token is stored under.
const DefaultKey = "auth_token"

// Store is durable client-side key/value storage for the bearer token.
// Get returns "" with a nil error when nothing is stored.
type Store interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Delete(ctx context.Context) error
}

// New builds the store selected by cfg.Store.
func New(cfg config.SessionConfig, redisCfg config.RedisConfig) (Store, error) {
	key := cfg.Key
	if key == "" {
		key = DefaultKey
	}
	switch cfg.Store {
	case "", "file":
		return NewFileStore(cfg.FilePath, key), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     redisCfg.GetAddr(),
			Password: redisCfg.Password,
			DB:       redisCfg.DB,
		})
		return NewRedisStore(client, key), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Store)
	}
}
