package auth

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storefront/backend/internal/infrastructure/config"
)

// NewSessionStore builds the session store selected by configuration.
// "redis" requires a non-nil client; "memory" is for development only.
func NewSessionStore(cfg *config.SessionConfig, client *redis.Client) (SessionStore, error) {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	switch cfg.Store {
	case "redis":
		if client == nil {
			return nil, fmt.Errorf("session.store is 'redis' but no redis client is configured")
		}
		return NewRedisStore(client, ttl), nil
	case "memory":
		return NewMemoryStore(ttl), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Store)
	}
}
