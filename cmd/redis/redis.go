package redisclient

import (
	"context"
	"fmt"
	"time"

	"github.com/nedasoft/marketplace-api/cmd/config"
	"github.com/redis/go-redis/v9"
)

// pingTimeout bounds the connectivity check at startup so a dead Redis
// fails fast instead of hanging the boot sequence.
const pingTimeout = 5 * time.Second

var client *redis.Client

// New connects the process-wide Redis client backing the session store and
// verifies connectivity before anything starts serving.
func New(cfg *config.Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config provided")
	}

	addr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
	c := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return fmt.Errorf("unable to ping redis at %s: %w", addr, err)
	}

	client = c
	return nil
}

// Get returns the shared client, nil until New has succeeded.
func Get() *redis.Client {
	return client
}

func Close() error {
	if client == nil {
		return nil
	}
	return client.Close()
}
