package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/carrylink/carrylink-backend/config"
	"github.com/redis/go-redis/v9"
)

// OpenRedis connects and pings the Redis instance used for shared rate-limit
// counters. Callers treat an empty addr as "no Redis configured" and fall
// back to the in-memory store before calling this.
func OpenRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("REDIS_ADDR is not set")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
