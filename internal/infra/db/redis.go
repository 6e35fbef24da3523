package db

import (
	"context"
	"fmt"

	"jaac-backend/internal/pkg/config"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns nil without error when no URL is configured.
func ConnectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, func(), error) {
	if cfg.URL == "" {
		return nil, func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}
	opts.DialTimeout = cfg.Timeout
	opts.ReadTimeout = cfg.Timeout
	opts.WriteTimeout = cfg.Timeout

	rdb := redis.NewClient(opts)

	// Test the connection
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	cleanup := func() {
		if err := rdb.Close(); err != nil {
			fmt.Printf("Error closing redis: %v\n", err)
		}
	}

	return rdb, cleanup, nil
}
