package bootstrap

import (
	"context"
	"log/slog"

	"jaac-backend/internal/infra/db"
	"jaac-backend/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedis,
	),
)

// NewRedis returns a nil client when REDIS_URL is unset.
func NewRedis(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Redis.Timeout)
	defer cancel()

	rdb, cleanup, err := db.ConnectRedis(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	if rdb == nil {
		logger.Info("REDIS_URL not set, confirmation guard is in-process only")
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return rdb, nil
}
