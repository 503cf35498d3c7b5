package redisstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"bloodlink/internal/config"
)

type Redis struct {
	Client *redis.Client
}

// New connects and pings. Callers that can live without redis (the cache, the
// alert relay) should treat a nil *Redis as "run degraded".
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Error("failed to ping redis", slog.String("error", err.Error()))
		if closeErr := rdb.Close(); closeErr != nil {
			return nil, closeErr
		}
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	logger.Info("connected to redis")

	return &Redis{Client: rdb}, nil
}

func (r *Redis) Close() error {
	return r.Client.Close()
}
