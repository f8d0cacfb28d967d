package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"disasterAlert/internal/config"
)

const pingTimeout = 5 * time.Second

// Redis owns the client shared by the zone cache and the notification queue.
type Redis struct {
	Client *redis.Client
}

func NewRedis(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Redis, error) {
	const op = "redis.NewRedis"

	opts := &redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	if cfg.Redis.PoolSize > 0 {
		opts.PoolSize = cfg.Redis.PoolSize
	}
	r := &Redis{Client: redis.NewClient(opts)}

	if err := r.Ping(ctx); err != nil {
		logger.Error("redis ping failed",
			slog.String("op", op),
			slog.String("addr", cfg.Redis.Addr),
			slog.Any("error", err),
		)
		if cerr := r.Close(); cerr != nil {
			logger.Warn("redis close after failed ping", slog.Any("error", cerr))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	logger.Info("Connected to Redis",
		slog.String("addr", cfg.Redis.Addr),
		slog.Int("db", cfg.Redis.DB),
	)

	return r, nil
}

// Ping doubles as the readiness check.
func (r *Redis) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return r.Client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.Client.Close()
}
