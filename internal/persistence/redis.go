package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/brainswarm/booking-api/internal/config"
)

// ErrRedisUnavailable is returned by Ping when no client was built.
var ErrRedisUnavailable = errors.New("redis client not configured")

// Redis holds the shared go-redis client. The sign-in limiter is the only
// writer; readiness checks ping it.
type Redis struct {
	Client *redis.Client
	addr   string
}

// NewRedis builds a client with short timeouts so a stalled server cannot
// hold a sign-in request hostage. The initial ping only logs: the limiter
// fails open and readiness reports the outage.
func NewRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *Redis {
	timeout := cfg.Timeout()
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})
	r := &Redis{Client: client, addr: cfg.Addr}

	if err := r.Ping(ctx); err != nil {
		logger.Warn("redis unreachable, sign-in lockout disabled until it recovers",
			zap.String("addr", cfg.Addr), zap.Error(err))
	} else {
		logger.Info("connected to redis", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	}
	return r
}

// Close releases the connection pool.
func (r *Redis) Close() error {
	if r == nil || r.Client == nil {
		return nil
	}
	return r.Client.Close()
}

// Ping reports whether the server answers within the client timeout.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return ErrRedisUnavailable
	}
	if err := r.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis %s: %w", r.addr, err)
	}
	return nil
}
