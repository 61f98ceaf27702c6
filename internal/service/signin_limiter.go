package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SignInLimiter tracks failed sign-ins per identifier.
type SignInLimiter interface {
	Allow(ctx context.Context, identifier string) bool
	RecordFailure(ctx context.Context, identifier string)
	Reset(ctx context.Context, identifier string)
}

type redisSignInLimiter struct {
	client      *redis.Client
	maxFailures int64
	window      time.Duration
	logger      *zap.Logger
}

// NewRedisSignInLimiter locks an identifier out for window once maxFailures
// failed attempts accumulate. Redis errors never block a sign-in.
func NewRedisSignInLimiter(client *redis.Client, maxFailures int, window time.Duration, logger *zap.Logger) SignInLimiter {
	if client == nil || maxFailures <= 0 || window <= 0 {
		return NoopSignInLimiter{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &redisSignInLimiter{
		client:      client,
		maxFailures: int64(maxFailures),
		window:      window,
		logger:      logger,
	}
}

func signInKey(identifier string) string {
	return "signin:failures:" + strings.ToLower(strings.TrimSpace(identifier))
}

func (l *redisSignInLimiter) Allow(ctx context.Context, identifier string) bool {
	n, err := l.client.Get(ctx, signInKey(identifier)).Int64()
	if errors.Is(err, redis.Nil) {
		return true
	}
	if err != nil {
		l.logger.Warn("sign-in limiter unavailable", zap.Error(err))
		return true
	}
	return n < l.maxFailures
}

func (l *redisSignInLimiter) RecordFailure(ctx context.Context, identifier string) {
	key := signInKey(identifier)
	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Warn("sign-in limiter unavailable", zap.Error(err))
		return
	}
	// The window starts at the first failure and is not extended by later ones.
	if n == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			l.logger.Warn("sign-in limiter expire failed", zap.Error(err))
		}
	}
}

func (l *redisSignInLimiter) Reset(ctx context.Context, identifier string) {
	if err := l.client.Del(ctx, signInKey(identifier)).Err(); err != nil {
		l.logger.Warn("sign-in limiter reset failed", zap.Error(err))
	}
}

// NoopSignInLimiter never locks anyone out.
type NoopSignInLimiter struct{}

func (NoopSignInLimiter) Allow(context.Context, string) bool    { return true }
func (NoopSignInLimiter) RecordFailure(context.Context, string) {}
func (NoopSignInLimiter) Reset(context.Context, string)         {}
