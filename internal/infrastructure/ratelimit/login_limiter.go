package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/you/schedulo/domain"
)

// LoginLimiterImpl implements domain.LoginLimiter with a Redis counter
// per client key. The counter expires with the window; the first
// failure of a window arms the expiry.
type LoginLimiterImpl struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
}

// NewLoginLimiter creates a Redis-backed login limiter.
func NewLoginLimiter(client *redis.Client, maxAttempts int, window time.Duration) domain.LoginLimiter {
	return &LoginLimiterImpl{
		client:      client,
		maxAttempts: int64(maxAttempts),
		window:      window,
	}
}

func (l *LoginLimiterImpl) key(clientKey string) string {
	return "login:att:" + clientKey
}

// Check implements domain.LoginLimiter
func (l *LoginLimiterImpl) Check(ctx context.Context, clientKey string) (int64, error) {
	count, err := l.client.Get(ctx, l.key(clientKey)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read login attempts: %w", err)
	}

	if count >= l.maxAttempts {
		ttl, err := l.client.TTL(ctx, l.key(clientKey)).Result()
		if err != nil || ttl <= 0 {
			return int64(l.window.Seconds()), domain.ErrRateLimited
		}
		return int64(ttl.Seconds()), domain.ErrRateLimited
	}
	return 0, nil
}

// RecordFailure implements domain.LoginLimiter
func (l *LoginLimiterImpl) RecordFailure(ctx context.Context, clientKey string) error {
	count, err := l.client.Incr(ctx, l.key(clientKey)).Result()
	if err != nil {
		return fmt.Errorf("failed to record login failure: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, l.key(clientKey), l.window).Err(); err != nil {
			return fmt.Errorf("failed to arm login window: %w", err)
		}
	}
	return nil
}

// Reset implements domain.LoginLimiter
func (l *LoginLimiterImpl) Reset(ctx context.Context, clientKey string) error {
	if err := l.client.Del(ctx, l.key(clientKey)).Err(); err != nil {
		return fmt.Errorf("failed to reset login attempts: %w", err)
	}
	return nil
}
