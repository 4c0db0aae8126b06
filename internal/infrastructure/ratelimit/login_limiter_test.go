package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/schedulo/domain"
)

func newLimiterForTest(t *testing.T, maxAttempts int, window time.Duration) (domain.LoginLimiter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewLoginLimiter(client, maxAttempts, window), mr
}

func TestLoginLimiter_AllowsUnderLimit(t *testing.T) {
	limiter, _ := newLimiterForTest(t, 5, 15*time.Minute)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		require.NoError(t, limiter.RecordFailure(ctx, "10.0.0.1"))
		_, err := limiter.Check(ctx, "10.0.0.1")
		require.NoError(t, err)
	}
}

func TestLoginLimiter_BlocksAtLimit(t *testing.T) {
	limiter, _ := newLimiterForTest(t, 5, 15*time.Minute)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, limiter.RecordFailure(ctx, "10.0.0.1"))
	}

	retryAfter, err := limiter.Check(ctx, "10.0.0.1")
	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.Greater(t, retryAfter, int64(0))
	assert.LessOrEqual(t, retryAfter, int64((15 * time.Minute).Seconds()))

	// Other clients are unaffected.
	_, err = limiter.Check(ctx, "10.0.0.2")
	assert.NoError(t, err)
}

func TestLoginLimiter_WindowExpires(t *testing.T) {
	limiter, mr := newLimiterForTest(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.RecordFailure(ctx, "10.0.0.1"))
	}
	_, err := limiter.Check(ctx, "10.0.0.1")
	require.ErrorIs(t, err, domain.ErrRateLimited)

	mr.FastForward(time.Minute + time.Second)

	_, err = limiter.Check(ctx, "10.0.0.1")
	assert.NoError(t, err)
}

func TestLoginLimiter_Reset(t *testing.T) {
	limiter, _ := newLimiterForTest(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.RecordFailure(ctx, "10.0.0.1"))
	}
	require.NoError(t, limiter.Reset(ctx, "10.0.0.1"))

	_, err := limiter.Check(ctx, "10.0.0.1")
	assert.NoError(t, err)
}
