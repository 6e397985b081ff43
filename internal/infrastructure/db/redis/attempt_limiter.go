package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gatepay/merchant-onboarding/internal/core/domain"
)

const (
	defaultMaxAttempts   = 5
	defaultLockoutWindow = 15 * time.Minute
)

// AttemptLimiter counts verification attempts per key. The counter expires one
// window after the first attempt, so the limit is N attempts per window; a
// successful verification resets it.
// Key format: attempts:<key>
type AttemptLimiter struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
}

func NewAttemptLimiter(client *redis.Client, maxAttempts int, window time.Duration) *AttemptLimiter {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultLockoutWindow
	}
	return &AttemptLimiter{client: client, maxAttempts: int64(maxAttempts), window: window}
}

// Acquire increments the counter and sets its expiry in one MULTI block. The
// decision comes from the INCR result, so concurrent callers can never be
// granted more than maxAttempts between them.
func (l *AttemptLimiter) Acquire(ctx context.Context, key string) (int, error) {
	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, l.key(key))
		pipe.ExpireNX(ctx, l.key(key), l.window)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("attempt acquire: %w", err)
	}

	n := incr.Val()
	if n > l.maxAttempts {
		return 0, domain.ErrMFALocked
	}
	return int(l.maxAttempts - n), nil
}

func (l *AttemptLimiter) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, l.key(key)).Err()
}

func (l *AttemptLimiter) key(key string) string {
	return "attempts:" + key
}
