package ports

import (
	"context"
	"time"

	"github.com/gatepay/merchant-onboarding/internal/core/domain"
)

// SessionRevoker tracks revoked session tokens until they would have expired.
type SessionRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AttemptLimiter bounds verification attempts per key within a window.
type AttemptLimiter interface {
	// Acquire counts one attempt before it is made and returns how many are
	// left after it. Once none are left it returns domain.ErrMFALocked.
	Acquire(ctx context.Context, key string) (remaining int, err error)
	Reset(ctx context.Context, key string) error
}

// ChangePublisher announces record changes to other sessions.
type ChangePublisher interface {
	Publish(ctx context.Context, n domain.ChangeNotification) error
}

// Invalidator reacts to a change notification by dropping whatever it cached.
type Invalidator interface {
	Invalidate(n domain.ChangeNotification)
}

// Transactor runs fn so that every store write made with the context it
// receives commits or rolls back together.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
