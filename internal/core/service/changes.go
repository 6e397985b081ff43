package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gatepay/merchant-onboarding/internal/core/domain"
	"github.com/gatepay/merchant-onboarding/internal/core/ports"
)

// changeFeed announces a committed change. Caches in this process are
// invalidated before the call returns; other processes learn about it through
// the publisher.
type changeFeed struct {
	publisher ports.ChangePublisher
	local     []ports.Invalidator
	logger    zerolog.Logger
}

func (f changeFeed) announce(ctx context.Context, n domain.ChangeNotification) {
	for _, inv := range f.local {
		inv.Invalidate(n)
	}
	if f.publisher == nil {
		return
	}
	if err := f.publisher.Publish(ctx, n); err != nil {
		f.logger.Warn().Err(err).Str("collection", n.Collection).Msg("failed to publish change notification")
	}
}

// audit appends entry. Callers run it in the transaction of the change it
// records so that neither is stored without the other.
func audit(ctx context.Context, repo ports.ActivityRepository, entry *domain.ActivityLog) error {
	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now().UTC()
	if err := repo.Insert(ctx, entry); err != nil {
		return fmt.Errorf("append %s activity: %w", entry.Action, err)
	}
	return nil
}
