package ports

import (
	"context"

	"github.com/gatepay/merchant-onboarding/internal/core/domain"
)

// ActivityRepository is the append-only audit trail.
type ActivityRepository interface {
	Insert(ctx context.Context, entry *domain.ActivityLog) error
	// Recent returns the newest entries first.
	Recent(ctx context.Context, limit int) ([]*domain.ActivityLog, error)
}

// SettingsRepository stores admin-managed platform settings.
type SettingsRepository interface {
	Upsert(ctx context.Context, setting *domain.PlatformSetting) error
	Get(ctx context.Context, key string) (*domain.PlatformSetting, error)
}
