package ports

import (
	"context"

	"github.com/gatepay/merchant-onboarding/internal/core/domain"
)

// MFARepository persists per-identity two-factor settings.
type MFARepository interface {
	// Get returns the identity's settings, or a disabled value when none exist.
	Get(ctx context.Context, identityID string) (*domain.MfaSettings, error)
	// Save replaces the identity's settings.
	Save(ctx context.Context, settings *domain.MfaSettings) error
	// ConsumeBackupCode atomically removes hash from the identity's enabled
	// backup codes. It reports false when the code was not present.
	ConsumeBackupCode(ctx context.Context, identityID, hash string) (bool, error)
}
