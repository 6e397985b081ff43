package ports

import (
	"context"

	"github.com/gatepay/merchant-onboarding/internal/core/domain"
)

// MFAStatus is the externally visible part of MfaSettings.
type MFAStatus struct {
	IsEnabled bool
	State     domain.MFAState
}

// MFAEnrollment is handed out once per enable request.
type MFAEnrollment struct {
	Secret      string
	QRCodeURL   string
	BackupCodes []string
}

// MFAService drives the two-factor setup state machine and the login-time check.
type MFAService interface {
	Status(ctx context.Context, identityID string) (*MFAStatus, error)
	Enable(ctx context.Context, identity *domain.Identity) (*MFAEnrollment, error)
	VerifySetup(ctx context.Context, identityID, code string) (*MFAStatus, error)
	Confirm(ctx context.Context, identityID string) (*MFAStatus, error)
	Cancel(ctx context.Context, identityID string) (*MFAStatus, error)
	Disable(ctx context.Context, identityID string, confirmed bool) error
	// VerifyLogin accepts a TOTP code or an unused backup code for an enabled identity.
	VerifyLogin(ctx context.Context, identityID, code string) error
}
