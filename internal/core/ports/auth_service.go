package ports

import (
	"context"
	"time"

	"github.com/gatepay/merchant-onboarding/internal/core/domain"
)

// Login outcomes.
const (
	LoginAuthenticated = "authenticated"
	LoginPending2FA    = "pending_2fa"
)

// LoginResult is returned by every step that may establish a session. When
// Status is LoginPending2FA, Token is a challenge token that only the
// two-factor endpoints accept and Surface is the MFA challenge.
type LoginResult struct {
	Status    string
	Token     string
	ExpiresAt time.Time
	Identity  *domain.Identity
	Surface   domain.Surface
}

// AuthService handles sign-up, sign-in, the login-time second factor and sign-out.
type AuthService interface {
	// Register creates a merchant identity and signs it in.
	Register(ctx context.Context, email, password string) (*LoginResult, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// AdminLogin is Login restricted to admins; any other identity is signed
	// out and gets domain.ErrAccessDenied.
	AdminLogin(ctx context.Context, email, password string) (*LoginResult, error)
	VerifyChallenge(ctx context.Context, principal *domain.Principal, code string) (*LoginResult, error)
	CancelChallenge(ctx context.Context, principal *domain.Principal) error
	Logout(ctx context.Context, principal *domain.Principal) error
	// Authenticate parses a bearer token and rejects revoked sessions.
	Authenticate(ctx context.Context, token string) (*domain.Principal, error)
}
