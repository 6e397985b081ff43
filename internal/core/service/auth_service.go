package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gatepay/merchant-onboarding/internal/core/domain"
	"github.com/gatepay/merchant-onboarding/internal/core/ports"
	"github.com/gatepay/merchant-onboarding/internal/core/validation"
)

// dummyHash is compared against when the email is unknown so both failure
// paths cost one bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

// FreshRouter routes with a recomputed stage.
type FreshRouter interface {
	RouteFresh(ctx context.Context, principal *domain.Principal) (domain.Surface, error)
}

// AuthService implements sign-up, sign-in with the two-factor gate, and sign-out.
type AuthService struct {
	identities ports.IdentityRepository
	mfa        ports.MFAService
	router     FreshRouter
	tokens     *TokenManager
	revoker    ports.SessionRevoker
	log        zerolog.Logger
}

func NewAuthService(
	identities ports.IdentityRepository,
	mfa ports.MFAService,
	router FreshRouter,
	tokens *TokenManager,
	revoker ports.SessionRevoker,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		identities: identities,
		mfa:        mfa,
		router:     router,
		tokens:     tokens,
		revoker:    revoker,
		log:        log,
	}
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = normalizeEmail(email)
	if !validation.ValidEmail(email) || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !validation.PasswordStrength(password).AtLeast(validation.StrengthMedium) {
		return nil, domain.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.identities.Create(ctx, &domain.Identity{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleMerchant,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("identity_id", created.ID).Msg("identity registered")
	return s.establish(ctx, created)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	identity, err := s.checkPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}

	status, err := s.mfa.Status(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if status.IsEnabled {
		return s.challenge(identity)
	}
	return s.establish(ctx, identity)
}

func (s *AuthService) AdminLogin(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	identity, err := s.checkPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !identity.IsAdmin() {
		s.log.Warn().Str("identity_id", identity.ID).Msg("non-admin attempted admin sign-in")
		return nil, domain.ErrAccessDenied
	}

	status, err := s.mfa.Status(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("admin login: %w", err)
	}
	if status.IsEnabled {
		return s.challenge(identity)
	}

	token, principal, err := s.tokens.Issue(identity, domain.ScopeSession)
	if err != nil {
		return nil, err
	}
	return &ports.LoginResult{
		Status:    ports.LoginAuthenticated,
		Token:     token,
		ExpiresAt: principal.ExpiresAt,
		Identity:  identity,
		Surface:   domain.Surface{Kind: domain.SurfaceAdminConsole},
	}, nil
}

// VerifyChallenge exchanges a challenge token plus a valid second factor for a
// session token. The challenge token is single use.
func (s *AuthService) VerifyChallenge(ctx context.Context, principal *domain.Principal, code string) (*ports.LoginResult, error) {
	if !principal.PendingMFA() {
		return nil, domain.ErrInvalidTransition
	}

	if err := s.mfa.VerifyLogin(ctx, principal.IdentityID, code); err != nil {
		return nil, err
	}

	identity, err := s.identities.FindByID(ctx, principal.IdentityID)
	if err != nil {
		return nil, fmt.Errorf("verify challenge: %w", err)
	}
	if err := s.revoke(ctx, principal); err != nil {
		return nil, err
	}
	return s.establish(ctx, identity)
}

// CancelChallenge signs the half-authenticated caller out.
func (s *AuthService) CancelChallenge(ctx context.Context, principal *domain.Principal) error {
	if !principal.PendingMFA() {
		return domain.ErrInvalidTransition
	}
	s.log.Info().Str("identity_id", principal.IdentityID).Msg("two-factor challenge cancelled")
	return s.revoke(ctx, principal)
}

func (s *AuthService) Logout(ctx context.Context, principal *domain.Principal) error {
	if principal == nil {
		return nil
	}
	return s.revoke(ctx, principal)
}

func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Principal, error) {
	principal, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	revoked, err := s.revoker.IsRevoked(ctx, principal.TokenID)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if revoked {
		return nil, domain.ErrSessionRevoked
	}
	return principal, nil
}

// checkPassword never tells unknown emails apart from wrong passwords.
func (s *AuthService) checkPassword(ctx context.Context, email, password string) (*domain.Identity, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	identity, err := s.identities.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrIdentityNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return identity, nil
}

func (s *AuthService) challenge(identity *domain.Identity) (*ports.LoginResult, error) {
	token, principal, err := s.tokens.Issue(identity, domain.ScopeMFAPending)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("identity_id", identity.ID).Msg("password accepted, second factor pending")
	return &ports.LoginResult{
		Status:    ports.LoginPending2FA,
		Token:     token,
		ExpiresAt: principal.ExpiresAt,
		Identity:  identity,
		Surface:   domain.Surface{Kind: domain.SurfaceMFAChallenge},
	}, nil
}

func (s *AuthService) establish(ctx context.Context, identity *domain.Identity) (*ports.LoginResult, error) {
	token, principal, err := s.tokens.Issue(identity, domain.ScopeSession)
	if err != nil {
		return nil, err
	}
	surface, err := s.router.RouteFresh(ctx, principal)
	if err != nil {
		return nil, err
	}
	return &ports.LoginResult{
		Status:    ports.LoginAuthenticated,
		Token:     token,
		ExpiresAt: principal.ExpiresAt,
		Identity:  identity,
		Surface:   surface,
	}, nil
}

func (s *AuthService) revoke(ctx context.Context, principal *domain.Principal) error {
	ttl := time.Until(principal.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.revoker.Revoke(ctx, principal.TokenID, ttl); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
