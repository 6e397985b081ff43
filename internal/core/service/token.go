package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/gatepay/merchant-onboarding/internal/core/domain"
)

// TokenManager issues and parses HS256 bearer tokens. Session tokens and
// two-factor challenge tokens differ only by scope and lifetime.
type TokenManager struct {
	secret       []byte
	sessionTTL   time.Duration
	challengeTTL time.Duration
}

func NewTokenManager(secret string, sessionTTL, challengeTTL time.Duration) *TokenManager {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	if challengeTTL <= 0 {
		challengeTTL = 5 * time.Minute
	}
	return &TokenManager{secret: []byte(secret), sessionTTL: sessionTTL, challengeTTL: challengeTTL}
}

// Issue signs a token for identity with the given scope.
func (m *TokenManager) Issue(identity *domain.Identity, scope string) (string, *domain.Principal, error) {
	ttl := m.sessionTTL
	if scope == domain.ScopeMFAPending {
		ttl = m.challengeTTL
	}
	now := time.Now()
	p := &domain.Principal{
		IdentityID: identity.ID,
		Email:      identity.Email,
		Role:       identity.Role,
		Scope:      scope,
		TokenID:    uuid.NewString(),
		ExpiresAt:  now.Add(ttl).Truncate(time.Second),
	}

	claims := jwt.MapClaims{
		"sub":   p.IdentityID,
		"email": p.Email,
		"role":  p.Role,
		"scope": p.Scope,
		"jti":   p.TokenID,
		"iat":   now.Unix(),
		"exp":   p.ExpiresAt.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, p, nil
}

// Parse validates signature, algorithm and expiry and returns the principal.
func (m *TokenManager) Parse(token string) (*domain.Principal, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidCredentials
	}

	p := &domain.Principal{}
	p.IdentityID, _ = claims["sub"].(string)
	p.Email, _ = claims["email"].(string)
	p.Role, _ = claims["role"].(string)
	p.Scope, _ = claims["scope"].(string)
	p.TokenID, _ = claims["jti"].(string)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		p.ExpiresAt = exp.Time
	}
	if p.IdentityID == "" || p.TokenID == "" || p.Scope == "" {
		return nil, domain.ErrInvalidCredentials
	}
	return p, nil
}
