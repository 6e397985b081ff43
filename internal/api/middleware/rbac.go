package middleware

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gatepay/merchant-onboarding/internal/core/domain"
)

// SignOuter ends a session.
type SignOuter interface {
	Logout(ctx context.Context, principal *domain.Principal) error
}

// RequireAdmin lets only admin sessions through. Anyone else is signed out
// before the request is refused.
func RequireAdmin(sessions SignOuter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := Principal(c)
			if p != nil && p.Scope == domain.ScopeSession && p.Role == domain.RoleAdmin {
				return next(c)
			}

			if p != nil {
				if err := sessions.Logout(c.Request().Context(), p); err != nil {
					log.Error().Err(err).Str("identity_id", p.IdentityID).Msg("failed to revoke session after admin denial")
				}
				log.Warn().Str("identity_id", p.IdentityID).Str("role", p.Role).Msg("admin access denied")
			}
			return domain.ErrAccessDenied
		}
	}
}
