package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gatepay/merchant-onboarding/internal/api/middleware"
	"github.com/gatepay/merchant-onboarding/internal/core/domain"
)

// ctxPrincipal extracts the caller injected by the Auth middleware and fails
// fast when the route was wired without it.
func ctxPrincipal(c echo.Context) (*domain.Principal, error) {
	p := middleware.Principal(c)
	if p == nil || p.IdentityID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return p, nil
}

// ctxIdentity rebuilds the identity fields a token carries.
func ctxIdentity(p *domain.Principal) *domain.Identity {
	return &domain.Identity{ID: p.IdentityID, Email: p.Email, Role: p.Role}
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}
