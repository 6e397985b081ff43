package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gatepay/merchant-onboarding/internal/api/middleware"
	"github.com/gatepay/merchant-onboarding/internal/core/domain"
	"github.com/gatepay/merchant-onboarding/internal/core/ports"
)

type SessionHandler struct {
	router   ports.SessionRouter
	sessions middleware.SignOuter
}

func NewSessionHandler(router ports.SessionRouter, sessions middleware.SignOuter) *SessionHandler {
	return &SessionHandler{router: router, sessions: sessions}
}

type surfaceResponse struct {
	Surface domain.Surface `json:"surface"`
}

// Current handles GET /v1/session. Signed-out callers get the sign-in surface.
//
// @Summary      Current surface
// @Description  Returns the single screen the caller may see right now.
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  surfaceResponse
// @Failure      500  {object}  map[string]string
// @Router       /v1/session [get]
func (h *SessionHandler) Current(c echo.Context) error {
	surface, err := h.router.Route(c.Request().Context(), middleware.Principal(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, surfaceResponse{Surface: surface})
}

// Admin handles GET /admin/session. Non-admins are signed out.
//
// @Summary      Admin console gate
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  surfaceResponse
// @Failure      403  {object}  map[string]string
// @Router       /admin/session [get]
func (h *SessionHandler) Admin(c echo.Context) error {
	p := middleware.Principal(c)
	surface, err := h.router.RouteAdmin(c.Request().Context(), p)
	if errors.Is(err, domain.ErrAccessDenied) {
		if logoutErr := h.sessions.Logout(c.Request().Context(), p); logoutErr != nil {
			return logoutErr
		}
		return err
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, surfaceResponse{Surface: surface})
}
