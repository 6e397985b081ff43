package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gatepay/merchant-onboarding/internal/core/domain"
	"github.com/gatepay/merchant-onboarding/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type credentialsRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type challengeRequest struct {
	Code string `json:"code" validate:"required"`
}

type identityResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// loginResponse carries either a session token or, while the second factor is
// pending, a challenge token. Never both.
type loginResponse struct {
	Status         string            `json:"status"`
	Token          string            `json:"token,omitempty"`
	ChallengeToken string            `json:"challenge_token,omitempty"`
	ExpiresAt      string            `json:"expires_at"`
	Identity       *identityResponse `json:"identity,omitempty"`
	Surface        domain.Surface    `json:"surface"`
}

func toLoginResponse(res *ports.LoginResult) loginResponse {
	resp := loginResponse{
		Status:    res.Status,
		ExpiresAt: res.ExpiresAt.UTC().Format(time.RFC3339),
		Surface:   res.Surface,
	}
	if res.Status == ports.LoginPending2FA {
		resp.ChallengeToken = res.Token
		return resp
	}
	resp.Token = res.Token
	if res.Identity != nil {
		resp.Identity = &identityResponse{ID: res.Identity.ID, Email: res.Identity.Email, Role: res.Identity.Role}
	}
	return resp
}

// Register creates a merchant account and signs it in.
//
// @Summary      Register a new merchant
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Email and password"
// @Success      201   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toLoginResponse(res))
}

// Login authenticates a merchant or admin with email and password.
//
// @Summary      Sign in
// @Description  Returns a session token, or a challenge token when two-factor authentication is enabled.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Email and password"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLoginResponse(res))
}

// AdminLogin signs in to the admin console. Non-admin identities get 403.
//
// @Summary      Admin sign in
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Email and password"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /admin/login [post]
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req credentialsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.AdminLogin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLoginResponse(res))
}

// Logout revokes the caller's token.
//
// @Summary      Sign out
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), p); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// VerifyChallenge exchanges the challenge token and a TOTP or backup code for a session.
//
// @Summary      Complete two-factor sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      challengeRequest  true  "TOTP or backup code"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /auth/2fa/verify [post]
func (h *AuthHandler) VerifyChallenge(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	var req challengeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.VerifyChallenge(c.Request().Context(), p, req.Code)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLoginResponse(res))
}

// CancelChallenge abandons a pending sign in and revokes the challenge token.
//
// @Summary      Cancel two-factor sign in
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  map[string]string
// @Router       /auth/2fa/cancel [post]
func (h *AuthHandler) CancelChallenge(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.authService.CancelChallenge(c.Request().Context(), p); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
