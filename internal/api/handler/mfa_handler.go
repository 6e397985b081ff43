package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gatepay/merchant-onboarding/internal/core/domain"
	"github.com/gatepay/merchant-onboarding/internal/core/ports"
	"github.com/gatepay/merchant-onboarding/internal/core/validation"
)

// Setup actions accepted by POST /v1/setup-2fa.
const (
	mfaActionEnable  = "enable"
	mfaActionDisable = "disable"
	mfaActionConfirm = "confirm"
	mfaActionCancel  = "cancel"
)

// Verify actions accepted by POST /v1/verify-2fa. An empty action means setup;
// enable is an alias of setup.
const (
	verifyActionSetup  = "setup"
	verifyActionEnable = "enable"
	verifyActionCheck  = "check"
)

const totpCodeLength = 6

type MFAHandler struct {
	mfa ports.MFAService
}

func NewMFAHandler(mfa ports.MFAService) *MFAHandler {
	return &MFAHandler{mfa: mfa}
}

type mfaSetupRequest struct {
	Action  string `json:"action" validate:"required,oneof=enable disable confirm cancel"`
	Confirm bool   `json:"confirm"`
}

type mfaVerifyRequest struct {
	Code   string `json:"code" validate:"required"`
	Action string `json:"action" validate:"omitempty,oneof=setup enable check"`
}

type mfaStatusResponse struct {
	IsEnabled bool            `json:"is_enabled"`
	State     domain.MFAState `json:"state"`
}

type mfaEnrollmentResponse struct {
	Secret      string   `json:"secret"`
	QRCodeURL   string   `json:"qrCodeUrl"`
	BackupCodes []string `json:"backupCodes"`
}

func toStatusResponse(s *ports.MFAStatus) mfaStatusResponse {
	return mfaStatusResponse{IsEnabled: s.IsEnabled, State: s.State}
}

// Status handles GET /v1/setup-2fa.
//
// @Summary      Two-factor status
// @Tags         two-factor
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  mfaStatusResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/setup-2fa [get]
func (h *MFAHandler) Status(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	status, err := h.mfa.Status(c.Request().Context(), p.IdentityID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStatusResponse(status))
}

// Setup handles POST /v1/setup-2fa. Enabling returns the secret and the
// backup codes exactly once; disabling requires confirm=true.
//
// @Summary      Drive two-factor setup
// @Tags         two-factor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      mfaSetupRequest  true  "Setup action"
// @Success      200   {object}  mfaEnrollmentResponse
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/setup-2fa [post]
func (h *MFAHandler) Setup(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	var req mfaSetupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	var status *ports.MFAStatus
	switch req.Action {
	case mfaActionEnable:
		enrollment, err := h.mfa.Enable(ctx, ctxIdentity(p))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, mfaEnrollmentResponse{
			Secret:      enrollment.Secret,
			QRCodeURL:   enrollment.QRCodeURL,
			BackupCodes: enrollment.BackupCodes,
		})
	case mfaActionDisable:
		if err := h.mfa.Disable(ctx, p.IdentityID, req.Confirm); err != nil {
			return err
		}
		status = &ports.MFAStatus{IsEnabled: false, State: domain.MFADisabled}
	case mfaActionConfirm:
		status, err = h.mfa.Confirm(ctx, p.IdentityID)
	case mfaActionCancel:
		status, err = h.mfa.Cancel(ctx, p.IdentityID)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStatusResponse(status))
}

// Verify handles POST /v1/verify-2fa.
//
// @Summary      Verify a two-factor code
// @Description  action=setup (default, alias enable) checks the code of a pending setup and turns two-factor on; action=check verifies an authenticator code against the enabled secret. Backup codes are only accepted at sign-in.
// @Tags         two-factor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      mfaVerifyRequest  true  "Code"
// @Success      200   {object}  mfaStatusResponse
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /v1/verify-2fa [post]
func (h *MFAHandler) Verify(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	var req mfaVerifyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	if req.Action == verifyActionCheck {
		// A backup code would be spent here without establishing anything.
		if !isTOTPCode(req.Code) {
			return domain.ErrMFAInvalidCode
		}
		if err := h.mfa.VerifyLogin(ctx, p.IdentityID, req.Code); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, mfaStatusResponse{IsEnabled: true, State: domain.MFAEnabled})
	}

	status, err := h.mfa.VerifySetup(ctx, p.IdentityID, req.Code)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStatusResponse(status))
}

func isTOTPCode(code string) bool {
	code = strings.TrimSpace(code)
	return len(code) == totpCodeLength && validation.Digits(code) == code
}
