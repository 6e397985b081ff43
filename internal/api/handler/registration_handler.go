package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gatepay/merchant-onboarding/internal/core/ports"
	"github.com/gatepay/merchant-onboarding/internal/core/validation"
	"github.com/gatepay/merchant-onboarding/internal/core/wizard"
)

// RegistrationHandler serves the five-step wizard. The draft lives with the
// client and is posted whole; nothing is stored before the final submit.
type RegistrationHandler struct {
	registration ports.RegistrationService
}

func NewRegistrationHandler(registration ports.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registration: registration}
}

type stepValidationResponse struct {
	Step       int                     `json:"step"`
	Valid      bool                    `json:"valid"`
	Errors     []validation.FieldError `json:"errors"`
	CanProceed bool                    `json:"can_proceed"`
}

// ValidateStep handles POST /v1/registration/steps/:step. It never touches the store.
//
// @Summary      Validate one wizard step
// @Tags         registration
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        step  path      int           true  "Step number (1-5)"
// @Param        body  body      wizard.Draft  true  "Current draft"
// @Success      200   {object}  stepValidationResponse
// @Failure      400   {object}  map[string]string
// @Router       /v1/registration/steps/{step} [post]
func (h *RegistrationHandler) ValidateStep(c echo.Context) error {
	step, err := strconv.Atoi(c.Param("step"))
	if err != nil || step < wizard.FirstStep || step > wizard.LastStep {
		return echo.NewHTTPError(http.StatusBadRequest, "step must be between 1 and 5")
	}

	var draft wizard.Draft
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	fields := draft.FieldErrors(step)
	if fields == nil {
		fields = []validation.FieldError{}
	}
	return c.JSON(http.StatusOK, stepValidationResponse{
		Step:       step,
		Valid:      len(fields) == 0,
		Errors:     fields,
		CanProceed: len(fields) == 0,
	})
}

// Submit handles POST /v1/registration.
//
// @Summary      Finish the wizard
// @Description  Creates the caller's company application in pending status.
// @Tags         registration
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      wizard.Draft  true  "Completed draft"
// @Success      201   {object}  domain.CompanyApplication
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /v1/registration [post]
func (h *RegistrationHandler) Submit(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var draft wizard.Draft
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := draft.SetInvoiceName(draft.Business.InvoiceName); err != nil {
		return err
	}

	app, err := h.registration.Submit(c.Request().Context(), p.IdentityID, &draft)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, app)
}
