package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gatepay/merchant-onboarding/internal/core/domain"
	"github.com/gatepay/merchant-onboarding/internal/core/validation"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error  string                  `json:"error"`
	Fields []validation.FieldError `json:"fields,omitempty"`
}

const genericFailure = "something went wrong, please try again"

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	if fields := validation.FieldErrors(err); fields != nil {
		return http.StatusUnprocessableEntity, errorResponse{Error: "validation failed", Fields: fields}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrSessionRevoked):
		return http.StatusUnauthorized, errorResponse{Error: domain.ErrInvalidCredentials.Error()}
	case errors.Is(err, domain.ErrAccessDenied):
		return http.StatusForbidden, errorResponse{Error: "access denied"}

	case errors.Is(err, domain.ErrMFALocked):
		return http.StatusTooManyRequests, errorResponse{Error: domain.ErrMFALocked.Error()}

	case errors.Is(err, domain.ErrApplicationNotFound),
		errors.Is(err, domain.ErrIdentityNotFound),
		errors.Is(err, domain.ErrSettingNotFound):
		return http.StatusNotFound, errorResponse{Error: rootMessage(err)}

	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrApplicationExists),
		errors.Is(err, domain.ErrStaleApplication),
		errors.Is(err, domain.ErrMissingDocuments),
		errors.Is(err, domain.ErrIdentityExists),
		errors.Is(err, domain.ErrMFANotPending),
		errors.Is(err, domain.ErrMFAAlreadyEnabled),
		errors.Is(err, domain.ErrMFANotEnabled):
		return http.StatusConflict, errorResponse{Error: err.Error()}

	case errors.Is(err, domain.ErrWeakPassword),
		errors.Is(err, domain.ErrRejectionReason),
		errors.Is(err, domain.ErrMFAInvalidCode),
		errors.Is(err, domain.ErrMFAConfirmRequired),
		errors.Is(err, domain.ErrIncompleteDraft),
		errors.Is(err, domain.ErrInvoiceNameTooLong),
		errors.Is(err, domain.ErrUnknownBusinessType),
		errors.Is(err, domain.ErrSettingKeyRequired):
		return http.StatusUnprocessableEntity, errorResponse{Error: err.Error()}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: genericFailure}
}

// rootMessage strips wrapping context so store details never reach the client.
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
