package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gatepay/merchant-onboarding/internal/core/domain"
	"github.com/gatepay/merchant-onboarding/internal/core/validation"
)

func render(t *testing.T, err error) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec.Code, body
}

func TestErrorHandler_DomainMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrSessionRevoked, http.StatusUnauthorized},
		{domain.ErrAccessDenied, http.StatusForbidden},
		{domain.ErrMFALocked, http.StatusTooManyRequests},
		{domain.ErrApplicationNotFound, http.StatusNotFound},
		{domain.ErrSettingNotFound, http.StatusNotFound},
		{domain.ErrInvalidTransition, http.StatusConflict},
		{domain.ErrApplicationExists, http.StatusConflict},
		{domain.ErrStaleApplication, http.StatusConflict},
		{domain.ErrMissingDocuments, http.StatusConflict},
		{domain.ErrMFANotPending, http.StatusConflict},
		{domain.ErrMFAAlreadyEnabled, http.StatusConflict},
		{domain.ErrIdentityExists, http.StatusConflict},
		{domain.ErrWeakPassword, http.StatusUnprocessableEntity},
		{domain.ErrRejectionReason, http.StatusUnprocessableEntity},
		{domain.ErrMFAInvalidCode, http.StatusUnprocessableEntity},
		{domain.ErrMFAConfirmRequired, http.StatusUnprocessableEntity},
		{domain.ErrInvoiceNameTooLong, http.StatusUnprocessableEntity},
		{fmt.Errorf("finish registration: %w", domain.ErrApplicationExists), http.StatusConflict},
	}

	for _, tc := range cases {
		code, body := render(t, tc.err)
		if code != tc.want {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.want, code)
		}
		if body.Error == "" {
			t.Errorf("%v: empty error message", tc.err)
		}
	}
}

func TestErrorHandler_AuthenticationFailuresLookAlike(t *testing.T) {
	_, invalid := render(t, domain.ErrInvalidCredentials)
	_, revoked := render(t, domain.ErrSessionRevoked)
	if invalid.Error != revoked.Error {
		t.Fatalf("authentication failures must share one message: %q vs %q", invalid.Error, revoked.Error)
	}
}

func TestErrorHandler_AccessDeniedIsGeneric(t *testing.T) {
	_, body := render(t, fmt.Errorf("admin console: %w", domain.ErrAccessDenied))
	if body.Error != "access denied" {
		t.Fatalf("expected generic access denied, got %q", body.Error)
	}
}

func TestErrorHandler_ValidationFields(t *testing.T) {
	type payload struct {
		TaxID string `json:"tax_id" validate:"required,taxid_individual"`
	}
	err := validation.New().Struct(payload{TaxID: "123"})

	code, body := render(t, err)
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
	if len(body.Fields) != 1 || body.Fields[0].Field != "tax_id" {
		t.Fatalf("expected tax_id field error, got %+v", body.Fields)
	}
}

func TestErrorHandler_UnexpectedErrorsAreGeneric(t *testing.T) {
	code, body := render(t, errors.New("mongo: connection refused to 10.0.0.3"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if body.Error != genericFailure {
		t.Fatalf("store details leaked: %q", body.Error)
	}
}

func TestErrorHandler_EchoErrorsPassThrough(t *testing.T) {
	code, body := render(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	if code != http.StatusBadRequest || body.Error != "invalid payload" {
		t.Fatalf("unexpected rendering: %d %+v", code, body)
	}
}
