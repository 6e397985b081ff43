package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/gatepay/merchant-onboarding/internal/api/handler"
	"github.com/gatepay/merchant-onboarding/internal/core/domain"
	"github.com/gatepay/merchant-onboarding/internal/core/ports"
)

// tokenAuth accepts the tokens in principals and records sign-outs.
type tokenAuth struct {
	principals map[string]*domain.Principal
	signedOut  []string
}

func (a *tokenAuth) Register(context.Context, string, string) (*ports.LoginResult, error) {
	return nil, domain.ErrInvalidCredentials
}

func (a *tokenAuth) Login(context.Context, string, string) (*ports.LoginResult, error) {
	return nil, domain.ErrInvalidCredentials
}

func (a *tokenAuth) AdminLogin(context.Context, string, string) (*ports.LoginResult, error) {
	return nil, domain.ErrAccessDenied
}

func (a *tokenAuth) VerifyChallenge(context.Context, *domain.Principal, string) (*ports.LoginResult, error) {
	return nil, domain.ErrMFAInvalidCode
}

func (a *tokenAuth) CancelChallenge(_ context.Context, p *domain.Principal) error {
	a.signedOut = append(a.signedOut, p.TokenID)
	return nil
}

func (a *tokenAuth) Logout(_ context.Context, p *domain.Principal) error {
	a.signedOut = append(a.signedOut, p.TokenID)
	return nil
}

func (a *tokenAuth) Authenticate(_ context.Context, token string) (*domain.Principal, error) {
	p, ok := a.principals[token]
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	return p, nil
}

type fixedStatus struct{}

func (fixedStatus) Status(context.Context, string) (*ports.MFAStatus, error) {
	return &ports.MFAStatus{State: domain.MFADisabled}, nil
}
func (fixedStatus) Enable(context.Context, *domain.Identity) (*ports.MFAEnrollment, error) {
	return nil, domain.ErrMFAAlreadyEnabled
}
func (fixedStatus) VerifySetup(context.Context, string, string) (*ports.MFAStatus, error) {
	return nil, domain.ErrMFANotPending
}
func (fixedStatus) Confirm(context.Context, string) (*ports.MFAStatus, error) {
	return nil, domain.ErrMFANotPending
}
func (fixedStatus) Cancel(context.Context, string) (*ports.MFAStatus, error) {
	return nil, domain.ErrMFANotPending
}
func (fixedStatus) Disable(context.Context, string, bool) error { return domain.ErrMFANotEnabled }
func (fixedStatus) VerifyLogin(context.Context, string, string) error {
	return domain.ErrMFANotEnabled
}

type walledSessions struct{}

func (walledSessions) Route(_ context.Context, p *domain.Principal) (domain.Surface, error) {
	if p == nil {
		return domain.Surface{Kind: domain.SurfaceSignIn}, nil
	}
	return domain.Surface{Kind: domain.SurfaceRegistrationWizard, Stage: domain.StageNoApplication}, nil
}

func (walledSessions) RouteAdmin(context.Context, *domain.Principal) (domain.Surface, error) {
	return domain.Surface{}, domain.ErrAccessDenied
}

func newTestRouter(t *testing.T) (*echo.Echo, *tokenAuth) {
	t.Helper()
	auth := &tokenAuth{principals: map[string]*domain.Principal{
		"merchant":  {IdentityID: "m-1", Role: domain.RoleMerchant, Scope: domain.ScopeSession, TokenID: "t-1"},
		"challenge": {IdentityID: "m-1", Role: domain.RoleMerchant, Scope: domain.ScopeMFAPending, TokenID: "t-2"},
	}}
	e := NewRouter(Dependencies{
		Auth:     auth,
		MFA:      fixedStatus{},
		Sessions: walledSessions{},
		HealthChecks: map[string]handler.PingFunc{
			"mongodb": func(context.Context) error { return nil },
			"redis":   func(context.Context) error { return errors.New("connection refused") },
		},
		Registry: prometheus.NewRegistry(),
		Logger:   zerolog.Nop(),
	})
	return e, auth
}

func serve(e *echo.Echo, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRouter_SessionSurface(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := serve(e, http.MethodGet, "/v1/session", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Surface domain.Surface `json:"surface"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Surface.Kind != domain.SurfaceSignIn {
		t.Fatalf("expected sign in, got %s", resp.Surface.Kind)
	}

	rec = serve(e, http.MethodGet, "/v1/session", "merchant")
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Surface.Kind != domain.SurfaceRegistrationWizard {
		t.Fatalf("expected registration wizard, got %s", resp.Surface.Kind)
	}
}

func TestRouter_ProtectedRoutesNeedSessionScope(t *testing.T) {
	e, _ := newTestRouter(t)

	if rec := serve(e, http.MethodGet, "/v1/setup-2fa", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: expected 401, got %d", rec.Code)
	}
	if rec := serve(e, http.MethodGet, "/v1/setup-2fa", "challenge"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("challenge token: expected 401, got %d", rec.Code)
	}
	if rec := serve(e, http.MethodGet, "/v1/setup-2fa", "merchant"); rec.Code != http.StatusOK {
		t.Fatalf("session token: expected 200, got %d", rec.Code)
	}
}

func TestRouter_ChallengeRoutesNeedChallengeScope(t *testing.T) {
	e, auth := newTestRouter(t)

	if rec := serve(e, http.MethodPost, "/auth/2fa/cancel", "merchant"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("session token: expected 401, got %d", rec.Code)
	}
	if rec := serve(e, http.MethodPost, "/auth/2fa/cancel", "challenge"); rec.Code != http.StatusNoContent {
		t.Fatalf("challenge token: expected 204, got %d", rec.Code)
	}
	if len(auth.signedOut) != 1 || auth.signedOut[0] != "t-2" {
		t.Fatalf("expected challenge revoked, got %v", auth.signedOut)
	}
}

func TestRouter_AdminDeniedForMerchant(t *testing.T) {
	e, auth := newTestRouter(t)

	rec := serve(e, http.MethodGet, "/admin/v1/stats", "merchant")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Error != "access denied" {
		t.Fatalf("expected generic access denied, got %q", body.Error)
	}
	if len(auth.signedOut) != 1 || auth.signedOut[0] != "t-1" {
		t.Fatalf("merchant must be signed out, got %v", auth.signedOut)
	}
}

func TestRouter_ValidationRendersUnprocessable(t *testing.T) {
	e, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/verify-2fa", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer merchant")
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("missing code: expected 422, got %d", rec.Code)
	}
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	e, _ := newTestRouter(t)

	if rec := serve(e, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Fatalf("liveness: expected 200, got %d", rec.Code)
	}

	rec := serve(e, http.MethodGet, "/health/ready", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("readiness with redis down: expected 503, got %d", rec.Code)
	}
	var ready struct {
		Status       string                       `json:"status"`
		Dependencies map[string]map[string]string `json:"dependencies"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &ready); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if ready.Status != "degraded" || ready.Dependencies["mongodb"]["status"] != "ok" || ready.Dependencies["redis"]["status"] != "unhealthy" {
		t.Fatalf("unexpected readiness: %+v", ready)
	}

	if rec := serve(e, http.MethodGet, "/metrics", ""); rec.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", rec.Code)
	}
}
