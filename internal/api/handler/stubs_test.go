package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gatepay/merchant-onboarding/internal/api/middleware"
	"github.com/gatepay/merchant-onboarding/internal/core/domain"
	"github.com/gatepay/merchant-onboarding/internal/core/ports"
	"github.com/gatepay/merchant-onboarding/internal/core/wizard"
)

type stubAuthService struct {
	registerFn   func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	loginFn      func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	adminLoginFn func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	verifyFn     func(ctx context.Context, p *domain.Principal, code string) (*ports.LoginResult, error)
	loggedOut    []*domain.Principal
	cancelled    []*domain.Principal
}

func (s *stubAuthService) Register(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.registerFn(ctx, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) AdminLogin(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.adminLoginFn(ctx, email, password)
}

func (s *stubAuthService) VerifyChallenge(ctx context.Context, p *domain.Principal, code string) (*ports.LoginResult, error) {
	return s.verifyFn(ctx, p, code)
}

func (s *stubAuthService) CancelChallenge(_ context.Context, p *domain.Principal) error {
	s.cancelled = append(s.cancelled, p)
	return nil
}

func (s *stubAuthService) Logout(_ context.Context, p *domain.Principal) error {
	s.loggedOut = append(s.loggedOut, p)
	return nil
}

func (s *stubAuthService) Authenticate(context.Context, string) (*domain.Principal, error) {
	return nil, domain.ErrInvalidCredentials
}

type stubMFAService struct {
	status      *ports.MFAStatus
	enrollment  *ports.MFAEnrollment
	err         error
	calls       []string
	lastCode    string
	lastConfirm bool
}

func (s *stubMFAService) record(call string) (*ports.MFAStatus, error) {
	s.calls = append(s.calls, call)
	if s.err != nil {
		return nil, s.err
	}
	return s.status, nil
}

func (s *stubMFAService) Status(context.Context, string) (*ports.MFAStatus, error) {
	return s.record("status")
}

func (s *stubMFAService) Enable(context.Context, *domain.Identity) (*ports.MFAEnrollment, error) {
	s.calls = append(s.calls, "enable")
	return s.enrollment, s.err
}

func (s *stubMFAService) VerifySetup(_ context.Context, _ string, code string) (*ports.MFAStatus, error) {
	s.lastCode = code
	return s.record("verify_setup")
}

func (s *stubMFAService) Confirm(context.Context, string) (*ports.MFAStatus, error) {
	return s.record("confirm")
}

func (s *stubMFAService) Cancel(context.Context, string) (*ports.MFAStatus, error) {
	return s.record("cancel")
}

func (s *stubMFAService) Disable(_ context.Context, _ string, confirmed bool) error {
	s.lastConfirm = confirmed
	_, err := s.record("disable")
	return err
}

func (s *stubMFAService) VerifyLogin(_ context.Context, _ string, code string) error {
	s.lastCode = code
	_, err := s.record("verify_login")
	return err
}

type stubRegistrationService struct {
	submitted *wizard.Draft
	err       error
}

func (s *stubRegistrationService) Submit(_ context.Context, identityID string, draft *wizard.Draft) (*domain.CompanyApplication, error) {
	s.submitted = draft
	if s.err != nil {
		return nil, s.err
	}
	return &domain.CompanyApplication{ID: "app-1", OwnerIdentityID: identityID, Status: domain.StatusPending}, nil
}

type stubSessionRouter struct {
	surface domain.Surface
}

func (s *stubSessionRouter) Route(_ context.Context, p *domain.Principal) (domain.Surface, error) {
	if p == nil {
		return domain.Surface{Kind: domain.SurfaceSignIn}, nil
	}
	return s.surface, nil
}

func (s *stubSessionRouter) RouteAdmin(_ context.Context, p *domain.Principal) (domain.Surface, error) {
	if p.Role != domain.RoleAdmin {
		return domain.Surface{}, domain.ErrAccessDenied
	}
	return domain.Surface{Kind: domain.SurfaceAdminConsole}, nil
}

type stubReviewService struct {
	apps        map[string]*domain.CompanyApplication
	lastFilter  ports.ListApplicationsFilter
	lastReason  string
	lastActor   string
	lastSetting *domain.PlatformSetting
	activity    []*domain.ActivityLog
}

func (s *stubReviewService) find(id string) (*domain.CompanyApplication, error) {
	app, ok := s.apps[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	return app, nil
}

func (s *stubReviewService) StartReview(_ context.Context, id, adminID string) (*domain.CompanyApplication, error) {
	s.lastActor = adminID
	app, err := s.find(id)
	if err != nil {
		return nil, err
	}
	app.Status = domain.StatusUnderReview
	return app, nil
}

func (s *stubReviewService) Approve(_ context.Context, id, adminID string) (*domain.CompanyApplication, error) {
	s.lastActor = adminID
	app, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if !app.Status.Reviewable() {
		return nil, domain.ErrInvalidTransition
	}
	app.Status = domain.StatusApproved
	app.ApprovedBy = adminID
	return app, nil
}

func (s *stubReviewService) Reject(_ context.Context, id, adminID, reason string) (*domain.CompanyApplication, error) {
	s.lastActor = adminID
	s.lastReason = reason
	if strings.TrimSpace(reason) == "" {
		return nil, domain.ErrRejectionReason
	}
	app, err := s.find(id)
	if err != nil {
		return nil, err
	}
	app.Status = domain.StatusRejected
	app.RejectionReason = reason
	return app, nil
}

func (s *stubReviewService) UpdateSetting(_ context.Context, key, value, adminID string) (*domain.PlatformSetting, error) {
	if strings.TrimSpace(key) == "" {
		return nil, domain.ErrSettingKeyRequired
	}
	s.lastSetting = &domain.PlatformSetting{Key: key, Value: value, UpdatedBy: adminID}
	return s.lastSetting, nil
}

func (s *stubReviewService) GetApplication(_ context.Context, id string) (*domain.CompanyApplication, error) {
	return s.find(id)
}

func (s *stubReviewService) ListApplications(_ context.Context, f ports.ListApplicationsFilter) (*ports.ApplicationPage, error) {
	s.lastFilter = f
	items := make([]*domain.CompanyApplication, 0, len(s.apps))
	for _, app := range s.apps {
		items = append(items, app)
	}
	return &ports.ApplicationPage{Items: items, Total: int64(len(items)), Page: 1, Limit: 20, TotalPages: 1}, nil
}

func (s *stubReviewService) RecentActivity(context.Context, int) ([]*domain.ActivityLog, error) {
	return s.activity, nil
}

type stubStatsService struct {
	overview *ports.Overview
}

func (s *stubStatsService) Overview(context.Context) (*ports.Overview, error) {
	return s.overview, nil
}

// newContext builds an echo context with the handler validator installed and,
// when p is set, the principal the Auth middleware would have injected.
func newContext(method, target, body string, p *domain.Principal) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if p != nil {
		middleware.SetPrincipal(c, p)
	}
	return c, rec
}

var (
	merchant = &domain.Principal{IdentityID: "m-1", Email: "merchant@example.com", Role: domain.RoleMerchant, Scope: domain.ScopeSession, TokenID: "t-1"}
	admin    = &domain.Principal{IdentityID: "a-1", Email: "admin@example.com", Role: domain.RoleAdmin, Scope: domain.ScopeSession, TokenID: "t-2"}
)
