package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"github.com/gatepay/merchant-onboarding/internal/api/handler"
	"github.com/gatepay/merchant-onboarding/internal/api/middleware"
	"github.com/gatepay/merchant-onboarding/internal/core/domain"
	"github.com/gatepay/merchant-onboarding/internal/core/ports"
)

const metricsSubsystem = "onboarding"

// Dependencies are the services the HTTP layer is wired to.
type Dependencies struct {
	Auth         ports.AuthService
	MFA          ports.MFAService
	Registration ports.RegistrationService
	Sessions     ports.SessionRouter
	Review       ports.ReviewService
	Stats        ports.StatsService

	// HealthChecks are pinged by the readiness probe, keyed by dependency name.
	HealthChecks map[string]handler.PingFunc

	// AuthRate and AuthBurst bound sign-in attempts per client IP.
	AuthRate  float64
	AuthBurst int

	// Registry receives the HTTP metrics; nil means the default registry.
	Registry *prometheus.Registry

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(metricsMiddleware(deps.Registry))

	authHandler := handler.NewAuthHandler(deps.Auth)
	mfaHandler := handler.NewMFAHandler(deps.MFA)
	registrationHandler := handler.NewRegistrationHandler(deps.Registration)
	sessionHandler := handler.NewSessionHandler(deps.Sessions, deps.Auth)
	adminHandler := handler.NewAdminHandler(deps.Review, deps.Stats)

	authenticated := middleware.Auth(deps.Auth)
	sessionScope := middleware.RequireScope(domain.ScopeSession)
	challengeScope := middleware.RequireScope(domain.ScopeMFAPending)
	limiter := signInLimiter(deps.AuthRate, deps.AuthBurst)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register, limiter)
	auth.POST("/login", authHandler.Login, limiter)
	auth.POST("/logout", authHandler.Logout, authenticated)
	auth.POST("/2fa/verify", authHandler.VerifyChallenge, limiter, authenticated, challengeScope)
	auth.POST("/2fa/cancel", authHandler.CancelChallenge, authenticated, challengeScope)

	// --- Merchant routes ---
	e.GET("/v1/session", sessionHandler.Current, middleware.OptionalAuth(deps.Auth))

	v1 := e.Group("/v1", authenticated, sessionScope)
	v1.GET("/setup-2fa", mfaHandler.Status)
	v1.POST("/setup-2fa", mfaHandler.Setup)
	v1.POST("/verify-2fa", mfaHandler.Verify)
	v1.POST("/registration/steps/:step", registrationHandler.ValidateStep)
	v1.POST("/registration", registrationHandler.Submit)

	// --- Admin routes ---
	e.POST("/admin/login", authHandler.AdminLogin, limiter)
	e.GET("/admin/session", sessionHandler.Admin, authenticated)

	admin := e.Group("/admin/v1", authenticated, middleware.RequireAdmin(deps.Auth, deps.Logger))
	admin.GET("/applications", adminHandler.ListApplications)
	admin.GET("/applications/:id", adminHandler.GetApplication)
	admin.POST("/applications/:id/review", adminHandler.StartReview)
	admin.POST("/applications/:id/approve", adminHandler.Approve)
	admin.POST("/applications/:id/reject", adminHandler.Reject)
	admin.PUT("/settings/:key", adminHandler.UpdateSetting)
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/activity", adminHandler.Activity)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.HealthChecks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	e.GET("/metrics", metricsHandler(deps.Registry))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// signInLimiter throttles credential endpoints per client IP.
func signInLimiter(perSecond float64, burst int) echo.MiddlewareFunc {
	if perSecond <= 0 {
		perSecond = 5
	}
	if burst <= 0 {
		burst = 10
	}
	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})
	return echomiddleware.RateLimiter(store)
}

func metricsMiddleware(reg *prometheus.Registry) echo.MiddlewareFunc {
	if reg == nil {
		return echoprometheus.NewMiddleware(metricsSubsystem)
	}
	return echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  metricsSubsystem,
		Registerer: reg,
	})
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}
