package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gatepay/merchant-onboarding/internal/core/domain"
)

// StageResolver is the part of StageService the router needs.
type StageResolver interface {
	Resolve(ctx context.Context, identity domain.Identity) (domain.StageResult, error)
	ResolveFresh(ctx context.Context, identity domain.Identity) (domain.StageResult, error)
}

// SessionRouter maps the caller's authentication state and account stage to
// exactly one surface.
type SessionRouter struct {
	stages StageResolver
	log    zerolog.Logger
}

func NewSessionRouter(stages StageResolver, log zerolog.Logger) *SessionRouter {
	return &SessionRouter{stages: stages, log: log}
}

// Route serves page loads; it may use a cached stage.
func (r *SessionRouter) Route(ctx context.Context, principal *domain.Principal) (domain.Surface, error) {
	return r.route(ctx, principal, false)
}

// RouteFresh serves state-changing events (sign-in, sign-up, wizard
// completion, second factor) and always recomputes the stage.
func (r *SessionRouter) RouteFresh(ctx context.Context, principal *domain.Principal) (domain.Surface, error) {
	return r.route(ctx, principal, true)
}

func (r *SessionRouter) route(ctx context.Context, principal *domain.Principal, fresh bool) (domain.Surface, error) {
	if principal == nil || principal.IdentityID == "" {
		return domain.Surface{Kind: domain.SurfaceSignIn}, nil
	}
	if principal.PendingMFA() {
		return domain.Surface{Kind: domain.SurfaceMFAChallenge}, nil
	}

	identity := domain.Identity{ID: principal.IdentityID, Email: principal.Email, Role: principal.Role}
	resolve := r.stages.Resolve
	if fresh {
		resolve = r.stages.ResolveFresh
	}
	res, err := resolve(ctx, identity)
	if err != nil {
		return domain.Surface{}, err
	}
	return domain.SurfaceForStage(res), nil
}

// RouteAdmin gates the admin console. Callers sign the principal out on
// domain.ErrAccessDenied.
func (r *SessionRouter) RouteAdmin(_ context.Context, principal *domain.Principal) (domain.Surface, error) {
	if principal == nil || principal.IdentityID == "" {
		return domain.Surface{Kind: domain.SurfaceSignIn}, nil
	}
	if principal.PendingMFA() {
		return domain.Surface{Kind: domain.SurfaceMFAChallenge}, nil
	}
	if principal.Role != domain.RoleAdmin {
		r.log.Warn().Str("identity_id", principal.IdentityID).Msg("admin console access denied")
		return domain.Surface{}, domain.ErrAccessDenied
	}
	return domain.Surface{Kind: domain.SurfaceAdminConsole}, nil
}
