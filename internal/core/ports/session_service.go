package ports

import (
	"context"

	"github.com/gatepay/merchant-onboarding/internal/core/domain"
	"github.com/gatepay/merchant-onboarding/internal/core/wizard"
)

// RegistrationService persists a finished registration wizard.
type RegistrationService interface {
	Submit(ctx context.Context, identityID string, draft *wizard.Draft) (*domain.CompanyApplication, error)
}

// SessionRouter selects the one surface a caller may see.
type SessionRouter interface {
	// Route handles a nil principal as unauthenticated.
	Route(ctx context.Context, principal *domain.Principal) (domain.Surface, error)
	// RouteAdmin returns domain.ErrAccessDenied for non-admins.
	RouteAdmin(ctx context.Context, principal *domain.Principal) (domain.Surface, error)
}

// Overview is the admin console summary. Each figure is nil when its read
// failed; Errors names the failed reads.
type Overview struct {
	Pending        *int64
	UnderReview    *int64
	RecentActivity []*domain.ActivityLog
	Errors         map[string]string
}

// StatsService builds the admin overview from independent reads.
type StatsService interface {
	Overview(ctx context.Context) (*Overview, error)
}
