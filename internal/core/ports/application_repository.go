package ports

import (
	"context"

	"github.com/gatepay/merchant-onboarding/internal/core/domain"
)

// ListApplicationsFilter carries the admin console's list query.
type ListApplicationsFilter struct {
	Status string // optional: one of the four application statuses
	Page   int    // 1-based
	Limit  int    // capped at 100 by the service
}

// ApplicationRepository defines persistence for company applications.
type ApplicationRepository interface {
	// Create inserts app. It returns domain.ErrApplicationExists when the owner
	// already has an application.
	Create(ctx context.Context, app *domain.CompanyApplication) error
	FindByID(ctx context.Context, id string) (*domain.CompanyApplication, error)
	// FindByOwner returns domain.ErrApplicationNotFound when the identity never
	// finished the wizard.
	FindByOwner(ctx context.Context, ownerIdentityID string) (*domain.CompanyApplication, error)
	List(ctx context.Context, filter ListApplicationsFilter) ([]*domain.CompanyApplication, int64, error)
	CountByStatus(ctx context.Context, status domain.ApplicationStatus) (int64, error)
	// UpdateReview writes decision only if the stored version still equals
	// expectedVersion; otherwise it returns domain.ErrStaleApplication.
	UpdateReview(ctx context.Context, id string, expectedVersion int64, decision domain.ReviewDecision) error
}
