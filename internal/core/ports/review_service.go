package ports

import (
	"context"

	"github.com/gatepay/merchant-onboarding/internal/core/domain"
)

// ApplicationPage is one page of the admin application list.
type ApplicationPage struct {
	Items      []*domain.CompanyApplication
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ReviewService is the admin review workflow. Every mutating call appends
// exactly one activity log entry; reads never do.
type ReviewService interface {
	StartReview(ctx context.Context, applicationID, adminID string) (*domain.CompanyApplication, error)
	Approve(ctx context.Context, applicationID, adminID string) (*domain.CompanyApplication, error)
	Reject(ctx context.Context, applicationID, adminID, reason string) (*domain.CompanyApplication, error)
	UpdateSetting(ctx context.Context, key, value, adminID string) (*domain.PlatformSetting, error)

	GetApplication(ctx context.Context, applicationID string) (*domain.CompanyApplication, error)
	ListApplications(ctx context.Context, filter ListApplicationsFilter) (*ApplicationPage, error)
	RecentActivity(ctx context.Context, limit int) ([]*domain.ActivityLog, error)
}
