package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gatepay/merchant-onboarding/internal/api/metrics"
	"github.com/gatepay/merchant-onboarding/internal/core/domain"
	"github.com/gatepay/merchant-onboarding/internal/core/ports"
)

const (
	defaultPageLimit     = 20
	maxPageLimit         = 100
	defaultActivityLimit = 20
)

// ReviewService is the admin side of the application lifecycle.
// Every mutation and its audit entry are written in one transaction.
type ReviewService struct {
	apps     ports.ApplicationRepository
	activity ports.ActivityRepository
	settings ports.SettingsRepository
	tx       ports.Transactor
	changes  changeFeed
	now      func() time.Time
	logger   zerolog.Logger
}

// NewReviewService wires the service. local are the caches of this process
// that must be invalidated as soon as a decision commits.
func NewReviewService(
	apps ports.ApplicationRepository,
	activity ports.ActivityRepository,
	settings ports.SettingsRepository,
	tx ports.Transactor,
	publisher ports.ChangePublisher,
	logger zerolog.Logger,
	local ...ports.Invalidator,
) *ReviewService {
	return &ReviewService{
		apps:     apps,
		activity: activity,
		settings: settings,
		tx:       tx,
		changes:  changeFeed{publisher: publisher, local: local, logger: logger},
		now:      time.Now,
		logger:   logger,
	}
}

// StartReview marks a pending application as under review.
func (s *ReviewService) StartReview(ctx context.Context, applicationID, adminID string) (*domain.CompanyApplication, error) {
	now := s.now().UTC()
	return s.decide(ctx, applicationID, adminID, domain.ActionReviewCompany, domain.ReviewDecision{
		Status:     domain.StatusUnderReview,
		ReviewedAt: &now,
	}, nil)
}

func (s *ReviewService) Approve(ctx context.Context, applicationID, adminID string) (*domain.CompanyApplication, error) {
	now := s.now().UTC()
	return s.decide(ctx, applicationID, adminID, domain.ActionApproveCompany, domain.ReviewDecision{
		Status:     domain.StatusApproved,
		ApprovedBy: adminID,
		ApprovedAt: &now,
		ReviewedAt: &now,
	}, nil)
}

// Reject requires a non-blank reason, checked before the store is touched.
func (s *ReviewService) Reject(ctx context.Context, applicationID, adminID, reason string) (*domain.CompanyApplication, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domain.ErrRejectionReason
	}

	now := s.now().UTC()
	return s.decide(ctx, applicationID, adminID, domain.ActionRejectCompany, domain.ReviewDecision{
		Status:          domain.StatusRejected,
		ApprovedBy:      adminID,
		ApprovedAt:      &now,
		ReviewedAt:      &now,
		RejectionReason: reason,
	}, map[string]string{"reason": reason})
}

// decide loads the application, checks the transition and writes the decision
// conditionally on the version that was read.
func (s *ReviewService) decide(
	ctx context.Context,
	applicationID, adminID, action string,
	decision domain.ReviewDecision,
	details map[string]string,
) (*domain.CompanyApplication, error) {
	app, err := s.apps.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if !app.Status.Reviewable() || !app.Status.CanTransitionTo(decision.Status) {
		return nil, fmt.Errorf("%s -> %s: %w", app.Status, decision.Status, domain.ErrInvalidTransition)
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.apps.UpdateReview(ctx, app.ID, app.Version, decision); err != nil {
			return err
		}
		return audit(ctx, s.activity, &domain.ActivityLog{
			Action:       action,
			ResourceType: domain.ResourceCompanyApplication,
			ResourceID:   app.ID,
			ActorID:      adminID,
			Details:      details,
		})
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("application_id", app.ID).Str("action", action).Msg("review update failed")
		return nil, err
	}
	app.Apply(decision)

	metrics.ReviewActionsTotal.WithLabelValues(action).Inc()
	s.logger.Info().
		Str("application_id", app.ID).
		Str("admin_id", adminID).
		Str("action", action).
		Str("status", string(app.Status)).
		Msg("application reviewed")

	s.changes.announce(ctx, domain.ChangeNotification{
		Collection:      domain.CollectionApplications,
		OwnerIdentityID: app.OwnerIdentityID,
	})
	return app, nil
}

func (s *ReviewService) UpdateSetting(ctx context.Context, key, value, adminID string) (*domain.PlatformSetting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, domain.ErrSettingKeyRequired
	}

	setting := &domain.PlatformSetting{
		Key:       key,
		Value:     value,
		UpdatedBy: adminID,
		UpdatedAt: s.now().UTC(),
	}
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.settings.Upsert(ctx, setting); err != nil {
			return err
		}
		return audit(ctx, s.activity, &domain.ActivityLog{
			Action:       domain.ActionUpdateSetting,
			ResourceType: domain.ResourcePlatformSetting,
			ResourceID:   key,
			ActorID:      adminID,
			Details:      map[string]string{"value": value},
		})
	})
	if err != nil {
		return nil, fmt.Errorf("update setting %q: %w", key, err)
	}

	metrics.ReviewActionsTotal.WithLabelValues(domain.ActionUpdateSetting).Inc()
	s.logger.Info().Str("key", key).Str("admin_id", adminID).Msg("platform setting updated")

	s.changes.announce(ctx, domain.ChangeNotification{Collection: domain.CollectionActivityLogs})
	return setting, nil
}

func (s *ReviewService) GetApplication(ctx context.Context, applicationID string) (*domain.CompanyApplication, error) {
	return s.apps.FindByID(ctx, applicationID)
}

// ListApplications returns one page. Limit defaults to 20 and is capped at 100.
func (s *ReviewService) ListApplications(ctx context.Context, filter ports.ListApplicationsFilter) (*ports.ApplicationPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	items, total, err := s.apps.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	if items == nil {
		items = []*domain.CompanyApplication{}
	}

	return &ports.ApplicationPage{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

func (s *ReviewService) RecentActivity(ctx context.Context, limit int) ([]*domain.ActivityLog, error) {
	if limit < 1 {
		limit = defaultActivityLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return s.activity.Recent(ctx, limit)
}
