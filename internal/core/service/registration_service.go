package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gatepay/merchant-onboarding/internal/api/metrics"
	"github.com/gatepay/merchant-onboarding/internal/core/domain"
	"github.com/gatepay/merchant-onboarding/internal/core/ports"
	"github.com/gatepay/merchant-onboarding/internal/core/wizard"
)

// RegistrationService persists the application built by a finished wizard.
type RegistrationService struct {
	apps     ports.ApplicationRepository
	activity ports.ActivityRepository
	tx       ports.Transactor
	changes  changeFeed
	logger   zerolog.Logger
}

// NewRegistrationService wires the service. local are the caches of this
// process that must forget an owner's stage as soon as the submit commits.
func NewRegistrationService(
	apps ports.ApplicationRepository,
	activity ports.ActivityRepository,
	tx ports.Transactor,
	publisher ports.ChangePublisher,
	logger zerolog.Logger,
	local ...ports.Invalidator,
) *RegistrationService {
	return &RegistrationService{
		apps:     apps,
		activity: activity,
		tx:       tx,
		changes:  changeFeed{publisher: publisher, local: local, logger: logger},
		logger:   logger,
	}
}

// Submit re-validates every step of draft and creates the owner's single
// application together with its submit_company entry. The draft is reset only
// when both were stored.
func (s *RegistrationService) Submit(ctx context.Context, identityID string, draft *wizard.Draft) (*domain.CompanyApplication, error) {
	_, err := s.apps.FindByOwner(ctx, identityID)
	switch {
	case err == nil:
		return nil, domain.ErrApplicationExists
	case !errors.Is(err, domain.ErrApplicationNotFound):
		return nil, fmt.Errorf("submit registration: %w", err)
	}

	app, err := draft.Finish(ctx, identityID, func(ctx context.Context, app *domain.CompanyApplication) error {
		return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			if err := s.apps.Create(ctx, app); err != nil {
				return err
			}
			return audit(ctx, s.activity, &domain.ActivityLog{
				Action:       domain.ActionSubmitCompany,
				ResourceType: domain.ResourceCompanyApplication,
				ResourceID:   app.ID,
				ActorID:      identityID,
			})
		})
	})
	if err != nil {
		if !errors.Is(err, domain.ErrApplicationExists) {
			s.logger.Error().Err(err).Str("identity_id", identityID).Msg("failed to submit registration")
		}
		return nil, err
	}

	metrics.ApplicationsSubmittedTotal.WithLabelValues(string(app.BusinessType)).Inc()
	s.logger.Info().
		Str("identity_id", identityID).
		Str("application_id", app.ID).
		Str("business_type", string(app.BusinessType)).
		Msg("company application submitted")

	s.changes.announce(ctx, domain.ChangeNotification{
		Collection:      domain.CollectionApplications,
		OwnerIdentityID: identityID,
	})
	return app, nil
}
