package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gatepay/merchant-onboarding/internal/api/metrics"
	"github.com/gatepay/merchant-onboarding/internal/core/domain"
	"github.com/gatepay/merchant-onboarding/internal/core/ports"
)

// StageService resolves account stages. Results are cached per identity until
// a change for that identity (or a collection-wide one) is reported through
// Invalidate; state-changing events call ResolveFresh and bypass the cache.
//
// Every Invalidate bumps a generation. A read that started before the bump is
// returned to its caller but never cached, so a slow store read cannot put a
// stage back that an invalidation already dropped.
type StageService struct {
	apps            ports.ApplicationRepository
	privilegedEmail string
	log             zerolog.Logger

	mu    sync.Mutex
	cache map[string]domain.StageResult
	epoch uint64            // bumped by collection-wide invalidations
	gens  map[string]uint64 // bumped by per-identity invalidations
}

func NewStageService(apps ports.ApplicationRepository, privilegedEmail string, log zerolog.Logger) *StageService {
	return &StageService{
		apps:            apps,
		privilegedEmail: privilegedEmail,
		log:             log,
		cache:           make(map[string]domain.StageResult),
		gens:            make(map[string]uint64),
	}
}

// Resolve returns the cached stage of identity, computing it on a miss.
func (s *StageService) Resolve(ctx context.Context, identity domain.Identity) (domain.StageResult, error) {
	s.mu.Lock()
	res, ok := s.cache[identity.ID]
	s.mu.Unlock()
	if ok {
		return res, nil
	}
	return s.ResolveFresh(ctx, identity)
}

// ResolveFresh recomputes the stage from the store and refreshes the cache.
func (s *StageService) ResolveFresh(ctx context.Context, identity domain.Identity) (domain.StageResult, error) {
	s.mu.Lock()
	epoch, gen := s.epoch, s.gens[identity.ID]
	s.mu.Unlock()

	var app *domain.CompanyApplication
	if !domain.IsPrivileged(identity.Email, s.privilegedEmail) {
		found, err := s.apps.FindByOwner(ctx, identity.ID)
		switch {
		case errors.Is(err, domain.ErrApplicationNotFound):
		case err != nil:
			return domain.StageResult{}, fmt.Errorf("resolve stage: %w", err)
		default:
			app = found
		}
	}

	res := domain.ResolveStage(identity, app, s.privilegedEmail)
	metrics.StageResolutionsTotal.WithLabelValues(string(res.Stage)).Inc()

	s.mu.Lock()
	if s.epoch == epoch && s.gens[identity.ID] == gen {
		s.cache[identity.ID] = res
	}
	s.mu.Unlock()

	s.log.Debug().Str("identity_id", identity.ID).Str("stage", string(res.Stage)).Msg("stage resolved")
	return res, nil
}

// Invalidate drops cached stages affected by n. Notifications are never applied
// as deltas; the next Resolve recomputes.
func (s *StageService) Invalidate(n domain.ChangeNotification) {
	if n.Collection != domain.CollectionApplications {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if n.OwnerIdentityID == "" {
		s.epoch++
		s.cache = make(map[string]domain.StageResult)
		return
	}
	s.gens[n.OwnerIdentityID]++
	delete(s.cache, n.OwnerIdentityID)
}
