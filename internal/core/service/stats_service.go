package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/gatepay/merchant-onboarding/internal/core/domain"
	"github.com/gatepay/merchant-onboarding/internal/core/ports"
)

// Overview slot names, used as keys of Overview.Errors.
const (
	SlotPending        = "pending"
	SlotUnderReview    = "under_review"
	SlotRecentActivity = "recent_activity"
)

// StatsService builds the admin overview from three independent reads. Every
// read is awaited; a failed one leaves its slot empty and the others intact.
type StatsService struct {
	apps     ports.ApplicationRepository
	activity ports.ActivityRepository
	logger   zerolog.Logger

	mu     sync.Mutex
	cached *ports.Overview
	gen    uint64 // bumped by Invalidate; reads started before a bump are not cached
}

func NewStatsService(apps ports.ApplicationRepository, activity ports.ActivityRepository, logger zerolog.Logger) *StatsService {
	return &StatsService{apps: apps, activity: activity, logger: logger}
}

// Overview returns the cached overview, or reads a new one. Partial results are
// returned but not cached.
func (s *StatsService) Overview(ctx context.Context) (*ports.Overview, error) {
	s.mu.Lock()
	cached, gen := s.cached, s.gen
	s.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	var (
		mu       sync.Mutex
		overview = &ports.Overview{Errors: map[string]string{}}
	)
	fail := func(slot string, err error) {
		s.logger.Error().Err(err).Str("slot", slot).Msg("overview read failed")
		mu.Lock()
		overview.Errors[slot] = err.Error()
		mu.Unlock()
	}

	// The goroutines never return an error so one failure cannot cancel the
	// others through the group context.
	var g errgroup.Group
	g.Go(func() error {
		n, err := s.apps.CountByStatus(ctx, domain.StatusPending)
		if err != nil {
			fail(SlotPending, err)
			return nil
		}
		mu.Lock()
		overview.Pending = &n
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		n, err := s.apps.CountByStatus(ctx, domain.StatusUnderReview)
		if err != nil {
			fail(SlotUnderReview, err)
			return nil
		}
		mu.Lock()
		overview.UnderReview = &n
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		entries, err := s.activity.Recent(ctx, defaultActivityLimit)
		if err != nil {
			fail(SlotRecentActivity, err)
			return nil
		}
		mu.Lock()
		overview.RecentActivity = entries
		mu.Unlock()
		return nil
	})
	_ = g.Wait()

	if len(overview.Errors) == 0 {
		s.mu.Lock()
		if s.gen == gen {
			s.cached = overview
		}
		s.mu.Unlock()
	}
	return overview, nil
}

// Invalidate drops the cached overview on any application or activity change.
func (s *StatsService) Invalidate(n domain.ChangeNotification) {
	if n.Collection != domain.CollectionApplications && n.Collection != domain.CollectionActivityLogs {
		return
	}
	s.mu.Lock()
	s.gen++
	s.cached = nil
	s.mu.Unlock()
}
