// Package fixtures coordinates the aggregation pipeline behind the cache slot.
package fixtures

import (
	"context"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/andover-chess-club/fixtures-service/internal/cache"
	"github.com/andover-chess-club/fixtures-service/internal/domain"
	"github.com/andover-chess-club/fixtures-service/internal/logging"
	"github.com/andover-chess-club/fixtures-service/internal/metrics"
)

// Aggregator produces one full fixture set per call.
type Aggregator interface {
	Aggregate(ctx context.Context) ([]domain.Fixture, error)
}

// Service is the application-facing entry point for fixture reads.
type Service struct {
	agg     Aggregator
	cache   cache.Store
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// NewService wires the aggregator behind the cache. A nil clock uses real time.
func NewService(agg Aggregator, store cache.Store, clock clockwork.Clock, logger *slog.Logger, recorder *metrics.Recorder) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{
		agg:     agg,
		cache:   store,
		clock:   clock,
		logger:  logger,
		metrics: recorder,
	}
}

// Fixtures serves the cached snapshot when it is still fresh, otherwise runs a
// full aggregation and stores the result. The second return value reports
// whether the response came from the cache. On aggregation failure any prior
// snapshot is left in place, so reads recover as soon as upstream does.
func (s *Service) Fixtures(ctx context.Context) (domain.FixturesSnapshot, bool, error) {
	if snap, ok := s.cache.Get(); ok {
		s.metrics.RecordCacheRead(true)
		return snap, true, nil
	}
	s.metrics.RecordCacheRead(false)

	snap, err := s.refresh(ctx)
	if err != nil {
		return domain.FixturesSnapshot{}, false, err
	}
	return snap, false, nil
}

// Refresh clears the slot and runs an aggregation unconditionally. It does not
// cancel a concurrently running natural refresh; the later write wins.
func (s *Service) Refresh(ctx context.Context) (domain.FixturesSnapshot, error) {
	s.cache.Clear()
	return s.refresh(ctx)
}

// Invalidate empties the cache; the next read aggregates from scratch.
func (s *Service) Invalidate() {
	s.cache.Clear()
	logging.Info(s.logger, "fixtures cache invalidated")
}

func (s *Service) refresh(ctx context.Context) (domain.FixturesSnapshot, error) {
	fixtures, err := s.agg.Aggregate(ctx)
	if err != nil {
		logging.Error(s.logger, "fixtures aggregation failed", err)
		return domain.FixturesSnapshot{}, err
	}

	snap := domain.FixturesSnapshot{
		Fixtures:  fixtures,
		FetchedAt: s.clock.Now(),
	}
	s.cache.Set(snap)
	return snap, nil
}
