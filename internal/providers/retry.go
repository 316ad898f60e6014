package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/andover-chess-club/fixtures-service/internal/config"
	"github.com/andover-chess-club/fixtures-service/internal/domain"
	"github.com/andover-chess-club/fixtures-service/internal/logging"
)

const (
	defaultRetryAttempts   = 1
	defaultInitialInterval = 500 * time.Millisecond
)

// retryingProvider wraps a DataProvider with bounded retry/backoff behaviour.
// The league site is a volunteer-run service, so retries stay conservative.
type retryingProvider struct {
	inner      DataProvider
	logger     *slog.Logger
	maxRetries uint64
}

// NewRetryingProvider wraps the given provider with retries. A non-positive
// maxRetries falls back to a single retry.
func NewRetryingProvider(inner DataProvider, logger *slog.Logger, maxRetries int) DataProvider {
	if maxRetries <= 0 {
		maxRetries = defaultRetryAttempts
	}
	return &retryingProvider{
		inner:      inner,
		logger:     logger,
		maxRetries: uint64(maxRetries),
	}
}

func (r *retryingProvider) FetchTeamFixtures(ctx context.Context, team config.Team) ([]domain.Fixture, error) {
	var fixtures []domain.Fixture
	err := r.retry(ctx, "team fixtures", func() error {
		var fetchErr error
		fixtures, fetchErr = r.inner.FetchTeamFixtures(ctx, team)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return fixtures, nil
}

func (r *retryingProvider) FetchLeagueTable(ctx context.Context, division config.Division) (domain.LeagueTable, error) {
	var table domain.LeagueTable
	err := r.retry(ctx, "league table", func() error {
		var fetchErr error
		table, fetchErr = r.inner.FetchLeagueTable(ctx, division)
		return fetchErr
	})
	if err != nil {
		return domain.LeagueTable{}, err
	}
	return table, nil
}

func (r *retryingProvider) FetchMatchCard(ctx context.Context, fixtureURL string) (domain.MatchCard, error) {
	var card domain.MatchCard
	err := r.retry(ctx, "match card", func() error {
		var fetchErr error
		card, fetchErr = r.inner.FetchMatchCard(ctx, fixtureURL)
		return fetchErr
	})
	if err != nil {
		return domain.MatchCard{}, err
	}
	return card, nil
}

func (r *retryingProvider) retry(ctx context.Context, op string, fn func() error) error {
	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = defaultInitialInterval

	policy := backoff.WithContext(backoff.WithMaxRetries(expo, r.maxRetries), ctx)
	return backoff.RetryNotify(fn, policy, func(err error, next time.Duration) {
		logging.Warn(r.logger, "upstream fetch retry",
			"op", op,
			"next_attempt_in", next.String(),
			"error", err,
		)
	})
}
