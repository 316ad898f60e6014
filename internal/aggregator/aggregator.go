// Package aggregator fans the team scraper out over every configured team and
// merges the results into one deduplicated, date-ordered fixture list.
package aggregator

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/andover-chess-club/fixtures-service/internal/config"
	"github.com/andover-chess-club/fixtures-service/internal/domain"
	"github.com/andover-chess-club/fixtures-service/internal/logging"
	"github.com/andover-chess-club/fixtures-service/internal/metrics"
	"github.com/andover-chess-club/fixtures-service/internal/providers"
)

// Aggregator collects fixtures for the whole club in one pass.
type Aggregator struct {
	provider providers.FixtureProvider
	teams    []config.Team
	logger   *slog.Logger
	metrics  *metrics.Recorder
}

// New constructs an Aggregator over the configured teams.
func New(provider providers.FixtureProvider, teams []config.Team, logger *slog.Logger, recorder *metrics.Recorder) *Aggregator {
	return &Aggregator{
		provider: provider,
		teams:    teams,
		logger:   logger,
		metrics:  recorder,
	}
}

// Aggregate fetches every team's fixtures concurrently and merges them.
// A single team's failure is logged and contributes zero fixtures; only a
// cancelled context fails the call as a whole. Duplicate IDs resolve
// last-write-wins in team configuration order.
func (a *Aggregator) Aggregate(ctx context.Context) ([]domain.Fixture, error) {
	results := make([][]domain.Fixture, len(a.teams))

	var wg sync.WaitGroup
	for i, team := range a.teams {
		wg.Add(1)
		go func(i int, team config.Team) {
			defer wg.Done()

			start := time.Now()
			fixtures, err := a.provider.FetchTeamFixtures(ctx, team)
			a.metrics.RecordScrape(team.Letter, time.Since(start), err)
			if err != nil {
				logging.Warn(a.logger, "team scrape failed, contributing zero fixtures",
					logging.FieldTeam, team.Letter,
					"error", err,
				)
				return
			}
			results[i] = fixtures
		}(i, team)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	merged := merge(results)
	logging.Info(a.logger, "aggregated fixtures",
		logging.FieldCount, len(merged),
		"teams", len(a.teams),
	)
	return merged, nil
}

func merge(results [][]domain.Fixture) []domain.Fixture {
	byID := make(map[string]domain.Fixture)
	for _, fixtures := range results {
		for _, f := range fixtures {
			byID[f.ID] = f
		}
	}

	merged := make([]domain.Fixture, 0, len(byID))
	for _, f := range byID {
		merged = append(merged, f)
	}

	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Date != merged[j].Date {
			return merged[i].Date < merged[j].Date
		}
		if merged[i].Time != merged[j].Time {
			return merged[i].Time < merged[j].Time
		}
		return merged[i].ID < merged[j].ID
	})
	return merged
}
