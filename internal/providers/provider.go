package providers

import (
	"context"

	"github.com/andover-chess-club/fixtures-service/internal/config"
	"github.com/andover-chess-club/fixtures-service/internal/domain"
)

// FixtureProvider defines how one team's fixtures are fetched and normalized.
// Implementations scrape a single fixed page per team; there is no discovery.
type FixtureProvider interface {
	FetchTeamFixtures(ctx context.Context, team config.Team) ([]domain.Fixture, error)
}

// TableProvider fetches a division's league standings.
type TableProvider interface {
	FetchLeagueTable(ctx context.Context, division config.Division) (domain.LeagueTable, error)
}

// MatchCardProvider fetches the board-by-board detail of a single match.
type MatchCardProvider interface {
	FetchMatchCard(ctx context.Context, fixtureURL string) (domain.MatchCard, error)
}

// DataProvider combines all provider capabilities.
type DataProvider interface {
	FixtureProvider
	TableProvider
	MatchCardProvider
}
