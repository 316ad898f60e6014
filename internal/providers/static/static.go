// Package static returns a deterministic set of fixtures useful for local
// development and for running the service before the league season opens.
package static

import (
	"context"
	"strings"
	"time"

	"github.com/andover-chess-club/fixtures-service/internal/config"
	"github.com/andover-chess-club/fixtures-service/internal/domain"
	"github.com/andover-chess-club/fixtures-service/internal/timeutil"
)

// Provider serves canned fixtures keyed off the requested team letter.
type Provider struct {
	now func() time.Time
}

// New creates a static provider with a time source.
func New() *Provider {
	return &Provider{now: time.Now}
}

// FetchTeamFixtures returns one upcoming and one completed fixture per team.
func (p *Provider) FetchTeamFixtures(ctx context.Context, team config.Team) ([]domain.Fixture, error) {
	_ = ctx

	nextWeek := timeutil.FormatDate(p.now().AddDate(0, 0, 7))
	lastWeek := timeutil.FormatDate(p.now().AddDate(0, 0, -7))

	letter := team.Letter
	return []domain.Fixture{
		{
			ID:          "andover-" + strings.ToLower(letter) + "-" + timeutil.CompactDate(nextWeek),
			HomeTeam:    "Andover " + letter,
			AwayTeam:    "Winchester " + letter,
			Date:        nextWeek,
			Time:        "19:30",
			Venue:       domain.VenueHome,
			Competition: "Division 2",
			Status:      domain.StatusUpcoming,
		},
		{
			ID:          "andover-" + strings.ToLower(letter) + "-" + timeutil.CompactDate(lastWeek),
			HomeTeam:    "Hamble " + letter,
			AwayTeam:    "Andover " + letter,
			Date:        lastWeek,
			Time:        "19:30",
			Venue:       domain.VenueAway,
			Competition: "Division 2",
			Status:      domain.StatusCompleted,
			Result:      domain.ResultDraw,
			Score:       "3-3",
			FixtureURL:  "https://ecflms.org.uk/lms/event/5012",
		},
	}, nil
}

// FetchLeagueTable returns a small fixed standings table.
func (p *Provider) FetchLeagueTable(ctx context.Context, division config.Division) (domain.LeagueTable, error) {
	_ = ctx
	return domain.LeagueTable{
		Division: division.Name,
		Rows: []domain.TableRow{
			{Position: 1, Team: "Winchester A", Played: 4, Won: 3, Drawn: 1, Lost: 0, BoardPoints: "14½", MatchPoints: 7},
			{Position: 2, Team: "Andover A", Played: 4, Won: 2, Drawn: 1, Lost: 1, BoardPoints: "12", MatchPoints: 5},
			{Position: 3, Team: "Hamble A", Played: 4, Won: 0, Drawn: 2, Lost: 2, BoardPoints: "9½", MatchPoints: 2},
		},
	}, nil
}

// FetchMatchCard returns a fixed board-by-board result.
func (p *Provider) FetchMatchCard(ctx context.Context, fixtureURL string) (domain.MatchCard, error) {
	_ = ctx
	_ = fixtureURL
	return domain.MatchCard{
		HomeTeam: "Andover A",
		AwayTeam: "Winchester A",
		Score:    "3-2",
		Boards: []domain.Board{
			{Number: 1, HomePlayer: "J Smith", AwayPlayer: "P Jones", Result: "1-0"},
			{Number: 2, HomePlayer: "R Patel", AwayPlayer: "D Brown", Result: "½-½"},
		},
	}, nil
}
