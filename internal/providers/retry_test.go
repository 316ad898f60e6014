package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/andover-chess-club/fixtures-service/internal/config"
	"github.com/andover-chess-club/fixtures-service/internal/domain"
)

type flakyProvider struct {
	failures int
	calls    int
}

func (f *flakyProvider) fetch() error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("upstream hiccup")
	}
	return nil
}

func (f *flakyProvider) FetchTeamFixtures(ctx context.Context, team config.Team) ([]domain.Fixture, error) {
	if err := f.fetch(); err != nil {
		return nil, err
	}
	return []domain.Fixture{{ID: "andover-" + team.Letter}}, nil
}

func (f *flakyProvider) FetchLeagueTable(ctx context.Context, division config.Division) (domain.LeagueTable, error) {
	if err := f.fetch(); err != nil {
		return domain.LeagueTable{}, err
	}
	return domain.LeagueTable{Division: division.Name}, nil
}

func (f *flakyProvider) FetchMatchCard(ctx context.Context, fixtureURL string) (domain.MatchCard, error) {
	if err := f.fetch(); err != nil {
		return domain.MatchCard{}, err
	}
	return domain.MatchCard{Score: "3-2"}, nil
}

func TestRetryingProviderPassesThroughSuccess(t *testing.T) {
	inner := &flakyProvider{}
	p := NewRetryingProvider(inner, nil, 1)

	fixtures, err := p.FetchTeamFixtures(context.Background(), config.Team{Letter: "A"})
	if err != nil {
		t.Fatalf("FetchTeamFixtures failed: %v", err)
	}
	if len(fixtures) != 1 || fixtures[0].ID != "andover-A" {
		t.Fatalf("unexpected fixtures %+v", fixtures)
	}
	if inner.calls != 1 {
		t.Fatalf("expected a single call on success, got %d", inner.calls)
	}
}

func TestRetryingProviderRecoversFromTransientFailure(t *testing.T) {
	inner := &flakyProvider{failures: 1}
	p := NewRetryingProvider(inner, nil, 1)

	table, err := p.FetchLeagueTable(context.Background(), config.Division{Name: "Division 2"})
	if err != nil {
		t.Fatalf("expected recovery after one failure: %v", err)
	}
	if table.Division != "Division 2" {
		t.Fatalf("unexpected table %+v", table)
	}
	if inner.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", inner.calls)
	}
}

func TestRetryingProviderGivesUpAfterMaxRetries(t *testing.T) {
	inner := &flakyProvider{failures: 10}
	p := NewRetryingProvider(inner, nil, 1)

	if _, err := p.FetchMatchCard(context.Background(), "https://example.org/event/1"); err == nil {
		t.Fatal("expected error once retries are exhausted")
	}
	if inner.calls != 2 {
		t.Fatalf("expected initial attempt plus one retry, got %d calls", inner.calls)
	}
}

func TestRetryingProviderDefaultsRetries(t *testing.T) {
	inner := &flakyProvider{failures: 10}
	p := NewRetryingProvider(inner, nil, 0)

	if _, err := p.FetchTeamFixtures(context.Background(), config.Team{Letter: "A"}); err == nil {
		t.Fatal("expected error")
	}
	if inner.calls != 2 {
		t.Fatalf("non-positive maxRetries falls back to one retry, got %d calls", inner.calls)
	}
}

func TestRetryingProviderStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inner := &flakyProvider{failures: 10}
	p := NewRetryingProvider(inner, nil, 5)

	if _, err := p.FetchTeamFixtures(ctx, config.Team{Letter: "A"}); err == nil {
		t.Fatal("expected error with a cancelled context")
	}
	if inner.calls > 1 {
		t.Fatalf("expected no retries after cancellation, got %d calls", inner.calls)
	}
}
