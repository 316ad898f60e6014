package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andover-chess-club/fixtures-service/internal/config"
	"github.com/andover-chess-club/fixtures-service/internal/domain"
	"github.com/andover-chess-club/fixtures-service/internal/warmer"
)

type stubService struct {
	snapshot    domain.FixturesSnapshot
	cached      bool
	err         error
	refreshed   int
	invalidated int
}

func (s *stubService) Fixtures(ctx context.Context) (domain.FixturesSnapshot, bool, error) {
	if s.err != nil {
		return domain.FixturesSnapshot{}, false, s.err
	}
	return s.snapshot, s.cached, nil
}

func (s *stubService) Refresh(ctx context.Context) (domain.FixturesSnapshot, error) {
	s.refreshed++
	if s.err != nil {
		return domain.FixturesSnapshot{}, s.err
	}
	return s.snapshot, nil
}

func (s *stubService) Invalidate() {
	s.invalidated++
}

type stubTables struct {
	table    domain.LeagueTable
	err      error
	division config.Division
}

func (s *stubTables) FetchLeagueTable(ctx context.Context, division config.Division) (domain.LeagueTable, error) {
	s.division = division
	if s.err != nil {
		return domain.LeagueTable{}, s.err
	}
	return s.table, nil
}

func divisions() []config.Division {
	return []config.Division{
		{Name: "Division 2", UpstreamID: "2481"},
		{Name: "Division 4", UpstreamID: "2483"},
	}
}

func sampleSnapshot() domain.FixturesSnapshot {
	return domain.FixturesSnapshot{
		Fixtures: []domain.Fixture{
			{
				ID:          "andover-a-20250923",
				HomeTeam:    "Andover A",
				AwayTeam:    "Winchester A",
				Date:        "2025-09-23",
				Time:        "19:30",
				Venue:       domain.VenueHome,
				Competition: "Southampton Chess League",
				Status:      domain.StatusUpcoming,
			},
		},
		FetchedAt: time.Date(2025, 9, 20, 12, 0, 0, 0, time.UTC),
	}
}

func decodeFixtures(t *testing.T, rec *httptest.ResponseRecorder) FixturesResponse {
	t.Helper()
	var resp FixturesResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return resp
}

func TestFixturesServesSnapshot(t *testing.T) {
	svc := &stubService{snapshot: sampleSnapshot(), cached: true}
	h := NewHandler(svc, nil, nil, nil, nil, nil)

	rec := httptest.NewRecorder()
	h.Fixtures(rec, httptest.NewRequest(http.MethodGet, "/api/fixtures", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeFixtures(t, rec)
	if !resp.Success {
		t.Fatal("expected success=true")
	}
	if !resp.Cached {
		t.Fatal("expected cached=true")
	}
	if resp.Count != 1 || len(resp.Data) != 1 {
		t.Fatalf("count = %d, data len = %d, want 1", resp.Count, len(resp.Data))
	}
	if resp.Data[0].ID != "andover-a-20250923" {
		t.Fatalf("unexpected fixture %+v", resp.Data[0])
	}
	if resp.Timestamp != "2025-09-20T12:00:00Z" {
		t.Fatalf("timestamp = %q", resp.Timestamp)
	}
}

func TestFixturesEmptySnapshotEncodesEmptyArray(t *testing.T) {
	svc := &stubService{snapshot: domain.FixturesSnapshot{FetchedAt: time.Now()}}
	h := NewHandler(svc, nil, nil, nil, nil, nil)

	rec := httptest.NewRecorder()
	h.Fixtures(rec, httptest.NewRequest(http.MethodGet, "/api/fixtures", nil))

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(rec.Body).Decode(&raw); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if string(raw["data"]) != "[]" {
		t.Fatalf("data = %s, want []", raw["data"])
	}
}

func TestFixturesAggregationFailure(t *testing.T) {
	svc := &stubService{err: errors.New("upstream down")}
	h := NewHandler(svc, nil, nil, nil, nil, nil)

	rec := httptest.NewRecorder()
	h.Fixtures(rec, httptest.NewRequest(http.MethodGet, "/api/fixtures", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if body["success"] != false {
		t.Fatal("expected success=false in error body")
	}
}

func TestFixturesMethodNotAllowed(t *testing.T) {
	h := NewHandler(&stubService{}, nil, nil, nil, nil, nil)

	rec := httptest.NewRecorder()
	h.Fixtures(rec, httptest.NewRequest(http.MethodPost, "/api/fixtures", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestRefreshForcesAggregation(t *testing.T) {
	svc := &stubService{snapshot: sampleSnapshot()}
	h := NewHandler(svc, nil, nil, nil, nil, nil)

	rec := httptest.NewRecorder()
	h.RefreshFixtures(rec, httptest.NewRequest(http.MethodPost, "/api/fixtures/refresh", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if svc.refreshed != 1 {
		t.Fatalf("refreshed = %d, want 1", svc.refreshed)
	}
	resp := decodeFixtures(t, rec)
	if resp.Cached {
		t.Fatal("a forced refresh is never served from cache")
	}
}

func TestRefreshRejectsGet(t *testing.T) {
	h := NewHandler(&stubService{}, nil, nil, nil, nil, nil)

	rec := httptest.NewRecorder()
	h.RefreshFixtures(rec, httptest.NewRequest(http.MethodGet, "/api/fixtures/refresh", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestClearCacheInvalidates(t *testing.T) {
	svc := &stubService{}
	h := NewHandler(svc, nil, nil, nil, nil, nil)

	rec := httptest.NewRecorder()
	h.ClearCache(rec, httptest.NewRequest(http.MethodDelete, "/api/fixtures/cache", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if svc.invalidated != 1 {
		t.Fatalf("invalidated = %d, want 1", svc.invalidated)
	}
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["success"] != true {
		t.Fatal("expected success=true")
	}
}

func TestClearCacheRejectsGet(t *testing.T) {
	h := NewHandler(&stubService{}, nil, nil, nil, nil, nil)

	rec := httptest.NewRecorder()
	h.ClearCache(rec, httptest.NewRequest(http.MethodGet, "/api/fixtures/cache", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestTableDefaultsToFirstDivision(t *testing.T) {
	tables := &stubTables{table: domain.LeagueTable{
		Division: "Division 2",
		Rows:     []domain.TableRow{{Position: 1, Team: "Andover A"}},
	}}
	h := NewHandler(&stubService{}, tables, nil, divisions(), nil, nil)

	rec := httptest.NewRecorder()
	h.Table(rec, httptest.NewRequest(http.MethodGet, "/api/table", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if tables.division.Name != "Division 2" {
		t.Fatalf("fetched division %q, want the first configured one", tables.division.Name)
	}
	var resp TableResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !resp.Success || resp.Data.Division != "Division 2" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestTableSelectsDivisionByName(t *testing.T) {
	tables := &stubTables{}
	h := NewHandler(&stubService{}, tables, nil, divisions(), nil, nil)

	rec := httptest.NewRecorder()
	h.Table(rec, httptest.NewRequest(http.MethodGet, "/api/table?division=Division+4", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if tables.division.UpstreamID != "2483" {
		t.Fatalf("fetched upstream id %q, want 2483", tables.division.UpstreamID)
	}
}

func TestTableUnknownDivision(t *testing.T) {
	h := NewHandler(&stubService{}, &stubTables{}, nil, divisions(), nil, nil)

	rec := httptest.NewRecorder()
	h.Table(rec, httptest.NewRequest(http.MethodGet, "/api/table?division=Division+9", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestTableUpstreamFailure(t *testing.T) {
	tables := &stubTables{err: errors.New("lms down")}
	h := NewHandler(&stubService{}, tables, nil, divisions(), nil, nil)

	rec := httptest.NewRecorder()
	h.Table(rec, httptest.NewRequest(http.MethodGet, "/api/table", nil))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestTableNotConfigured(t *testing.T) {
	h := NewHandler(&stubService{}, nil, nil, nil, nil, nil)

	rec := httptest.NewRecorder()
	h.Table(rec, httptest.NewRequest(http.MethodGet, "/api/table", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

type stubCards struct {
	card domain.MatchCard
	err  error
	url  string
}

func (s *stubCards) FetchMatchCard(ctx context.Context, fixtureURL string) (domain.MatchCard, error) {
	s.url = fixtureURL
	if s.err != nil {
		return domain.MatchCard{}, s.err
	}
	return s.card, nil
}

func completedSnapshot() domain.FixturesSnapshot {
	return domain.FixturesSnapshot{
		Fixtures: []domain.Fixture{
			{
				ID:         "andover-a-20250916",
				HomeTeam:   "Andover A",
				AwayTeam:   "Hamble A",
				Date:       "2025-09-16",
				Status:     domain.StatusCompleted,
				Result:     domain.ResultWin,
				Score:      "3-2",
				FixtureURL: "https://ecflms.org.uk/lms/event/5012",
			},
			{
				ID:       "andover-a-20250923",
				HomeTeam: "Andover A",
				AwayTeam: "Winchester A",
				Date:     "2025-09-23",
				Status:   domain.StatusUpcoming,
			},
		},
	}
}

func TestMatchCardServesBoardResults(t *testing.T) {
	cards := &stubCards{card: domain.MatchCard{
		HomeTeam: "Andover A",
		AwayTeam: "Hamble A",
		Score:    "3-2",
		Boards:   []domain.Board{{Number: 1, HomePlayer: "J Smith", AwayPlayer: "P Jones", Result: "1-0"}},
	}}
	h := NewHandler(&stubService{snapshot: completedSnapshot()}, nil, cards, nil, nil, nil)

	rec := httptest.NewRecorder()
	h.MatchCard(rec, httptest.NewRequest(http.MethodGet, "/api/matchcard?fixture=andover-a-20250916", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if cards.url != "https://ecflms.org.uk/lms/event/5012" {
		t.Fatalf("fetched url %q, want the fixture's card url", cards.url)
	}
	var resp MatchCardResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !resp.Success || len(resp.Data.Boards) != 1 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestMatchCardMissingFixtureParam(t *testing.T) {
	h := NewHandler(&stubService{}, nil, &stubCards{}, nil, nil, nil)

	rec := httptest.NewRecorder()
	h.MatchCard(rec, httptest.NewRequest(http.MethodGet, "/api/matchcard", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestMatchCardUnknownFixture(t *testing.T) {
	h := NewHandler(&stubService{snapshot: completedSnapshot()}, nil, &stubCards{}, nil, nil, nil)

	rec := httptest.NewRecorder()
	h.MatchCard(rec, httptest.NewRequest(http.MethodGet, "/api/matchcard?fixture=andover-z-20250101", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestMatchCardFixtureWithoutURL(t *testing.T) {
	h := NewHandler(&stubService{snapshot: completedSnapshot()}, nil, &stubCards{}, nil, nil, nil)

	rec := httptest.NewRecorder()
	h.MatchCard(rec, httptest.NewRequest(http.MethodGet, "/api/matchcard?fixture=andover-a-20250923", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestMatchCardUpstreamFailure(t *testing.T) {
	cards := &stubCards{err: errors.New("lms down")}
	h := NewHandler(&stubService{snapshot: completedSnapshot()}, nil, cards, nil, nil, nil)

	rec := httptest.NewRecorder()
	h.MatchCard(rec, httptest.NewRequest(http.MethodGet, "/api/matchcard?fixture=andover-a-20250916", nil))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	h := NewHandler(&stubService{}, nil, nil, nil, nil, nil)

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestReadyWithoutWarmer(t *testing.T) {
	h := NewHandler(&stubService{}, nil, nil, nil, nil, nil)

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestReadyReflectsWarmerStatus(t *testing.T) {
	status := warmer.Status{}
	h := NewHandler(&stubService{}, nil, nil, nil, nil, func() warmer.Status { return status })

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 before first warm", rec.Code)
	}

	status = warmer.Status{LastSuccess: time.Now()}
	rec = httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 after a successful warm", rec.Code)
	}

	status = warmer.Status{LastSuccess: time.Now(), ConsecutiveFailures: 3, LastError: "lms down"}
	rec = httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 while failing repeatedly", rec.Code)
	}
}
