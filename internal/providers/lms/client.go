package lms

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/andover-chess-club/fixtures-service/internal/config"
	"github.com/andover-chess-club/fixtures-service/internal/domain"
	"github.com/andover-chess-club/fixtures-service/internal/logging"
	"github.com/andover-chess-club/fixtures-service/internal/metrics"
	"github.com/andover-chess-club/fixtures-service/internal/providers"
)

// Config controls how the client reaches the league-management site.
type Config struct {
	BaseURL    string
	ClubName   string
	HTTPClient *http.Client
	Timeout    time.Duration
	Logger     *slog.Logger
	Metrics    *metrics.Recorder
}

// Client scrapes the league site's HTML pages and maps them to domain records.
type Client struct {
	baseURL    string
	clubName   string
	httpClient httpDoer
	logger     *slog.Logger
	metrics    *metrics.Recorder
}

// NewClient constructs an LMS client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		clubName:   cfg.ClubName,
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
	}
}

// FetchTeamFixtures retrieves and normalizes one team's fixture page.
// A non-2xx response or transport error fails the whole call; individual
// malformed rows are dropped and counted, never fatal.
func (c *Client) FetchTeamFixtures(ctx context.Context, team config.Team) ([]domain.Fixture, error) {
	url := fmt.Sprintf("%s/team/%s/fixtures", c.baseURL, team.UpstreamID)
	doc, err := c.fetchDocument(ctx, url)
	if err != nil {
		return nil, err
	}

	competition := CompetitionFromBreadcrumb(breadcrumbText(doc))
	rows := extractRows(doc, minFixtureCells)

	fixtures := make([]domain.Fixture, 0, len(rows))
	for _, row := range rows {
		fixture, reason := mapFixtureRow(row, team.Letter, c.clubName, competition, c.baseURL)
		switch reason {
		case "":
			fixtures = append(fixtures, fixture)
		case skipUnattributed:
			// The row parsed but the result can't be attributed to a side.
			// Serve it as upcoming and surface the data-quality problem.
			c.recordSkip(team.Letter, reason, url)
			fixtures = append(fixtures, fixture)
		default:
			c.recordSkip(team.Letter, reason, url)
		}
	}

	return fixtures, nil
}

// FetchLeagueTable retrieves a division's standings page.
func (c *Client) FetchLeagueTable(ctx context.Context, division config.Division) (domain.LeagueTable, error) {
	url := fmt.Sprintf("%s/table/%s", c.baseURL, division.UpstreamID)
	doc, err := c.fetchDocument(ctx, url)
	if err != nil {
		return domain.LeagueTable{}, err
	}

	rows := extractRows(doc, minTableCells)
	table := domain.LeagueTable{
		Division: division.Name,
		Rows:     make([]domain.TableRow, 0, len(rows)),
	}
	for _, row := range rows {
		entry, reason := mapTableRow(row)
		if reason != "" {
			c.recordSkip(division.Name, reason, url)
			continue
		}
		table.Rows = append(table.Rows, entry)
	}

	return table, nil
}

// FetchMatchCard retrieves the board-by-board detail for one match.
func (c *Client) FetchMatchCard(ctx context.Context, fixtureURL string) (domain.MatchCard, error) {
	doc, err := c.fetchDocument(ctx, fixtureURL)
	if err != nil {
		return domain.MatchCard{}, err
	}

	card := domain.MatchCard{}
	if home, away, ok := matchTitle(doc); ok {
		card.HomeTeam = home
		card.AwayTeam = away
	}
	if score := strings.TrimSpace(doc.Find(".match-score").First().Text()); HasResult(score) {
		card.Score = NormalizeScore(score)
	}

	rows := extractRows(doc, minBoardCells)
	card.Boards = make([]domain.Board, 0, len(rows))
	for _, row := range rows {
		board, reason := mapBoardRow(row)
		if reason != "" {
			c.recordSkip("match_card", reason, fixtureURL)
			continue
		}
		card.Boards = append(card.Boards, board)
	}

	return card, nil
}

func (c *Client) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &providers.UpstreamStatusError{URL: url, StatusCode: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

func (c *Client) recordSkip(scope, reason, url string) {
	c.metrics.RecordRowSkipped(scope, reason)
	logging.Warn(c.logger, "row skipped during scrape",
		logging.FieldTeam, scope,
		logging.FieldReason, reason,
		logging.FieldURL, url,
	)
}

func breadcrumbText(doc *goquery.Document) string {
	for _, selector := range []string{".breadcrumb", "#breadcrumbs", "nav[aria-label='breadcrumb']"} {
		if text := strings.TrimSpace(doc.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

// matchTitle splits a detail-page heading like "Andover A v Winchester A".
func matchTitle(doc *goquery.Document) (home, away string, ok bool) {
	title := strings.TrimSpace(doc.Find("h1").First().Text())
	for _, sep := range []string{" v ", " vs ", " - "} {
		if left, right, found := strings.Cut(title, sep); found {
			return strings.TrimSpace(left), strings.TrimSpace(right), true
		}
	}
	return "", "", false
}
