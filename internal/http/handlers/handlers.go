// Package handlers wires the HTTP routes to the fixtures service.
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/andover-chess-club/fixtures-service/internal/config"
	"github.com/andover-chess-club/fixtures-service/internal/domain"
	"github.com/andover-chess-club/fixtures-service/internal/logging"
	"github.com/andover-chess-club/fixtures-service/internal/providers"
	"github.com/andover-chess-club/fixtures-service/internal/warmer"
)

// FixtureService is the slice of the application service the handlers need.
type FixtureService interface {
	Fixtures(ctx context.Context) (domain.FixturesSnapshot, bool, error)
	Refresh(ctx context.Context) (domain.FixturesSnapshot, error)
	Invalidate()
}

// FixturesResponse is the envelope returned by the fixtures endpoints.
type FixturesResponse struct {
	Success   bool             `json:"success"`
	Data      []domain.Fixture `json:"data"`
	Count     int              `json:"count"`
	Timestamp string           `json:"timestamp"`
	Cached    bool             `json:"cached"`
}

// TableResponse is the envelope returned by the league table endpoint.
type TableResponse struct {
	Success   bool               `json:"success"`
	Data      domain.LeagueTable `json:"data"`
	Timestamp string             `json:"timestamp"`
}

// MatchCardResponse is the envelope returned by the match card endpoint.
type MatchCardResponse struct {
	Success   bool             `json:"success"`
	Data      domain.MatchCard `json:"data"`
	Timestamp string           `json:"timestamp"`
}

// Handler wires HTTP routes to the fixtures service and upstream providers.
type Handler struct {
	svc       FixtureService
	tables    providers.TableProvider
	cards     providers.MatchCardProvider
	divisions []config.Division
	logger    *slog.Logger
	now       func() time.Time
	statusFn  func() warmer.Status
}

// NewHandler constructs a Handler. statusFn may be nil when no warmer runs;
// readiness then only requires the process to be serving.
func NewHandler(svc FixtureService, tables providers.TableProvider, cards providers.MatchCardProvider, divisions []config.Division, logger *slog.Logger, statusFn func() warmer.Status) *Handler {
	return &Handler{
		svc:       svc,
		tables:    tables,
		cards:     cards,
		divisions: divisions,
		logger:    logger,
		now:       time.Now,
		statusFn:  statusFn,
	}
}

// Health reports process liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic. With a warmer running it reflects the
// warmer's recent health; without one the service is ready as soon as it serves.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	if h.statusFn().IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := h.statusFn().LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// Fixtures returns the merged fixture list, served from cache when fresh.
func (h *Handler) Fixtures(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	snap, cached, err := h.svc.Fixtures(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "failed to load fixtures", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	logging.Info(logger, "served fixtures",
		logging.FieldCount, len(snap.Fixtures),
		"cached", cached,
	)
	writeJSON(w, http.StatusOK, h.fixturesResponse(snap, cached), h.logger)
}

// RefreshFixtures forces a re-aggregation regardless of cache freshness.
func (h *Handler) RefreshFixtures(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	snap, err := h.svc.Refresh(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "failed to refresh fixtures", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	logging.Info(logger, "forced fixtures refresh", logging.FieldCount, len(snap.Fixtures))
	writeJSON(w, http.StatusOK, h.fixturesResponse(snap, false), h.logger)
}

// ClearCache invalidates the cache so the next read scrapes fresh data.
func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	h.svc.Invalidate()
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "cache cleared",
	}, h.logger)
}

// Table returns the league standings for one configured division. With no
// ?division= query the first configured division is served.
func (h *Handler) Table(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if h.tables == nil || len(h.divisions) == 0 {
		writeError(w, r, http.StatusNotFound, "league tables not configured", h.logger)
		return
	}

	division, ok := h.resolveDivision(r.URL.Query().Get("division"))
	if !ok {
		writeError(w, r, http.StatusBadRequest, "unknown division", h.logger)
		return
	}

	table, err := h.tables.FetchLeagueTable(r.Context(), division)
	if err != nil {
		logger := loggerFromContext(r, h.logger)
		logging.Error(logger, "league table fetch failed", err, "division", division.Name)
		writeError(w, r, http.StatusBadGateway, "league table unavailable", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, TableResponse{
		Success:   true,
		Data:      table,
		Timestamp: h.now().UTC().Format(time.RFC3339),
	}, h.logger)
}

// MatchCard returns the board-by-board result for one completed fixture,
// looked up by the fixture id from the current snapshot.
func (h *Handler) MatchCard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if h.cards == nil {
		writeError(w, r, http.StatusNotFound, "match cards not configured", h.logger)
		return
	}

	id := r.URL.Query().Get("fixture")
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "missing fixture id", h.logger)
		return
	}

	snap, _, err := h.svc.Fixtures(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "failed to load fixtures", h.logger)
		return
	}

	fixture, ok := findFixture(snap.Fixtures, id)
	if !ok {
		writeError(w, r, http.StatusNotFound, "fixture not found", h.logger)
		return
	}
	if fixture.FixtureURL == "" {
		writeError(w, r, http.StatusNotFound, "no match card for fixture", h.logger)
		return
	}

	card, err := h.cards.FetchMatchCard(r.Context(), fixture.FixtureURL)
	if err != nil {
		logger := loggerFromContext(r, h.logger)
		logging.Error(logger, "match card fetch failed", err, logging.FieldURL, fixture.FixtureURL)
		writeError(w, r, http.StatusBadGateway, "match card unavailable", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, MatchCardResponse{
		Success:   true,
		Data:      card,
		Timestamp: h.now().UTC().Format(time.RFC3339),
	}, h.logger)
}

func findFixture(fixtures []domain.Fixture, id string) (domain.Fixture, bool) {
	for _, f := range fixtures {
		if f.ID == id {
			return f, true
		}
	}
	return domain.Fixture{}, false
}

func (h *Handler) resolveDivision(name string) (config.Division, bool) {
	if name == "" {
		return h.divisions[0], true
	}
	for _, d := range h.divisions {
		if d.Name == name {
			return d, true
		}
	}
	return config.Division{}, false
}

func (h *Handler) fixturesResponse(snap domain.FixturesSnapshot, cached bool) FixturesResponse {
	fixtures := snap.Fixtures
	if fixtures == nil {
		fixtures = []domain.Fixture{}
	}
	return FixturesResponse{
		Success:   true,
		Data:      fixtures,
		Count:     len(fixtures),
		Timestamp: snap.FetchedAt.UTC().Format(time.RFC3339),
		Cached:    cached,
	}
}
