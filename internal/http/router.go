// Package http assembles the public route table.
package http

import (
	nethttp "net/http"

	"github.com/andover-chess-club/fixtures-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(handler *handlers.Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/api/fixtures", handler.Fixtures)
	mux.HandleFunc("/api/fixtures/refresh", handler.RefreshFixtures)
	mux.HandleFunc("/api/fixtures/cache", handler.ClearCache)
	mux.HandleFunc("/api/table", handler.Table)
	mux.HandleFunc("/api/matchcard", handler.MatchCard)
	return mux
}
