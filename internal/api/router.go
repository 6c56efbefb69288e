// Package api serves the board's JSON API.
package api

import (
	"net/http"

	"github.com/erazemk/oglasna/internal/board"
	"github.com/erazemk/oglasna/internal/share"
)

// NewRouter creates the API router with all endpoints registered. baseURL
// is the site root embedded in share links; the request host is used when
// it is empty.
func NewRouter(b *board.Board, d *share.Dispatcher, baseURL string) http.Handler {
	mux := http.NewServeMux()

	records := &RecordsHandler{Board: b}
	shares := &ShareHandler{Dispatcher: d, BaseURL: baseURL}

	mux.HandleFunc("GET /api/health", Health)

	mux.HandleFunc("GET /api/announcements", records.ListAnnouncements)
	mux.HandleFunc("POST /api/announcements", records.CreateAnnouncement)

	mux.HandleFunc("GET /api/prayers", records.ListPrayers)
	mux.HandleFunc("POST /api/prayers", records.CreatePrayer)
	mux.HandleFunc("GET /api/prayers/{ref}/share/{platform}", shares.Prayer)

	mux.HandleFunc("GET /api/needs", records.ListNeeds)
	mux.HandleFunc("POST /api/needs", records.CreateNeed)
	mux.HandleFunc("GET /api/needs/{ref}/share/{platform}", shares.Need)

	mux.HandleFunc("GET /api/events", records.ListEvents)
	mux.HandleFunc("POST /api/events", records.CreateEvent)

	return mux
}

// Health handles GET /api/health.
func Health(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
