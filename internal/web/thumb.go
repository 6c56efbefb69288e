package web

import (
	"log/slog"
	"net/http"

	"github.com/erazemk/oglasna/internal/sanitize"
)

// Thumbnail handles GET /thumb?src=. When the thumbnail cannot be made the
// browser is sent to the original image.
func (s *Server) Thumbnail(w http.ResponseWriter, r *http.Request) {
	if s.Thumbs == nil {
		http.NotFound(w, r)
		return
	}

	src := r.URL.Query().Get("src")
	if src == "" || !sanitize.ValidateURL(src) {
		http.Error(w, "invalid image URL", http.StatusBadRequest)
		return
	}

	data, err := s.Thumbs.Thumbnail(r.Context(), src)
	if err != nil {
		slog.Warn("failed to make thumbnail", "src", src, "error", err)
		http.Redirect(w, r, src, http.StatusFound)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Disposition", "inline")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write thumbnail response", "error", err)
	}
}
