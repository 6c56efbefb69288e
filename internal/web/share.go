package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/oglasna/internal/api"
	"github.com/erazemk/oglasna/internal/model"
	"github.com/erazemk/oglasna/internal/render"
	"github.com/erazemk/oglasna/internal/share"
)

// ShareRedirect handles GET /share/{kind}/{ref}/{platform}. It sends the
// browser to the platform's share dialog, or back to the list when the
// record is gone.
func (s *Server) ShareRedirect(w http.ResponseWriter, r *http.Request) {
	kind, err := model.ParseKind(r.PathValue("kind"))
	if err != nil || !kind.Shareable() {
		http.NotFound(w, r)
		return
	}

	platform := r.PathValue("platform")
	pageURL := api.PageURL(s.BaseURL, r, kind)

	opened := false
	redirect := share.OpenerFunc(func(_ context.Context, u string) error {
		http.Redirect(w, r, u, http.StatusSeeOther)
		opened = true
		return nil
	})

	id, index, byIndex := render.ParseRef(r.PathValue("ref"))
	if byIndex {
		err = s.Dispatcher.Share(r.Context(), kind, index, platform, pageURL, redirect)
	} else {
		err = s.Dispatcher.ShareByID(r.Context(), kind, id, platform, pageURL, redirect)
	}

	switch {
	case errors.Is(err, share.ErrUnknownPlatform):
		http.Error(w, "unknown share platform", http.StatusBadRequest)
	case err != nil:
		slog.Error("failed to share record", "collection", kind.Key(), "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	case !opened:
		http.Redirect(w, r, api.PagePath(kind), http.StatusSeeOther)
	}
}
