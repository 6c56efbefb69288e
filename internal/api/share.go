package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/erazemk/oglasna/internal/model"
	"github.com/erazemk/oglasna/internal/render"
	"github.com/erazemk/oglasna/internal/share"
)

// ShareHandler resolves share links for prayers and needs.
type ShareHandler struct {
	Dispatcher *share.Dispatcher
	BaseURL    string
}

// Prayer handles GET /api/prayers/{ref}/share/{platform}.
func (h *ShareHandler) Prayer(w http.ResponseWriter, r *http.Request) {
	h.link(w, r, model.KindPrayer)
}

// Need handles GET /api/needs/{ref}/share/{platform}.
func (h *ShareHandler) Need(w http.ResponseWriter, r *http.Request) {
	h.link(w, r, model.KindNeed)
}

func (h *ShareHandler) link(w http.ResponseWriter, r *http.Request, kind model.Kind) {
	platform := r.PathValue("platform")
	pageURL := PageURL(h.BaseURL, r, kind)

	link, err := ResolveShare(r.Context(), h.Dispatcher, kind, r.PathValue("ref"), platform, pageURL)
	if errors.Is(err, share.ErrUnknownPlatform) {
		jsonError(w, http.StatusBadRequest, "unknown share platform")
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to build share link")
		return
	}
	if link == "" {
		jsonError(w, http.StatusNotFound, kind.Key()+" record not found")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"url": link})
}

// ResolveShare returns the share URL for the record named by ref, an id or
// "i<index>". It returns "" when the record is gone.
func ResolveShare(ctx context.Context, d *share.Dispatcher, kind model.Kind, ref, platform, pageURL string) (string, error) {
	id, index, byIndex := render.ParseRef(ref)
	if !byIndex {
		link, _, err := d.Link(ctx, kind, id, platform, pageURL)
		return link, err
	}

	var link string
	capture := share.OpenerFunc(func(_ context.Context, u string) error {
		link = u
		return nil
	})
	if err := d.Share(ctx, kind, index, platform, pageURL, capture); err != nil {
		return "", err
	}
	return link, nil
}

// PagePath returns the path of the page listing kind.
func PagePath(kind model.Kind) string {
	if kind == model.KindAnnouncement {
		return "/"
	}
	return "/" + kind.Key()
}

// PageURL returns the absolute URL of the page listing kind, rooted at
// baseURL or, when that is empty, at the request's host.
func PageURL(baseURL string, r *http.Request, kind model.Kind) string {
	root := strings.TrimRight(baseURL, "/")
	if root == "" {
		scheme := "http"
		if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
			scheme = "https"
		}
		root = scheme + "://" + r.Host
	}
	return root + PagePath(kind)
}
