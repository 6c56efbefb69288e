// Package web serves the board's HTML pages.
package web

import (
	"net/http"
	"time"

	"github.com/erazemk/oglasna/internal/board"
	"github.com/erazemk/oglasna/internal/imaging"
	"github.com/erazemk/oglasna/internal/live"
	"github.com/erazemk/oglasna/internal/model"
	"github.com/erazemk/oglasna/internal/render"
	"github.com/erazemk/oglasna/internal/share"
	webembed "github.com/erazemk/oglasna/web"
)

// Options configures the page router. Hub and Thumbs are optional.
type Options struct {
	BaseURL   string
	Platforms []string
	Location  *time.Location
	Hub       *live.Hub
	Thumbs    *imaging.Fetcher
	Seeds     []board.EventInput
}

// NewRouter creates the web page router with all page routes registered.
func NewRouter(b *board.Board, d *share.Dispatcher, opts Options) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	platforms := opts.Platforms
	if platforms == nil {
		platforms = share.Platforms
	}

	renderer := &render.Renderer{
		Platforms: platforms,
		ShareHref: func(kind model.Kind, ref, platform string) string {
			return shareHref(kind.Key(), ref, platform)
		},
		Location: opts.Location,
	}
	if opts.Thumbs != nil {
		renderer.ImageSrc = thumbSrc
	}

	s := &Server{
		Board:      b,
		Dispatcher: d,
		Templates:  templates,
		Renderer:   renderer,
		Hub:        opts.Hub,
		Thumbs:     opts.Thumbs,
		BaseURL:    opts.BaseURL,
		Seeds:      opts.Seeds,
	}

	mux := http.NewServeMux()

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	mux.HandleFunc("GET /{$}", s.AnnouncementsPage)
	mux.HandleFunc("POST /announcements", s.AnnouncementSubmit)

	mux.HandleFunc("GET /prayers", s.PrayersPage)
	mux.HandleFunc("POST /prayers", s.PrayerSubmit)

	mux.HandleFunc("GET /needs", s.NeedsPage)
	mux.HandleFunc("POST /needs", s.NeedSubmit)

	mux.HandleFunc("GET /events", s.EventsPage)
	mux.HandleFunc("POST /events", s.EventSubmit)

	mux.HandleFunc("GET /share/{kind}/{ref}/{platform}", s.ShareRedirect)
	mux.HandleFunc("GET /thumb", s.Thumbnail)

	if s.Hub != nil {
		mux.HandleFunc("GET /ws", s.Hub.ServeWS)
	}

	return mux, nil
}
