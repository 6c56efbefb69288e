package web

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/erazemk/oglasna/internal/board"
	"github.com/erazemk/oglasna/internal/imaging"
	"github.com/erazemk/oglasna/internal/live"
	"github.com/erazemk/oglasna/internal/render"
	"github.com/erazemk/oglasna/internal/share"
	webembed "github.com/erazemk/oglasna/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"platformName": func(platform string) string {
			switch platform {
			case share.Facebook:
				return "Facebook"
			case share.Instagram:
				return "Instagram"
			default:
				return platform
			}
		},
		"upper": strings.ToUpper,
	}
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.TemplatesFS()

	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}
	itemsBytes, err := fs.ReadFile(tfs, "items.html")
	if err != nil {
		return nil, fmt.Errorf("reading items template: %w", err)
	}

	pages := []string{
		"announcements.html",
		"prayers.html",
		"needs.html",
		"events.html",
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap())
		for _, src := range []struct {
			name string
			text []byte
		}{
			{"layout.html", layoutBytes},
			{"items.html", itemsBytes},
			{page, pageBytes},
		} {
			if tmpl, err = tmpl.Parse(string(src.text)); err != nil {
				return nil, fmt.Errorf("parsing %s for %s: %w", src.name, page, err)
			}
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a template with the given data and status code.
func (ts *Templates) Render(w http.ResponseWriter, name string, status int, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title      string
	Active     string
	Collection string
	Live       bool
	Error      string
	Success    string
}

// Server holds all dependencies for page handlers.
type Server struct {
	Board      *board.Board
	Dispatcher *share.Dispatcher
	Templates  *Templates
	Renderer   *render.Renderer
	Hub        *live.Hub
	Thumbs     *imaging.Fetcher
	BaseURL    string
	// Seeds are the events written when the events page is opened on an
	// empty board. Nil selects the built-in samples; empty disables seeding.
	Seeds []board.EventInput
}

// shareHref links a share control to the share redirect.
func shareHref(kind, ref, platform string) string {
	return "/share/" + url.PathEscape(kind) + "/" + url.PathEscape(ref) + "/" + url.PathEscape(platform)
}

// thumbSrc routes an image through the thumbnail proxy.
func thumbSrc(src string) string {
	return "/thumb?src=" + url.QueryEscape(src)
}

