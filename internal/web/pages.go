package web

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/erazemk/oglasna/internal/api"
	"github.com/erazemk/oglasna/internal/board"
	"github.com/erazemk/oglasna/internal/model"
	"github.com/erazemk/oglasna/internal/render"
)

// boardPage is the data of every category page.
type boardPage struct {
	PageData
	Page *render.Page
	Form url.Values
}

type pageInfo struct {
	kind     model.Kind
	template string
	title    string
	success  string
}

var (
	announcementsPage = pageInfo{model.KindAnnouncement, "announcements.html", "Announcements", "Announcement posted successfully!"}
	prayersPage       = pageInfo{model.KindPrayer, "prayers.html", "Prayer Requests", "Prayer request submitted successfully!"}
	needsPage         = pageInfo{model.KindNeed, "needs.html", "Needs & Offers", "Your need or offer has been posted!"}
	eventsPage        = pageInfo{model.KindEvent, "events.html", "Events", "Event added successfully!"}
)

// AnnouncementsPage handles GET /.
func (s *Server) AnnouncementsPage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, announcementsPage, http.StatusOK, nil, "")
}

// AnnouncementSubmit handles POST /announcements.
func (s *Server) AnnouncementSubmit(w http.ResponseWriter, r *http.Request) {
	_, err := s.Board.AddAnnouncement(r.Context(), board.AnnouncementInput{
		Title: r.FormValue("title"),
		Body:  r.FormValue("body"),
		Image: r.FormValue("image"),
	})
	s.afterSubmit(w, r, announcementsPage, err)
}

// PrayersPage handles GET /prayers.
func (s *Server) PrayersPage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, prayersPage, http.StatusOK, nil, "")
}

// PrayerSubmit handles POST /prayers.
func (s *Server) PrayerSubmit(w http.ResponseWriter, r *http.Request) {
	_, err := s.Board.AddPrayer(r.Context(), board.PrayerInput{
		Name:    r.FormValue("name"),
		Msg:     r.FormValue("msg"),
		Image:   r.FormValue("image"),
		Private: r.FormValue("private") != "",
	})
	s.afterSubmit(w, r, prayersPage, err)
}

// NeedsPage handles GET /needs.
func (s *Server) NeedsPage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, needsPage, http.StatusOK, nil, "")
}

// NeedSubmit handles POST /needs.
func (s *Server) NeedSubmit(w http.ResponseWriter, r *http.Request) {
	_, err := s.Board.AddNeed(r.Context(), board.NeedInput{
		Type:    r.FormValue("type"),
		Name:    r.FormValue("name"),
		Details: r.FormValue("details"),
		Image:   r.FormValue("image"),
	})
	s.afterSubmit(w, r, needsPage, err)
}

// EventsPage handles GET /events. An empty events list is seeded first.
func (s *Server) EventsPage(w http.ResponseWriter, r *http.Request) {
	seeds := s.Seeds
	if seeds == nil {
		seeds = board.SampleEvents(time.Now())
	}
	if _, err := s.Board.SeedEvents(r.Context(), seeds); err != nil {
		slog.Warn("failed to seed events", "error", err)
	}

	s.renderPage(w, r, eventsPage, http.StatusOK, nil, "")
}

// EventSubmit handles POST /events.
func (s *Server) EventSubmit(w http.ResponseWriter, r *http.Request) {
	_, err := s.Board.AddEvent(r.Context(), board.EventInput{
		Title: r.FormValue("title"),
		Date:  r.FormValue("date"),
		Image: r.FormValue("image"),
		Link:  r.FormValue("link"),
	})
	s.afterSubmit(w, r, eventsPage, err)
}

// afterSubmit redirects to the refreshed page on success and re-renders the
// form with the submitted values otherwise.
func (s *Server) afterSubmit(w http.ResponseWriter, r *http.Request, p pageInfo, err error) {
	if err == nil {
		slog.Info("record added", "collection", p.kind.Key())
		http.Redirect(w, r, api.PagePath(p.kind)+"?ok=1", http.StatusSeeOther)
		return
	}

	var verr *board.ValidationError
	if errors.As(err, &verr) {
		s.renderPage(w, r, p, http.StatusBadRequest, r.PostForm, verr.Message)
		return
	}

	slog.Error("failed to add record", "collection", p.kind.Key(), "error", err)
	s.renderPage(w, r, p, http.StatusInternalServerError, r.PostForm, "Could not save your post. Please try again.")
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, p pageInfo, status int, form url.Values, errMsg string) {
	page := render.NewPage()
	s.Board.Render(r.Context(), p.kind, s.Renderer, page)

	data := &boardPage{
		PageData: PageData{
			Title:      p.title,
			Active:     p.kind.Key(),
			Collection: p.kind.Key(),
			Live:       s.Hub != nil,
			Error:      errMsg,
		},
		Page: page,
		Form: form,
	}
	if errMsg == "" && r.URL.Query().Get("ok") == "1" {
		data.Success = p.success
	}

	s.Templates.Render(w, p.template, status, data)
}
