package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/oglasna/internal/board"
	"github.com/erazemk/oglasna/internal/model"
)

// RecordsHandler handles the list and create endpoints of every category.
type RecordsHandler struct {
	Board *board.Board
}

type announcementRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Image string `json:"image"`
}

type prayerRequest struct {
	Name    string `json:"name"`
	Msg     string `json:"msg"`
	Image   string `json:"image"`
	Private bool   `json:"private"`
}

type needRequest struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Details string `json:"details"`
	Image   string `json:"image"`
}

type eventRequest struct {
	Title string `json:"title"`
	Date  string `json:"date"`
	Image string `json:"image"`
	Link  string `json:"link"`
}

// ListAnnouncements handles GET /api/announcements.
func (h *RecordsHandler) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Board.Announcements(r.Context()))
}

// CreateAnnouncement handles POST /api/announcements.
func (h *RecordsHandler) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req announcementRequest
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Board.AddAnnouncement(r.Context(), board.AnnouncementInput{
		Title: req.Title,
		Body:  req.Body,
		Image: req.Image,
	})
	if err != nil {
		writeAddError(w, model.KindAnnouncement, err)
		return
	}
	jsonResponse(w, http.StatusCreated, a)
}

// ListPrayers handles GET /api/prayers. Private requests are never listed.
func (h *RecordsHandler) ListPrayers(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Board.PublicPrayers(r.Context()))
}

// CreatePrayer handles POST /api/prayers.
func (h *RecordsHandler) CreatePrayer(w http.ResponseWriter, r *http.Request) {
	var req prayerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Board.AddPrayer(r.Context(), board.PrayerInput{
		Name:    req.Name,
		Msg:     req.Msg,
		Image:   req.Image,
		Private: req.Private,
	})
	if err != nil {
		writeAddError(w, model.KindPrayer, err)
		return
	}
	jsonResponse(w, http.StatusCreated, p)
}

// ListNeeds handles GET /api/needs.
func (h *RecordsHandler) ListNeeds(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Board.Needs(r.Context()))
}

// CreateNeed handles POST /api/needs.
func (h *RecordsHandler) CreateNeed(w http.ResponseWriter, r *http.Request) {
	var req needRequest
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	n, err := h.Board.AddNeed(r.Context(), board.NeedInput{
		Type:    req.Type,
		Name:    req.Name,
		Details: req.Details,
		Image:   req.Image,
	})
	if err != nil {
		writeAddError(w, model.KindNeed, err)
		return
	}
	jsonResponse(w, http.StatusCreated, n)
}

// ListEvents handles GET /api/events.
func (h *RecordsHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Board.Events(r.Context()))
}

// CreateEvent handles POST /api/events.
func (h *RecordsHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.Board.AddEvent(r.Context(), board.EventInput{
		Title: req.Title,
		Date:  req.Date,
		Image: req.Image,
		Link:  req.Link,
	})
	if err != nil {
		writeAddError(w, model.KindEvent, err)
		return
	}
	jsonResponse(w, http.StatusCreated, e)
}

func writeAddError(w http.ResponseWriter, kind model.Kind, err error) {
	var verr *board.ValidationError
	if errors.As(err, &verr) {
		jsonError(w, http.StatusBadRequest, verr.Message)
		return
	}
	slog.Error("adding record", "collection", kind.Key(), "error", err)
	jsonError(w, http.StatusInternalServerError, "failed to save "+kind.Key())
}
