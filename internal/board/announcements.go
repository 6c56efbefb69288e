package board

import (
	"context"
	"strings"

	"github.com/erazemk/oglasna/internal/model"
	"github.com/erazemk/oglasna/internal/render"
	"github.com/erazemk/oglasna/internal/sanitize"
)

// AnnouncementInput holds the raw announcement form fields.
type AnnouncementInput struct {
	Title string
	Body  string
	Image string
}

// AddAnnouncement validates, sanitizes and stores an announcement.
func (b *Board) AddAnnouncement(ctx context.Context, in AnnouncementInput) (*model.Announcement, error) {
	title := strings.TrimSpace(in.Title)
	body := strings.TrimSpace(in.Body)
	image := strings.TrimSpace(in.Image)

	if title == "" || body == "" {
		return nil, invalid("Please fill in the title and body.")
	}
	if !sanitize.ValidateURL(image) {
		return nil, invalid("Invalid image URL. It must start with http:// or https://.")
	}

	a := model.Announcement{
		ID:    b.newID(),
		Title: sanitize.Escape(title),
		Body:  sanitize.Escape(body),
		Image: image,
		Date:  b.timestamp(),
	}
	if err := appendRecord(ctx, b, model.KindAnnouncement, a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Announcements returns announcements, newest first.
func (b *Board) Announcements(ctx context.Context) []model.Announcement {
	return records(b.announcementEntries(ctx))
}

func (b *Board) announcementEntries(ctx context.Context) []render.Entry[model.Announcement] {
	return entries(ctx, b, model.KindAnnouncement, func(x, y model.Announcement) bool {
		return x.Date.After(y.Date.Time)
	})
}
