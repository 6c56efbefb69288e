package board

import (
	"context"
	"strings"

	"github.com/erazemk/oglasna/internal/model"
	"github.com/erazemk/oglasna/internal/render"
	"github.com/erazemk/oglasna/internal/sanitize"
)

// EventInput holds the raw event form fields.
type EventInput struct {
	Title string
	Date  string
	Image string
	Link  string
}

// AddEvent validates, sanitizes and stores an event. The submitted date is
// the event's own date; no creation time is recorded.
func (b *Board) AddEvent(ctx context.Context, in EventInput) (*model.Event, error) {
	e, err := b.newEvent(in)
	if err != nil {
		return nil, err
	}
	if err := appendRecord(ctx, b, model.KindEvent, *e); err != nil {
		return nil, err
	}
	return e, nil
}

func (b *Board) newEvent(in EventInput) (*model.Event, error) {
	title := strings.TrimSpace(in.Title)
	date := strings.TrimSpace(in.Date)
	image := strings.TrimSpace(in.Image)
	link := strings.TrimSpace(in.Link)

	if title == "" || date == "" {
		return nil, invalid("Please fill in the title and date.")
	}
	if !sanitize.ValidateURL(image) {
		return nil, invalid("Invalid image URL.")
	}
	if !sanitize.ValidateURL(link) {
		return nil, invalid("Invalid event link URL.")
	}

	return &model.Event{
		ID:    b.newID(),
		Title: sanitize.Escape(title),
		Date:  date,
		Image: image,
		Link:  link,
	}, nil
}

// Events returns events in chronological order, soonest first. Events whose
// date cannot be parsed come last.
func (b *Board) Events(ctx context.Context) []model.Event {
	return records(b.eventEntries(ctx))
}

func (b *Board) eventEntries(ctx context.Context) []render.Entry[model.Event] {
	return entries(ctx, b, model.KindEvent, func(x, y model.Event) bool {
		xt, xok := x.When(b.loc)
		yt, yok := y.When(b.loc)
		switch {
		case xok && yok:
			return xt.Before(yt)
		default:
			return xok && !yok
		}
	})
}
