package board

import (
	"context"
	"strings"

	"github.com/erazemk/oglasna/internal/model"
	"github.com/erazemk/oglasna/internal/render"
	"github.com/erazemk/oglasna/internal/sanitize"
)

// PrayerInput holds the raw prayer form fields.
type PrayerInput struct {
	Name    string
	Msg     string
	Image   string
	Private bool
}

// AddPrayer validates, sanitizes and stores a prayer request.
func (b *Board) AddPrayer(ctx context.Context, in PrayerInput) (*model.Prayer, error) {
	name := strings.TrimSpace(in.Name)
	msg := strings.TrimSpace(in.Msg)
	image := strings.TrimSpace(in.Image)

	if msg == "" {
		return nil, invalid("Please describe your prayer request.")
	}
	if !sanitize.ValidateURL(image) {
		return nil, invalid("Invalid image URL.")
	}

	if name == "" {
		name = model.AnonymousName
	}
	if image == "" {
		image = b.prayerImage
	}

	p := model.Prayer{
		ID:      b.newID(),
		Name:    sanitize.Escape(name),
		Msg:     sanitize.Escape(msg),
		Image:   image,
		Private: in.Private,
		Date:    b.timestamp(),
	}
	if err := appendRecord(ctx, b, model.KindPrayer, p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Prayers returns all prayer requests, private ones included, newest first.
func (b *Board) Prayers(ctx context.Context) []model.Prayer {
	return records(b.prayerEntries(ctx))
}

// PublicPrayers returns the prayer requests that may be shown, newest first.
func (b *Board) PublicPrayers(ctx context.Context) []model.Prayer {
	all := b.Prayers(ctx)
	public := make([]model.Prayer, 0, len(all))
	for _, p := range all {
		if !p.Private {
			public = append(public, p)
		}
	}
	return public
}

func (b *Board) prayerEntries(ctx context.Context) []render.Entry[model.Prayer] {
	return entries(ctx, b, model.KindPrayer, func(x, y model.Prayer) bool {
		return x.Date.After(y.Date.Time)
	})
}
