package board

import (
	"context"
	"strings"

	"github.com/erazemk/oglasna/internal/model"
	"github.com/erazemk/oglasna/internal/render"
	"github.com/erazemk/oglasna/internal/sanitize"
)

// NeedInput holds the raw need/offer form fields.
type NeedInput struct {
	Type    string
	Name    string
	Details string
	Image   string
}

// AddNeed validates, sanitizes and stores a need or offer.
func (b *Board) AddNeed(ctx context.Context, in NeedInput) (*model.Need, error) {
	needType := strings.ToLower(strings.TrimSpace(in.Type))
	name := strings.TrimSpace(in.Name)
	details := strings.TrimSpace(in.Details)
	image := strings.TrimSpace(in.Image)

	if !model.ValidNeedType(needType) || details == "" {
		return nil, invalid("Please select a type and describe your need or offer.")
	}
	if !sanitize.ValidateURL(image) {
		return nil, invalid("Invalid image URL.")
	}

	if name == "" {
		name = model.AnonymousName
	}
	if image == "" {
		image = b.needImage
	}

	n := model.Need{
		ID:      b.newID(),
		Type:    needType,
		Name:    sanitize.Escape(name),
		Details: sanitize.Escape(details),
		Image:   image,
		Date:    b.timestamp(),
	}
	if err := appendRecord(ctx, b, model.KindNeed, n); err != nil {
		return nil, err
	}
	return &n, nil
}

// Needs returns needs and offers, newest first.
func (b *Board) Needs(ctx context.Context) []model.Need {
	return records(b.needEntries(ctx))
}

func (b *Board) needEntries(ctx context.Context) []render.Entry[model.Need] {
	return entries(ctx, b, model.KindNeed, func(x, y model.Need) bool {
		return x.Date.After(y.Date.Time)
	})
}
