package board

import (
	"context"
	"strings"

	"github.com/erazemk/oglasna/internal/model"
	"github.com/erazemk/oglasna/internal/store"
)

// SummaryAt returns the share summary of the record at index in kind's
// persisted collection. ok is false for a stale index, a private prayer or
// a kind that cannot be shared.
func (b *Board) SummaryAt(ctx context.Context, kind model.Kind, index int) (summary string, ok bool) {
	summaries := b.summaries(ctx, kind)
	if index < 0 || index >= len(summaries) || summaries[index].private {
		return "", false
	}
	return summaries[index].text, true
}

// SummaryByID returns the share summary of the record with the given id.
func (b *Board) SummaryByID(ctx context.Context, kind model.Kind, id string) (summary string, ok bool) {
	if id == "" {
		return "", false
	}
	for _, s := range b.summaries(ctx, kind) {
		if s.id == id && !s.private {
			return s.text, true
		}
	}
	return "", false
}

type summary struct {
	id      string
	text    string
	private bool
}

// summaries returns the share text of every record in persisted order.
func (b *Board) summaries(ctx context.Context, kind model.Kind) []summary {
	switch kind {
	case model.KindPrayer:
		prayers, _ := store.Load[model.Prayer](ctx, b.store, kind.Key())
		out := make([]summary, len(prayers))
		for i, p := range prayers {
			out[i] = summary{id: p.ID, text: p.Name + ": " + p.Msg, private: p.Private}
		}
		return out
	case model.KindNeed:
		needs, _ := store.Load[model.Need](ctx, b.store, kind.Key())
		out := make([]summary, len(needs))
		for i, n := range needs {
			out[i] = summary{id: n.ID, text: strings.ToUpper(n.Type) + " - " + n.Name + ": " + n.Details}
		}
		return out
	default:
		return nil
	}
}
