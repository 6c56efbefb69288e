package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/erazemk/oglasna/internal/model"
	"github.com/erazemk/oglasna/internal/store"
)

// SampleEvents returns the events seeded on a fresh board, dated relative
// to now.
func SampleEvents(now time.Time) []EventInput {
	day := func(offset int) string {
		return now.AddDate(0, 0, offset).Format("2006-01-02")
	}
	return []EventInput{
		{Title: "Community Potluck", Date: day(7) + "T18:00"},
		{Title: "Neighborhood Clean-up", Date: day(14) + "T09:00"},
		{Title: "Evening Prayer Gathering", Date: day(21) + "T19:30"},
	}
}

// SeedEvents stores seeds as the events collection if it is still empty.
// A collection holding only unreadable records is not empty.
// Invalid seeds are skipped. It returns the number of events stored.
func (b *Board) SeedEvents(ctx context.Context, seeds []EventInput) (int, error) {
	var events []model.Event
	for i, in := range seeds {
		e, err := b.newEvent(in)
		if err != nil {
			slog.Warn("skipping invalid seed event", "index", i, "error", err)
			continue
		}
		events = append(events, *e)
	}
	if len(events) == 0 {
		return 0, nil
	}

	for attempt := 1; attempt <= maxWriteAttempts; attempt++ {
		existing, version := store.LoadRaw(ctx, b.store, model.KindEvent.Key())
		if len(existing) > 0 {
			return 0, nil
		}

		err := store.Save(ctx, b.store, model.KindEvent.Key(), events, version)
		if err == nil {
			slog.Info("seeded sample events", "count", len(events))
			b.notify(model.KindEvent)
			return len(events), nil
		}
		if !errors.Is(err, store.ErrConflict) {
			return 0, fmt.Errorf("seeding events: %w", err)
		}
	}
	return 0, fmt.Errorf("seeding events: %w", store.ErrConflict)
}
