// Package board implements the four record repositories of the bulletin
// board: validation, sanitizing, defaults, persistence and change
// notification.
package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/oglasna/internal/model"
	"github.com/erazemk/oglasna/internal/render"
	"github.com/erazemk/oglasna/internal/store"
)

// Default placeholder images.
const (
	DefaultPrayerImage = "https://images.unsplash.com/photo-1517486430290-6979eb1ebb64?ixlib=rb-4.0.3&auto=format&fit=crop&w=300&q=80"
	DefaultNeedImage   = "https://images.unsplash.com/photo-1515169067868-5387ec356754?ixlib=rb-4.0.3&auto=format&fit=crop&w=300&q=80"
)

// maxWriteAttempts bounds the read-modify-write retries on version conflicts.
const maxWriteAttempts = 5

// Options configures a Board. Zero values select the defaults.
type Options struct {
	PrayerImage string
	NeedImage   string
	Now         func() time.Time
	NewID       func() string
	Location    *time.Location
}

// Board is the bulletin board's record repository.
type Board struct {
	store       store.Store
	prayerImage string
	needImage   string
	now         func() time.Time
	newID       func() string
	loc         *time.Location

	mu        sync.RWMutex
	listeners []func(model.Kind)
}

// New creates a Board persisting through s.
func New(s store.Store, opts Options) *Board {
	b := &Board{
		store:       s,
		prayerImage: opts.PrayerImage,
		needImage:   opts.NeedImage,
		now:         opts.Now,
		newID:       opts.NewID,
		loc:         opts.Location,
	}
	if b.prayerImage == "" {
		b.prayerImage = DefaultPrayerImage
	}
	if b.needImage == "" {
		b.needImage = DefaultNeedImage
	}
	if b.now == nil {
		b.now = time.Now
	}
	if b.newID == nil {
		b.newID = func() string { return uuid.New().String() }
	}
	if b.loc == nil {
		b.loc = time.Local
	}
	return b
}

// OnChange registers fn to be called after a collection has been written.
func (b *Board) OnChange(fn func(model.Kind)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, fn)
}

func (b *Board) notify(kind model.Kind) {
	b.mu.RLock()
	listeners := slices.Clone(b.listeners)
	b.mu.RUnlock()

	for _, fn := range listeners {
		fn(kind)
	}
}

// timestamp returns the creation time stamped on new records.
func (b *Board) timestamp() model.Timestamp {
	return model.At(b.now().UTC())
}

// appendRecord appends rec to kind's collection, retrying the whole
// read-modify-write cycle when another writer got there first. Records
// already stored are kept even when they no longer decode.
func appendRecord[T any](ctx context.Context, b *Board, kind model.Kind, rec T) error {
	for attempt := 1; attempt <= maxWriteAttempts; attempt++ {
		err := store.Append(ctx, b.store, kind.Key(), rec)
		if err == nil {
			b.notify(kind)
			return nil
		}
		if !errors.Is(err, store.ErrConflict) {
			return fmt.Errorf("saving %s: %w", kind, err)
		}
		slog.Warn("collection changed during write, retrying", "collection", kind.Key(), "attempt", attempt)
	}
	return fmt.Errorf("saving %s: %w", kind, store.ErrConflict)
}

// entries loads kind's collection and returns it stably sorted by less,
// keeping each record's persisted index.
func entries[T any](ctx context.Context, b *Board, kind model.Kind, less func(a, b T) bool) []render.Entry[T] {
	items, _ := store.Load[T](ctx, b.store, kind.Key())

	out := make([]render.Entry[T], len(items))
	for i, item := range items {
		out[i] = render.Entry[T]{Index: i, Record: item}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i].Record, out[j].Record)
	})
	return out
}

func records[T any](entries []render.Entry[T]) []T {
	out := make([]T, len(entries))
	for i, e := range entries {
		out[i] = e.Record
	}
	return out
}

// Clear empties kind's collection.
func (b *Board) Clear(ctx context.Context, kind model.Kind) error {
	for attempt := 1; attempt <= maxWriteAttempts; attempt++ {
		err := store.Clear(ctx, b.store, kind.Key())
		if err == nil {
			b.notify(kind)
			return nil
		}
		if !errors.Is(err, store.ErrConflict) {
			return fmt.Errorf("clearing %s: %w", kind, err)
		}
		slog.Warn("collection changed during clear, retrying", "collection", kind.Key(), "attempt", attempt)
	}
	return fmt.Errorf("clearing %s: %w", kind, store.ErrConflict)
}

// Render re-reads kind's collection and redraws it on t.
func (b *Board) Render(ctx context.Context, kind model.Kind, r *render.Renderer, t render.Target) {
	switch kind {
	case model.KindAnnouncement:
		r.Announcements(t, b.announcementEntries(ctx))
	case model.KindPrayer:
		r.Prayers(t, b.prayerEntries(ctx))
	case model.KindNeed:
		r.Needs(t, b.needEntries(ctx))
	case model.KindEvent:
		r.Events(t, b.eventEntries(ctx))
	}
}
