// Package render turns sorted board records into display items on a
// slot-addressed render target.
package render

import (
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/erazemk/oglasna/internal/model"
)

// Display slots.
const (
	SlotAnnouncements  = "ann-list"
	SlotPrayers        = "prayer-list"
	SlotPrayerFeatured = "prayer-featured-list"
	SlotNeeds          = "needs-list"
	SlotNeedsFeatured  = "needs-featured-list"
	SlotEvents         = "events-list"
)

// Target receives rendered items.
type Target interface {
	Clear(slot string)
	Append(slot string, item Item)
}

// Item is one rendered row. Heading and Body hold text that was escaped
// when it was stored, so they are emitted as-is.
type Item struct {
	ID        string
	Index     int
	Heading   template.HTML
	Timestamp string
	Body      template.HTML
	Image     string
	ImageAlt  string
	Link      string
	Shares    []ShareControl
}

// ShareControl is a share button for one platform.
type ShareControl struct {
	Platform string
	Href     string
}

// Entry pairs a record with its position in the persisted collection.
type Entry[T any] struct {
	Index  int
	Record T
}

// Renderer rebuilds display slots from sorted entries.
type Renderer struct {
	// Platforms lists the share platforms offered on prayers and needs.
	Platforms []string
	// ShareHref builds the href of a share control. ref is the record's id,
	// or "i<index>" for records without one.
	ShareHref func(kind model.Kind, ref, platform string) string
	// ImageSrc rewrites image URLs, e.g. through a thumbnail proxy.
	ImageSrc func(src string) string
	// Location is the zone timestamps are shown in.
	Location *time.Location
}

// Ref returns the share reference for a record.
func Ref(id string, index int) string {
	if id != "" {
		return id
	}
	return "i" + strconv.Itoa(index)
}

// Ref returns the item's record reference, see Ref.
func (it Item) Ref() string {
	return Ref(it.ID, it.Index)
}

// ParseRef is the inverse of Ref. It reports the index for "i<n>" refs and
// the id otherwise.
func ParseRef(ref string) (id string, index int, byIndex bool) {
	if n, ok := strings.CutPrefix(ref, "i"); ok {
		if i, err := strconv.Atoi(n); err == nil && i >= 0 {
			return "", i, true
		}
	}
	return ref, 0, false
}

// Announcements renders announcements into SlotAnnouncements.
func (r *Renderer) Announcements(t Target, entries []Entry[model.Announcement]) {
	t.Clear(SlotAnnouncements)
	for _, e := range entries {
		a := e.Record
		t.Append(SlotAnnouncements, Item{
			ID:        a.ID,
			Index:     e.Index,
			Heading:   template.HTML(a.Title),
			Timestamp: r.formatTime(a.Date.Time),
			Body:      template.HTML(a.Body),
			Image:     r.imageSrc(a.Image),
			ImageAlt:  "Announcement image",
		})
	}
}

// Prayers renders public prayers. The first one goes to SlotPrayerFeatured,
// the rest to SlotPrayers.
func (r *Renderer) Prayers(t Target, entries []Entry[model.Prayer]) {
	t.Clear(SlotPrayers)
	t.Clear(SlotPrayerFeatured)

	featured := false
	for _, e := range entries {
		p := e.Record
		if p.Private {
			continue
		}
		item := Item{
			ID:        p.ID,
			Index:     e.Index,
			Heading:   template.HTML(p.Name),
			Timestamp: r.formatTime(p.Date.Time),
			Body:      template.HTML(p.Msg),
			Image:     r.imageSrc(p.Image),
			ImageAlt:  "Prayer request image",
			Shares:    r.shares(model.KindPrayer, Ref(p.ID, e.Index)),
		}
		if !featured {
			t.Append(SlotPrayerFeatured, item)
			featured = true
			continue
		}
		t.Append(SlotPrayers, item)
	}
}

// Needs renders needs and offers. The first one goes to SlotNeedsFeatured,
// the rest to SlotNeeds.
func (r *Renderer) Needs(t Target, entries []Entry[model.Need]) {
	t.Clear(SlotNeeds)
	t.Clear(SlotNeedsFeatured)

	for i, e := range entries {
		n := e.Record
		item := Item{
			ID:        n.ID,
			Index:     e.Index,
			Heading:   template.HTML(strings.ToUpper(n.Type) + " - " + n.Name),
			Timestamp: r.formatTime(n.Date.Time),
			Body:      template.HTML(n.Details),
			Image:     r.imageSrc(n.Image),
			ImageAlt:  n.Type + " image",
			Shares:    r.shares(model.KindNeed, Ref(n.ID, e.Index)),
		}
		if i == 0 {
			t.Append(SlotNeedsFeatured, item)
			continue
		}
		t.Append(SlotNeeds, item)
	}
}

// Events renders events into SlotEvents.
func (r *Renderer) Events(t Target, entries []Entry[model.Event]) {
	t.Clear(SlotEvents)
	for _, e := range entries {
		ev := e.Record
		when := ev.Date
		if at, ok := ev.When(r.location()); ok {
			when = r.formatTime(at)
		}
		t.Append(SlotEvents, Item{
			ID:        ev.ID,
			Index:     e.Index,
			Heading:   template.HTML(ev.Title),
			Timestamp: when,
			Image:     r.imageSrc(ev.Image),
			ImageAlt:  "Event image",
			Link:      ev.Link,
		})
	}
}

func (r *Renderer) shares(kind model.Kind, ref string) []ShareControl {
	if r.ShareHref == nil {
		return nil
	}
	controls := make([]ShareControl, 0, len(r.Platforms))
	for _, p := range r.Platforms {
		controls = append(controls, ShareControl{Platform: p, Href: r.ShareHref(kind, ref, p)})
	}
	return controls
}

func (r *Renderer) imageSrc(src string) string {
	if src == "" || r.ImageSrc == nil {
		return src
	}
	return r.ImageSrc(src)
}

func (r *Renderer) location() *time.Location {
	if r.Location == nil {
		return time.Local
	}
	return r.Location
}

func (r *Renderer) formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(r.location()).Format("Jan 2, 2006, 3:04 PM")
}
