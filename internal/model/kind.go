package model

import "fmt"

// Kind identifies one of the board's record categories.
type Kind string

// Record categories. The value doubles as the storage key of the collection.
const (
	KindAnnouncement Kind = "announcements"
	KindPrayer       Kind = "prayers"
	KindNeed         Kind = "needs"
	KindEvent        Kind = "events"
)

// Kinds lists every category in display order.
var Kinds = []Kind{KindAnnouncement, KindPrayer, KindNeed, KindEvent}

// Key returns the storage key holding the kind's collection.
func (k Kind) Key() string {
	return string(k)
}

// Shareable reports whether records of this kind expose share controls.
func (k Kind) Shareable() bool {
	return k == KindPrayer || k == KindNeed
}

// ParseKind converts a collection name into a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}
