package model

import "time"

// Event is an upcoming community event. Date is the value the submitter
// entered; it is the event's only date.
type Event struct {
	ID    string `json:"id,omitempty"`
	Title string `json:"title"`
	Date  string `json:"date"`
	Image string `json:"image"`
	Link  string `json:"link"`
}

// eventDateLayouts are the accepted shapes of Event.Date, most specific first.
var eventDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// When parses the event date. Dates without a zone are read in loc.
func (e Event) When(loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range eventDateLayouts {
		if t, err := time.ParseInLocation(layout, e.Date, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
