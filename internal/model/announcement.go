package model

// Announcement is a community announcement.
type Announcement struct {
	ID    string    `json:"id,omitempty"`
	Title string    `json:"title"`
	Body  string    `json:"body"`
	Image string    `json:"image"`
	Date  Timestamp `json:"date"`
}
