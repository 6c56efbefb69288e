package model

// Prayer is a prayer request. Private requests are stored but never shown.
type Prayer struct {
	ID      string    `json:"id,omitempty"`
	Name    string    `json:"name"`
	Msg     string    `json:"msg"`
	Image   string    `json:"image"`
	Private bool      `json:"private"`
	Date    Timestamp `json:"date"`
}

// AnonymousName is used when the submitter leaves the name empty.
const AnonymousName = "Anonymous"
