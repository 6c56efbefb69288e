package model

// Need is a community need or an offer of help.
type Need struct {
	ID      string    `json:"id,omitempty"`
	Type    string    `json:"type"`
	Name    string    `json:"name"`
	Details string    `json:"details"`
	Image   string    `json:"image"`
	Date    Timestamp `json:"date"`
}

// Need types.
const (
	NeedTypeNeed  = "need"
	NeedTypeOffer = "offer"
)

// ValidNeedType reports whether t is one of the need types.
func ValidNeedType(t string) bool {
	return t == NeedTypeNeed || t == NeedTypeOffer
}
