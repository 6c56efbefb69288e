package render

// Page is an in-memory Target. Templates read its slots.
type Page struct {
	slots map[string][]Item
}

// NewPage creates an empty page.
func NewPage() *Page {
	return &Page{slots: make(map[string][]Item)}
}

// Clear empties slot.
func (p *Page) Clear(slot string) {
	p.slots[slot] = nil
}

// Append adds item to the end of slot.
func (p *Page) Append(slot string, item Item) {
	p.slots[slot] = append(p.slots[slot], item)
}

// Items returns the items in slot.
func (p *Page) Items(slot string) []Item {
	return p.slots[slot]
}
