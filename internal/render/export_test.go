package render

// Has reports whether slot has been rendered, even if it ended up empty.
func (p *Page) Has(slot string) bool {
	_, ok := p.slots[slot]
	return ok
}
