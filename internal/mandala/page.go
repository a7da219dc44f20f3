package mandala

import "github.com/iburimskiy/mandala-visualization/internal/config"

// Page is the virtual scrollable document the hosts emulate: Pages viewports
// tall, so the offset runs from 0 to (Pages-1)*height.
type Page struct {
	Pages  float64
	offset float64
	height float64
}

// NewPage returns a page config.ScrollPages viewports tall.
func NewPage() *Page {
	return &Page{Pages: config.ScrollPages}
}

// SetHeight changes the viewport height, keeping the offset in range.
func (p *Page) SetHeight(h float64) {
	p.height = h
	p.offset = p.clamp(p.offset)
}

// Height returns the viewport height.
func (p *Page) Height() float64 { return p.height }

// Offset returns the current scroll offset.
func (p *Page) Offset() float64 { return p.offset }

// Max is the largest reachable offset.
func (p *Page) Max() float64 {
	pages := p.Pages
	if pages < 1 {
		pages = 1
	}
	return (pages - 1) * p.height
}

// By scrolls by delta pixels and reports whether the offset moved.
func (p *Page) By(delta float64) bool {
	return p.To(p.offset + delta)
}

// To scrolls to offset and reports whether the offset moved.
func (p *Page) To(offset float64) bool {
	next := p.clamp(offset)
	if next == p.offset {
		return false
	}
	p.offset = next
	return true
}

// Top and Bottom jump to either end of the page.
func (p *Page) Top() bool    { return p.To(0) }
func (p *Page) Bottom() bool { return p.To(p.Max()) }

func (p *Page) clamp(offset float64) float64 {
	if offset < 0 {
		return 0
	}
	if m := p.Max(); offset > m {
		return m
	}
	return offset
}
