package tui

import "github.com/go-theft-auto/virtual"

// pane is the terminal region the list scrolls in, measured in cells.
// It is the Model's scroll element.
type pane struct {
	rect    virtual.Rect
	offset  float64
	content float64

	rectSubs   map[int]func(virtual.Rect)
	offsetSubs map[int]func(float64)
	nextID     int
}

func newPane() *pane {
	return &pane{
		rectSubs:   make(map[int]func(virtual.Rect)),
		offsetSubs: make(map[int]func(float64)),
	}
}

func (p *pane) ObserveRect(_ *virtual.Virtualizer, cb func(virtual.Rect)) func() {
	id := p.nextID
	p.nextID++
	p.rectSubs[id] = cb
	cb(p.rect)
	return func() { delete(p.rectSubs, id) }
}

func (p *pane) ObserveOffset(_ *virtual.Virtualizer, cb func(float64)) func() {
	id := p.nextID
	p.nextID++
	p.offsetSubs[id] = cb
	cb(p.offset)
	return func() { delete(p.offsetSubs, id) }
}

// ScrollTo implements virtual.Scroller. Terminals can't scroll smoothly,
// so the hint is ignored and offsets snap to whole lines. Only the start is
// clamped here: the content may be about to grow, and the next render
// clamps the end against the new total.
func (p *pane) ScrollTo(offset float64, _ bool, _ *virtual.Virtualizer) {
	p.set(offset, max(offset, 0))
}

// scroll moves by user input, clamped to the content.
func (p *pane) scroll(offset float64) {
	limit := max(p.content-p.rect.Height, 0)
	p.set(offset, min(max(offset, 0), limit))
}

// set reports the new offset. A request that resolves to the current
// offset is still reported when it asked for something else, so an
// observer that moved ahead on its own is pulled back.
func (p *pane) set(requested, offset float64) {
	offset = float64(int(offset))
	if offset == p.offset && offset == requested {
		return
	}
	p.offset = offset
	for _, cb := range p.offsetSubs {
		cb(offset)
	}
}

func (p *pane) resize(width, height int) {
	r := virtual.Rect{Width: float64(width), Height: float64(height)}
	if r == p.rect {
		return
	}
	p.rect = r
	for _, cb := range p.rectSubs {
		cb(r)
	}
	p.scroll(p.offset)
}
