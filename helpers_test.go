package virtual_test

import (
	"testing"

	"github.com/go-theft-auto/virtual"
)

// fakePane is an in-memory scroll element. It observes and scrolls itself
// synchronously, the way a host's scroll container reports back.
type fakePane struct {
	rect   virtual.Rect
	offset float64

	rectSubs   map[int]func(virtual.Rect)
	offsetSubs map[int]func(float64)
	nextID     int

	scrolls []scrollCall
}

type scrollCall struct {
	offset float64
	smooth bool
}

func newFakePane(width, height float64) *fakePane {
	return &fakePane{
		rect:       virtual.Rect{Width: width, Height: height},
		rectSubs:   make(map[int]func(virtual.Rect)),
		offsetSubs: make(map[int]func(float64)),
	}
}

func (p *fakePane) ObserveRect(v *virtual.Virtualizer, cb func(virtual.Rect)) func() {
	id := p.nextID
	p.nextID++
	p.rectSubs[id] = cb
	cb(p.rect)
	return func() { delete(p.rectSubs, id) }
}

func (p *fakePane) ObserveOffset(v *virtual.Virtualizer, cb func(float64)) func() {
	id := p.nextID
	p.nextID++
	p.offsetSubs[id] = cb
	cb(p.offset)
	return func() { delete(p.offsetSubs, id) }
}

func (p *fakePane) ScrollTo(offset float64, smooth bool, v *virtual.Virtualizer) {
	p.scrolls = append(p.scrolls, scrollCall{offset: offset, smooth: smooth})
	p.scroll(offset)
}

// scroll simulates the user scrolling.
func (p *fakePane) scroll(offset float64) {
	p.offset = offset
	for _, cb := range p.offsetSubs {
		cb(offset)
	}
}

func (p *fakePane) resize(width, height float64) {
	p.rect = virtual.Rect{Width: width, Height: height}
	for _, cb := range p.rectSubs {
		cb(p.rect)
	}
}

func (p *fakePane) subscribers() int {
	return len(p.rectSubs) + len(p.offsetSubs)
}

// fakeElement is a rendered item of a fixed size.
type fakeElement struct {
	width, height float64
}

func (e fakeElement) BoundingRect() virtual.Rect {
	return virtual.Rect{Width: e.width, Height: e.height}
}

func rowOf(height float64) virtual.Element {
	return fakeElement{width: 300, height: height}
}

// mountedList builds a mounted Virtualizer over pane and counts its
// change notifications.
func mountedList(t *testing.T, pane *fakePane, count int, opts ...virtual.Option) (*virtual.Virtualizer, *int) {
	t.Helper()

	notified := new(int)
	base := []virtual.Option{
		virtual.WithCount(count),
		virtual.WithScrollElement(func() virtual.ScrollElement { return pane }),
		virtual.WithRectObserver(pane),
		virtual.WithOffsetObserver(pane),
		virtual.WithScroller(pane),
		virtual.WithOnChange(func(*virtual.Virtualizer) { *notified++ }),
	}
	v := virtual.New(append(base, opts...)...)
	t.Cleanup(v.Mount())
	return v, notified
}

// itemAt returns the projected item with the given index.
func itemAt(t *testing.T, v *virtual.Virtualizer, index int) virtual.VirtualItem {
	t.Helper()
	for _, it := range v.VirtualItems() {
		if it.Index == index {
			return it
		}
	}
	t.Fatalf("item %d is not among the virtual items", index)
	return virtual.VirtualItem{}
}

func indexesOf(items []virtual.VirtualItem) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.Index
	}
	return out
}

func seq(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}
