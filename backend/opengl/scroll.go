package opengl

import (
	"math"

	"github.com/go-theft-auto/virtual"
)

// ScrollState is the scroll position and size of a scrollable region.
// It implements virtual.RectObserver, virtual.OffsetObserver and
// virtual.Scroller, and is what Window and Pane hand to a Virtualizer.
//
// It has no glfw dependency: windows feed it resize and wheel events,
// and the frame loop calls Tick to advance smooth scrolling.
type ScrollState struct {
	rect       virtual.Rect
	offset     float64
	target     float64
	content    float64
	horizontal bool

	// WheelStep is how far one wheel notch scrolls, in pixels.
	WheelStep float64
	// Smoothing is the fraction of the remaining distance covered per
	// second of smooth scrolling. 0 jumps straight to the target.
	Smoothing float64

	rectSubs   map[int]func(virtual.Rect)
	offsetSubs map[int]func(float64)
	nextID     int
}

// NewScrollState creates a scroll state of the given viewport size.
func NewScrollState(width, height float64) *ScrollState {
	return &ScrollState{
		rect:       virtual.Rect{Width: width, Height: height},
		WheelStep:  48,
		Smoothing:  12,
		rectSubs:   make(map[int]func(virtual.Rect)),
		offsetSubs: make(map[int]func(float64)),
	}
}

// SetHorizontal makes wheel and clamping work along x.
func (s *ScrollState) SetHorizontal(horizontal bool) {
	s.horizontal = horizontal
}

// SetContentSize sets the scrollable extent, normally the virtualizer's
// TotalSize, and re-clamps the offset to it.
func (s *ScrollState) SetContentSize(size float64) {
	s.content = size
	if clamped := s.clamp(s.offset); clamped != s.offset {
		s.jump(clamped)
	}
}

// Rect returns the viewport size.
func (s *ScrollState) Rect() virtual.Rect { return s.rect }

// Offset returns the current scroll offset.
func (s *ScrollState) Offset() float64 { return s.offset }

// Scrolling reports whether a smooth scroll is still in flight.
func (s *ScrollState) Scrolling() bool { return s.offset != s.target }

// ObserveRect implements virtual.RectObserver.
func (s *ScrollState) ObserveRect(_ *virtual.Virtualizer, cb func(virtual.Rect)) func() {
	id := s.subscribeID()
	s.rectSubs[id] = cb
	cb(s.rect)
	return func() { delete(s.rectSubs, id) }
}

// ObserveOffset implements virtual.OffsetObserver.
func (s *ScrollState) ObserveOffset(_ *virtual.Virtualizer, cb func(float64)) func() {
	id := s.subscribeID()
	s.offsetSubs[id] = cb
	cb(s.offset)
	return func() { delete(s.offsetSubs, id) }
}

// ScrollTo implements virtual.Scroller. A smooth scroll only sets the
// target; Tick moves towards it.
func (s *ScrollState) ScrollTo(offset float64, smooth bool, _ *virtual.Virtualizer) {
	offset = s.clamp(offset)
	if smooth && s.Smoothing > 0 {
		s.target = offset
		return
	}
	s.jump(offset)
}

// Resize reports a new viewport size.
func (s *ScrollState) Resize(width, height float64) {
	r := virtual.Rect{Width: width, Height: height}
	if r == s.rect {
		return
	}
	s.rect = r
	for _, cb := range s.rectSubs {
		cb(r)
	}
	s.SetContentSize(s.content)
}

// Wheel applies a mouse wheel event. Positive y scrolls towards the
// start, as glfw reports it.
func (s *ScrollState) Wheel(xoff, yoff float64) {
	delta := yoff
	if s.horizontal && xoff != 0 {
		delta = xoff
	}
	if delta == 0 {
		return
	}
	s.jump(s.clamp(s.target - delta*s.WheelStep))
}

// Tick advances a smooth scroll by dt seconds.
func (s *ScrollState) Tick(dt float64) {
	if !s.Scrolling() {
		return
	}
	remaining := s.target - s.offset
	step := remaining * min(1, s.Smoothing*dt)
	next := s.offset + step
	if math.Abs(s.target-next) < 0.5 {
		next = s.target
	}
	s.setOffset(next)
}

// jump moves straight to offset, cancelling any smooth scroll.
func (s *ScrollState) jump(offset float64) {
	s.target = offset
	s.setOffset(offset)
}

func (s *ScrollState) setOffset(offset float64) {
	if offset == s.offset {
		return
	}
	s.offset = offset
	for _, cb := range s.offsetSubs {
		cb(offset)
	}
}

func (s *ScrollState) clamp(offset float64) float64 {
	limit := max(s.content-s.rect.Axis(s.horizontal), 0)
	return min(max(offset, 0), limit)
}

func (s *ScrollState) subscribeID() int {
	id := s.nextID
	s.nextID++
	return id
}

func (s *ScrollState) subscribers() int {
	return len(s.rectSubs) + len(s.offsetSubs)
}
