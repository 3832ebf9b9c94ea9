package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/virtual"
)

// Key is a navigation key reported by a Window.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyEscape
)

// Window is a glfw window used as a scroll element. The window itself
// scrolls (its ScrollState covers the whole framebuffer); Panes added to it
// are independent scroll elements over sub-rectangles that take the wheel
// while the cursor is over them.
type Window struct {
	*ScrollState

	window *glfw.Window
	panes  []*Pane
	keys   []Key
}

// Pane is a scrollable sub-rectangle of a Window.
type Pane struct {
	*ScrollState

	X, Y float64
}

// Contains reports whether the point (in window pixels) is inside the pane.
func (p *Pane) Contains(x, y float64) bool {
	r := p.Rect()
	return x >= p.X && x < p.X+r.Width && y >= p.Y && y < p.Y+r.Height
}

// NewWindow wraps w and installs its framebuffer size, scroll and key
// callbacks.
func NewWindow(w *glfw.Window) *Window {
	width, height := w.GetFramebufferSize()
	win := &Window{
		ScrollState: NewScrollState(float64(width), float64(height)),
		window:      w,
	}

	w.SetFramebufferSizeCallback(win.sizeCallback)
	w.SetScrollCallback(win.scrollCallback)
	w.SetKeyCallback(win.keyCallback)

	virtual.Logger().Debug("glfw window observed", "width", width, "height", height)
	return win
}

// Handle returns the underlying glfw window.
func (w *Window) Handle() *glfw.Window {
	return w.window
}

// AddPane adds a scrollable region at (x, y) of the given size.
func (w *Window) AddPane(x, y, width, height float64) *Pane {
	p := &Pane{ScrollState: NewScrollState(width, height), X: x, Y: y}
	w.panes = append(w.panes, p)
	return p
}

// Keys returns the navigation keys pressed since the last call.
func (w *Window) Keys() []Key {
	keys := w.keys
	w.keys = nil
	return keys
}

func (w *Window) sizeCallback(_ *glfw.Window, width, height int) {
	w.Resize(float64(width), float64(height))
}

func (w *Window) scrollCallback(win *glfw.Window, xoff, yoff float64) {
	x, y := win.GetCursorPos()
	w.wheelAt(x, y, xoff, yoff)
}

// wheelAt routes a wheel event to the pane under the cursor, or to the
// window when there is none.
func (w *Window) wheelAt(x, y, xoff, yoff float64) {
	if p := paneAt(w.panes, x, y); p != nil {
		p.Wheel(xoff, yoff)
		return
	}
	w.Wheel(xoff, yoff)
}

func (w *Window) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action != glfw.Press && action != glfw.Repeat {
		return
	}
	if k := glfwKeyToKey(key); k != KeyNone {
		w.keys = append(w.keys, k)
	}
}

// paneAt returns the topmost pane containing the point.
func paneAt(panes []*Pane, x, y float64) *Pane {
	for i := len(panes) - 1; i >= 0; i-- {
		if panes[i].Contains(x, y) {
			return panes[i]
		}
	}
	return nil
}

func glfwKeyToKey(key glfw.Key) Key {
	switch key {
	case glfw.KeyUp, glfw.KeyK:
		return KeyUp
	case glfw.KeyDown, glfw.KeyJ:
		return KeyDown
	case glfw.KeyPageUp:
		return KeyPageUp
	case glfw.KeyPageDown, glfw.KeySpace:
		return KeyPageDown
	case glfw.KeyHome:
		return KeyHome
	case glfw.KeyEnd:
		return KeyEnd
	case glfw.KeyEscape, glfw.KeyQ:
		return KeyEscape
	default:
		return KeyNone
	}
}
