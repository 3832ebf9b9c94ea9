package virtual

import (
	"reflect"
	"unsafe"
)

// ScrollElement is the host's scroll container handle (a window, a pane...).
// Handles are compared by identity, so hosts should pass pointers.
type ScrollElement = any

// Element is a rendered item the host can report a bounding size for.
type Element interface {
	BoundingRect() Rect
}

// Estimator gives a provisional size for an item that hasn't been measured.
type Estimator interface {
	EstimateSize(index int) float64
}

// EstimatorFunc adapts a function to Estimator.
type EstimatorFunc func(index int) float64

// EstimateSize implements Estimator.
func (f EstimatorFunc) EstimateSize(index int) float64 { return f(index) }

// FixedSize estimates every item at the same size.
// Two FixedSize values with the same size are the same estimator.
type FixedSize float64

// EstimateSize implements Estimator.
func (s FixedSize) EstimateSize(int) float64 { return float64(s) }

// KeyExtractor maps an index to a stable key.
type KeyExtractor interface {
	Key(index int) Key
}

// KeyExtractorFunc adapts a function to KeyExtractor.
type KeyExtractorFunc func(index int) Key

// Key implements KeyExtractor.
func (f KeyExtractorFunc) Key(index int) Key { return f(index) }

// IndexKey uses the index itself as the key.
var IndexKey KeyExtractor = indexKey{}

type indexKey struct{}

func (indexKey) Key(index int) Key { return index }

// RangeExtractor turns the visible range into the ordered indexes to render.
type RangeExtractor interface {
	Extract(r Range) []int
}

// RangeExtractorFunc adapts a function to RangeExtractor.
type RangeExtractorFunc func(r Range) []int

// Extract implements RangeExtractor.
func (f RangeExtractorFunc) Extract(r Range) []int { return f(r) }

// ElementMeasurer reads the size of a rendered element along the scroll axis.
type ElementMeasurer interface {
	MeasureElement(el Element, v *Virtualizer) float64
}

// ElementMeasurerFunc adapts a function to ElementMeasurer.
type ElementMeasurerFunc func(el Element, v *Virtualizer) float64

// MeasureElement implements ElementMeasurer.
func (f ElementMeasurerFunc) MeasureElement(el Element, v *Virtualizer) float64 { return f(el, v) }

// BoundingRectMeasurer reads the element's bounding rect along the active axis.
var BoundingRectMeasurer ElementMeasurer = boundingRectMeasurer{}

type boundingRectMeasurer struct{}

func (boundingRectMeasurer) MeasureElement(el Element, v *Virtualizer) float64 {
	return el.BoundingRect().Axis(v.Options().Horizontal)
}

// Scroller performs the actual scroll of the host's scroll element.
type Scroller interface {
	ScrollTo(offset float64, smooth bool, v *Virtualizer)
}

// ScrollerFunc adapts a function to Scroller.
type ScrollerFunc func(offset float64, smooth bool, v *Virtualizer)

// ScrollTo implements Scroller.
func (f ScrollerFunc) ScrollTo(offset float64, smooth bool, v *Virtualizer) { f(offset, smooth, v) }

// RectObserver installs a viewport size listener on v's scroll element.
// It must call cb once with the current size before returning, and again on
// every change. The returned func unsubscribes; nil is allowed.
type RectObserver interface {
	ObserveRect(v *Virtualizer, cb func(Rect)) func()
}

// RectObserverFunc adapts a function to RectObserver.
type RectObserverFunc func(v *Virtualizer, cb func(Rect)) func()

// ObserveRect implements RectObserver.
func (f RectObserverFunc) ObserveRect(v *Virtualizer, cb func(Rect)) func() { return f(v, cb) }

// OffsetObserver installs a scroll offset listener on v's scroll element,
// with the same contract as RectObserver.
type OffsetObserver interface {
	ObserveOffset(v *Virtualizer, cb func(float64)) func()
}

// OffsetObserverFunc adapts a function to OffsetObserver.
type OffsetObserverFunc func(v *Virtualizer, cb func(float64)) func()

// ObserveOffset implements OffsetObserver.
func (f OffsetObserverFunc) ObserveOffset(v *Virtualizer, cb func(float64)) func() { return f(v, cb) }

// sameIdentity reports whether two strategy or handle values are the same.
//
// Comparable values use ==, so FixedSize(50) equals FixedSize(50) and two
// pointers are equal only if they point to the same thing. Maps and slices
// compare by their underlying pointer. Funcs compare by closure object, not
// code: passing the same func value again is no change, while two closures
// built from one literal (say, with different captured sizes) are different
// strategies.
func sameIdentity(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Func:
		return closurePointer(a) == closurePointer(b)
	case reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}

	if !ta.Comparable() {
		return false
	}
	return a == b
}

// closurePointer returns the closure object behind a func held in an
// interface. Func values are pointer-shaped, so the interface's data word is
// that pointer. Funcs without captured variables share one static object.
func closurePointer(fn any) unsafe.Pointer {
	return (*[2]unsafe.Pointer)(unsafe.Pointer(&fn))[1]
}
