package virtual

// Virtualizer computes which items of a long list are inside a scroll
// viewport and where they sit along the scroll axis.
//
// All state belongs to one instance and is touched from one goroutine: the
// host's UI loop. Observers push viewport changes in, the host pulls
// VirtualItems out after each change notification, and rendered items report
// their real size back through VirtualItem.Measure.
type Virtualizer struct {
	cfg Config
	raw options

	// Observed viewport state; written only by observer callbacks and
	// scroll corrections.
	scrollElement ScrollElement
	scrollRect    Rect
	scrollOffset  float64
	unsubs        []func()

	sizes   *sizeCache
	pending []int  // indexes remeasured since the last measurement build
	built   []Item // result of the last measurement build

	// Bumped by SetOptions when a strategy is replaced.
	estimatorRev uint64
	keysRev      uint64
	extractorRev uint64
	measurerRev  uint64

	estimator    *Memo[uint64, Estimator]
	measurements *Memo[measurementDeps, []Item]
	visible      *Memo[rangeDeps, Range]
	indexes      *Memo[indexDeps, []int]
	items        *Memo[itemDeps, []VirtualItem]

	afterRender []func()
	scrollGen   uint64
	correcting  bool
}

// New creates a Virtualizer. The initial viewport comes from the
// InitialRect and InitialOffset options until the observers report.
func New(opts ...Option) *Virtualizer {
	v := &Virtualizer{
		sizes: newSizeCache(),
	}
	v.SetOptions(opts...)
	v.scrollRect = v.cfg.InitialRect
	v.scrollOffset = v.cfg.InitialOffset

	debug := func() bool { return v.cfg.Debug }

	v.estimator = NewMemo("estimateSize",
		func() uint64 { return v.estimatorRev },
		func(uint64) Estimator { return v.cfg.Estimator },
	).OnChange(func(Estimator) {
		// A new estimation model invalidates every measured size.
		v.sizes.Clear()
		v.pending = v.pending[:0]
	})
	v.measurements = NewMemo("measurements", v.measurementDeps, v.computeMeasurements, WithMemoDebug(debug))
	v.visible = NewMemo("calculateRange", v.rangeDeps, v.computeRange, WithMemoDebug(debug))
	v.indexes = NewMemo("indexes", v.indexDeps, v.computeIndexes, WithMemoDebug(debug))
	v.items = NewMemo("virtualItems", v.itemDeps, v.computeItems, WithMemoDebug(debug))

	return v
}

// SetOptions replaces the whole option set. Options not given take their
// defaults again. Cached work is kept unless something it depends on changed.
func (v *Virtualizer) SetOptions(opts ...Option) {
	prev := v.cfg
	v.raw = applyOptions(opts)
	v.cfg = resolve(v.raw)

	if !sameIdentity(prev.Estimator, v.cfg.Estimator) {
		v.estimatorRev++
	}
	if !sameIdentity(prev.KeyExtractor, v.cfg.KeyExtractor) {
		v.keysRev++
	}
	if !sameIdentity(prev.RangeExtractor, v.cfg.RangeExtractor) {
		v.extractorRev++
	}
	if !sameIdentity(prev.Measurer, v.cfg.Measurer) {
		v.measurerRev++
	}
}

// Options returns the resolved options.
func (v *Virtualizer) Options() Config {
	return v.cfg
}

// Lookup reads a (possibly custom) option from v's current option set.
func Lookup[T any](v *Virtualizer, key OptKey[T]) T {
	return GetOpt(v.raw, key)
}

// Mount installs the observers and returns the func that removes them.
// Hosts call it once when the list is first shown.
func (v *Virtualizer) Mount() func() {
	v.WillUpdate()
	return v.Unmount
}

// WillUpdate re-reads the scroll element and, if it changed, unsubscribes
// every observer of the old one before observing the new one.
// Hosts call it before each render.
func (v *Virtualizer) WillUpdate() {
	var el ScrollElement
	if v.cfg.ScrollElement != nil {
		el = v.cfg.ScrollElement()
	}
	if sameIdentity(v.scrollElement, el) {
		return
	}

	v.cleanup()
	v.scrollElement = el
	if isNil(el) {
		return
	}

	logger.Debug("observing scroll element", "element", el)

	if v.cfg.RectObserver != nil {
		v.unsubs = append(v.unsubs, v.cfg.RectObserver.ObserveRect(v, func(r Rect) {
			v.scrollRect = r
			v.notify()
		}))
	}
	if v.cfg.OffsetObserver != nil {
		v.unsubs = append(v.unsubs, v.cfg.OffsetObserver.ObserveOffset(v, func(offset float64) {
			v.scrollOffset = offset
			v.notify()
		}))
	}
}

// Unmount removes all observers and forgets the scroll element.
func (v *Virtualizer) Unmount() {
	v.cleanup()
	v.scrollElement = nil
}

func (v *Virtualizer) cleanup() {
	for _, unsub := range v.unsubs {
		if unsub != nil {
			unsub()
		}
	}
	v.unsubs = nil
}

// Measure forgets every measured size and notifies, so all items go back
// to their estimates until they report again.
func (v *Virtualizer) Measure() {
	v.sizes.Clear()
	v.pending = v.pending[:0]
	v.notify()
}

// notify runs the OnChange hook. It is silent while a scroll correction is
// in flight; the measurement that caused it notifies once afterwards.
func (v *Virtualizer) notify() {
	if v.correcting {
		return
	}
	if v.cfg.OnChange != nil {
		v.cfg.OnChange(v)
	}
}

// ScrollElement returns the element currently observed, or nil before Mount.
func (v *Virtualizer) ScrollElement() ScrollElement {
	return v.scrollElement
}

// ScrollRect returns the last viewport size reported by the rect observer.
func (v *Virtualizer) ScrollRect() Rect {
	return v.scrollRect
}

// ScrollOffset returns the last scroll offset reported or corrected.
func (v *Virtualizer) ScrollOffset() float64 {
	return v.scrollOffset
}

// Size returns the viewport extent along the scroll axis.
func (v *Virtualizer) Size() float64 {
	return v.scrollRect.Axis(v.cfg.Horizontal)
}

// MeasuredCount returns how many keys have a measured size.
func (v *Virtualizer) MeasuredCount() int {
	return v.sizes.Len()
}
