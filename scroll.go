package virtual

// ScrollOption configures a scroll request.
type ScrollOption func(*scrollRequest)

type scrollRequest struct {
	align Align
}

// WithAlign sets where the target lands in the viewport.
// ScrollToOffset defaults to AlignStart, ScrollToIndex to AlignAuto.
func WithAlign(a Align) ScrollOption {
	return func(r *scrollRequest) { r.align = a }
}

func applyScrollOptions(opts []ScrollOption, def Align) Align {
	r := scrollRequest{align: def}
	for _, opt := range opts {
		if opt != nil {
			opt(&r)
		}
	}
	return r.align
}

// ScrollToOffset scrolls so that offset lands at the requested alignment.
//
// With AlignAuto an offset before the viewport aligns to the start, one at or
// past its far edge aligns to the end, and anything inside aligns to the start.
func (v *Virtualizer) ScrollToOffset(offset float64, opts ...ScrollOption) {
	align := applyScrollOptions(opts, AlignStart)
	current := v.scrollOffset
	size := v.Size()

	if align == AlignAuto {
		switch {
		case offset <= current:
			align = AlignStart
		case offset >= current+size:
			align = AlignEnd
		default:
			align = AlignStart
		}
	}

	switch align {
	case AlignStart:
		v.scrollTo(offset, true)
	case AlignEnd:
		v.scrollTo(offset-size, true)
	case AlignCenter:
		v.scrollTo(offset-size/2, true)
	}
}

// ScrollToIndex scrolls item index into view. Out-of-range indexes are
// clamped; an empty list is a no-op. With AlignAuto an item that is already
// fully visible doesn't scroll.
//
// Items between here and the target are usually still estimates, so the
// first scroll can land off by whatever those estimates get wrong. The request
// is issued now and again after the host's next DidRender, by which time the
// items around the target have been rendered and measured. A newer
// ScrollToIndex replaces a retry that hasn't run yet.
func (v *Virtualizer) ScrollToIndex(index int, opts ...ScrollOption) {
	align := applyScrollOptions(opts, AlignAuto)

	v.scrollGen++
	gen := v.scrollGen

	v.tryScrollToIndex(index, align)
	v.AfterRender(func() {
		if gen != v.scrollGen {
			return
		}
		v.tryScrollToIndex(index, align)
	})
}

func (v *Virtualizer) tryScrollToIndex(index int, align Align) {
	measurements := v.Measurements()
	if len(measurements) == 0 {
		return
	}
	m := measurements[clampi(index, 0, len(measurements)-1)]

	offset := v.scrollOffset
	size := v.Size()

	if align == AlignAuto {
		switch {
		case m.End >= offset+size:
			align = AlignEnd
		case m.Start <= offset:
			align = AlignStart
		default:
			return
		}
	}

	var target float64
	switch align {
	case AlignCenter:
		target = m.Start + m.Size/2
	case AlignEnd:
		target = m.End
	default:
		target = m.Start
	}

	logger.Debug("scroll to index", "index", m.Index, "align", align, "target", target)
	v.ScrollToOffset(target, WithAlign(align))
}

// AfterRender queues fn to run once on the next DidRender.
func (v *Virtualizer) AfterRender(fn func()) {
	if fn == nil {
		return
	}
	v.afterRender = append(v.afterRender, fn)
}

// DidRender is the host's signal that the items it got from VirtualItems
// have been laid out and measured. It runs the callbacks queued by
// AfterRender; callbacks queued while they run wait for the next call.
func (v *Virtualizer) DidRender() {
	if len(v.afterRender) == 0 {
		return
	}
	queued := v.afterRender
	v.afterRender = nil
	for _, fn := range queued {
		fn()
	}
}

func (v *Virtualizer) scrollTo(offset float64, canSmooth bool) {
	if v.cfg.Scroller == nil {
		return
	}
	v.cfg.Scroller.ScrollTo(offset, v.cfg.EnableSmoothScroll && canSmooth, v)
}
