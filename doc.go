/*
Package virtual computes which items of a very long list are visible inside a
scroll viewport, and where, so a renderer only has to draw those.

# Overview

A Virtualizer turns an item count, per-item size estimates, the viewport size
and the scroll offset into a small window of indexes (the visible items plus
an overscan margin) with pixel positions along the scroll axis. It never
renders anything itself: the host draws the VirtualItems it is handed and
reports back the sizes it actually drew them at.

Sizes are estimated until an item has been rendered once. When a rendered
item turns out to be a different size than assumed, everything after it
shifts; if the item was above the viewport, the scroll offset is shifted by
the same amount so the content on screen stays put.

# Quick Start

	v := virtual.New(
	    virtual.WithCount(100_000),
	    virtual.WithEstimateSize(func(int) float64 { return 24 }),
	    virtual.WithScrollElement(func() virtual.ScrollElement { return pane }),
	    virtual.WithRectObserver(pane),
	    virtual.WithOffsetObserver(pane),
	    virtual.WithScroller(pane),
	    virtual.WithOnChange(func(*virtual.Virtualizer) { needsRedraw = true }),
	)
	unmount := v.Mount()
	defer unmount()

	// UI loop
	for running {
	    v.WillUpdate()
	    for _, item := range v.VirtualItems() {
	        row := drawRow(item.Index, item.Start-v.ScrollOffset())
	        item.Measure(row) // row implements virtual.Element
	    }
	    v.DidRender()
	}

# Recomputation

Each derived value is held in a Memo keyed by an explicit dependency tuple:

	measurements   count, paddingStart, estimator, key extractor, measured sizes
	range          measurements, viewport size, scroll offset
	indexes        range extractor, range, overscan, count
	virtual items  indexes, measurements, measurer

A scroll event only recomputes the range, and only recomputes the indexes and
items if the range actually moved. A remeasured item rebuilds measurements
from the lowest remeasured index onwards; the prefix before it is reused.

Strategies (Estimator, KeyExtractor, RangeExtractor, ElementMeasurer) are
compared by identity when SetOptions is called: comparable values with ==,
funcs by pointer. Replacing the Estimator clears all measured sizes.

# Hosts

The backend/opengl package provides a GLFW window scroll element and a
quad renderer; backend/tui hosts a Virtualizer in a Bubble Tea model. Both are
exercised by cmd/virtualdemo.

# Scrolling

	v.ScrollToOffset(1200)                                   // align start
	v.ScrollToIndex(5000, virtual.WithAlign(virtual.AlignCenter))

ScrollToIndex runs once immediately and once more on the next DidRender, so
that estimate errors discovered while rendering the first landing position
are corrected by the second.
*/
package virtual
