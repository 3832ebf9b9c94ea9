package virtual

// VirtualItem is one item the host should render: its geometry plus the
// capability to report the size it actually rendered at.
type VirtualItem struct {
	Item

	measure func(el Element)
}

// Measure reports the rendered element for this item. If its size differs
// from the one the engine assumed, the size is recorded for the item's key
// and the engine notifies its OnChange hook. When the item starts above the
// current scroll offset, the offset is shifted by the difference first so
// the content in view doesn't jump.
//
// A nil element is ignored (hosts call this with nil when an element unmounts).
func (it VirtualItem) Measure(el Element) {
	if it.measure == nil || isNil(el) {
		return
	}
	it.measure(el)
}

type itemDeps struct {
	indexesRev      uint64
	measurementsRev uint64
	measurerRev     uint64
}

func (v *Virtualizer) itemDeps() itemDeps {
	return itemDeps{
		indexesRev:      v.indexes.Revision(),
		measurementsRev: v.measurements.Revision(),
		measurerRev:     v.measurerRev,
	}
}

func (v *Virtualizer) computeItems(itemDeps) []VirtualItem {
	indexes := v.indexes.Get()
	measurements := v.measurements.Get()

	items := make([]VirtualItem, 0, len(indexes))
	for _, i := range indexes {
		if i < 0 || i >= len(measurements) {
			logger.Debug("range extractor returned an index outside the list",
				"index", i,
				"count", len(measurements))
			continue
		}

		m := measurements[i]
		items = append(items, VirtualItem{
			Item:    m,
			measure: func(el Element) { v.measureItem(m, el) },
		})
	}
	return items
}

// measureItem reconciles an item's assumed size with its rendered size.
func (v *Virtualizer) measureItem(item Item, el Element) {
	size := v.cfg.Measurer.MeasureElement(el, v)

	// Compare against the latest known size for the key rather than the
	// size captured when the item was projected, so reporting the same
	// element twice is a no-op.
	current := item.Size
	if measured, ok := v.sizes.Get(item.Key); ok {
		current = measured
	}
	if size == current {
		return
	}

	if item.Start < v.scrollOffset {
		delta := size - current
		if v.cfg.Debug {
			logger.Info("scroll correction", "index", item.Index, "delta", delta, "offset", v.scrollOffset)
		}
		// The stored offset moves before the size is committed, so
		// recomputation never sees the new size with the old offset.
		// An element that reports the new offset back synchronously must
		// not notify until the size is committed too.
		v.scrollOffset += delta
		v.correcting = true
		v.scrollTo(v.scrollOffset, false)
		v.correcting = false
	}

	v.pending = append(v.pending, item.Index)
	v.sizes.Set(item.Key, size)
	v.notify()
}

// VirtualItems returns the items to render, in the order the range
// extractor produced them. The result is recomputed only when the indexes,
// the geometry or the measurer changed.
func (v *Virtualizer) VirtualItems() []VirtualItem {
	return v.items.Get()
}
