package virtual

// measurementDeps is everything the item geometry depends on.
// Strategies and the size cache appear as revisions.
type measurementDeps struct {
	count        int
	paddingStart float64
	estimatorRev uint64
	keysRev      uint64
	sizesRev     uint64
}

func (v *Virtualizer) measurementDeps() measurementDeps {
	// The estimator memo may clear the size cache, so it runs before the
	// cache revision is read.
	estimatorRev := v.estimator.Revision()
	return measurementDeps{
		count:        v.cfg.Count,
		paddingStart: v.cfg.PaddingStart,
		estimatorRev: estimatorRev,
		keysRev:      v.keysRev,
		sizesRev:     v.sizes.Revision(),
	}
}

func (v *Virtualizer) computeMeasurements(d measurementDeps) []Item {
	from := 0
	if len(v.pending) > 0 {
		from = v.pending[0]
		for _, i := range v.pending[1:] {
			from = min(from, i)
		}
	}
	v.pending = v.pending[:0]

	items := buildMeasurements(v.built, from, d.count, d.paddingStart, v.cfg.Estimator, v.cfg.KeyExtractor, v.sizes)
	v.built = items
	return items
}

// buildMeasurements lays out count items end to end starting at paddingStart.
// The first from entries of prev are reused as they are; everything after is
// recomputed, preferring measured sizes over estimates.
func buildMeasurements(prev []Item, from, count int, paddingStart float64, est Estimator, keys KeyExtractor, sizes *sizeCache) []Item {
	from = clampi(from, 0, min(len(prev), count))

	// prev may still be held by callers, so the prefix is copied rather than
	// appended to in place.
	items := make([]Item, count)
	copy(items, prev[:from])

	for i := from; i < count; i++ {
		key := keys.Key(i)

		start := paddingStart
		if i > 0 {
			start = items[i-1].End
		}

		size, ok := sizes.Get(key)
		if !ok {
			size = est.EstimateSize(i)
		}

		items[i] = Item{
			Key:   key,
			Index: i,
			Start: start,
			Size:  size,
			End:   start + size,
		}
	}
	return items
}

// Measurements returns the geometry of every item, rebuilding it first if
// the count, padding, strategies or measured sizes changed.
// The slice is shared; callers must not modify it.
func (v *Virtualizer) Measurements() []Item {
	return v.measurements.Get()
}

// TotalSize is the scrollable extent: the end of the last item (or the
// leading padding if there are none) plus the trailing padding.
func (v *Virtualizer) TotalSize() float64 {
	items := v.Measurements()
	end := v.cfg.PaddingStart
	if n := len(items); n > 0 {
		end = items[n-1].End
	}
	return end + v.cfg.PaddingEnd
}
