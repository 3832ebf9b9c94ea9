package virtual

// DefaultRangeExtractor widens the visible range by the overscan on both
// sides, bounded to [0, Count-1], and returns every index in between.
var DefaultRangeExtractor RangeExtractor = RangeExtractorFunc(defaultExtract)

func defaultExtract(r Range) []int {
	start := max(r.StartIndex-r.Overscan, 0)
	end := min(r.EndIndex+r.Overscan, r.Count-1)
	if end < start {
		return nil
	}

	indexes := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		indexes = append(indexes, i)
	}
	return indexes
}

type indexDeps struct {
	extractorRev uint64
	visible      Range
	overscan     int
	count        int
}

func (v *Virtualizer) indexDeps() indexDeps {
	return indexDeps{
		extractorRev: v.extractorRev,
		visible:      v.visible.Get(),
		overscan:     v.cfg.Overscan,
		count:        v.cfg.Count,
	}
}

func (v *Virtualizer) computeIndexes(d indexDeps) []int {
	r := d.visible
	r.Overscan = d.overscan
	r.Count = d.count
	return v.cfg.RangeExtractor.Extract(r)
}

// Indexes returns the ordered indexes the range extractor chose to render.
func (v *Virtualizer) Indexes() []int {
	return v.indexes.Get()
}
