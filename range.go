package virtual

// findNearest returns the index in [low, high] whose value equals target, or
// failing that the greatest index whose value is below it. Values must be
// non-decreasing. Returns 0 when every value is above target or the
// interval is empty.
func findNearest(low, high int, value func(int) float64, target float64) int {
	for low <= high {
		middle := (low + high) / 2
		current := value(middle)

		switch {
		case current < target:
			low = middle + 1
		case current > target:
			high = middle - 1
		default:
			return middle
		}
	}

	if low > 0 {
		return low - 1
	}
	return 0
}

// CalculateRange finds the smallest run of items covering the viewport
// [scrollOffset, scrollOffset+outerSize).
//
// The start is found by binary search over item starts (an item starting
// exactly at the offset wins), so it costs O(log n). The end walks forward
// from the start until an item reaches the far edge, which is O(k) in the
// number of visible items. An empty list yields (0, 0).
func CalculateRange(items []Item, outerSize, scrollOffset float64) (startIndex, endIndex int) {
	last := len(items) - 1

	startIndex = findNearest(0, last, func(i int) float64 { return items[i].Start }, scrollOffset)
	endIndex = startIndex

	for endIndex < last && items[endIndex].End < scrollOffset+outerSize {
		endIndex++
	}
	return startIndex, endIndex
}

type rangeDeps struct {
	measurementsRev uint64
	outerSize       float64
	scrollOffset    float64
}

func (v *Virtualizer) rangeDeps() rangeDeps {
	return rangeDeps{
		measurementsRev: v.measurements.Revision(),
		outerSize:       v.Size(),
		scrollOffset:    v.scrollOffset,
	}
}

func (v *Virtualizer) computeRange(d rangeDeps) Range {
	start, end := CalculateRange(v.measurements.Get(), d.outerSize, d.scrollOffset)
	return Range{StartIndex: start, EndIndex: end}
}

// Range returns the visible range together with the current overscan and count.
func (v *Virtualizer) Range() Range {
	r := v.visible.Get()
	r.Overscan = v.cfg.Overscan
	r.Count = v.cfg.Count
	return r
}
