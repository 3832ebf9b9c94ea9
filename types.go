package virtual

// Key identifies an item independently of its index.
// It must hold a comparable value; the default key is the index itself (int).
type Key = any

// Rect is the size of a scroll viewport or a rendered element.
type Rect struct {
	Width, Height float64
}

// Axis returns the extent along the scroll axis.
func (r Rect) Axis(horizontal bool) float64 {
	if horizontal {
		return r.Width
	}
	return r.Height
}

// Item is the geometry of one entry along the scroll axis.
// End is always Start + Size.
type Item struct {
	Key   Key
	Index int
	Start float64
	Size  float64
	End   float64
}

// Range is the tight window of items intersecting the viewport, together
// with the overscan and count a RangeExtractor needs to widen it.
type Range struct {
	StartIndex int
	EndIndex   int
	Overscan   int
	Count      int
}

// Align is where a scroll target should land inside the viewport.
type Align int

const (
	AlignAuto   Align = iota // Pick start or end, or do nothing if already visible
	AlignStart               // Target at the leading edge
	AlignCenter              // Target at the middle
	AlignEnd                 // Target at the trailing edge
)

// String returns the alignment name.
func (a Align) String() string {
	switch a {
	case AlignStart:
		return "start"
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "end"
	default:
		return "auto"
	}
}

// clampi clamps an int value to a range.
func clampi(v, minVal, maxVal int) int {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
