package virtual_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/virtual"
)

type pair struct{ a, b int }

func TestMemoRecomputesOnlyOnChange(t *testing.T) {
	x, y := 1, 2
	calls := 0
	sum := virtual.NewMemo("sum",
		func() pair { return pair{x, y} },
		func(d pair) int {
			calls++
			return d.a + d.b
		},
	)

	assert.Equal(t, 3, sum.Get())
	assert.Equal(t, 3, sum.Get())
	assert.Equal(t, 1, calls)
	assert.Equal(t, uint64(1), sum.Revision())

	y = 5
	assert.Equal(t, 6, sum.Get())
	assert.Equal(t, 2, calls)
	assert.Equal(t, uint64(2), sum.Revision())

	// Same value written again is not a change.
	y = 5
	sum.Get()
	assert.Equal(t, 2, calls)
}

func TestMemoOnChange(t *testing.T) {
	dep := 0
	var seen []int
	m := virtual.NewMemo("double",
		func() int { return dep },
		func(d int) int { return d * 2 },
		virtual.WithMemoDebug(func() bool { return true }),
	).OnChange(func(r int) { seen = append(seen, r) })

	m.Get()
	m.Get()
	dep = 4
	m.Get()

	assert.Equal(t, []int{0, 8}, seen)
}

func TestMemoReset(t *testing.T) {
	calls := 0
	m := virtual.NewMemo("const",
		func() int { return 0 },
		func(int) int {
			calls++
			return calls
		},
	)

	assert.Equal(t, 1, m.Get())
	m.Reset()
	assert.Equal(t, 2, m.Get())
}

// countingEstimator counts how often the engine asks for estimates.
type countingEstimator struct {
	calls int
}

func (e *countingEstimator) EstimateSize(int) float64 {
	e.calls++
	return 50
}

func TestVirtualizerScrollDoesNotRebuildMeasurements(t *testing.T) {
	est := &countingEstimator{}
	extracts := 0
	extractor := virtual.RangeExtractorFunc(func(r virtual.Range) []int {
		extracts++
		return virtual.DefaultRangeExtractor.Extract(r)
	})

	pane := newFakePane(300, 500)
	v, _ := mountedList(t, pane, 1000, virtual.WithEstimator(est), virtual.WithRangeExtractor(extractor))

	v.VirtualItems()
	assert.Equal(t, 1000, est.calls)
	assert.Equal(t, 1, extracts)

	pane.scroll(25)
	first := v.VirtualItems()
	assert.Equal(t, 2, extracts)

	// Both edges stay inside the same items.
	pane.scroll(40)
	again := v.VirtualItems()
	assert.Equal(t, 1000, est.calls, "measurements are not rebuilt on scroll")
	assert.Equal(t, 2, extracts, "extractor doesn't rerun while the range is unchanged")
	assert.Equal(t, indexesOf(first), indexesOf(again))

	// Crossing an item boundary moves the range.
	pane.scroll(60)
	v.VirtualItems()
	assert.Equal(t, 1000, est.calls)
	assert.Equal(t, 3, extracts)
}

func TestVirtualizerRemeasureRebuildsFromLowestIndex(t *testing.T) {
	est := &countingEstimator{}
	pane := newFakePane(300, 500)
	v, _ := mountedList(t, pane, 1000, virtual.WithEstimator(est))
	v.VirtualItems()
	est.calls = 0

	items := v.VirtualItems()
	items[7].Measure(rowOf(60))
	items[4].Measure(rowOf(60))
	v.Measurements()

	// Items 4..999 are laid out again; 4 and 7 come from the size cache.
	assert.Equal(t, 1000-4-2, est.calls)
}

func TestVirtualizerSetOptionsKeepsCacheForSameStrategies(t *testing.T) {
	est := &countingEstimator{}
	pane := newFakePane(300, 500)
	opts := []virtual.Option{
		virtual.WithCount(100),
		virtual.WithEstimator(est),
		virtual.WithScrollElement(func() virtual.ScrollElement { return pane }),
		virtual.WithRectObserver(pane),
		virtual.WithOffsetObserver(pane),
	}
	v := virtual.New(opts...)
	defer v.Mount()()

	itemAt(t, v, 2).Measure(rowOf(70))
	v.Measurements()
	est.calls = 0

	v.SetOptions(opts...)
	v.VirtualItems()
	assert.Equal(t, 0, est.calls, "nothing recomputed")
	assert.Equal(t, 1, v.MeasuredCount())

	// FixedSize values compare by value.
	v.SetOptions(append(opts, virtual.WithEstimator(virtual.FixedSize(50)))...)
	v.Measurements()
	assert.Equal(t, 0, v.MeasuredCount(), "a new estimator drops measured sizes")

	itemAt(t, v, 2).Measure(rowOf(70))
	v.SetOptions(append(opts, virtual.WithEstimator(virtual.FixedSize(50)))...)
	v.Measurements()
	assert.Equal(t, 1, v.MeasuredCount(), "an equal estimator keeps them")
}

// estimateOf builds a new estimator closure each call, from one literal.
func estimateOf(size float64) virtual.Option {
	return virtual.WithEstimateSize(func(int) float64 { return size })
}

func TestVirtualizerSetOptionsSwapsClosureEstimator(t *testing.T) {
	v := virtual.New(virtual.WithCount(10), estimateOf(50))
	require.Equal(t, float64(500), v.TotalSize())

	v.SetOptions(virtual.WithCount(10), estimateOf(30))
	assert.Equal(t, float64(300), v.TotalSize())
	assert.Equal(t, float64(30), v.Measurements()[9].Size)

	v.Measure()
	assert.Equal(t, float64(300), v.TotalSize(), "remeasuring keeps the new estimator")
}

func TestVirtualizerSetOptionsSameClosureKeepsSizes(t *testing.T) {
	pane := newFakePane(300, 500)
	estimate := estimateOf(50)
	opts := []virtual.Option{
		virtual.WithCount(100),
		estimate,
		virtual.WithScrollElement(func() virtual.ScrollElement { return pane }),
		virtual.WithRectObserver(pane),
		virtual.WithOffsetObserver(pane),
	}
	v := virtual.New(opts...)
	defer v.Mount()()

	itemAt(t, v, 2).Measure(rowOf(70))
	require.Equal(t, 1, v.MeasuredCount())

	v.SetOptions(opts...)
	v.Measurements()
	assert.Equal(t, 1, v.MeasuredCount(), "the same func value is the same estimator")

	v.SetOptions(append(opts, estimateOf(50))...)
	v.Measurements()
	assert.Equal(t, 0, v.MeasuredCount(), "a fresh closure is a new estimator")
	assert.Equal(t, float64(5000), v.TotalSize())
}
