package virtual

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindNearest(t *testing.T) {
	values := []float64{0, 10, 20, 20, 35, 50}
	at := func(i int) float64 { return values[i] }
	last := len(values) - 1

	tests := []struct {
		target float64
		want   int
	}{
		{-5, 0},
		{0, 0},
		{5, 0},
		{10, 1},
		{34, 3},
		{35, 4},
		{49, 4},
		{50, 5},
		{999, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, findNearest(0, last, at, tt.target), "target %v", tt.target)
	}

	// Equal values: any exact match is acceptable.
	got := findNearest(0, last, at, 20)
	assert.Contains(t, []int{2, 3}, got)

	assert.Equal(t, 0, findNearest(0, -1, at, 10), "empty interval")
}

func TestBuildMeasurementsReusesPrefix(t *testing.T) {
	sizes := newSizeCache()
	estimates := 0
	est := EstimatorFunc(func(int) float64 {
		estimates++
		return 10
	})

	first := buildMeasurements(nil, 0, 6, 5, est, IndexKey, sizes)
	require.Len(t, first, 6)
	assert.Equal(t, 6, estimates)
	assert.Equal(t, Item{Key: 0, Index: 0, Start: 5, Size: 10, End: 15}, first[0])

	sizes.Set(3, 40)
	estimates = 0
	second := buildMeasurements(first, 3, 6, 5, est, IndexKey, sizes)

	assert.Equal(t, 2, estimates, "only items after the measured one are estimated")
	assert.Equal(t, first[:3], second[:3])
	assert.Equal(t, Item{Key: 3, Index: 3, Start: 35, Size: 40, End: 75}, second[3])
	assert.Equal(t, float64(95), second[5].End)
	assert.Equal(t, float64(10), first[3].Size, "the previous build is left untouched")
}

func TestBuildMeasurementsFromBeyondPrev(t *testing.T) {
	sizes := newSizeCache()
	prev := buildMeasurements(nil, 0, 3, 0, FixedSize(10), IndexKey, sizes)

	// Growing the list with a stale from index reuses only what exists.
	grown := buildMeasurements(prev, 10, 5, 0, FixedSize(10), IndexKey, sizes)
	require.Len(t, grown, 5)
	assert.Equal(t, float64(40), grown[4].Start)
}

func TestSameIdentity(t *testing.T) {
	fn := func(int) float64 { return 1 }
	other := func(int) float64 { return 2 }
	keys := &struct{ n int }{}
	sizeOf := func(size float64) EstimatorFunc {
		return func(int) float64 { return size }
	}
	captured := sizeOf(50)

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"both nil", nil, nil, true},
		{"one nil", nil, FixedSize(1), false},
		{"equal values", FixedSize(50), FixedSize(50), true},
		{"different values", FixedSize(50), FixedSize(40), false},
		{"different types", FixedSize(50), EstimatorFunc(fn), false},
		{"same func", EstimatorFunc(fn), EstimatorFunc(fn), true},
		{"different funcs", EstimatorFunc(fn), EstimatorFunc(other), false},
		{"same closure", captured, captured, true},
		{"closures from one literal", sizeOf(50), sizeOf(30), false},
		{"equal captures, new closure", captured, sizeOf(50), false},
		{"same pointer", keys, keys, true},
		{"different pointers", keys, &struct{ n int }{}, false},
		{"defaults", DefaultRangeExtractor, DefaultRangeExtractor, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sameIdentity(tt.a, tt.b))
		})
	}

	s := []int{1, 2, 3}
	assert.True(t, sameIdentity(s, s))
	assert.False(t, sameIdentity(s, s[:2]))
}

func TestIsNil(t *testing.T) {
	var fn func()
	var p *Virtualizer
	var e Estimator

	assert.True(t, isNil(nil))
	assert.True(t, isNil(fn))
	assert.True(t, isNil(p))
	assert.True(t, isNil(e))
	assert.False(t, isNil(0))
	assert.False(t, isNil(FixedSize(0)))
	assert.False(t, isNil(func() {}))
}

func TestSizeCacheRevision(t *testing.T) {
	c := newSizeCache()
	r0 := c.Revision()

	c.Set("a", 10)
	assert.Greater(t, c.Revision(), r0)
	size, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, float64(10), size)

	r1 := c.Revision()
	c.Clear()
	assert.Greater(t, c.Revision(), r1)
	assert.Equal(t, 0, c.Len())
}
