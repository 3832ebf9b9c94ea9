package virtual_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/virtual"
)

func TestScrollToOffsetAlign(t *testing.T) {
	tests := []struct {
		name   string
		start  float64
		target float64
		opts   []virtual.ScrollOption
		want   float64
	}{
		{"default start", 0, 1200, nil, 1200},
		{"start", 0, 1200, []virtual.ScrollOption{virtual.WithAlign(virtual.AlignStart)}, 1200},
		{"end", 0, 1200, []virtual.ScrollOption{virtual.WithAlign(virtual.AlignEnd)}, 700},
		{"center", 0, 1200, []virtual.ScrollOption{virtual.WithAlign(virtual.AlignCenter)}, 950},
		{"auto before viewport", 1000, 400, []virtual.ScrollOption{virtual.WithAlign(virtual.AlignAuto)}, 400},
		{"auto past viewport", 1000, 1600, []virtual.ScrollOption{virtual.WithAlign(virtual.AlignAuto)}, 1100},
		{"auto inside viewport", 1000, 1200, []virtual.ScrollOption{virtual.WithAlign(virtual.AlignAuto)}, 1200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pane := newFakePane(300, 500)
			v, _ := mountedList(t, pane, 1000)
			pane.scroll(tt.start)

			v.ScrollToOffset(tt.target, tt.opts...)

			require.Len(t, pane.scrolls, 1)
			assert.Equal(t, tt.want, pane.scrolls[0].offset)
			assert.Equal(t, tt.want, v.ScrollOffset())
		})
	}
}

func TestScrollToOffsetSmoothHint(t *testing.T) {
	pane := newFakePane(300, 500)
	v, _ := mountedList(t, pane, 100)
	v.ScrollToOffset(100)

	smoothPane := newFakePane(300, 500)
	sv, _ := mountedList(t, smoothPane, 100, virtual.EnableSmoothScroll())
	sv.ScrollToOffset(100)

	assert.False(t, pane.scrolls[0].smooth)
	assert.True(t, smoothPane.scrolls[0].smooth)
}

func TestScrollToIndexAlign(t *testing.T) {
	tests := []struct {
		name  string
		index int
		align virtual.Align
		want  float64
	}{
		{"start", 40, virtual.AlignStart, 2000},
		{"end", 40, virtual.AlignEnd, 1550},
		{"center", 40, virtual.AlignCenter, 1775},
		{"auto below", 40, virtual.AlignAuto, 1550},
		{"clamped high", 5000, virtual.AlignStart, 49_950},
		{"clamped low", -3, virtual.AlignStart, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pane := newFakePane(300, 500)
			v, _ := mountedList(t, pane, 1000)

			v.ScrollToIndex(tt.index, virtual.WithAlign(tt.align))

			require.NotEmpty(t, pane.scrolls)
			assert.Equal(t, tt.want, pane.scrolls[0].offset)
		})
	}
}

func TestScrollToIndexAutoAbove(t *testing.T) {
	pane := newFakePane(300, 500)
	v, _ := mountedList(t, pane, 1000)
	pane.scroll(5000)

	v.ScrollToIndex(10)

	require.Len(t, pane.scrolls, 1)
	assert.Equal(t, float64(500), pane.scrolls[0].offset)
}

func TestScrollToIndexAutoVisibleIsNoop(t *testing.T) {
	pane := newFakePane(300, 500)
	v, _ := mountedList(t, pane, 1000)
	pane.scroll(1000)

	v.ScrollToIndex(23)
	v.DidRender()

	assert.Empty(t, pane.scrolls)
}

func TestScrollToIndexEmptyList(t *testing.T) {
	pane := newFakePane(300, 500)
	v, _ := mountedList(t, pane, 0)

	v.ScrollToIndex(3, virtual.WithAlign(virtual.AlignStart))
	v.DidRender()

	assert.Empty(t, pane.scrolls)
}

func TestScrollToIndexSecondPassCorrectsEstimates(t *testing.T) {
	pane := newFakePane(300, 500)
	v, _ := mountedList(t, pane, 1000, virtual.WithOverscan(0))

	v.ScrollToIndex(100, virtual.WithAlign(virtual.AlignStart))
	require.Len(t, pane.scrolls, 1)
	assert.Equal(t, float64(5000), pane.scrolls[0].offset)

	// The host renders the landing window and finds items 90..99 (still
	// above the target and the viewport) were twice as tall. Here they are
	// reported directly, as if they had been rendered on the way down.
	for i := 90; i < 100; i++ {
		v.ScrollToOffset(float64(i * 50))
		itemAt(t, v, i).Measure(rowOf(100))
	}
	v.ScrollToOffset(5000)
	require.Equal(t, float64(5500), v.Measurements()[100].Start)

	calls := len(pane.scrolls)
	v.DidRender()

	require.Len(t, pane.scrolls, calls+1)
	assert.Equal(t, float64(5500), pane.scrolls[calls].offset, "second pass lands on the measured position")

	v.DidRender()
	assert.Len(t, pane.scrolls, calls+1, "the retry runs once")
}

func TestScrollToIndexNewerRequestReplacesRetry(t *testing.T) {
	pane := newFakePane(300, 500)
	v, _ := mountedList(t, pane, 1000)

	v.ScrollToIndex(100, virtual.WithAlign(virtual.AlignStart))
	v.ScrollToIndex(200, virtual.WithAlign(virtual.AlignStart))
	require.Len(t, pane.scrolls, 2)

	v.DidRender()

	require.Len(t, pane.scrolls, 3)
	assert.Equal(t, float64(10_000), pane.scrolls[2].offset)
}

func TestAfterRenderQueuedDuringDidRenderWaits(t *testing.T) {
	v := virtual.New()

	var ran []string
	v.AfterRender(func() {
		ran = append(ran, "first")
		v.AfterRender(func() { ran = append(ran, "second") })
	})

	v.DidRender()
	assert.Equal(t, []string{"first"}, ran)

	v.DidRender()
	assert.Equal(t, []string{"first", "second"}, ran)
}
