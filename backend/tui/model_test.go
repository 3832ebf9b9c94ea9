package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/virtual"
)

// lines is a source of numbered rows. Rows whose index is a multiple of
// tall (when set) span three lines.
type lines struct {
	n    int
	tall int
}

func (l lines) Len() int { return l.n }

func (l lines) Row(index int, _ int) string {
	row := fmt.Sprintf("row %04d", index)
	if l.tall > 0 && index%l.tall == 0 {
		row += "\n  detail\n  detail"
	}
	return row
}

func sized(t *testing.T, source Source, width, height int, opts ...virtual.Option) *Model {
	t.Helper()
	m := New(source, opts...)
	t.Cleanup(m.Close)
	m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return m
}

func press(m *Model, k tea.KeyType, times int) {
	for i := 0; i < times; i++ {
		m.Update(tea.KeyMsg{Type: k})
	}
}

func runes(m *Model, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestModelLoadingBeforeSize(t *testing.T) {
	m := New(lines{n: 10})
	defer m.Close()
	assert.Equal(t, "Loading...", m.View())
}

func TestModelInitialView(t *testing.T) {
	m := sized(t, lines{n: 1000}, 40, 11)
	view := m.View()

	assert.Contains(t, view, "> row 0000")
	assert.Contains(t, view, "row 0009")
	assert.NotContains(t, view, "row 0010", "overscan rows are clipped by the viewport")
	assert.Contains(t, view, "1/1000")
	assert.Equal(t, 11, lipglossHeight(view))
}

func TestModelCursorScrollsIntoView(t *testing.T) {
	m := sized(t, lines{n: 1000}, 40, 11)

	press(m, tea.KeyDown, 15)
	assert.Equal(t, 15, m.Cursor())
	assert.Equal(t, float64(6), m.Virtualizer().ScrollOffset())

	view := m.View()
	assert.Contains(t, view, "> row 0015")
	assert.Contains(t, view, "row 0006")
	assert.NotContains(t, view, "row 0005")

	press(m, tea.KeyUp, 12)
	assert.Equal(t, 3, m.Cursor())
	assert.Equal(t, float64(3), m.Virtualizer().ScrollOffset())
}

func TestModelHomeEnd(t *testing.T) {
	m := sized(t, lines{n: 1000}, 40, 11)

	press(m, tea.KeyEnd, 1)
	assert.Equal(t, 999, m.Cursor())
	assert.Equal(t, float64(990), m.Virtualizer().ScrollOffset())
	assert.Contains(t, m.View(), "> row 0999")

	runes(m, "g")
	assert.Equal(t, 0, m.Cursor())
	assert.Equal(t, float64(0), m.Virtualizer().ScrollOffset())
}

func TestModelPaging(t *testing.T) {
	m := sized(t, lines{n: 100}, 40, 11)

	press(m, tea.KeyPgDown, 1)
	assert.Equal(t, 9, m.Cursor())

	press(m, tea.KeyPgDown, 20)
	assert.Equal(t, 99, m.Cursor(), "clamped to the last row")

	press(m, tea.KeyPgUp, 1)
	assert.Equal(t, 90, m.Cursor())
}

func TestModelMouseWheel(t *testing.T) {
	m := sized(t, lines{n: 1000}, 40, 11)

	m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	assert.Equal(t, float64(6), m.Virtualizer().ScrollOffset())
	assert.Contains(t, m.View(), "row 0006")

	m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	assert.Equal(t, float64(0), m.Virtualizer().ScrollOffset(), "clamped at the top")
}

func TestModelMeasuresTallRows(t *testing.T) {
	m := sized(t, lines{n: 100, tall: 5}, 40, 11)
	v := m.Virtualizer()

	ms := v.Measurements()
	assert.Equal(t, float64(3), ms[0].Size)
	assert.Equal(t, float64(1), ms[1].Size)
	assert.Equal(t, float64(3), ms[5].Size)
	assert.Greater(t, v.TotalSize(), float64(100))

	// Every line of the frame belongs to the row the geometry says it does.
	view := m.View()
	frame := strings.Split(view, "\n")[:10]
	assert.Contains(t, frame[0], "row 0000")
	assert.Contains(t, frame[3], "row 0001")
	assert.Contains(t, frame[7], "row 0005")
}

func TestModelEndWithTallRows(t *testing.T) {
	m := sized(t, lines{n: 100, tall: 5}, 40, 11)

	press(m, tea.KeyEnd, 1)
	v := m.Virtualizer()

	last := v.Measurements()[99]
	assert.Equal(t, last.End-10, v.ScrollOffset(), "the last row ends at the bottom edge")
	assert.Contains(t, m.View(), "> row 0099")
}

func TestModelRemeasure(t *testing.T) {
	m := sized(t, lines{n: 100, tall: 5}, 40, 11)
	require.Positive(t, m.Virtualizer().MeasuredCount())

	runes(m, "r")
	// The render that follows the key measures the window again.
	assert.Positive(t, m.Virtualizer().MeasuredCount())
	assert.Equal(t, float64(3), m.Virtualizer().Measurements()[0].Size)
}

func TestModelQuit(t *testing.T) {
	m := sized(t, lines{n: 10}, 40, 11)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModelEmpty(t *testing.T) {
	m := sized(t, lines{n: 0}, 40, 11)
	press(m, tea.KeyDown, 3)
	press(m, tea.KeyEnd, 1)

	assert.Equal(t, 0, m.Cursor())
	assert.Contains(t, m.View(), "0/0")
}

func TestPaneClampsAndResyncs(t *testing.T) {
	p := newPane()
	p.resize(10, 5)
	p.content = 20

	var seen []float64
	defer p.ObserveOffset(nil, func(o float64) { seen = append(seen, o) })()

	p.scroll(7.6)
	p.scroll(100)
	p.scroll(100) // clamps to the current offset but is still reported

	assert.Equal(t, []float64{0, 7, 15, 15}, seen)
}

func lipglossHeight(s string) int {
	return strings.Count(s, "\n") + 1
}
