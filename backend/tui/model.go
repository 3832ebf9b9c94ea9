// Package tui hosts a Virtualizer in a Bubble Tea program. Rows are
// strings, sizes are terminal lines, and a row's height is whatever
// lipgloss measures it at after rendering.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-theft-auto/virtual"
)

// Source supplies the rows of the list.
type Source interface {
	// Len returns the number of rows.
	Len() int

	// Row renders row index for the given width. It may span several lines.
	Row(index int, width int) string
}

// statusHeight is the number of lines below the list.
const statusHeight = 1

// maxPasses bounds how often one update re-lays out the window while
// measurements and scroll corrections settle.
const maxPasses = 4

// WheelLines is how many lines one mouse wheel notch scrolls.
var WheelLines = 3

// Model is a Bubble Tea model showing a virtualized list.
type Model struct {
	source Source
	list   *virtual.Virtualizer
	pane   *pane
	vp     viewport.Model
	keys   KeyMap

	cursor int
	width  int
	height int
	dirty  bool
	frame  string
}

// element is a rendered row; its bounding rect is its size in cells.
type element string

func (e element) BoundingRect() virtual.Rect {
	return virtual.Rect{
		Width:  float64(lipgloss.Width(string(e))),
		Height: float64(lipgloss.Height(string(e))),
	}
}

// New creates a model over source. Extra options (estimate, overscan,
// keys...) are applied after the model's own, so they can override them.
func New(source Source, opts ...virtual.Option) *Model {
	m := &Model{
		source: source,
		pane:   newPane(),
		vp:     viewport.New(0, 0),
		keys:   DefaultKeyMap(),
	}

	base := []virtual.Option{
		virtual.WithCount(source.Len()),
		virtual.WithEstimateSize(func(int) float64 { return 1 }),
		virtual.WithScrollElement(func() virtual.ScrollElement { return m.pane }),
		virtual.WithRectObserver(m.pane),
		virtual.WithOffsetObserver(m.pane),
		virtual.WithScroller(m.pane),
		virtual.WithOnChange(func(*virtual.Virtualizer) { m.dirty = true }),
	}
	m.list = virtual.New(append(base, opts...)...)
	m.list.Mount()
	return m
}

// Virtualizer returns the engine behind the list.
func (m *Model) Virtualizer() *virtual.Virtualizer {
	return m.list
}

// Cursor returns the selected row.
func (m *Model) Cursor() int {
	return m.cursor
}

// Close unsubscribes the engine from the pane.
func (m *Model) Close() {
	m.list.Unmount()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = max(msg.Height-statusHeight, 0)
		m.vp.Width = m.width
		m.vp.Height = m.height
		m.pane.resize(m.width, m.height)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		m.handleKey(msg)

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.pane.scroll(m.pane.offset - float64(WheelLines))
		case tea.MouseButtonWheelDown:
			m.pane.scroll(m.pane.offset + float64(WheelLines))
		}
	}

	m.render()
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	last := m.source.Len() - 1
	page := max(m.height-1, 1)

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(m.cursor-1, virtual.AlignAuto)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(m.cursor+1, virtual.AlignAuto)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(m.cursor-page, virtual.AlignAuto)
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.cursor+page, virtual.AlignAuto)
	case key.Matches(msg, m.keys.Home):
		m.moveCursor(0, virtual.AlignStart)
	case key.Matches(msg, m.keys.End):
		m.moveCursor(last, virtual.AlignEnd)
	case key.Matches(msg, m.keys.Center):
		m.moveCursor(m.cursor, virtual.AlignCenter)
	case key.Matches(msg, m.keys.Remeasure):
		m.list.Measure()
	}
}

func (m *Model) moveCursor(to int, align virtual.Align) {
	if m.source.Len() == 0 {
		return
	}
	m.cursor = min(max(to, 0), m.source.Len()-1)
	virtual.Logger().Debug("cursor moved", "cursor", m.cursor, "align", align)
	m.list.ScrollToIndex(m.cursor, virtual.WithAlign(align))
}

// render lays the window out until measuring and scroll corrections stop
// changing it, then runs the engine's after-render work.
func (m *Model) render() {
	if m.width == 0 || m.height == 0 {
		return
	}

	for pass := 0; pass < maxPasses; pass++ {
		m.dirty = false
		m.pane.content = m.list.TotalSize()
		m.pane.scroll(m.pane.offset)
		m.list.WillUpdate()
		m.frame = m.layout()
		m.list.DidRender()
		if !m.dirty {
			break
		}
	}
}

// layout renders the current virtual items into the viewport and reports
// their heights.
func (m *Model) layout() string {
	items := m.list.VirtualItems()
	if len(items) == 0 {
		m.vp.SetContent("")
		return m.vp.View()
	}

	offset := m.list.ScrollOffset()
	rows := make([]string, len(items))
	for i, item := range items {
		rows[i] = m.renderRow(item.Index)
	}

	m.vp.SetContent(strings.Join(rows, "\n"))
	m.vp.SetYOffset(int(offset - items[0].Start))
	view := m.vp.View()

	for i, item := range items {
		item.Measure(element(rows[i]))
	}
	return view
}

func (m *Model) renderRow(index int) string {
	prefix := "  "
	style := rowStyle
	switch {
	case index == m.cursor:
		prefix = "> "
		style = cursorStyle
	case index%2 == 1:
		style = rowAltStyle
	}

	text := m.source.Row(index, max(m.width-len(prefix), 0))
	lines := strings.Split(text, "\n")
	for i := range lines {
		if i > 0 {
			prefix = "  "
		}
		lines[i] = prefix + lines[i]
	}
	return style.Render(strings.Join(lines, "\n"))
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	return m.frame + "\n" + m.statusLine()
}

func (m *Model) statusLine() string {
	count := m.source.Len()
	position := statusCountStyle.Render(fmt.Sprintf("%d/%d", min(m.cursor+1, count), count))

	var help []string
	for _, b := range m.keys.ShortHelp() {
		help = append(help, b.Help().Key+" "+b.Help().Desc)
	}

	info := fmt.Sprintf(" offset %d  measured %d  %s",
		int(m.list.ScrollOffset()), m.list.MeasuredCount(), strings.Join(help, " · "))
	return lipgloss.NewStyle().MaxWidth(max(m.width, 1)).Render(position + statusStyle.Render(info))
}
