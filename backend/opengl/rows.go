package opengl

import "github.com/go-theft-auto/virtual"

// RowLayout gives the size a row is actually laid out at along the scroll
// axis, and its fill color.
type RowLayout func(index int) (size float64, color uint32)

// Row is a drawn row. It is the element rows report back to the virtualizer.
type Row struct {
	Width, Height float64
}

// BoundingRect implements virtual.Element.
func (r Row) BoundingRect() virtual.Rect {
	return virtual.Rect{Width: r.Width, Height: r.Height}
}

// Viewport is where a list is drawn, in window pixels.
type Viewport struct {
	X, Y, Width, Height float64
}

// DrawRows draws v's current items into vp, clipped to it, and reports
// each row's laid-out size through VirtualItem.Measure. It returns the
// number of rows drawn.
//
// Rows are measured after all of them are drawn, so one frame is drawn
// from a single consistent layout even if measuring shifts the offset.
func DrawRows(dl *DrawList, v *virtual.Virtualizer, vp Viewport, layout RowLayout) int {
	horizontal := v.Options().Horizontal
	offset := v.ScrollOffset()
	items := v.VirtualItems()

	dl.PushClipRect(float32(vp.X), float32(vp.Y), float32(vp.X+vp.Width), float32(vp.Y+vp.Height))
	defer dl.PopClipRect()

	rows := make([]Row, len(items))
	for i, item := range items {
		size, color := layout(item.Index)
		pos := item.Start - offset

		var x, y float64
		if horizontal {
			x, y = vp.X+pos, vp.Y
			rows[i] = Row{Width: size, Height: vp.Height}
		} else {
			x, y = vp.X, vp.Y+pos
			rows[i] = Row{Width: vp.Width, Height: size}
		}

		dl.AddRect(float32(x), float32(y), float32(rows[i].Width), float32(rows[i].Height), color)
		dl.AddRectOutline(float32(x), float32(y), float32(rows[i].Width), float32(rows[i].Height), rowBorder, 1)
	}

	for i, item := range items {
		item.Measure(rows[i])
	}
	return len(items)
}

var rowBorder = RGBA(0, 0, 0, 96)
