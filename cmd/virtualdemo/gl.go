package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spf13/cobra"

	"github.com/go-theft-auto/virtual"
	"github.com/go-theft-auto/virtual/backend/opengl"
)

const (
	windowWidth  = 800
	windowHeight = 600
	windowTitle  = "virtualdemo"
)

var glPane bool

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()

	cmd := newGLCmd()
	rootCmd.AddCommand(cmd)
}

func newGLCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gl",
		Short: "Scroll a list in an OpenGL window",
		Long: `Opens a GLFW window showing a list of variable-size rows.

Keys: up/k, down/j, page up, page down/space, home, end, esc/q to quit.
With --pane the list scrolls inside a sub-rectangle of the window.`,
		Example: `  virtualdemo gl
  virtualdemo gl --count 1000000 --smooth
  virtualdemo gl --horizontal --pane`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGL()
		},
	}
	cmd.Flags().BoolVar(&glPane, "pane", false, "Scroll inside a pane instead of the whole window")
	return cmd
}

func runGL() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	fbw, fbh := window.GetFramebufferSize()
	renderer, err := opengl.NewRenderer(fbw, fbh)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer renderer.Delete()

	win := opengl.NewWindow(window)

	// The list scrolls either the whole window or a pane inset into it.
	state := win.ScrollState
	vp := opengl.Viewport{Width: float64(fbw), Height: float64(fbh)}
	if glPane {
		vp = opengl.Viewport{X: 100, Y: 80, Width: float64(fbw) - 200, Height: float64(fbh) - 160}
		state = win.AddPane(vp.X, vp.Y, vp.Width, vp.Height).ScrollState
	}
	state.SetHorizontal(horizontal)

	rowEstimate := 40.0
	if horizontal {
		rowEstimate = 120
	}
	opts := append(engineOptions(rowEstimate),
		virtual.WithScrollElement(func() virtual.ScrollElement { return state }),
		virtual.WithRectObserver(state),
		virtual.WithOffsetObserver(state),
		virtual.WithScroller(state),
	)
	list := virtual.New(opts...)
	defer list.Mount()()

	layout := func(index int) (float64, uint32) {
		shade := uint8(60 + index%2*30)
		return rowSize(index, rowEstimate), opengl.RGBA(shade, shade, shade+40, 255)
	}

	dl := opengl.AcquireDrawList()
	defer opengl.ReleaseDrawList(dl)

	cursor := 0
	last := time.Now()
	for !window.ShouldClose() {
		glfw.PollEvents()

		for _, k := range win.Keys() {
			switch k {
			case opengl.KeyEscape:
				window.SetShouldClose(true)
			case opengl.KeyHome:
				cursor = 0
				list.ScrollToIndex(cursor, virtual.WithAlign(virtual.AlignStart))
			case opengl.KeyEnd:
				cursor = count - 1
				list.ScrollToIndex(cursor, virtual.WithAlign(virtual.AlignEnd))
			case opengl.KeyUp, opengl.KeyDown, opengl.KeyPageUp, opengl.KeyPageDown:
				cursor = min(max(cursor+keyStep(k, list), 0), count-1)
				list.ScrollToIndex(cursor)
			}
		}

		now := time.Now()
		state.Tick(now.Sub(last).Seconds())
		last = now

		w, h := window.GetFramebufferSize()
		if !glPane {
			vp.Width, vp.Height = float64(w), float64(h)
		}
		renderer.Resize(w, h)
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		state.SetContentSize(list.TotalSize())
		list.WillUpdate()

		dl.Clear()
		drawFrame(dl, list, vp, layout)
		if err := renderer.Render(dl); err != nil {
			return fmt.Errorf("render: %w", err)
		}
		list.DidRender()

		window.SwapBuffers()
	}

	return nil
}

// drawFrame draws the list with a frame around its viewport.
func drawFrame(dl *opengl.DrawList, list *virtual.Virtualizer, vp opengl.Viewport, layout opengl.RowLayout) {
	opengl.DrawRows(dl, list, vp, layout)
	dl.AddRectOutline(float32(vp.X), float32(vp.Y), float32(vp.Width), float32(vp.Height), opengl.RGBA(200, 200, 200, 255), 1)
}

// keyStep is how many rows a navigation key moves the cursor.
func keyStep(k opengl.Key, list *virtual.Virtualizer) int {
	page := max(len(list.VirtualItems())-2*overscan-1, 1)
	switch k {
	case opengl.KeyUp:
		return -1
	case opengl.KeyDown:
		return 1
	case opengl.KeyPageUp:
		return -page
	case opengl.KeyPageDown:
		return page
	}
	return 0
}
