package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"os"
	"path/filepath"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spf13/cobra"

	"github.com/go-theft-auto/virtual"
	"github.com/go-theft-auto/virtual/backend/opengl"
)

var shotDir string

func init() {
	cmd := newShotCmd()
	rootCmd.AddCommand(cmd)
}

func newShotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shot",
		Short: "Render list scenarios offscreen and save them as JPEG",
		Long: `Renders a few scroll scenarios in a hidden window, letting each one
settle for several frames so rows get measured and scroll-to-index retries
run, then saves the framebuffer of each.`,
		Example: `  virtualdemo shot
  virtualdemo shot --out /tmp/shots --count 1000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShot(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&shotDir, "out", "o", filepath.Join("doc", "imgs"), "Output directory")
	return cmd
}

type scenario struct {
	name       string // filename without extension
	width      int
	height     int
	horizontal bool
	scroll     func(v *virtual.Virtualizer) // run before the first frame
	frames     int                          // frames to render (0 = default 4)
}

func scenarios() []scenario {
	return []scenario{
		{name: "top", width: 400, height: 300},
		{
			name: "index_center", width: 400, height: 300,
			scroll: func(v *virtual.Virtualizer) {
				v.ScrollToIndex(count/2, virtual.WithAlign(virtual.AlignCenter))
			},
		},
		{
			name: "end", width: 400, height: 300,
			scroll: func(v *virtual.Virtualizer) {
				v.ScrollToIndex(count-1, virtual.WithAlign(virtual.AlignEnd))
			},
			frames: 6,
		},
		{
			name: "horizontal", width: 600, height: 120, horizontal: true,
			scroll: func(v *virtual.Virtualizer) { v.ScrollToOffset(1000) },
		},
	}
}

func runShot(out io.Writer) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(800, 600, "virtualdemo-shot", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(800, 600)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer renderer.Delete()

	if err := os.MkdirAll(shotDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := scenarios()
	for _, s := range shots {
		if err := capture(renderer, s); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Fprintf(out, "  %s.jpg (%dx%d)\n", s.name, s.width, s.height)
	}

	fmt.Fprintf(out, "\nGenerated %d screenshots in %s/\n", len(shots), shotDir)
	return nil
}

func capture(renderer *opengl.Renderer, s scenario) error {
	renderer.Resize(s.width, s.height)

	state := opengl.NewScrollState(float64(s.width), float64(s.height))
	state.SetHorizontal(s.horizontal)

	rowEstimate := 40.0
	if s.horizontal {
		rowEstimate = 120
	}
	list := virtual.New(append(engineOptions(rowEstimate),
		virtual.WithOpt(virtual.OptHorizontal, s.horizontal),
		virtual.WithScrollElement(func() virtual.ScrollElement { return state }),
		virtual.WithRectObserver(state),
		virtual.WithOffsetObserver(state),
		virtual.WithScroller(state),
	)...)
	defer list.Mount()()

	layout := func(index int) (float64, uint32) {
		shade := uint8(60 + index%2*30)
		return rowSize(index, rowEstimate), opengl.RGBA(shade, shade+40, shade, 255)
	}
	vp := opengl.Viewport{Width: float64(s.width), Height: float64(s.height)}

	state.SetContentSize(list.TotalSize())
	if s.scroll != nil {
		s.scroll(list)
	}

	dl := opengl.AcquireDrawList()
	defer opengl.ReleaseDrawList(dl)

	frames := 4
	if s.frames > 0 {
		frames = s.frames
	}
	for i := 0; i < frames; i++ {
		gl.Viewport(0, 0, int32(s.width), int32(s.height))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		state.Tick(1)
		state.SetContentSize(list.TotalSize())
		list.WillUpdate()

		dl.Clear()
		drawFrame(dl, list, vp, layout)
		if err := renderer.Render(dl); err != nil {
			return err
		}
		list.DidRender()
	}

	pixels := make([]byte, s.width*s.height*4)
	gl.ReadPixels(0, 0, int32(s.width), int32(s.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	f, err := os.Create(filepath.Join(shotDir, s.name+".jpg"))
	if err != nil {
		return err
	}
	defer f.Close()
	return encodeFramebuffer(f, pixels, s.width, s.height)
}

// encodeFramebuffer writes RGBA pixels read from GL (bottom row first) as
// a JPEG. pixels is flipped in place.
func encodeFramebuffer(w io.Writer, pixels []byte, width, height int) error {
	if len(pixels) != width*height*4 {
		return fmt.Errorf("framebuffer: got %d bytes for %dx%d", len(pixels), width, height)
	}
	flipRows(pixels, width*4, height)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, pixels)
	return jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
}

// flipRows reverses the order of height rows of rowLen bytes.
func flipRows(pixels []byte, rowLen, height int) {
	tmp := make([]byte, rowLen)
	for y := 0; y < height/2; y++ {
		top := y * rowLen
		bot := (height - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}
}
