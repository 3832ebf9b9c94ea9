package main

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-theft-auto/virtual"
	"github.com/go-theft-auto/virtual/backend/opengl"
)

var (
	benchSeed  int64
	benchSteps int
	benchJSON  bool
)

func init() {
	cmd := newBenchCmd()
	rootCmd.AddCommand(cmd)
}

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Scroll a list headlessly and report engine work",
		Long: `Drives a virtualizer through random wheel scrolls, jumps to random
rows and resizes, rendering and measuring each frame without a window.

Reports how often the engine estimated sizes, extracted ranges and
notified the host, which shows how much of the work its memoization saves.`,
		Example: `  virtualdemo bench
  virtualdemo bench --count 1000000 --steps 5000 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runBench(cmd.OutOrStdout(), benchConfig{
				Seed:    benchSeed,
				Steps:   benchSteps,
				Options: engineOptions(40),
				JSON:    benchJSON,
			})
			return err
		},
	}
	cmd.Flags().Int64Var(&benchSeed, "seed", 1, "Random seed")
	cmd.Flags().IntVar(&benchSteps, "steps", 1000, "Number of frames")
	cmd.Flags().BoolVar(&benchJSON, "json", false, "Output as JSON")
	return cmd
}

type benchConfig struct {
	Seed    int64
	Steps   int
	Options []virtual.Option
	JSON    bool
}

// BenchResult is what bench reports.
type BenchResult struct {
	Count         int     `json:"count"`
	Steps         int     `json:"steps"`
	RowsDrawn     int     `json:"rows_drawn"`
	Measured      int     `json:"measured"`
	EstimateCalls int     `json:"estimate_calls"`
	ExtractCalls  int     `json:"extract_calls"`
	Notifications int     `json:"notifications"`
	TotalSize     float64 `json:"total_size"`
	FinalOffset   float64 `json:"final_offset"`
	ElapsedMS     float64 `json:"elapsed_ms"`
}

type countingEstimator struct {
	est   virtual.Estimator
	calls int
}

func (c *countingEstimator) EstimateSize(index int) float64 {
	c.calls++
	return c.est.EstimateSize(index)
}

type countingExtractor struct {
	calls int
}

func (c *countingExtractor) Extract(r virtual.Range) []int {
	c.calls++
	return virtual.DefaultRangeExtractor.Extract(r)
}

// runBench runs the benchmark and writes its report to w.
func runBench(w io.Writer, cfg benchConfig) (BenchResult, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))

	state := opengl.NewScrollState(800, 600)
	extractor := &countingExtractor{}
	var notifications int

	list := virtual.New(cfg.Options...)
	opts := list.Options()
	estimator := &countingEstimator{est: opts.Estimator}
	state.SetHorizontal(opts.Horizontal)

	list.SetOptions(append(cfg.Options,
		virtual.WithEstimator(estimator),
		virtual.WithRangeExtractor(extractor),
		virtual.WithScrollElement(func() virtual.ScrollElement { return state }),
		virtual.WithRectObserver(state),
		virtual.WithOffsetObserver(state),
		virtual.WithScroller(state),
		virtual.WithOnChange(func(*virtual.Virtualizer) { notifications++ }),
	)...)
	defer list.Mount()()

	estimate := opts.Estimator.EstimateSize(0)
	layout := func(index int) (float64, uint32) {
		return rowSize(index, estimate), 0
	}

	dl := opengl.AcquireDrawList()
	defer opengl.ReleaseDrawList(dl)

	res := BenchResult{Count: opts.Count, Steps: cfg.Steps}
	start := time.Now()
	for step := 0; step < cfg.Steps; step++ {
		switch r := rng.Intn(100); {
		case r < 70:
			state.Wheel(0, float64(rng.Intn(7)-3))
		case r < 85 && opts.Count > 0:
			list.ScrollToIndex(rng.Intn(opts.Count), virtual.WithAlign(virtual.Align(rng.Intn(4))))
		case r < 95:
			rect := state.Rect()
			if opts.Horizontal {
				state.Resize(float64(400+rng.Intn(800)), rect.Height)
			} else {
				state.Resize(rect.Width, float64(400+rng.Intn(400)))
			}
		default:
			list.Measure()
		}

		state.Tick(1.0 / 60)
		state.SetContentSize(list.TotalSize())
		list.WillUpdate()
		rect := state.Rect()
		dl.Clear()
		res.RowsDrawn += opengl.DrawRows(dl, list, opengl.Viewport{Width: rect.Width, Height: rect.Height}, layout)
		list.DidRender()
	}
	res.ElapsedMS = float64(time.Since(start).Microseconds()) / 1000

	res.Measured = list.MeasuredCount()
	res.EstimateCalls = estimator.calls
	res.ExtractCalls = extractor.calls
	res.Notifications = notifications
	res.TotalSize = list.TotalSize()
	res.FinalOffset = list.ScrollOffset()

	if cfg.JSON {
		return res, printJSON(w, res)
	}
	return res, printBench(w, res)
}

func printBench(w io.Writer, r BenchResult) error {
	_, err := fmt.Fprintf(w, `Rows:           %d
Frames:         %d
Rows drawn:     %d (%.1f per frame)
Measured:       %d
Estimates:      %d
Extractions:    %d
Notifications:  %d
Total size:     %.0f
Final offset:   %.0f
Elapsed:        %.2fms
`,
		r.Count, r.Steps, r.RowsDrawn, float64(r.RowsDrawn)/float64(max(r.Steps, 1)),
		r.Measured, r.EstimateCalls, r.ExtractCalls, r.Notifications,
		r.TotalSize, r.FinalOffset, r.ElapsedMS)
	return err
}
