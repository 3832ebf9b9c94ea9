package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-theft-auto/virtual"
)

var (
	// Global flags
	count      int
	overscan   int
	estimate   float64
	horizontal bool
	smooth     bool
	verbose    bool
	debug      bool
	logDir     string
)

var rootCmd = &cobra.Command{
	Use:   "virtualdemo",
	Short: "Exercise the virtual list engine",
	Long: `virtualdemo renders very long lists through the virtual engine.
Only the rows inside the viewport (plus overscan) are ever laid out; rows
report their real size after rendering and the engine corrects the scroll
position when a row above the viewport turns out bigger or smaller than
estimated.`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		virtual.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&count, "count", "n", 100_000, "Number of rows")
	rootCmd.PersistentFlags().IntVar(&overscan, "overscan", 3, "Rows rendered beyond each viewport edge")
	rootCmd.PersistentFlags().Float64Var(&estimate, "estimate", 0, "Estimated row size (default depends on the host)")
	rootCmd.PersistentFlags().BoolVar(&horizontal, "horizontal", false, "Scroll along x instead of y")
	rootCmd.PersistentFlags().BoolVar(&smooth, "smooth", false, "Smooth programmatic scrolling")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log every memo recompute and scroll correction")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Directory for tui log files (default ~/.virtualdemo/logs)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// engineOptions turns the global flags into engine options. defaultEstimate
// is used when --estimate isn't given.
func engineOptions(defaultEstimate float64) []virtual.Option {
	size := estimate
	if size <= 0 {
		size = defaultEstimate
	}

	opts := []virtual.Option{
		virtual.WithCount(count),
		virtual.WithOverscan(overscan),
		virtual.WithEstimator(virtual.FixedSize(size)),
		virtual.WithDebug(debug),
	}
	if horizontal {
		opts = append(opts, virtual.Horizontal())
	}
	if smooth {
		opts = append(opts, virtual.EnableSmoothScroll())
	}
	return opts
}

// printJSON outputs data as indented JSON
func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// rowSize is the size row i really has: between half and one and a half
// times the estimate, stable per row.
func rowSize(i int, estimate float64) float64 {
	h := uint32(i)*2654435761 + 0x9E3779B9
	h ^= h >> 15
	return estimate * (0.5 + float64(h%101)/100)
}
