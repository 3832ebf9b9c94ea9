package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/go-theft-auto/virtual"
	"github.com/go-theft-auto/virtual/backend/tui"
	"github.com/go-theft-auto/virtual/cmd/virtualdemo/logger"
)

func init() {
	cmd := newTUICmd()
	rootCmd.AddCommand(cmd)
}

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Scroll a list in the terminal",
		Long: `Runs a Bubble Tea program over a list whose rows span one to
three lines. Rows are estimated at one line and measured as they render.

Logs go to a file (see --log-dir) since the terminal is taken.`,
		Example: `  virtualdemo tui
  virtualdemo tui --count 1000000 --debug`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI()
		},
	}
}

func runTUI() error {
	if horizontal {
		return errors.New("tui: the terminal list scrolls vertically only")
	}

	level := slog.LevelInfo
	if verbose || debug {
		level = slog.LevelDebug
	}
	path, err := logger.Init(logger.Options{Enabled: true, LogDir: logDir, Level: level})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()
	virtual.SetLogger(logger.L)

	logger.L.Info("starting tui", "count", count, "log", path)

	model := tui.New(demoSource{n: count}, engineOptions(1)...)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		logger.L.Error("tui error", "error", err)
		return err
	}

	logger.L.Info("tui exited normally", "measured", model.Virtualizer().MeasuredCount())
	return nil
}

// demoSource is a list whose rows have a stable, pseudo-random number of
// lines.
type demoSource struct {
	n int
}

func (s demoSource) Len() int { return s.n }

func (s demoSource) Row(index int, width int) string {
	lines := int(rowSize(index, 2.5))
	var b strings.Builder
	fmt.Fprintf(&b, "row %d", index)
	for i := 1; i < lines; i++ {
		b.WriteString("\n  ")
		b.WriteString(strings.Repeat("·", min(max(width-4, 0), 8*i)))
	}
	return b.String()
}
