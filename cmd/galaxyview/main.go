// Command galaxyview draws the generated galaxy in the terminal.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"galaxy-server/internal/galaxy"
	"galaxy-server/internal/procgen"
	"galaxy-server/internal/shared/logger"
	"galaxy-server/internal/ui"
)

func main() {
	defaults := galaxy.DefaultConfig()

	seed := flag.Uint("seed", uint(defaults.Seed), "Galaxy seed")
	stars := flag.Int("stars", defaults.NumStars, "Number of stars")
	haze := flag.Float64("haze", defaults.HazeRatio, "Haze clouds per star")
	arms := flag.Int("arms", defaults.Shape.Arms, "Number of spiral arms")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFile := flag.String("log-file", "", "Write logs to this file while the viewer runs")
	summary := flag.Bool("summary", false, "Print the galaxy summary as JSON instead of starting the viewer")
	flag.Parse()

	if err := run(options{
		seed:     *seed,
		stars:    *stars,
		haze:     *haze,
		arms:     *arms,
		logLevel: *logLevel,
		logFile:  *logFile,
		summary:  *summary,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "galaxyview: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	seed     uint
	stars    int
	haze     float64
	arms     int
	logLevel string
	logFile  string
	summary  bool
}

func run(opts options) error {
	if opts.seed > uint(^uint32(0)) {
		return fmt.Errorf("seed %d does not fit in 32 bits", opts.seed)
	}
	if opts.stars < 0 {
		return fmt.Errorf("stars must not be negative")
	}
	if opts.arms < 1 {
		return fmt.Errorf("arms must be at least 1")
	}

	// The viewer owns the screen, so logs only go to stderr in summary mode.
	var logOut io.Writer = io.Discard
	switch {
	case opts.logFile != "":
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	case opts.summary:
		logOut = os.Stderr
	}
	slog.SetDefault(logger.New(logOut, opts.logLevel, false))
	log := slog.With("component", "galaxyview")

	shape := procgen.DefaultShape()
	shape.Arms = opts.arms

	started := time.Now()
	g := galaxy.New(galaxy.Config{
		Seed:      uint32(opts.seed),
		NumStars:  opts.stars,
		HazeRatio: opts.haze,
		Shape:     shape,
	})
	log.Info("Galaxy generated",
		"seed", opts.seed,
		"stars", len(g.Stars),
		"haze", len(g.Haze),
		"duration", time.Since(started),
	)

	if opts.summary {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(g.Summary()); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
		return nil
	}

	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("stdout is not a terminal; use --summary for headless output")
	}

	model := ui.New(g)
	if width, height, err := term.GetSize(fd); err == nil {
		model = model.SetSize(width, height)
	} else {
		log.Warn("Could not read terminal size", "error", err)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}
