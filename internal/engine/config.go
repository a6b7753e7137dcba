package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Config fixes the rules of one game. It is not changed while a game runs.
type Config struct {
	Rows    int
	Columns int
	Timing  Timing
	Catalog Catalog
	Palette []core.Color

	// HardDropLocks locks the piece immediately after a hard drop instead
	// of waiting for the next tick.
	HardDropLocks bool

	// Ghost overlays the hard-drop landing position on rendered frames.
	Ghost bool
}

// DefaultConfig returns a 20×15 board with the standard tetrominoes.
func DefaultConfig() Config {
	return Config{
		Rows:    20,
		Columns: 15,
		Timing: Timing{
			DropIntervalStart:    500 * time.Millisecond,
			DropIntervalDecrease: 25 * time.Millisecond,
			SpeedUpPeriod:        30 * time.Second,
			DropIntervalMinimum:  100 * time.Millisecond,
		},
		Catalog: Tetrominoes(),
		Palette: []core.Color{
			core.ColorCyan, core.ColorYellow, core.ColorMagenta, core.ColorBlue,
			core.ColorOrange, core.ColorGreen, core.ColorRed,
		},
		HardDropLocks: true,
		Ghost:         true,
	}
}

// ConfigError lists every problem found in a Config.
type ConfigError struct {
	Problems []string
}

func (e *ConfigError) Error() string {
	return "engine: invalid config: " + strings.Join(e.Problems, "; ")
}

// Validate checks the config and returns a *ConfigError describing every
// problem, or nil.
func (c Config) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if c.Rows <= 0 {
		add("rows must be positive, got %d", c.Rows)
	}
	if c.Columns <= 0 {
		add("columns must be positive, got %d", c.Columns)
	}
	if c.Timing.DropIntervalStart <= 0 {
		add("drop interval start must be positive, got %v", c.Timing.DropIntervalStart)
	}
	if c.Timing.DropIntervalMinimum <= 0 {
		add("drop interval minimum must be positive, got %v", c.Timing.DropIntervalMinimum)
	}
	if c.Timing.DropIntervalMinimum > c.Timing.DropIntervalStart {
		add("drop interval minimum %v exceeds start %v", c.Timing.DropIntervalMinimum, c.Timing.DropIntervalStart)
	}
	if c.Timing.DropIntervalDecrease < 0 {
		add("drop interval decrease must not be negative, got %v", c.Timing.DropIntervalDecrease)
	}
	if c.Timing.SpeedUpPeriod < 0 {
		add("speed-up period must not be negative, got %v", c.Timing.SpeedUpPeriod)
	}
	if len(c.Catalog) == 0 {
		add("shape catalog is empty")
	}
	for _, s := range c.Catalog {
		if s == nil {
			add("shape catalog contains a nil shape")
			continue
		}
		if c.Columns > 0 && s.Width > c.Columns {
			add("shape %q is %d wide, board has %d columns", s.Name, s.Width, c.Columns)
		}
		if c.Rows > 0 && s.Height > c.Rows {
			add("shape %q is %d tall, board has %d rows", s.Name, s.Height, c.Rows)
		}
	}
	if len(c.Palette) == 0 {
		add("color palette is empty")
	}

	if len(problems) > 0 {
		return &ConfigError{Problems: problems}
	}
	return nil
}
