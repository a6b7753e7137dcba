// Package config provides YAML-based configuration loading for blockfall,
// with environment overrides and difficulty presets.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
)

// Config contains all game rules. Durations are in milliseconds.
type Config struct {
	Board    BoardConfig    `yaml:"board"`
	Timing   TimingConfig   `yaml:"timing"`
	Gameplay GameplayConfig `yaml:"gameplay"`
	Palette  []string       `yaml:"palette,flow" env:"BLOCKFALL_PALETTE" envSeparator:","`
	Shapes   []ShapeConfig  `yaml:"shapes"`
}

// BoardConfig defines the board size.
type BoardConfig struct {
	Rows    int `yaml:"rows" env:"BLOCKFALL_ROWS"`
	Columns int `yaml:"columns" env:"BLOCKFALL_COLUMNS"`
}

// TimingConfig defines the drop-speed schedule.
type TimingConfig struct {
	DropIntervalStartMS    int `yaml:"drop_interval_start_ms" env:"BLOCKFALL_DROP_INTERVAL_START_MS"`
	DropIntervalDecreaseMS int `yaml:"drop_interval_decrease_ms" env:"BLOCKFALL_DROP_INTERVAL_DECREASE_MS"`
	SpeedUpPeriodMS        int `yaml:"speed_up_period_ms" env:"BLOCKFALL_SPEED_UP_PERIOD_MS"`
	DropIntervalMinimumMS  int `yaml:"drop_interval_minimum_ms" env:"BLOCKFALL_DROP_INTERVAL_MINIMUM_MS"`
}

// GameplayConfig holds rule switches.
type GameplayConfig struct {
	HardDropLocks bool `yaml:"hard_drop_locks" env:"BLOCKFALL_HARD_DROP_LOCKS"`
	Ghost         bool `yaml:"ghost" env:"BLOCKFALL_GHOST"`
}

// ShapeConfig is one piece definition: a name and a flat row,col list.
type ShapeConfig struct {
	Name  string `yaml:"name"`
	Cells []int  `yaml:"cells,flow"`
}

// Engine converts the configuration into engine rules. Palette names and
// shape definitions are resolved here, so a malformed shape fails at load
// time rather than mid-game.
func (c Config) Engine() (engine.Config, error) {
	palette := make([]core.Color, 0, len(c.Palette))
	for _, name := range c.Palette {
		col, err := core.ParseColor(name)
		if err != nil {
			return engine.Config{}, fmt.Errorf("config: palette: %w", err)
		}
		palette = append(palette, col)
	}

	defs := make([]engine.ShapeDef, len(c.Shapes))
	for i, s := range c.Shapes {
		defs[i] = engine.ShapeDef{Name: s.Name, Cells: s.Cells}
	}
	catalog, err := engine.NewCatalog(defs)
	if err != nil {
		return engine.Config{}, fmt.Errorf("config: shapes: %w", err)
	}

	ec := engine.Config{
		Rows:    c.Board.Rows,
		Columns: c.Board.Columns,
		Timing: engine.Timing{
			DropIntervalStart:    ms(c.Timing.DropIntervalStartMS),
			DropIntervalDecrease: ms(c.Timing.DropIntervalDecreaseMS),
			SpeedUpPeriod:        ms(c.Timing.SpeedUpPeriodMS),
			DropIntervalMinimum:  ms(c.Timing.DropIntervalMinimumMS),
		},
		Catalog:       catalog,
		Palette:       palette,
		HardDropLocks: c.Gameplay.HardDropLocks,
		Ghost:         c.Gameplay.Ghost,
	}
	if err := ec.Validate(); err != nil {
		return engine.Config{}, fmt.Errorf("config: %w", err)
	}
	return ec, nil
}

// Validate reports whether the configuration produces valid engine rules.
func (c Config) Validate() error {
	_, err := c.Engine()
	return err
}

// IsConfigError reports whether err comes from rule validation.
func IsConfigError(err error) bool {
	var cfgErr *engine.ConfigError
	return errors.As(err, &cfgErr)
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
