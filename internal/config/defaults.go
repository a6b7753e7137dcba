package config

import (
	_ "embed"
)

//go:embed defaults/blockfall.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It matches the embedded
// defaults/blockfall.yaml and is used if that file cannot be parsed.
func Default() Config {
	return Config{
		Board: BoardConfig{Rows: 20, Columns: 15},
		Timing: TimingConfig{
			DropIntervalStartMS:    500,
			DropIntervalDecreaseMS: 25,
			SpeedUpPeriodMS:        30000,
			DropIntervalMinimumMS:  100,
		},
		Gameplay: GameplayConfig{HardDropLocks: true, Ghost: true},
		Palette:  []string{"cyan", "yellow", "magenta", "blue", "orange", "green", "red"},
		Shapes: []ShapeConfig{
			{Name: "I", Cells: []int{0, 0, 0, 1, 0, 2, 0, 3}},
			{Name: "O", Cells: []int{0, 0, 0, 1, 1, 0, 1, 1}},
			{Name: "T", Cells: []int{0, 0, 0, 1, 0, 2, 1, 1}},
			{Name: "J", Cells: []int{0, 0, 1, 0, 1, 1, 1, 2}},
			{Name: "L", Cells: []int{0, 2, 1, 0, 1, 1, 1, 2}},
			{Name: "S", Cells: []int{0, 1, 0, 2, 1, 0, 1, 1}},
			{Name: "Z", Cells: []int{0, 0, 0, 1, 1, 1, 1, 2}},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
