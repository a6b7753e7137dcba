package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset names a set of timing adjustments.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	// DifficultyFixed keeps the starting interval for the whole run.
	DifficultyFixed DifficultyPreset = "fixed"
)

// Presets lists the presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// ParsePreset resolves a preset name; the empty string means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	n := DifficultyPreset(strings.ToLower(strings.TrimSpace(name)))
	if n == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets() {
		if p == n {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
}

// Description returns a one-line summary for menus.
func (p DifficultyPreset) Description() string {
	switch p {
	case DifficultyEasy:
		return "slower start, gentle speed-up"
	case DifficultyHard:
		return "fast start, frequent speed-ups"
	case DifficultyFixed:
		return "constant speed"
	default:
		return "standard rules"
	}
}

// ApplyPreset modifies the timing section based on a difficulty preset.
// Normal leaves the loaded values as they are.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	t := &cfg.Timing
	switch preset {
	case DifficultyEasy:
		t.DropIntervalStartMS = t.DropIntervalStartMS * 3 / 2
		t.DropIntervalDecreaseMS = t.DropIntervalDecreaseMS * 4 / 5
		t.DropIntervalMinimumMS = t.DropIntervalMinimumMS * 3 / 2
	case DifficultyHard:
		t.DropIntervalStartMS = t.DropIntervalStartMS * 7 / 10
		t.DropIntervalDecreaseMS = t.DropIntervalDecreaseMS * 6 / 5
		t.SpeedUpPeriodMS = t.SpeedUpPeriodMS * 2 / 3
		t.DropIntervalMinimumMS = t.DropIntervalMinimumMS * 3 / 5
	case DifficultyFixed:
		t.DropIntervalDecreaseMS = 0
	}
	// Scaling must not invert the floor.
	if t.DropIntervalMinimumMS > t.DropIntervalStartMS {
		t.DropIntervalMinimumMS = t.DropIntervalStartMS
	}
}
