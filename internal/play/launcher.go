// Package play assembles games: it applies a difficulty preset to the
// loaded rules, wires a renderer and a controller, and records finished
// runs. Every frontend starts games through a Launcher.
package play

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// RunStore is the part of storage.Store a launcher needs.
type RunStore interface {
	SaveRun(r storage.Run) (string, error)
}

// Launcher starts games with shared rules, storage and logging.
type Launcher struct {
	Config config.Config // Rules before a preset is applied
	Store  RunStore      // Nil disables run history
	Logger *log.Logger
	KeyMap core.KeyMap
	Player string
	// Seed is used for the first game; 0 picks a time-based seed.
	Seed int64
}

// NewSeed returns a time-based seed.
func NewSeed() int64 {
	return time.Now().UnixNano()
}

// Rules returns the engine configuration for preset.
func (l Launcher) Rules(preset config.DifficultyPreset) (engine.Config, error) {
	cfg := l.Config
	config.ApplyPreset(&cfg, preset)
	return cfg.Engine()
}

// Start creates a game drawing to r and returns the session that drives
// it. The controller is not running yet.
func (l Launcher) Start(preset config.DifficultyPreset, r engine.Renderer) (registry.Session, error) {
	rules, err := l.Rules(preset)
	if err != nil {
		return registry.Session{}, err
	}

	seed := l.Seed
	if seed == 0 {
		seed = NewSeed()
	}
	game, err := engine.NewGame(rules, seed, r)
	if err != nil {
		return registry.Session{}, fmt.Errorf("play: %w", err)
	}

	logger := l.logger().With("preset", string(preset))
	if l.Player != "" {
		logger = logger.With("player", l.Player)
	}
	ctrl := engine.NewController(game,
		engine.WithLogger(logger),
		engine.WithGameOverHook(l.recorder(preset, logger)),
	)

	return registry.Session{
		Controller: ctrl,
		KeyMap:     l.KeyMap,
		NewSeed:    NewSeed,
		Title:      Title(preset),
	}, nil
}

// recorder returns the game-over hook that stores finished runs.
func (l Launcher) recorder(preset config.DifficultyPreset, logger *log.Logger) func(engine.RunSummary) {
	return func(sum engine.RunSummary) {
		if l.Store == nil {
			return
		}
		id, err := l.Store.SaveRun(storage.Run{
			Player:    l.Player,
			Preset:    string(preset),
			Seed:      sum.Seed,
			Lines:     sum.Lines,
			Pieces:    sum.Pieces,
			SpeedUps:  sum.SpeedUps,
			Duration:  sum.Duration,
			CreatedAt: sum.EndedAt,
		})
		if err != nil {
			logger.Warn("could not save run", "error", err)
			return
		}
		logger.Debug("run saved", "id", id)
	}
}

func (l Launcher) logger() *log.Logger {
	if l.Logger == nil {
		return log.New(io.Discard)
	}
	return l.Logger
}

// Title is the panel heading for a preset.
func Title(preset config.DifficultyPreset) string {
	if preset == "" || preset == config.DifficultyNormal {
		return "BLOCKFALL"
	}
	return "BLOCKFALL " + strings.ToUpper(string(preset))
}
