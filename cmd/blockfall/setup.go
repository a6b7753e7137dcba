package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/play"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// newLogger builds the logger for a command. Logs go to fallback unless
// --log-file is set. The returned func closes the log file.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q", flagLogLevel)
	}

	out := fallback
	closeLog := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeLog = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "blockfall",
		Level:           level,
	})
	return logger, closeLog, nil
}

// loadRules loads the rule file and resolves --difficulty.
func loadRules() (config.Config, config.DifficultyPreset, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.Config{}, "", err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, "", err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, "", err
	}
	return cfg, preset, nil
}

// runtimeConfig collects the per-run settings from flags and the terminal.
func runtimeConfig(preset config.DifficultyPreset) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Seed = flagSeed
	cfg.Preset = string(preset)
	return cfg
}

// openStore opens the run history. A failure is reported and play goes on
// without history.
func openStore(path string) *storage.Store {
	store, err := storage.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run history: %v\n", err)
		return nil
	}
	return store
}

// newLauncher builds the launcher shared by play and menu.
func newLauncher(rules config.Config, rt core.RuntimeConfig, store *storage.Store, logger *log.Logger) play.Launcher {
	l := play.Launcher{
		Config: rules,
		Logger: logger,
		KeyMap: core.DefaultKeyMap(),
		Player: localPlayer(),
		Seed:   rt.Seed,
	}
	if store != nil {
		l.Store = store
	}
	return l
}

func localPlayer() string {
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "local"
}
