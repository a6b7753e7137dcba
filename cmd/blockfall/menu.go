package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a difficulty picker menu",
	Long: `Start blockfall in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to start a game.
Leaving a game with Esc returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Start game
  Tab/H        - Run history
  Q            - Quit

Examples:
  blockfall menu
  blockfall menu --difficulty hard
  blockfall menu --db ./blockfall.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) error {
	rules, preset, err := loadRules()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(flagDBPath)
	var history tui.HistoryStore
	if store != nil {
		defer store.Close()
		history = store
	}

	l := newLauncher(rules, runtimeConfig(preset), store, logger)
	return tui.RunSession(cmd.Context(), l, history, preset)
}
