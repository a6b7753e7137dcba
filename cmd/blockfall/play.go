package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockfall/internal/platform/frame"
	"github.com/vovakirdan/blockfall/internal/registry"
)

var flagRenderer string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start playing a single game.

Controls:
  Left/Right/A/D  - Move
  Down/S          - Soft drop
  Space           - Hard drop
  Up/W/X/E        - Rotate clockwise
  Z               - Rotate counter-clockwise
  P               - Pause
  R               - Restart
  Q/Ctrl+C        - Quit

Difficulty options:
  easy   - Slower start, gentler speed-up
  normal - Rules as configured
  hard   - Faster start, quicker and more frequent speed-ups
  fixed  - No speed-up, the drop interval never changes

Renderers:
  tui    - Bubble Tea (default)
  tcell  - tcell canvas

Examples:
  blockfall play
  blockfall play --difficulty easy
  blockfall play --renderer tcell --seed 42
  blockfall play --config ./my-rules.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagRenderer, "renderer", "tui", "Interactive renderer: tui, tcell")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("play needs a terminal; use 'blockfall record' for headless output")
	}

	if !registry.Exists(flagRenderer) {
		return fmt.Errorf("unknown renderer %q (run 'blockfall list' to see renderers)", flagRenderer)
	}

	rules, preset, err := loadRules()
	if err != nil {
		return err
	}
	rt := runtimeConfig(preset)
	if w, h := frame.Size(rules.Board.Rows, rules.Board.Columns); w > rt.ScreenW || h > rt.ScreenH {
		fmt.Fprintf(os.Stderr, "Warning: terminal is %dx%d, the game needs %dx%d\n", rt.ScreenW, rt.ScreenH, w, h)
	}

	frontend, err := registry.CreateFrontend(flagRenderer, registry.Options{})
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(flagDBPath)
	if store != nil {
		defer store.Close()
	}

	session, err := newLauncher(rules, rt, store, logger).Start(preset, frontend)
	if err != nil {
		return err
	}
	logger.Info("game started", "renderer", flagRenderer, "preset", preset, "seed", rt.Seed)

	if err := frontend.Run(cmd.Context(), session); err != nil && cmd.Context().Err() == nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
