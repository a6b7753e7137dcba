package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/play"
	"github.com/vovakirdan/blockfall/internal/registry"
)

var (
	flagScript      string
	flagRecordWith  string
	flagRecordOut   string
	flagRecordStats bool
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Render a scripted game",
	Long: `Play a game without a terminal by following a command script and
write every rendered frame with a file-style renderer.

Script tokens are separated by spaces:
  left, right, down, drop, cw, ccw  - player commands
  tick                              - one gravity step
  speed                             - one speed-up
A token may be repeated with *N, for example tick*20.

The same seed and script always produce the same frames.

Examples:
  blockfall record --seed 7 --script "left left cw drop tick"
  blockfall record --seed 7 --script "drop*30" --renderer svg --out ./frames`,
	Args: cobra.NoArgs,
	RunE: runRecord,
}

func init() {
	recordCmd.Flags().StringVar(&flagScript, "script", "", "Command script to play")
	recordCmd.Flags().StringVar(&flagRecordWith, "renderer", "ascii", "Frame renderer: ascii, svg")
	recordCmd.Flags().StringVar(&flagRecordOut, "out", "", "Directory for one file per frame (default: stdout)")
	recordCmd.Flags().BoolVar(&flagRecordStats, "stats", true, "Print a summary to stderr when done")
}

// step is one parsed script token.
type step struct {
	token string
	cmd   engine.Command
}

// recorder is implemented by the file-style renderers.
type recorder interface {
	Frames() int
	Err() error
}

// parseScript turns a script into steps, expanding name*N repeats.
func parseScript(script string) ([]step, error) {
	var steps []step
	for i, tok := range strings.Fields(script) {
		name, times := strings.ToLower(tok), 1
		if base, count, ok := strings.Cut(name, "*"); ok {
			n, err := strconv.Atoi(count)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("script token %d: bad repeat in %q", i+1, tok)
			}
			name, times = base, n
		}

		s := step{token: name}
		if name != "tick" && name != "speed" {
			cmd, ok := engine.ParseCommand(name)
			if !ok {
				return nil, fmt.Errorf("script token %d: unknown command %q", i+1, tok)
			}
			s.cmd = cmd
		}
		for range times {
			steps = append(steps, s)
		}
	}
	return steps, nil
}

// playScript runs steps against game until they run out or the game ends.
func playScript(game *engine.Game, steps []step) {
	for _, s := range steps {
		if game.Phase() == engine.PhaseGameOver {
			return
		}
		switch s.token {
		case "tick":
			game.Tick()
		case "speed":
			game.SpeedUp()
		default:
			game.Apply(s.cmd)
		}
	}
}

func runRecord(cmd *cobra.Command, _ []string) error {
	if !registry.Exists(flagRecordWith) {
		return fmt.Errorf("unknown renderer %q (run 'blockfall list' to see renderers)", flagRecordWith)
	}
	steps, err := parseScript(flagScript)
	if err != nil {
		return err
	}

	rules, preset, err := loadRules()
	if err != nil {
		return err
	}
	engineRules, err := play.Launcher{Config: rules}.Rules(preset)
	if err != nil {
		return err
	}

	r, err := registry.Create(flagRecordWith, registry.Options{Out: cmd.OutOrStdout(), Dir: flagRecordOut})
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = play.NewSeed()
	}
	game, err := engine.NewGame(engineRules, seed, r)
	if err != nil {
		return err
	}
	playScript(game, steps)

	frames := 0
	if rec, ok := r.(recorder); ok {
		if err := rec.Err(); err != nil {
			return err
		}
		frames = rec.Frames()
	}

	if flagRecordStats {
		snap := game.Snapshot()
		fmt.Fprintf(os.Stderr, "seed %d: %d frames, %d lines, %d pieces, %s\n",
			seed, frames, snap.Lines, snap.Pieces, snap.Phase)
	}
	return nil
}
