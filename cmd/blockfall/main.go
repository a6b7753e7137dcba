// blockfall is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	blockfall list              - List renderer backends and shapes
//	blockfall play              - Play a game
//	blockfall menu              - Pick a difficulty interactively
//	blockfall serve             - Start SSH server for remote play
//	blockfall history           - Show recorded runs
//	blockfall record            - Render a scripted game to files
//	blockfall rules             - Print the effective rules as YAML
//
// Global flags:
//
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.blockfall/blockfall.db)
//	--config <path>       - Load rules from a custom YAML file
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
//	--log-level <level>   - debug, info, warn, error
//	--log-file <path>     - Write logs to a file
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/storage"

	// Import backends to register them
	_ "github.com/vovakirdan/blockfall/internal/platform/canvas"
	_ "github.com/vovakirdan/blockfall/internal/platform/tui"
	_ "github.com/vovakirdan/blockfall/internal/platform/vector"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if config.IsConfigError(err) {
			fmt.Fprintln(os.Stderr, "Run 'blockfall rules --default' to see a valid rules file.")
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockfall",
	Short: "Blockfall - a falling-block puzzle for your terminal",
	Long: `Blockfall drops pieces onto a board one row at a time. Move and rotate
them to fill rows; full rows are cleared. The game gets faster over time
and ends when a new piece has no room to spawn.

Available commands:
  list     - Show renderer backends and the shape catalog
  play     - Play a game directly
  menu     - Interactive difficulty picker
  serve    - Start SSH server for remote play
  history  - View recorded runs
  record   - Render a scripted game as SVG or text frames
  rules    - Print the effective rules as YAML

Examples:
  blockfall play
  blockfall play --difficulty hard --renderer tcell
  blockfall menu
  blockfall serve --ssh :2222
  blockfall record --seed 7 --script "left left cw drop tick" --out ./frames`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom rules YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(rulesCmd)
}
