package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	flagHistoryLimit  int
	flagHistoryPlayer string
	flagHistoryClear  bool
	flagHistoryRun    string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded runs",
	Long: `Display the best and most recent runs with overall totals.

Runs are ranked by lines cleared, then by fewest pieces used.
The seed of each run can be passed to 'blockfall record' or
'blockfall play --seed' to replay the same piece sequence.

Examples:
  blockfall history
  blockfall history --limit 5
  blockfall history --player alice
  blockfall history --run 0b5e7c1e-4b7a-4d8e-9a53-2a4f0f3c9d11
  blockfall history --clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of runs per table")
	historyCmd.Flags().StringVar(&flagHistoryPlayer, "player", "", "Only show runs by this player")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete every recorded run")
	historyCmd.Flags().StringVar(&flagHistoryRun, "run", "", "Show one run by id")
}

// runSource is the part of storage.Store the history command reads.
type runSource interface {
	BestRuns(limit int) ([]storage.Run, error)
	RecentRuns(limit int) ([]storage.Run, error)
	PlayerRuns(player string) ([]storage.Run, error)
	Totals() (storage.Totals, error)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer store.Close()

	if flagHistoryClear {
		if err := store.ClearRuns(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Run history cleared.")
		return nil
	}

	if flagHistoryRun != "" {
		run, err := store.RunByID(flagHistoryRun)
		if err != nil {
			return err
		}
		if run == nil {
			return fmt.Errorf("no run with id %q", flagHistoryRun)
		}
		printRun(cmd.OutOrStdout(), *run)
		return nil
	}

	return printHistory(cmd.OutOrStdout(), store, flagHistoryLimit, flagHistoryPlayer)
}

// printRun writes one run with the command that replays its pieces.
func printRun(w io.Writer, r storage.Run) {
	fmt.Fprintf(w, "Run %s\n\n", r.ID)
	fmt.Fprintf(w, "  Player:   %s\n", r.Player)
	fmt.Fprintf(w, "  Preset:   %s\n", r.Preset)
	fmt.Fprintf(w, "  Lines:    %d\n", r.Lines)
	fmt.Fprintf(w, "  Pieces:   %d\n", r.Pieces)
	fmt.Fprintf(w, "  Level:    %d\n", r.SpeedUps+1)
	fmt.Fprintf(w, "  Time:     %s\n", r.Duration.Round(time.Second))
	fmt.Fprintf(w, "  Date:     %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "  Seed:     %d\n", r.Seed)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Replay the same pieces with: blockfall play --seed %d --difficulty %s\n", r.Seed, r.Preset)
}

// printHistory writes the run tables and totals to w.
func printHistory(w io.Writer, src runSource, limit int, player string) error {
	if player != "" {
		runs, err := src.PlayerRuns(player)
		if err != nil {
			return err
		}
		if limit > 0 && len(runs) > limit {
			runs = runs[:limit]
		}
		printRuns(w, fmt.Sprintf("Runs - %s", player), runs)
		return nil
	}

	totals, err := src.Totals()
	if err != nil {
		return err
	}
	if totals.Runs == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'blockfall play' to record the first run!")
		return nil
	}

	best, err := src.BestRuns(limit)
	if err != nil {
		return err
	}
	recent, err := src.RecentRuns(limit)
	if err != nil {
		return err
	}

	printRuns(w, "Best Runs", best)
	fmt.Fprintln(w)
	printRuns(w, "Recent Runs", recent)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Runs: %d  Lines: %d  Pieces: %d  Best: %d  Played: %s\n",
		totals.Runs, totals.Lines, totals.Pieces, totals.BestLines, totals.PlayTime.Round(time.Second))
	return nil
}

func printRuns(w io.Writer, title string, runs []storage.Run) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w)

	if len(runs) == 0 {
		fmt.Fprintln(w, "  No runs.")
		return
	}

	// Print header
	fmt.Fprintf(w, "  %-4s  %-6s  %-6s  %-5s  %-8s  %-7s  %-12s  %-20s  %s\n",
		"Rank", "Lines", "Pieces", "Level", "Time", "Preset", "Player", "Seed", "Date")
	fmt.Fprintf(w, "  %-4s  %-6s  %-6s  %-5s  %-8s  %-7s  %-12s  %-20s  %s\n",
		"----", "-----", "------", "-----", "----", "------", "------", "----", "----")

	for i, r := range runs {
		fmt.Fprintf(w, "  %-4d  %-6d  %-6d  %-5d  %-8s  %-7s  %-12s  %-20d  %s\n",
			i+1, r.Lines, r.Pieces, r.SpeedUps+1, r.Duration.Round(time.Second),
			r.Preset, r.Player, r.Seed, r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
}
