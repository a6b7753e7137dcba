package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List renderer backends and shapes",
	Long:  `Shows the registered renderer backends and the shapes of the loaded rules.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	rules, _, err := loadRules()
	if err != nil {
		return err
	}
	engineRules, err := rules.Engine()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	printBackends(w, registry.List())
	fmt.Fprintln(w)
	printShapes(w, engineRules.Catalog)
	return nil
}

func printBackends(w io.Writer, backends []registry.BackendInfo) {
	if len(backends) == 0 {
		fmt.Fprintln(w, "No renderers available.")
		return
	}

	fmt.Fprintln(w, "Renderers:")
	fmt.Fprintln(w)

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, b := range backends {
		if len(b.ID) > maxIDLen {
			maxIDLen = len(b.ID)
		}
	}

	fmt.Fprintf(w, "  %-*s  %-11s  %s\n", maxIDLen, "ID", "Mode", "Title")
	fmt.Fprintf(w, "  %-*s  %-11s  %s\n", maxIDLen, "--", "----", "-----")
	for _, b := range backends {
		mode := "record"
		if b.Interactive {
			mode = "interactive"
		}
		fmt.Fprintf(w, "  %-*s  %-11s  %s\n", maxIDLen, b.ID, mode, b.Title)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use 'blockfall play --renderer <id>' or 'blockfall record --renderer <id>'.")
}

func printShapes(w io.Writer, catalog engine.Catalog) {
	fmt.Fprintf(w, "Shapes (%d):\n", len(catalog))
	for _, s := range catalog {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  %s  %dx%d\n", s.Name, s.Height, s.Width)
		for _, line := range strings.Split(strings.TrimRight(s.String(), "\n"), "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
	}
}
