package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/blockfall/internal/config"
)

var flagRulesDefault bool

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the effective rules as YAML",
	Long: `Print the rules a game would use: the loaded rules file with
environment overrides and the difficulty preset applied.

The output is a valid rules file and can be edited and passed back
with --config.

Examples:
  blockfall rules
  blockfall rules --difficulty hard
  blockfall rules --default > ~/.blockfall/configs/blockfall.yaml`,
	Args: cobra.NoArgs,
	RunE: runRules,
}

func init() {
	rulesCmd.Flags().BoolVar(&flagRulesDefault, "default", false, "Print the built-in rules file unchanged")
}

func runRules(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	if flagRulesDefault {
		_, err := w.Write(config.DefaultYAML())
		return err
	}

	rules, preset, err := loadRules()
	if err != nil {
		return err
	}
	config.ApplyPreset(&rules, preset)

	data, err := yaml.Marshal(rules)
	if err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	fmt.Fprintf(w, "# preset: %s\n", preset)
	_, err = w.Write(data)
	return err
}
