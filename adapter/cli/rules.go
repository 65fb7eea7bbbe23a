package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prepara/prepara/internal/suggestion/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the active classification rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.ListRulesHandler == nil {
			return fmt.Errorf("application not initialized")
		}

		summaries := app.ListRulesHandler.Handle()
		fmt.Printf("%-14s %10s %10s\n", "TYPE", "KEYWORDS", "TEMPLATES")
		for _, summary := range summaries {
			fmt.Printf("%-14s %10d %10d\n", summary.Type, summary.Keywords, summary.Templates)
		}
		return nil
	},
}

var rulesValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a ruleset file without loading it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rs, err := rules.Load(args[0])
		if err != nil {
			return fmt.Errorf("ruleset is invalid: %w", err)
		}
		fmt.Printf("OK: %d event types\n", len(rs.Types))
		return nil
	},
}

func init() {
	rulesCmd.AddCommand(rulesValidateCmd)
	AddCommand(rulesCmd)
}
