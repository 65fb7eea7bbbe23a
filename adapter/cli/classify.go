package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prepara/prepara/internal/suggestion/application/queries"
)

var (
	classifyDescription string
	classifyLocation    string
)

var classifyCmd = &cobra.Command{
	Use:   "classify [title]",
	Short: "Classify an event without generating tasks",
	Long: `Show how an event would be classified, with every matched type
and its confidence. Useful for tuning a custom ruleset.

Examples:
  prepara classify "Final exam"
  prepara classify "Quarterly sync" --description "review with the team"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.ClassifyEventHandler == nil {
			return fmt.Errorf("application not initialized")
		}

		result := app.ClassifyEventHandler.Handle(queries.ClassifyEventQuery{
			Title:       args[0],
			Description: classifyDescription,
			Location:    classifyLocation,
		})

		for i, match := range result.Matches {
			marker := "  "
			if i == 0 {
				marker = "->"
			}
			fmt.Printf("%s %-14s %.2f\n", marker, match.Type, match.Confidence)
		}
		fmt.Printf("complexity: %s (%.1f)\n", result.Complexity.Band, result.Complexity.Score)
		for _, factor := range result.Complexity.Factors {
			fmt.Printf("  %s\n", factor)
		}
		return nil
	},
}

func init() {
	classifyCmd.Flags().StringVar(&classifyDescription, "description", "", "event description")
	classifyCmd.Flags().StringVar(&classifyLocation, "location", "", "event location")
	AddCommand(classifyCmd)
}
