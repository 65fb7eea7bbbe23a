package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/prepara/prepara/internal/suggestion/application/commands"
)

var (
	suggestDescription   string
	suggestLocation      string
	suggestDate          string
	suggestEventDuration int
	suggestStart         string
	suggestBudget        int
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [title]",
	Short: "Generate preparation tasks for an event",
	Long: `Generate a preparation schedule for an upcoming event.

Examples:
  prepara suggest "Final exam" --date 2026-09-20
  prepara suggest "Board meeting" --date 2026-09-05 --description "Q3 review with stakeholders" --budget 90
  prepara suggest "Trip to Berlin" --date 2026-09-12 --location "Berlin airport" --start 2026-09-01`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.SuggestTasksHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		eventAt, err := time.Parse("2006-01-02", suggestDate)
		if err != nil {
			return fmt.Errorf("invalid event date format (use YYYY-MM-DD): %w", err)
		}

		prepStart := time.Now()
		if suggestStart != "" {
			prepStart, err = time.Parse("2006-01-02", suggestStart)
			if err != nil {
				return fmt.Errorf("invalid start date format (use YYYY-MM-DD): %w", err)
			}
		}

		budget := app.DefaultDailyBudget
		if suggestBudget > 0 {
			budget = time.Duration(suggestBudget) * time.Minute
		}

		suggestCmd := commands.SuggestTasksCommand{
			Title:         args[0],
			Description:   suggestDescription,
			Location:      suggestLocation,
			EventAt:       eventAt,
			EventDuration: time.Duration(suggestEventDuration) * time.Minute,
			PrepStart:     prepStart,
			DailyBudget:   budget,
		}

		result, err := app.SuggestTasksHandler.Handle(cmd.Context(), suggestCmd)
		if err != nil {
			return fmt.Errorf("failed to generate suggestions: %w", err)
		}

		suggestion := result.Suggestion
		best := suggestion.Matches[0]
		fmt.Printf("Event type: %s (confidence %.2f)\n", best.Type, best.Confidence)
		if len(suggestion.Matches) > 1 {
			for _, match := range suggestion.Matches[1:] {
				fmt.Printf("  also: %s (%.2f)\n", match.Type, match.Confidence)
			}
		}
		fmt.Printf("Complexity: %s (%.1f)\n", suggestion.Complexity.Band, suggestion.Complexity.Score)
		fmt.Printf("Window: %s to %s, %v per day\n\n",
			result.Window.Start.Format("2006-01-02"),
			result.Window.EventDate.Format("2006-01-02"),
			result.Window.DailyBudget,
		)

		currentDay := -1
		for _, task := range suggestion.Tasks {
			if task.Day != currentDay {
				currentDay = task.Day
				fmt.Printf("Day %d (%s):\n", task.Day+1, result.Window.Start.AddDate(0, 0, task.Day).Format("Mon Jan 2"))
			}
			marker := ""
			if task.Split {
				marker = " (split)"
			}
			fmt.Printf("  [%s] %v  %s%s\n", task.Priority, task.Duration, task.Description, marker)
			fmt.Printf("      template %s\n", task.TemplateID)
		}

		if suggestion.Overflow {
			fmt.Printf("\nWarning: %v of work does not fit in the window\n", suggestion.Deficit)
		}
		return nil
	},
}

func init() {
	suggestCmd.Flags().StringVar(&suggestDescription, "description", "", "event description")
	suggestCmd.Flags().StringVar(&suggestLocation, "location", "", "event location")
	suggestCmd.Flags().StringVar(&suggestDate, "date", "", "event date (YYYY-MM-DD)")
	suggestCmd.Flags().IntVar(&suggestEventDuration, "event-duration", 60, "event duration in minutes")
	suggestCmd.Flags().StringVar(&suggestStart, "start", "", "preparation start date (YYYY-MM-DD, default today)")
	suggestCmd.Flags().IntVarP(&suggestBudget, "budget", "b", 0, "daily preparation budget in minutes")
	suggestCmd.MarkFlagRequired("date")
	AddCommand(suggestCmd)
}
