package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/prepara/prepara/internal/suggestion/application/commands"
)

var (
	feedbackType     string
	feedbackAccepted bool
	feedbackRejected bool
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback [template-id]",
	Short: "Record whether a suggested task was accepted",
	Long: `Record an accept/reject decision for a suggested task. The
decision feeds the next retraining pass.

Examples:
  prepara feedback 3f1a... --type exam --accepted
  prepara feedback 3f1a... --type exam --rejected`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.RecordFeedbackHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		templateID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid template id: %w", err)
		}
		if feedbackAccepted == feedbackRejected {
			return fmt.Errorf("pass exactly one of --accepted or --rejected")
		}

		result, err := app.RecordFeedbackHandler.Handle(cmd.Context(), commands.RecordFeedbackCommand{
			TemplateID: templateID,
			EventType:  feedbackType,
			Accepted:   feedbackAccepted,
		})
		if err != nil {
			return fmt.Errorf("failed to record feedback: %w", err)
		}

		fmt.Printf("Feedback recorded: %s\n", result.FeedbackID)
		return nil
	},
}

func init() {
	feedbackCmd.Flags().StringVarP(&feedbackType, "type", "t", "", "event type the task was suggested for")
	feedbackCmd.Flags().BoolVar(&feedbackAccepted, "accepted", false, "the task was accepted")
	feedbackCmd.Flags().BoolVar(&feedbackRejected, "rejected", false, "the task was rejected")
	feedbackCmd.MarkFlagRequired("type")
	AddCommand(feedbackCmd)
}
