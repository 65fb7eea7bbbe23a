package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prepara/prepara/internal/suggestion/application/commands"
)

var retrainCmd = &cobra.Command{
	Use:   "retrain",
	Short: "Retrain template weights from recorded feedback",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.RetrainWeightsHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		result, err := app.RetrainWeightsHandler.Handle(cmd.Context(), commands.RetrainWeightsCommand{})
		if err != nil {
			return fmt.Errorf("failed to retrain weights: %w", err)
		}

		if !result.Updated {
			fmt.Printf("No update: not enough qualifying feedback (snapshot v%d, %d pairs)\n",
				result.Version, result.Pairs)
			return nil
		}
		fmt.Printf("Weights retrained: snapshot v%d, %d pairs\n", result.Version, result.Pairs)
		return nil
	},
}

func init() {
	AddCommand(retrainCmd)
}
