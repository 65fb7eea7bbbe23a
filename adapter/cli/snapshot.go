package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var snapshotWeights bool

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Show the current weight snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.GetSnapshotHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		snap, err := app.GetSnapshotHandler.Handle(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load snapshot: %w", err)
		}

		if snap.Version == 0 {
			fmt.Println("No trained snapshot yet, static template weights are in effect")
			return nil
		}

		fmt.Printf("Snapshot v%d, trained %s, %d pairs\n",
			snap.Version, snap.TrainedAt.Format("2006-01-02 15:04:05 MST"), len(snap.Weights))

		if snapshotWeights {
			type row struct {
				key    string
				weight float64
			}
			rows := make([]row, 0, len(snap.Weights))
			for key, weight := range snap.Weights {
				rows = append(rows, row{
					key:    fmt.Sprintf("%s %s", key.Type, key.TemplateID),
					weight: weight,
				})
			}
			sort.Slice(rows, func(i, j int) bool { return rows[i].key < rows[j].key })
			for _, r := range rows {
				fmt.Printf("  %s  %.3f\n", r.key, r.weight)
			}
		}
		return nil
	},
}

func init() {
	snapshotCmd.Flags().BoolVarP(&snapshotWeights, "weights", "w", false, "print individual weights")
	AddCommand(snapshotCmd)
}
