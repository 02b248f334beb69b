package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/misterclayt0n/lazaro/internal/utils"
	"github.com/spf13/cobra"
)

var showHistoryLimit int

var showHistoryCmd = &cobra.Command{
	Use:   "show-history",
	Short: "List logged sessions for the selected exercise, most recent last",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newAppContext()
		ex, err := app.loadExercise()
		if err != nil {
			return err
		}
		history, err := app.store.ListHistory(ex.ID)
		if err != nil {
			return err
		}

		if showHistoryLimit > 0 && len(history) > showHistoryLimit {
			history = history[len(history)-showHistoryLimit:]
		}

		if jsonFlag {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(history)
		}

		printBoxedHeader("HISTORY: " + ex.Name)
		for _, h := range history {
			totalReps := 0
			for _, s := range h.Sets {
				totalReps += s.Reps
			}
			fmt.Printf("  #%-4d %s  %-4s  %-10s  %d sets, %d reps\n",
				h.HistoryID, utils.FormatISODate(h.Date), h.SessionType, h.Variant, len(h.Sets), totalReps)
		}
		return nil
	},
}

func init() {
	showHistoryCmd.Flags().IntVar(&showHistoryLimit, "limit", 0, "show only the last N records")
	rootCmd.AddCommand(showHistoryCmd)
}
