package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/misterclayt0n/lazaro/internal/utils"
	"github.com/spf13/cobra"
)

var (
	oneRMWeight float64
	oneRMReps   int
)

var oneRMCmd = &cobra.Command{
	Use:   "1rm",
	Short: "Estimate a one-rep max from a single weight/reps pair (Epley cross-check)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if oneRMReps <= 0 {
			return fmt.Errorf("--reps must be positive")
		}

		estimate := utils.CalculateEpley1RM(oneRMWeight, oneRMReps)

		if jsonFlag {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]float64{
				"weight_kg": oneRMWeight, "reps": float64(oneRMReps), "estimated_1rm_kg": estimate,
			})
		}

		printBoxedHeader("1RM ESTIMATE")
		printMetric("Weight", fmt.Sprintf("%.1f kg", oneRMWeight))
		printMetric("Reps", oneRMReps)
		printMetric("Estimated 1RM", fmt.Sprintf("%.1f kg", estimate))
		return nil
	},
}

func init() {
	oneRMCmd.Flags().Float64Var(&oneRMWeight, "weight", 0, "weight lifted in kg")
	oneRMCmd.Flags().IntVar(&oneRMReps, "reps", 0, "reps performed")
	oneRMCmd.MarkFlagRequired("weight")
	oneRMCmd.MarkFlagRequired("reps")
	rootCmd.AddCommand(oneRMCmd)
}
