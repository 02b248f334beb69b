package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var updateWeightKg float64

var updateWeightCmd = &cobra.Command{
	Use:   "update-weight",
	Short: "Update the stored bodyweight used by the load-relative-to-bodyweight calculations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if updateWeightKg <= 0 {
			return fmt.Errorf("--bodyweight must be positive")
		}

		app := newAppContext()
		profile, err := app.loadProfile()
		if err != nil {
			return err
		}
		profile.BodyweightKg = updateWeightKg

		if err := app.store.SaveProfile(profile); err != nil {
			return err
		}

		printBoxedHeader("BODYWEIGHT UPDATED")
		printMetric("New bodyweight", fmt.Sprintf("%.1f kg", updateWeightKg))
		return nil
	},
}

func init() {
	updateWeightCmd.Flags().Float64Var(&updateWeightKg, "bodyweight", 0, "new bodyweight in kg")
	updateWeightCmd.MarkFlagRequired("bodyweight")
	rootCmd.AddCommand(updateWeightCmd)
}
