package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var helpAdaptationCmd = &cobra.Command{
	Use:   "help-adaptation",
	Short: "Explain the adaptation rules (plateau, deload, autoregulation, overtraining) in plain language",
	RunE: func(cmd *cobra.Command, args []string) error {
		bold := color.New(color.FgCyan, color.Bold).SprintFunc()

		printBoxedHeader("ADAPTATION RULES")
		fmt.Printf("%s\n  A plateau is flagged when the 21-day TEST trend slope falls below\n  0.05 reps/week and no TEST in that window beat your all-time best.\n\n", bold("Plateau"))
		fmt.Printf("%s\n  Autoregulation kicks in after 10 completed non-TEST sessions. A\n  readiness z-score below -1 cuts sets by 30%% (floored at 3); above +1\n  adds one rep to the base prescription.\n\n", bold("Autoregulation"))
		fmt.Printf("%s\n  Overtraining severity is read off the trailing 7-day window: if the\n  sessions performed outran the expected pace for your days-per-week\n  schedule, 1 extra day is Mild, 2-3 is Moderate, 4+ is Severe and shifts\n  the plan forward by that many days.\n\n", bold("Overtraining"))
		fmt.Printf("%s\n  Recommended when a plateau coincides with low readiness, the last\n  two non-TEST strength sessions both underperformed 90%% of their\n  predicted max, or 4-week compliance drops below 70%%.\n\n", bold("Deload"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(helpAdaptationCmd)
}
