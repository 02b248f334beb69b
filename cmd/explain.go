package cmd

import (
	"fmt"
	"time"

	"github.com/misterclayt0n/lazaro/internal/models"
	"github.com/misterclayt0n/lazaro/internal/planner"
	"github.com/misterclayt0n/lazaro/internal/utils"
	"github.com/spf13/cobra"
)

var explainCmd = &cobra.Command{
	Use:   "explain <date|next>",
	Short: "Explain the prescription the planner produced for one date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newAppContext()
		ex, err := app.loadExercise()
		if err != nil {
			return err
		}
		profile, err := app.loadProfile()
		if err != nil {
			return err
		}
		history, err := app.store.ListHistory(ex.ID)
		if err != nil {
			return err
		}

		now := time.Now()
		compliance := weeklyComplianceOf(history, now)
		out, err := planner.Plan(planner.Input{
			Profile: profile, Exercise: ex, History: history,
			PlanStart: lastScheduleDate(history, now), Weeks: 8, AsOf: utils.DateOnly(now),
			WeightRoundToKg: app.cfg.Defaults.WeightRoundToKg, WeeklyCompliance: &compliance,
			PhysiologyTunables: app.physiologyTunables(), AdaptationTunables: app.adaptationTunables(),
		})
		if err != nil {
			return err
		}

		var target *models.SessionPlan
		if args[0] == "next" {
			if len(out.Plans) > 0 {
				target = &out.Plans[0]
			}
		} else {
			want, err := utils.ParseISODate(args[0])
			if err != nil {
				return fmt.Errorf("invalid date %q: %w", args[0], err)
			}
			want = utils.DateOnly(want)
			for i := range out.Plans {
				if out.Plans[i].Date.Equal(want) {
					target = &out.Plans[i]
					break
				}
			}
		}

		if target == nil {
			return fmt.Errorf("no planned session found for %s", args[0])
		}

		printBoxedHeader("EXPLAIN: " + utils.FormatISODate(target.Date))
		printMetric("Session type", target.SessionType)
		printMetric("Variant", target.Variant)
		printMetric("Expected training max", target.ExpectedTM)
		printMetric("Week number", target.WeekNumber)
		for i, s := range target.PlannedSets {
			fmt.Printf("    set %d: %d reps, %.1f kg, %ds rest\n", i+1, s.Reps, s.WeightKg, s.RestS)
		}
		if out.OvertrainingLevel > 0 {
			fmt.Printf("  overtraining level %d applied (%d extra rest day(s))\n", out.OvertrainingLevel, out.ExtraRestDays)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(explainCmd)
}
