package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/lazaro/internal/metrics"
	"github.com/misterclayt0n/lazaro/internal/models"
	"github.com/misterclayt0n/lazaro/internal/planner"
	"github.com/misterclayt0n/lazaro/internal/utils"
	"github.com/spf13/cobra"
)

var planWeeks int

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate the upcoming session schedule for the selected exercise",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newAppContext()

		profile, err := app.loadProfile()
		if err != nil {
			return err
		}
		ex, err := app.loadExercise()
		if err != nil {
			return err
		}
		history, err := app.store.ListHistory(ex.ID)
		if err != nil {
			return err
		}

		now := time.Now()
		planStart := lastScheduleDate(history, now)

		compliance := weeklyComplianceOf(history, now)

		out, err := planner.Plan(planner.Input{
			Profile:          profile,
			Exercise:         ex,
			History:          history,
			PlanStart:        planStart,
			Weeks:            planWeeks,
			AsOf:             utils.DateOnly(now),
			WeightRoundToKg:    app.cfg.Defaults.WeightRoundToKg,
			WeeklyCompliance:   &compliance,
			PhysiologyTunables: app.physiologyTunables(),
			AdaptationTunables: app.adaptationTunables(),
		})
		if err != nil {
			return err
		}

		if jsonFlag {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(out.Plans)
		}

		printBoxedHeader("PLAN: " + ex.Name)
		if out.OvertrainingLevel > 0 {
			fmt.Println(color.New(color.FgRed).Sprintf("  overtraining level %d, plan shifted %d day(s)", out.OvertrainingLevel, out.ExtraRestDays))
		}
		for _, p := range out.Plans {
			fmt.Printf("  %s  week %-2d  %-4s  %-10s  TM=%-3d  %d sets\n",
				utils.FormatISODate(p.Date), p.WeekNumber, p.SessionType, p.Variant, p.ExpectedTM, len(p.PlannedSets))
		}
		return nil
	},
}

func init() {
	planCmd.Flags().IntVar(&planWeeks, "weeks", 4, "number of weeks to project")
	rootCmd.AddCommand(planCmd)
}

// lastScheduleDate anchors the plan at the later of today and the day
// after the most recent history record for this exercise, or today when
// there is no history yet.
func lastScheduleDate(history []models.SessionResult, now time.Time) time.Time {
	today := utils.DateOnly(now)
	var last time.Time
	for _, h := range history {
		d := utils.DateOnly(h.Date)
		if d.After(last) {
			last = d
		}
	}
	if last.IsZero() {
		return today
	}
	next := last.AddDate(0, 0, 1)
	if next.After(today) {
		return next
	}
	return today
}

// weeklyComplianceOf computes the trailing-4-week compliance sample the
// planner's deload/volume rules read: per session, actual reps performed
// versus the reps that session's frozen prescription called for.
func weeklyComplianceOf(history []models.SessionResult, now time.Time) float64 {
	var samples []metrics.ComplianceSample
	for _, h := range history {
		if h.SessionType == models.SessionRest || h.SessionType == models.SessionTest {
			continue
		}
		targetReps := 0
		for _, p := range h.PlannedSets {
			targetReps += p.Reps
		}
		if targetReps == 0 {
			continue
		}
		actualReps := 0
		for _, s := range h.Sets {
			actualReps += s.Reps
		}
		samples = append(samples, metrics.ComplianceSample{Date: h.Date, Value: metrics.Compliance(actualReps, targetReps)})
	}
	return metrics.WeeklyCompliance(samples, utils.DateOnly(now), 4)
}
