package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/misterclayt0n/lazaro/internal/adaptation"
	"github.com/misterclayt0n/lazaro/internal/models"
	"github.com/misterclayt0n/lazaro/internal/physiology"
	"github.com/spf13/cobra"
)

var volumeWeeks int

var volumeCmd = &cobra.Command{
	Use:   "volume",
	Short: "Show the recommended weekly hard-set count under the current deload/readiness/compliance state",
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

		state, obs := physiology.BuildObservations(history, ex, profile.Baseline(ex.ID), app.physiologyTunables())
		testPoints := testPointsFromHistory(history)
		now := timeNowUTC()
		allTimeBest := profile.Baseline(ex.ID)
		for _, p := range testPoints {
			if p.Value > allTimeBest {
				allTimeBest = p.Value
			}
		}
		compliance := weeklyComplianceOf(history, now)
		st := adaptation.BuildStatus(state, testPoints, allTimeBest, compliance, now, app.adaptationTunables(), lastTwoStrengthObservations(obs))

		baseSets := averageWeeklySets(history, volumeWeeks)
		recommended := adaptation.VolumePolicy(baseSets, st.DeloadRecommended, st.ReadinessZScore, compliance)

		if jsonFlag {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]float64{
				"base_weekly_sets": baseSets, "recommended_weekly_sets": recommended,
			})
		}

		printBoxedHeader("VOLUME")
		printMetric("Observed weekly sets", fmt.Sprintf("%.1f", baseSets))
		printMetric("Recommended weekly sets", fmt.Sprintf("%.1f", recommended))
		if st.DeloadRecommended {
			printMetric("Deload", "yes")
		}
		return nil
	},
}

func init() {
	volumeCmd.Flags().IntVar(&volumeWeeks, "weeks", 4, "window, in weeks, to average observed set volume over")
	rootCmd.AddCommand(volumeCmd)
}

func averageWeeklySets(history []models.SessionResult, weeks int) float64 {
	if weeks <= 0 {
		weeks = 4
	}
	cutoff := timeNowUTC().AddDate(0, 0, -weeks*7)
	total := 0
	for _, h := range history {
		if h.SessionType == models.SessionRest || h.Date.Before(cutoff) {
			continue
		}
		total += len(h.Sets)
	}
	return float64(total) / float64(weeks)
}
