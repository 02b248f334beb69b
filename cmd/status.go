package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/lazaro/internal/adaptation"
	"github.com/misterclayt0n/lazaro/internal/metrics"
	"github.com/misterclayt0n/lazaro/internal/models"
	"github.com/misterclayt0n/lazaro/internal/physiology"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current training-max, readiness, trend, and deload flags",
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
		allTimeBest := profile.Baseline(ex.ID)
		for _, p := range testPoints {
			if p.Value > allTimeBest {
				allTimeBest = p.Value
			}
		}
		compliance := weeklyComplianceOf(history, time.Now())
		st := adaptation.BuildStatus(state, testPoints, allTimeBest, compliance, time.Now(), app.adaptationTunables(), lastTwoStrengthObservations(obs))

		if jsonFlag {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(st)
		}

		printBoxedHeader("STATUS: " + ex.Name)
		printMetric("Training max", st.TrainingMax)
		printMetric("Latest test max", fmt.Sprintf("%.1f", st.LatestTestMax))
		printMetric("Trend", fmt.Sprintf("%.2f / week", st.TrendSlope))
		printMetric("Fitness", fmt.Sprintf("%.2f", st.Fitness))
		printMetric("Fatigue", fmt.Sprintf("%.2f", st.Fatigue))
		printMetric("Readiness z", fmt.Sprintf("%.2f", st.ReadinessZScore))
		if st.IsPlateau {
			fmt.Println(color.New(color.FgYellow, color.Bold).Sprint("  plateau detected"))
		}
		if st.DeloadRecommended {
			fmt.Println(color.New(color.FgRed, color.Bold).Sprint("  deload recommended"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func testPointsFromHistory(history []models.SessionResult) []metrics.TrendPoint {
	var out []metrics.TrendPoint
	for _, h := range history {
		if h.SessionType == models.SessionTest {
			out = append(out, metrics.TrendPoint{Date: h.Date, Value: float64(h.MaxReps())})
		}
	}
	return out
}

// lastTwoStrengthObservations narrows a full session replay down to the
// last two non-TEST S sessions, each paired with the max Build predicted
// for it at its own date — spec.md §4.3's underperformance rule.
func lastTwoStrengthObservations(obs []physiology.SessionObservation) []adaptation.SessionObservation {
	var strength []adaptation.SessionObservation
	for _, o := range obs {
		if o.SessionType != models.SessionStrength {
			continue
		}
		strength = append(strength, adaptation.SessionObservation{
			Date: o.Date, MaxReps: o.MaxReps, PredictedMax: o.PredictedMax,
		})
	}
	if len(strength) > 2 {
		strength = strength[len(strength)-2:]
	}
	return strength
}
