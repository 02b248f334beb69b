package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/misterclayt0n/lazaro/internal/metrics"
	"github.com/misterclayt0n/lazaro/internal/models"
	"github.com/misterclayt0n/lazaro/internal/physiology"
	"github.com/misterclayt0n/lazaro/internal/planner"
	"github.com/misterclayt0n/lazaro/internal/utils"
	"github.com/spf13/cobra"
)

var (
	logDate     string
	logType     string
	logVariant  string
	logReps     string
	logWeights  string
	logRests    string
	logRIRs     string
	logNotes    string
)

var logSessionCmd = &cobra.Command{
	Use:   "log-session",
	Short: "Record a completed training session",
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

		date := time.Now()
		if logDate != "" {
			date, err = utils.ParseISODate(logDate)
			if err != nil {
				return fmt.Errorf("--date: %w", err)
			}
		}
		date = utils.DateOnly(date)

		sessionType := models.SessionType(strings.ToUpper(logType))
		variant := logVariant
		var plannedSets []models.PlannedSet

		if sessionType == "" {
			out, err := planner.Plan(planner.Input{
				Profile: profile, Exercise: ex, History: history,
				PlanStart: date, Weeks: 1, AsOf: date,
				WeightRoundToKg:    app.cfg.Defaults.WeightRoundToKg,
				PhysiologyTunables: app.physiologyTunables(), AdaptationTunables: app.adaptationTunables(),
			})
			if err == nil && len(out.Plans) > 0 {
				sessionType = out.Plans[0].SessionType
				if variant == "" {
					variant = out.Plans[0].Variant
				}
				plannedSets = out.Plans[0].PlannedSets
			} else {
				sessionType = models.SessionStrength
			}
		}
		if variant == "" {
			variant = ex.PrimaryVariant
		}

		reps, err := splitInts(logReps)
		if err != nil {
			return fmt.Errorf("--reps: %w", err)
		}
		weights := splitFloatsDefault(logWeights, len(reps), 0)
		rests := splitIntsDefault(logRests, len(reps), 0)
		rirs := splitFloatPtrs(logRIRs, len(reps))

		var sets []models.CompletedSet
		for i := range reps {
			sets = append(sets, models.CompletedSet{
				Reps: reps[i], WeightKg: weights[i], RestS: rests[i], RIR: rirs[i],
			})
		}

		equipment, _ := app.store.LoadEquipment(ex.ID)

		if utils.SessionExists() {
			if recovered, err := utils.LoadSessionState(); err == nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "recovered an in-progress %s session for %s, started %s — this new entry replaces it\n",
					recovered.SessionType, recovered.ExerciseID, recovered.StartTime.Format(time.Kitchen))
			}
		}

		result := models.SessionResult{
			Date:         date,
			ExerciseID:   ex.ID,
			SessionType:  sessionType,
			Variant:      variant,
			BodyweightKg: profile.BodyweightKg,
			Sets:         sets,
			Equipment:    equipment,
			PlannedSets:  plannedSets,
			Notes:        logNotes,
		}

		_ = utils.SaveSessionState(&models.InProgressSession{
			ExerciseID: ex.ID, SessionType: sessionType, Variant: variant,
			StartTime: time.Now(), Sets: sets, Notes: logNotes,
		})

		saved, err := app.store.AppendSessionResult(result)
		if err != nil {
			return err
		}
		_ = utils.ClearSessionState()

		var promoted *models.SessionResult
		if sessionType != models.SessionTest {
			state := physiology.Build(history, ex, profile.Baseline(ex.ID), app.physiologyTunables())
			testPoints := testPointsFromHistory(history)
			latestTestMax := state.MHat
			if len(testPoints) > 0 {
				latestTestMax = testPoints[len(testPoints)-1].Value
			}
			if best := metrics.SessionMaxBWOnly(result); float64(best) > latestTestMax {
				promotion := models.SessionResult{
					Date:         date,
					ExerciseID:   ex.ID,
					SessionType:  models.SessionTest,
					Variant:      ex.PrimaryVariant,
					BodyweightKg: profile.BodyweightKg,
					Sets:         []models.CompletedSet{{Reps: best}},
					Notes:        fmt.Sprintf("auto-promoted from a %s personal best", sessionType),
				}
				savedPromotion, err := app.store.AppendSessionResult(promotion)
				if err != nil {
					return err
				}
				promoted = &savedPromotion
			}
		}

		if jsonFlag {
			if promoted != nil {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(struct {
					models.SessionResult
					PromotedTest *models.SessionResult `json:"promoted_test"`
				}{saved, promoted})
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(saved)
		}

		printBoxedHeader("LOGGED")
		printMetric("Date", utils.FormatISODate(saved.Date))
		printMetric("Type", saved.SessionType)
		printMetric("Variant", saved.Variant)
		printMetric("History id", saved.HistoryID)
		if promoted != nil {
			printMetric("Promoted TEST (history id)", promoted.HistoryID)
			printMetric("Promoted TEST max_reps", metrics.SessionMaxBWOnly(*promoted))
		}
		return nil
	},
}

func init() {
	logSessionCmd.Flags().StringVar(&logDate, "date", "", "session date, YYYY-MM-DD (default today)")
	logSessionCmd.Flags().StringVar(&logType, "type", "", "S, H, E, T, or TEST (default: next planned slot)")
	logSessionCmd.Flags().StringVar(&logVariant, "variant", "", "variant name (default: planned or primary)")
	logSessionCmd.Flags().StringVar(&logReps, "reps", "", "comma-separated reps per set, e.g. 8,7,6")
	logSessionCmd.Flags().StringVar(&logWeights, "weights", "", "comma-separated added weight in kg per set")
	logSessionCmd.Flags().StringVar(&logRests, "rests", "", "comma-separated rest seconds preceding each set")
	logSessionCmd.Flags().StringVar(&logRIRs, "rir", "", "comma-separated reps-in-reserve per set")
	logSessionCmd.Flags().StringVar(&logNotes, "notes", "", "freeform note")
	logSessionCmd.MarkFlagRequired("reps")
	rootCmd.AddCommand(logSessionCmd)
}

func splitInts(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func splitFloatsDefault(s string, n int, def float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = def
	}
	if s == "" {
		return out
	}
	for i, p := range strings.Split(s, ",") {
		if i >= n {
			break
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(p), 64); err == nil {
			out[i] = v
		}
	}
	return out
}

func splitIntsDefault(s string, n int, def int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = def
	}
	if s == "" {
		return out
	}
	for i, p := range strings.Split(s, ",") {
		if i >= n {
			break
		}
		if v, err := strconv.Atoi(strings.TrimSpace(p)); err == nil {
			out[i] = v
		}
	}
	return out
}

func splitFloatPtrs(s string, n int) []*float64 {
	out := make([]*float64, n)
	if s == "" {
		return out
	}
	for i, p := range strings.Split(s, ",") {
		if i >= n {
			break
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(p), 64); err == nil {
			vv := v
			out[i] = &vv
		}
	}
	return out
}
