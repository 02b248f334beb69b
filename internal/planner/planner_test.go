package planner

import (
	"testing"
	"time"

	"github.com/misterclayt0n/lazaro/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pullUpExercise() models.Exercise {
	return models.Exercise{
		ID:             "pull_up",
		BWFraction:     1.0,
		LoadType:       models.LoadBodyweightPlusExternal,
		Variants:       []string{"pronated", "neutral", "supinated"},
		PrimaryVariant: "pronated",
		VariantStress:  map[string]float64{"pronated": 1.00, "neutral": 0.95, "supinated": 1.05},
		TargetMetric:   models.TargetMaxReps,
		TargetValue:    30,
		TestFrequencyWeeks: 3,
		WeightIncrementFraction: 0.01,
		WeightTMThreshold:       9,
		MaxAddedWeightKg:        40,
		SessionParams: map[models.SessionType]models.SessionTypeParams{
			models.SessionStrength: {RepsFractionLow: 0.4, RepsFractionHigh: 0.6, RepsMin: 3, RepsMax: 8, SetsMin: 3, SetsMax: 5, RestMin: 120, RestMax: 240, RIRTarget: 2},
			models.SessionHypertrophy: {RepsFractionLow: 0.6, RepsFractionHigh: 0.8, RepsMin: 6, RepsMax: 15, SetsMin: 3, SetsMax: 5, RestMin: 90, RestMax: 150, RIRTarget: 2},
			models.SessionEndurance: {RepsFractionLow: 0.3, RepsFractionHigh: 0.5, RepsMin: 3, RepsMax: 20, SetsMin: 4, SetsMax: 8, RestMin: 45, RestMax: 90, RIRTarget: 3},
		},
	}
}

func TestPlanFreshUserNoHistory(t *testing.T) {
	start := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC) // a Monday
	require.Equal(t, time.Monday, start.Weekday())

	profile := models.UserProfile{
		BodyweightKg:       82,
		DefaultDaysPerWeek: 3,
		TargetMaxReps:      10,
	}
	ex := pullUpExercise()

	out, err := Plan(Input{
		Profile:   profile,
		Exercise:  ex,
		History:   nil,
		PlanStart: start,
		Weeks:     1,
		AsOf:      start,
	})
	require.NoError(t, err)
	require.Len(t, out.Plans, 3)

	assert.Equal(t, models.SessionStrength, out.Plans[0].SessionType)
	assert.Equal(t, models.SessionHypertrophy, out.Plans[1].SessionType)
	assert.Equal(t, models.SessionEndurance, out.Plans[2].SessionType)

	assert.Equal(t, start, out.Plans[0].Date)
	assert.Equal(t, start.AddDate(0, 0, 2), out.Plans[1].Date)
	assert.Equal(t, start.AddDate(0, 0, 4), out.Plans[2].Date)
}

// The endurance ladder is bounded by params.SetsMax alone, not the
// autoregulated base set count — a fresh user's base_sets=6 must not cap
// an endurance session whose sets_max=8 still has room under its reps
// target.
func TestEnduranceLadderIgnoresAutoregulatedBaseSets(t *testing.T) {
	start := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	profile := models.UserProfile{BodyweightKg: 82, DefaultDaysPerWeek: 3, TargetMaxReps: 10}
	ex := pullUpExercise()

	out, err := Plan(Input{
		Profile: profile, Exercise: ex, PlanStart: start, Weeks: 1, AsOf: start,
	})
	require.NoError(t, err)
	require.Len(t, out.Plans, 3)

	endurance := out.Plans[2]
	require.Equal(t, models.SessionEndurance, endurance.SessionType)
	assert.Equal(t, 8, len(endurance.PlannedSets))
}

func TestPlanIsDeterministicAcrossInvocations(t *testing.T) {
	start := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	profile := models.UserProfile{BodyweightKg: 82, DefaultDaysPerWeek: 3, TargetMaxReps: 10}
	ex := pullUpExercise()
	in := Input{Profile: profile, Exercise: ex, PlanStart: start, Weeks: 4, AsOf: start}

	out1, err1 := Plan(in)
	out2, err2 := Plan(in)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, out1.Plans, out2.Plans)
}

func TestPlanInsertsTestSession(t *testing.T) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC) // Monday
	history := []models.SessionResult{
		{Date: start, ExerciseID: "pull_up", SessionType: models.SessionTest, Variant: "pronated", BodyweightKg: 82, Sets: []models.CompletedSet{{Reps: 10}}},
	}
	profile := models.UserProfile{BodyweightKg: 82, DefaultDaysPerWeek: 3, TargetMaxReps: 10}
	ex := pullUpExercise()

	out, err := Plan(Input{
		Profile:   profile,
		Exercise:  ex,
		History:   history,
		PlanStart: start.AddDate(0, 0, 2),
		Weeks:     5,
		AsOf:      start,
	})
	require.NoError(t, err)

	foundTest := false
	for _, p := range out.Plans {
		if p.SessionType == models.SessionTest {
			foundTest = true
		}
	}
	assert.True(t, foundTest, "expected a TEST session to be inserted within the horizon")
}

func TestShiftForwardAppendsRestThenRemoves(t *testing.T) {
	from := time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC)
	res, err := ShiftForward(nil, "pull_up", from, 3)
	require.NoError(t, err)
	require.Len(t, res.Append, 3)
	assert.Equal(t, from.AddDate(0, 0, 3), res.PlanStart)

	var history []models.SessionResult
	history = append(history, res.Append...)

	back, err := ShiftForward(history, "pull_up", res.PlanStart, -2)
	require.NoError(t, err)
	require.Len(t, back.RemoveDates, 2)
	assert.Equal(t, from.AddDate(0, 0, 1), back.PlanStart)
}
