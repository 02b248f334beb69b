package physiology

import (
	"testing"
	"time"

	"github.com/misterclayt0n/lazaro/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pullup() models.Exercise {
	return models.Exercise{
		ID:         "pull_up",
		BWFraction: 1.0,
		VariantStress: map[string]float64{
			"pronated": 1.00,
			"neutral":  0.95,
			"supinated": 1.05,
		},
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	base := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	hist := []models.SessionResult{
		{Date: base, ExerciseID: "pull_up", SessionType: models.SessionTest, Variant: "pronated", BodyweightKg: 80, Sets: []models.CompletedSet{{Reps: 10}}},
		{Date: base.AddDate(0, 0, 3), ExerciseID: "pull_up", SessionType: models.SessionStrength, Variant: "pronated", BodyweightKg: 80, Sets: []models.CompletedSet{{Reps: 6}, {Reps: 5}}},
	}
	s1 := Build(hist, pullup(), 10, DefaultTunables())
	s2 := Build(hist, pullup(), 10, DefaultTunables())
	assert.Equal(t, s1, s2)
}

func TestBuildFoldsTestIntoMHat(t *testing.T) {
	base := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	hist := []models.SessionResult{
		{Date: base, ExerciseID: "pull_up", SessionType: models.SessionTest, Variant: "pronated", BodyweightKg: 80, Sets: []models.CompletedSet{{Reps: 12}}},
	}
	s := Build(hist, pullup(), 10, DefaultTunables())
	// m_hat = 0.75*10 + 0.25*12 = 10.5
	assert.InDelta(t, 10.5, s.MHat, 1e-6)
}

func TestDecayReducesFitnessAndFatigueOverRestDays(t *testing.T) {
	start := models.FitnessFatigueState{Fitness: 10, Fatigue: 10}
	decayed := Decay(start, 7, DefaultTunables())
	require.Less(t, decayed.Fatigue, start.Fatigue)
	require.Less(t, decayed.Fitness, start.Fitness)
	// fatigue decays faster (tau=7) than fitness (tau=42)
	assert.Less(t, decayed.Fatigue, decayed.Fitness)
}

func TestAdvanceIncrementsUpdateCount(t *testing.T) {
	s := models.FitnessFatigueState{}
	s = Advance(s, 0, 5, DefaultTunables())
	assert.Equal(t, 1, s.UpdateCount)
	s = Advance(s, 2, 3, DefaultTunables())
	assert.Equal(t, 2, s.UpdateCount)
}

func TestPredictedMaxEqualsMHatAtMeanReadiness(t *testing.T) {
	s := models.FitnessFatigueState{MHat: 10, ReadinessMean: 0, Fitness: 0, Fatigue: 0}
	assert.InDelta(t, 10.0, PredictedMax(s), 1e-9)
}
