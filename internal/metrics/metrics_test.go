package metrics

import (
	"testing"
	"time"

	"github.com/misterclayt0n/lazaro/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRestFactorBounds(t *testing.T) {
	assert.InDelta(t, 1.0, RestFactor(180), 1e-6)
	assert.Less(t, RestFactor(60), 1.0)
	assert.LessOrEqual(t, RestFactor(600), 1.05)
	assert.GreaterOrEqual(t, RestFactor(0), 0.80)
}

func TestEffectiveRepsAtCanonicalRest(t *testing.T) {
	assert.InDelta(t, 10.0, EffectiveReps(10, 180), 1e-6)
}

func TestEffectiveRepsShortRestInflates(t *testing.T) {
	got := EffectiveReps(10, 60)
	assert.Greater(t, got, 10.0)
}

func TestDropOffRequiresThreeSets(t *testing.T) {
	s := models.SessionResult{Sets: []models.CompletedSet{
		{Reps: 10}, {Reps: 8},
	}}
	assert.Equal(t, 0.0, DropOff(s))
}

func TestDropOffComputed(t *testing.T) {
	s := models.SessionResult{Sets: []models.CompletedSet{
		{Reps: 10}, {Reps: 8}, {Reps: 6},
	}}
	// mean(last two) = 7, dropoff = 1 - 7/10 = 0.3
	assert.InDelta(t, 0.3, DropOff(s), 1e-9)
}

func TestTrainingMaxFrom(t *testing.T) {
	assert.Equal(t, 9, TrainingMaxFrom(10))
	assert.Equal(t, 1, TrainingMaxFrom(0.5))
}

func TestEstimateRIRClamps(t *testing.T) {
	assert.Equal(t, 5.0, EstimateRIR(0, 10))
	assert.Equal(t, 0.0, EstimateRIR(12, 10))
}

func TestLinearTrendNeedsTwoPoints(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0.0, LinearTrend([]TrendPoint{{Date: base, Value: 10}}, 21))
}

func TestLinearTrendComputesWeeklySlope(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	pts := []TrendPoint{
		{Date: base, Value: 10},
		{Date: base.AddDate(0, 0, 7), Value: 11},
		{Date: base.AddDate(0, 0, 14), Value: 12},
	}
	got := LinearTrend(pts, 21)
	assert.InDelta(t, 1.0, got, 1e-6)
}

func TestComplianceRatio(t *testing.T) {
	assert.InDelta(t, 0.5, Compliance(5, 10), 1e-9)
	assert.Equal(t, 0.0, Compliance(5, 0))
}

func TestSessionMaxBWOnlyIgnoresLoadedSets(t *testing.T) {
	s := models.SessionResult{Sets: []models.CompletedSet{
		{Reps: 5, WeightKg: 10},
		{Reps: 8, WeightKg: 0},
		{Reps: 3, WeightKg: 0},
	}}
	assert.Equal(t, 8, SessionMaxBWOnly(s))
}
