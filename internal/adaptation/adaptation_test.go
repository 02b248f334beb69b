package adaptation

import (
	"testing"
	"time"

	"github.com/misterclayt0n/lazaro/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestAutoregulateNoopBelowGate(t *testing.T) {
	base := Prescription{Sets: 4, Reps: 8}
	got := Autoregulate(base, 9, -2.0, DefaultTunables())
	assert.Equal(t, base, got)
}

func TestAutoregulateLowReadinessCutsSets(t *testing.T) {
	base := Prescription{Sets: 4, Reps: 8}
	got := Autoregulate(base, 10, -1.5, DefaultTunables())
	assert.Equal(t, 3, got.Sets) // floor(4*0.7)=2, clamped to 3
	assert.Equal(t, 8, got.Reps)
}

func TestAutoregulateHighReadinessAddsRep(t *testing.T) {
	base := Prescription{Sets: 4, Reps: 8}
	got := Autoregulate(base, 10, 1.5, DefaultTunables())
	assert.Equal(t, 4, got.Sets)
	assert.Equal(t, 9, got.Reps)
}

func TestProgressionRateBoundaries(t *testing.T) {
	// At the target, f=0 and the rate is the floor.
	assert.InDelta(t, 0.30, ProgressionRate(30, 30), 1e-6)
	// Far below target, f approaches 1 and the rate approaches the ceiling.
	assert.InDelta(t, 1.0, ProgressionRate(0, 30), 1e-6)
}

func TestProgressionRateMonotonicInTM(t *testing.T) {
	a := ProgressionRate(5, 30)
	b := ProgressionRate(15, 30)
	c := ProgressionRate(25, 30)
	assert.Greater(t, a, b)
	assert.Greater(t, b, c)
}

func TestOvertrainingSeverityZeroWhenOnSchedule(t *testing.T) {
	base := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	dates := []time.Time{base, base.AddDate(0, 0, 2), base.AddDate(0, 0, 4)}
	got := OvertrainingSeverity(dates, 0, 3)
	assert.Equal(t, OvertrainNone, got.Level)
}

func TestOvertrainingSeveritySevereSetsExtraRestDays(t *testing.T) {
	base := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	// 7 sessions crammed into a 2-day span at daysPerWeek=3 overshoots badly.
	dates := []time.Time{base, base, base, base, base, base, base.AddDate(0, 0, 2)}
	got := OvertrainingSeverity(dates, 0, 3)
	assert.Equal(t, OvertrainSevere, got.Level)
	assert.Greater(t, got.ExtraRestDays, 0)
}

func TestVolumePolicyDeloadFloor(t *testing.T) {
	got := VolumePolicy(10, true, 0, 1.0)
	assert.Equal(t, 8.0, got)
}

func TestVolumePolicyOverperformCap(t *testing.T) {
	got := VolumePolicy(19, false, 1.5, 0.95)
	assert.Equal(t, 20.0, got)
}

func TestVolumePolicyPassesThroughUnchangedOtherwise(t *testing.T) {
	got := VolumePolicy(4, false, 0, 0.5)
	assert.Equal(t, 4.0, got)
}

func TestBuildStatusRecommendsDeloadOnRealUnderperformance(t *testing.T) {
	asOf := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	state := models.FitnessFatigueState{}
	lastTwoS := []SessionObservation{
		{Date: asOf.AddDate(0, 0, -4), MaxReps: 8, PredictedMax: 10},
		{Date: asOf.AddDate(0, 0, -2), MaxReps: 8, PredictedMax: 10},
	}
	st := BuildStatus(state, nil, 10, 1.0, asOf, DefaultTunables(), lastTwoS)
	assert.True(t, st.DeloadRecommended)
}

func TestBuildStatusNoDeloadWhenNotUnderperforming(t *testing.T) {
	asOf := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	state := models.FitnessFatigueState{}
	lastTwoS := []SessionObservation{
		{Date: asOf.AddDate(0, 0, -4), MaxReps: 10, PredictedMax: 10},
		{Date: asOf.AddDate(0, 0, -2), MaxReps: 10, PredictedMax: 10},
	}
	st := BuildStatus(state, nil, 10, 1.0, asOf, DefaultTunables(), lastTwoS)
	assert.False(t, st.DeloadRecommended)
}

func TestUnderperformanceRequiresTwoObservations(t *testing.T) {
	assert.False(t, Underperformance(nil, DefaultTunables()))
	assert.False(t, Underperformance([]SessionObservation{{MaxReps: 5, PredictedMax: 10}}, DefaultTunables()))
}

func TestUnderperformanceTrue(t *testing.T) {
	obs := []SessionObservation{
		{MaxReps: 8, PredictedMax: 10},
		{MaxReps: 8, PredictedMax: 10},
	}
	assert.True(t, Underperformance(obs, DefaultTunables()))
}
