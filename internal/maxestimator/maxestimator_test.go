package maxestimator

import (
	"testing"

	"github.com/misterclayt0n/lazaro/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestComputeRequiresTwoSets(t *testing.T) {
	_, ok := Compute([]models.CompletedSet{{Reps: 10}}, -1)
	assert.False(t, ok)
}

func TestComputeReturnsEstimates(t *testing.T) {
	sets := []models.CompletedSet{
		{Reps: 10, RestS: 200},
		{Reps: 8},
		{Reps: 7},
	}
	est, ok := Compute(sets, 200)
	assert.True(t, ok)
	assert.Greater(t, est.FIEstimate, 0.0)
	assert.Greater(t, est.NuzzoEstimate, 0.0)
}

func TestInterpolateClampsAtEdges(t *testing.T) {
	assert.Equal(t, 0.00, interpolate(pcrRecoveryTable, -10))
	assert.Equal(t, 1.00, interpolate(pcrRecoveryTable, 1000))
}

func TestInterpolateMidpoint(t *testing.T) {
	// Between 60->0.75 and 90->0.87, at 75 the midpoint.
	got := interpolate(pcrRecoveryTable, 75)
	assert.InDelta(t, 0.81, got, 1e-6)
}

func TestSessionMaxReps(t *testing.T) {
	sets := []models.CompletedSet{{Reps: 5}, {Reps: 9}, {Reps: 3}}
	assert.Equal(t, 9, SessionMaxReps(sets))
}
