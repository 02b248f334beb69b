package validate

import (
	"testing"

	"github.com/misterclayt0n/lazaro/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestProfileAcceptsValidValues(t *testing.T) {
	p := models.UserProfile{BodyweightKg: 82, DefaultDaysPerWeek: 3}
	assert.Nil(t, Profile(p))
}

func TestProfileRejectsZeroBodyweight(t *testing.T) {
	p := models.UserProfile{BodyweightKg: 0, DefaultDaysPerWeek: 3}
	err := Profile(p)
	if assert.NotNil(t, err) {
		assert.Equal(t, "invalid_input", string(err.Kind))
	}
}

func TestProfileRejectsOutOfRangeDaysPerWeek(t *testing.T) {
	p := models.UserProfile{BodyweightKg: 82, DefaultDaysPerWeek: 9}
	assert.NotNil(t, Profile(p))
}

func TestExerciseRejectsBWFractionOutOfRange(t *testing.T) {
	ex := models.Exercise{ID: "pull_up", BWFraction: 1.5}
	assert.NotNil(t, Exercise(ex))
}

func TestExerciseAcceptsValidBWFraction(t *testing.T) {
	ex := models.Exercise{ID: "pull_up", BWFraction: 1.0}
	assert.Nil(t, Exercise(ex))
}

func TestDaysPerWeekBoundaries(t *testing.T) {
	assert.Nil(t, DaysPerWeek(1))
	assert.Nil(t, DaysPerWeek(5))
	assert.NotNil(t, DaysPerWeek(0))
	assert.NotNil(t, DaysPerWeek(6))
}
