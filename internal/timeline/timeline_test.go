package timeline

import (
	"testing"
	"time"

	"github.com/misterclayt0n/lazaro/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMarksDoneForMatchedHistory(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	plans := []models.SessionPlan{
		{Date: day, SessionType: models.SessionStrength, Variant: "pronated", ExpectedTM: 10},
	}
	history := []models.SessionResult{
		{HistoryID: 1, Date: day, ExerciseID: "pull_up", SessionType: models.SessionStrength, Sets: []models.CompletedSet{{Reps: 8}, {Reps: 7}}},
	}

	entries := Build(plans, history, day.AddDate(0, 0, 1), 12)
	require.Len(t, entries, 1)
	assert.Equal(t, models.StatusDone, entries[0].Status)
	require.NotNil(t, entries[0].HistoryID)
	assert.Equal(t, 1, *entries[0].HistoryID)
	assert.NotNil(t, entries[0].TrackB)
}

func TestBuildMarksMissedForPastUnmatchedSlot(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	plans := []models.SessionPlan{{Date: day, SessionType: models.SessionStrength}}

	entries := Build(plans, nil, day.AddDate(0, 0, 5), 12)
	require.Len(t, entries, 1)
	assert.Equal(t, models.StatusMissed, entries[0].Status)
}

func TestBuildMarksFirstFutureSlotAsNext(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	plans := []models.SessionPlan{
		{Date: day, SessionType: models.SessionStrength, ExpectedTM: 10},
		{Date: day.AddDate(0, 0, 2), SessionType: models.SessionHypertrophy, ExpectedTM: 10},
	}

	entries := Build(plans, nil, day.AddDate(0, 0, -1), 12)
	require.Len(t, entries, 2)
	assert.Equal(t, models.StatusNext, entries[0].Status)
	assert.Equal(t, models.StatusPlanned, entries[1].Status)
	require.NotNil(t, entries[0].MaxProjection)
}

func TestBuildKeepsUnmatchedHistoryAsExtra(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	history := []models.SessionResult{
		{HistoryID: 1, Date: day, ExerciseID: "pull_up", SessionType: models.SessionHypertrophy},
	}

	entries := Build(nil, history, day.AddDate(0, 0, 1), 12)
	require.Len(t, entries, 1)
	assert.Equal(t, models.StatusExtra, entries[0].Status)
}

func TestBuildMarksRestedForRestRecord(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	plans := []models.SessionPlan{{Date: day, SessionType: models.SessionStrength}}
	history := []models.SessionResult{
		{HistoryID: 1, Date: day, ExerciseID: "pull_up", SessionType: models.SessionRest},
	}

	entries := Build(plans, history, day.AddDate(0, 0, 1), 12)
	require.Len(t, entries, 1)
	assert.Equal(t, models.StatusRested, entries[0].Status)
}
