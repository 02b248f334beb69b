package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/misterclayt0n/lazaro/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "lazaro-test.db")
	s := NewStorageAt(dsn)
	t.Cleanup(func() { s.DB.Close() })
	return s
}

func TestSaveAndLoadProfile(t *testing.T) {
	s := newTestStorage(t)

	p := models.UserProfile{BodyweightKg: 82, DefaultDaysPerWeek: 3}
	require.NoError(t, s.SaveProfile(p))

	got, err := s.LoadProfile()
	require.NoError(t, err)
	assert.Equal(t, 82.0, got.BodyweightKg)
	assert.Equal(t, 3, got.DefaultDaysPerWeek)
}

func TestSaveProfileOverwritesSingleRow(t *testing.T) {
	s := newTestStorage(t)

	require.NoError(t, s.SaveProfile(models.UserProfile{BodyweightKg: 80}))
	require.NoError(t, s.SaveProfile(models.UserProfile{BodyweightKg: 85}))

	got, err := s.LoadProfile()
	require.NoError(t, err)
	assert.Equal(t, 85.0, got.BodyweightKg)
}

func TestSaveAndGetExercise(t *testing.T) {
	s := newTestStorage(t)

	ex := models.Exercise{ID: "pull_up", Name: "Pull-up", BWFraction: 1.0}
	require.NoError(t, s.SaveExercise(ex))

	got, err := s.GetExercise("pull_up")
	require.NoError(t, err)
	assert.Equal(t, "Pull-up", got.Name)
	assert.Equal(t, 1.0, got.BWFraction)
}

func TestListExercisesReturnsAllSaved(t *testing.T) {
	s := newTestStorage(t)

	require.NoError(t, s.SaveExercise(models.Exercise{ID: "pull_up"}))
	require.NoError(t, s.SaveExercise(models.Exercise{ID: "dip"}))

	got, err := s.ListExercises()
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestAppendSessionResultAssignsSequentialHistoryIDsPerExercise(t *testing.T) {
	s := newTestStorage(t)

	r1, err := s.AppendSessionResult(models.SessionResult{ExerciseID: "pull_up", Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), SessionType: models.SessionStrength})
	require.NoError(t, err)
	assert.Equal(t, 1, r1.HistoryID)

	r2, err := s.AppendSessionResult(models.SessionResult{ExerciseID: "pull_up", Date: time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC), SessionType: models.SessionStrength})
	require.NoError(t, err)
	assert.Equal(t, 2, r2.HistoryID)

	// A different exercise starts its own history_id sequence at 1.
	r3, err := s.AppendSessionResult(models.SessionResult{ExerciseID: "dip", Date: time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC), SessionType: models.SessionStrength})
	require.NoError(t, err)
	assert.Equal(t, 1, r3.HistoryID)
}

func TestListHistorySortedByDateThenHistoryID(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.AppendSessionResult(models.SessionResult{ExerciseID: "pull_up", Date: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), SessionType: models.SessionStrength})
	require.NoError(t, err)
	_, err = s.AppendSessionResult(models.SessionResult{ExerciseID: "pull_up", Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), SessionType: models.SessionStrength})
	require.NoError(t, err)

	history, err := s.ListHistory("pull_up")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, history[0].Date.Before(history[1].Date))
}

func TestDeleteRecordRemovesExactRow(t *testing.T) {
	s := newTestStorage(t)

	saved, err := s.AppendSessionResult(models.SessionResult{ExerciseID: "pull_up", Date: time.Now(), SessionType: models.SessionStrength})
	require.NoError(t, err)

	require.NoError(t, s.DeleteRecord("pull_up", saved.HistoryID))

	history, err := s.ListHistory("pull_up")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestDeleteRecordErrorsWhenMissing(t *testing.T) {
	s := newTestStorage(t)
	err := s.DeleteRecord("pull_up", 999)
	assert.Error(t, err)
}

func TestRemoveByDatesOnlyDeletesRestRecords(t *testing.T) {
	s := newTestStorage(t)

	date := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	_, err := s.AppendSessionResult(models.SessionResult{ExerciseID: "pull_up", Date: date, SessionType: models.SessionRest})
	require.NoError(t, err)
	_, err = s.AppendSessionResult(models.SessionResult{ExerciseID: "pull_up", Date: date.AddDate(0, 0, 1), SessionType: models.SessionStrength})
	require.NoError(t, err)

	require.NoError(t, s.RemoveByDates("pull_up", []string{"2026-01-10"}))

	history, err := s.ListHistory("pull_up")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.SessionStrength, history[0].SessionType)
}

func TestSaveAndLoadEquipment(t *testing.T) {
	s := newTestStorage(t)

	eq := models.EquipmentSnapshot{"belt": "20kg plate"}
	require.NoError(t, s.SaveEquipment("pull_up", eq))

	got, err := s.LoadEquipment("pull_up")
	require.NoError(t, err)
	assert.Equal(t, "20kg plate", got["belt"])
}
