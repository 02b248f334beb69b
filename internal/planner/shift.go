package planner

import (
	"sort"
	"time"

	"github.com/misterclayt0n/lazaro/internal/errs"
	"github.com/misterclayt0n/lazaro/internal/models"
	"github.com/misterclayt0n/lazaro/internal/utils"
)

// ShiftResult is the outcome of ShiftForward: the history mutation the
// caller's storage layer must persist, plus the new plan_start anchor
// the next Plan() invocation should use.
type ShiftResult struct {
	// Append holds new REST records to write (shiftDays > 0).
	Append []models.SessionResult
	// RemoveDates holds REST record dates to delete (shiftDays < 0).
	RemoveDates []time.Time
	PlanStart time.Time
}

// ShiftForward implements spec.md §4.5 Step 8. It never touches a
// non-REST record (Invariant 6): a negative shift only ever removes
// REST records that ShiftForward itself could have created.
func ShiftForward(history []models.SessionResult, exerciseID string, fromDate time.Time, shiftDays int) (ShiftResult, error) {
	from := utils.DateOnly(fromDate)

	if shiftDays > 0 {
		var appended []models.SessionResult
		for d := 0; d < shiftDays; d++ {
			appended = append(appended, models.SessionResult{
				Date:        from.AddDate(0, 0, d),
				ExerciseID:  exerciseID,
				SessionType: models.SessionRest,
			})
		}
		lastRest := from.AddDate(0, 0, shiftDays-1)
		return ShiftResult{Append: appended, PlanStart: lastRest.AddDate(0, 0, 1)}, nil
	}

	if shiftDays == 0 {
		return ShiftResult{PlanStart: from}, nil
	}

	rangeStart := from.AddDate(0, 0, shiftDays)
	var toRemove []time.Time
	for _, h := range history {
		if h.ExerciseID != exerciseID || h.SessionType != models.SessionRest {
			continue
		}
		d := utils.DateOnly(h.Date)
		if !d.Before(rangeStart) && d.Before(from) {
			toRemove = append(toRemove, d)
		}
	}

	firstTraining := firstTrainingDate(history, exerciseID)
	planStart := rangeStart
	if firstTraining != nil && planStart.Before(*firstTraining) {
		planStart = *firstTraining
	}

	sort.Slice(toRemove, func(i, j int) bool { return toRemove[i].Before(toRemove[j]) })
	return ShiftResult{RemoveDates: toRemove, PlanStart: planStart}, nil
}

func firstTrainingDate(history []models.SessionResult, exerciseID string) *time.Time {
	var earliest *time.Time
	for i := range history {
		h := history[i]
		if h.ExerciseID != exerciseID || h.SessionType == models.SessionRest {
			continue
		}
		d := utils.DateOnly(h.Date)
		if earliest == nil || d.Before(*earliest) {
			earliest = &d
		}
	}
	return earliest
}

// ValidateShiftDays is a small guard the CLI calls before invoking
// ShiftForward, surfacing an InvalidInput error for a nonsensical range.
func ValidateShiftDays(days int) *errs.Error {
	if days == 0 {
		return errs.Invalid("shift of 0 days is a no-op")
	}
	return nil
}
