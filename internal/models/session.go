package models

import "time"

// CompletedSet is one set actually performed, as logged by the user.
type CompletedSet struct {
	Reps     int     `json:"reps" toml:"reps"`
	WeightKg float64 `json:"weight_kg" toml:"weight_kg"`
	RestS    int     `json:"rest_s" toml:"rest_s"`
	// RIR is the reported reps-in-reserve; nil when unreported. The
	// load impulse then treats the set as to failure, the adaptive-rest
	// RIR checks skip it, and maxestimator derives its own estimate.
	RIR *float64 `json:"rir,omitempty" toml:"rir,omitempty"`
}

// PlannedSet is one set as prescribed, either by the planner (future) or
// frozen at logging time (past).
type PlannedSet struct {
	Reps     int     `json:"reps" toml:"reps"`
	WeightKg float64 `json:"weight_kg" toml:"weight_kg"`
	RestS    int     `json:"rest_s" toml:"rest_s"`
}

// SessionResult is one logged training day for one exercise. PlannedSets,
// once set, is frozen for the lifetime of the record (Invariant 1 of the
// data model) — nothing in this repo may mutate it after Log returns.
type SessionResult struct {
	// HistoryID is the 1-based position of this record in its exercise's
	// history file; zero until the record has been persisted.
	HistoryID int `json:"history_id,omitempty"`

	Date         time.Time          `json:"date"`
	ExerciseID   string             `json:"exercise_id"`
	SessionType  SessionType        `json:"session_type"`
	Variant      string             `json:"variant"`
	BodyweightKg float64            `json:"bodyweight_kg"`
	Sets         []CompletedSet     `json:"sets"`
	Equipment    EquipmentSnapshot  `json:"equipment,omitempty"`
	PlannedSets  []PlannedSet       `json:"planned_sets,omitempty"`
	Notes        string             `json:"notes,omitempty"`
	RIR          *float64           `json:"rir,omitempty"`
}

// MaxReps returns the largest rep count among this session's completed
// sets performed with no external load, or 0 if there is none.
func (s SessionResult) MaxReps() int {
	best := 0
	for _, set := range s.Sets {
		if set.WeightKg == 0 && set.Reps > best {
			best = set.Reps
		}
	}
	return best
}

// SessionPlan is one future, freshly computed prescription. Unlike
// SessionResult, a SessionPlan is ephemeral and is regenerated on every
// plan() invocation; it is never the source of truth for a date that has
// already been logged (Invariant 2).
type SessionPlan struct {
	Date        time.Time    `json:"date"`
	ExerciseID  string       `json:"exercise_id"`
	SessionType SessionType  `json:"session_type"`
	Variant     string       `json:"variant"`
	ExpectedTM  int          `json:"expected_tm"`
	WeekNumber  int          `json:"week_number"`
	PlannedSets []PlannedSet `json:"planned_sets"`
}

// TimelineStatus is the closed set of states a TimelineEntry can carry.
type TimelineStatus string

const (
	StatusDone    TimelineStatus = "done"
	StatusRested  TimelineStatus = "rested"
	StatusMissed  TimelineStatus = "missed"
	StatusNext    TimelineStatus = "next"
	StatusPlanned TimelineStatus = "planned"
	StatusExtra   TimelineStatus = "extra"
)

// TrackBEstimate is the pair of between-test max estimates computed by
// the FI and Nuzzo methods (MaxEstimator §4.4).
type TrackBEstimate struct {
	FIEstimate     float64 `json:"fi_estimate"`
	NuzzoEstimate  float64 `json:"nuzzo_estimate"`
}

// TimelineEntry is one row of the merged past+future view the Timeline
// component produces.
type TimelineEntry struct {
	Date        time.Time      `json:"date"`
	SessionType SessionType    `json:"session_type"`
	Variant     string         `json:"variant"`
	Status      TimelineStatus `json:"status"`

	Actual     *SessionResult `json:"actual,omitempty"`
	Prescribed []PlannedSet   `json:"prescribed,omitempty"`
	ExpectedTM int            `json:"expected_tm"`

	// HistoryID, when present, points back at the logged record this
	// entry was matched to.
	HistoryID *int `json:"history_id,omitempty"`

	TrackB *TrackBEstimate `json:"track_b,omitempty"`

	WeekNumber int `json:"week_number"`

	// MaxProjection is the displayed forward max estimate for planned and
	// next entries: max(round(ExpectedTM/0.9), latest test max).
	MaxProjection *int `json:"max_projection,omitempty"`
}

// InProgressSession is the scratch state for a session being logged
// (log-session), persisted to a TOML file like the teacher's
// current_session.toml. log-session writes it just before appending the
// record and removes it right after, so a file left behind marks an
// append that was interrupted.
type InProgressSession struct {
	ExerciseID  string         `toml:"exercise_id"`
	SessionType SessionType    `toml:"session_type"`
	Variant     string         `toml:"variant"`
	StartTime   time.Time      `toml:"start_time"`
	Sets        []CompletedSet `toml:"sets"`
	Notes       string         `toml:"notes,omitempty"`
}
