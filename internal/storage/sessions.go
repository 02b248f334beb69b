package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/misterclayt0n/lazaro/internal/models"
)

// AppendSessionResult assigns the next history_id for the exercise and
// persists the record. A SessionResult, once appended, is never mutated
// in place (Invariant 1) — callers that need to correct a record delete
// it and append a fresh one.
func (s *Storage) AppendSessionResult(r models.SessionResult) (models.SessionResult, error) {
	ctx := context.Background()

	var maxID int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(history_id), 0) FROM session_results WHERE exercise_id = ?`,
		r.ExerciseID,
	).Scan(&maxID)
	if err != nil {
		return r, fmt.Errorf("next history id: %w", err)
	}
	r.HistoryID = maxID + 1

	data, err := json.Marshal(r)
	if err != nil {
		return r, fmt.Errorf("marshal session result: %w", err)
	}

	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO session_results (row_uuid, history_id, exercise_id, date, session_type, data)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), r.HistoryID, r.ExerciseID, r.Date.Format("2006-01-02"), string(r.SessionType), string(data),
	)
	return r, err
}

// AppendMany persists several records one after another, each getting
// the next available history_id in order (used by ShiftForward's bulk
// REST inserts). The inserts do not share a transaction: on an error,
// the records already appended stay written.
func (s *Storage) AppendMany(records []models.SessionResult) ([]models.SessionResult, error) {
	out := make([]models.SessionResult, 0, len(records))
	for _, r := range records {
		saved, err := s.AppendSessionResult(r)
		if err != nil {
			return out, err
		}
		out = append(out, saved)
	}
	return out, nil
}

// ListHistory returns every SessionResult logged for an exercise, sorted
// by date then history_id.
func (s *Storage) ListHistory(exerciseID string) ([]models.SessionResult, error) {
	rows, err := s.DB.Query(
		`SELECT data FROM session_results WHERE exercise_id = ? ORDER BY date, history_id`,
		exerciseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.SessionResult
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var r models.SessionResult
		if err := json.Unmarshal([]byte(data), &r); err != nil {
			return nil, fmt.Errorf("unmarshal session result row: %w", err)
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].HistoryID < out[j].HistoryID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, rows.Err()
}

// DeleteRecord removes one history record by id. Storage puts no
// restriction on what may be deleted, and the CLI's delete-record
// command passes the id straight through without a warning or a check
// of the record's type.
func (s *Storage) DeleteRecord(exerciseID string, historyID int) error {
	res, err := s.DB.Exec(
		`DELETE FROM session_results WHERE exercise_id = ? AND history_id = ?`,
		exerciseID, historyID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no history record %d for exercise %s", historyID, exerciseID)
	}
	return nil
}

// RemoveByDates deletes every REST record for an exercise on the given
// dates, implementing the negative-shift branch of ShiftForward without
// ever touching a non-REST row.
func (s *Storage) RemoveByDates(exerciseID string, dates []string) error {
	if len(dates) == 0 {
		return nil
	}
	for _, d := range dates {
		_, err := s.DB.Exec(
			`DELETE FROM session_results WHERE exercise_id = ? AND date = ? AND session_type = 'REST'`,
			exerciseID, d,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
