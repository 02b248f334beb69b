package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/misterclayt0n/lazaro/internal/models"
)

// SaveExercise upserts one Exercise definition.
func (s *Storage) SaveExercise(ex models.Exercise) error {
	data, err := json.Marshal(ex)
	if err != nil {
		return fmt.Errorf("marshal exercise %s: %w", ex.ID, err)
	}

	_, err = s.DB.ExecContext(context.Background(),
		`INSERT INTO exercises (id, data) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data`,
		ex.ID, string(data),
	)
	return err
}

// GetExercise loads one Exercise definition by id.
func (s *Storage) GetExercise(id string) (*models.Exercise, error) {
	var data string
	if err := s.DB.QueryRow(`SELECT data FROM exercises WHERE id = ?`, id).Scan(&data); err != nil {
		return nil, err
	}

	var ex models.Exercise
	if err := json.Unmarshal([]byte(data), &ex); err != nil {
		return nil, fmt.Errorf("unmarshal exercise %s: %w", id, err)
	}
	return &ex, nil
}

// ListExercises returns every configured Exercise, in no particular order.
func (s *Storage) ListExercises() ([]models.Exercise, error) {
	rows, err := s.DB.Query(`SELECT data FROM exercises`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Exercise
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var ex models.Exercise
		if err := json.Unmarshal([]byte(data), &ex); err != nil {
			return nil, fmt.Errorf("unmarshal exercise row: %w", err)
		}
		out = append(out, ex)
	}
	return out, rows.Err()
}
