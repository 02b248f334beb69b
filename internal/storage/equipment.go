package storage

import (
	"encoding/json"
	"fmt"

	"github.com/misterclayt0n/lazaro/internal/models"
)

// SaveEquipment remembers the default equipment snapshot log-session
// should attach to future SessionResult records for this exercise.
func (s *Storage) SaveEquipment(exerciseID string, eq models.EquipmentSnapshot) error {
	data, err := json.Marshal(eq)
	if err != nil {
		return fmt.Errorf("marshal equipment: %w", err)
	}
	_, err = s.DB.Exec(
		`INSERT INTO equipment_presets (exercise_id, data) VALUES (?, ?)
		 ON CONFLICT(exercise_id) DO UPDATE SET data = excluded.data`,
		exerciseID, string(data),
	)
	return err
}

// LoadEquipment returns the stored equipment snapshot, or nil if none was
// ever set for this exercise.
func (s *Storage) LoadEquipment(exerciseID string) (models.EquipmentSnapshot, error) {
	var data string
	err := s.DB.QueryRow(`SELECT data FROM equipment_presets WHERE exercise_id = ?`, exerciseID).Scan(&data)
	if err != nil {
		return nil, err
	}
	var eq models.EquipmentSnapshot
	if err := json.Unmarshal([]byte(data), &eq); err != nil {
		return nil, fmt.Errorf("unmarshal equipment: %w", err)
	}
	return eq, nil
}
