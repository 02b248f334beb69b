package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/misterclayt0n/lazaro/internal/models"
)

// SaveProfile upserts the single UserProfile row.
func (s *Storage) SaveProfile(p models.UserProfile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	_, err = s.DB.ExecContext(context.Background(),
		`INSERT INTO user_profile (id, data) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data`,
		string(data),
	)
	return err
}

// LoadProfile returns the stored UserProfile, or nil if init has never run.
func (s *Storage) LoadProfile() (*models.UserProfile, error) {
	var data string
	err := s.DB.QueryRow(`SELECT data FROM user_profile WHERE id = 1`).Scan(&data)
	if err != nil {
		return nil, err
	}

	var p models.UserProfile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	return &p, nil
}
