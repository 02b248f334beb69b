package utils

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/misterclayt0n/lazaro/internal/models"
)

// EquipmentPresetTOML is the on-disk shape of a reusable equipment
// snapshot, imported the same way the teacher imports program bundles
// from TOML (utils.ParseProgramFromTOML in the teacher repo).
type EquipmentPresetTOML struct {
	Name  string            `toml:"name"`
	Items map[string]string `toml:"items"`
}

// ParseEquipmentPresetFromTOML loads a named equipment snapshot a user
// can attach to SessionResult.Equipment via `update-equipment`.
func ParseEquipmentPresetFromTOML(path string) (models.EquipmentSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var preset EquipmentPresetTOML
	if err := toml.Unmarshal(data, &preset); err != nil {
		return nil, err
	}

	return models.EquipmentSnapshot(preset.Items), nil
}
