// Package configs bundles the shipped exercise definitions into the
// binary so `lazaro init` works with zero setup.
package configs

import (
	"embed"
	"fmt"

	"github.com/misterclayt0n/lazaro/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed exercises/*.yaml
var bundledExercises embed.FS

// Exercise loads one of the three shipped exercise definitions
// (pull_up, dip, bss) by id.
func Exercise(id string) (models.Exercise, error) {
	data, err := bundledExercises.ReadFile("exercises/" + id + ".yaml")
	if err != nil {
		return models.Exercise{}, fmt.Errorf("no bundled definition for exercise %q: %w", id, err)
	}

	var ex models.Exercise
	if err := yaml.Unmarshal(data, &ex); err != nil {
		return models.Exercise{}, fmt.Errorf("parse bundled exercise %q: %w", id, err)
	}
	return ex, nil
}

// ExerciseIDs lists every exercise shipped with the binary.
func ExerciseIDs() []string {
	return []string{"pull_up", "dip", "bss"}
}
