package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadMissingFileReturnsBundledDefaults(t *testing.T) {
	res := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Nil(t, res.Warning)
	assert.Equal(t, BundledDefaults(), res.Config.Defaults)
}

func TestLoadOverlayMergesOnlySetFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("weight_round_to_kg: 1.0\n"), 0o644))

	res := Load(path)
	assert.Nil(t, res.Warning)
	assert.Equal(t, 1.0, res.Config.Defaults.WeightRoundToKg)
	assert.Equal(t, BundledDefaults().FitnessTauDays, res.Config.Defaults.FitnessTauDays)
}

func TestLoadDegradesOnUnparsableOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("not: [valid: yaml"), 0o644))

	res := Load(path)
	assert.NotNil(t, res.Warning)
	assert.Equal(t, BundledDefaults(), res.Config.Defaults)
}
