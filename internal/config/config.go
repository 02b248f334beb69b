// Package config resolves the bundled numeric defaults with an optional
// user YAML overlay into a single Config value the core receives by
// value (spec.md §9 "Config overlay"). Parsing the overlay is itself an
// ambient, out-of-core concern — internal/config is not imported by
// internal/metrics, internal/physiology, internal/adaptation,
// internal/maxestimator, internal/planner, or internal/timeline.
package config

import (
	"os"
	"path/filepath"

	"github.com/misterclayt0n/lazaro/internal/errs"
	"gopkg.in/yaml.v3"
)

// DBConfig is the storage connection detail, same shape as the teacher's
// own DBConfig, now populated from TURSO_DATABASE_URL via godotenv.
type DBConfig struct {
	ConnectionString string `yaml:"connection_string"`
}

// Config is the resolved, immutable constant set handed to the planner
// and CLI. Defaults includes the physiology decay time constants and
// gains as well as the adaptation thresholds; cmd/root.go converts them
// into physiology.Tunables and adaptation.Tunables (see DESIGN.md).
type Config struct {
	Defaults Defaults `yaml:",inline"`
	DB       DBConfig `yaml:"database"`
}

// GetConfigPath mirrors the teacher's ~/.config/<app>/config layout.
func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "lazaro", "config.yaml"), nil
}

// LoadResult carries the resolved config plus an optional non-fatal
// degradation warning for the CLI to print.
type LoadResult struct {
	Config  Config
	Warning *errs.Error
}

// Load resolves Config by deep-merging BundledDefaults with the file at
// path, if present. A missing file is not a degradation: it is the
// expected steady state for a user who never created an overlay. A
// present-but-unparsable file degrades to bundled defaults and returns a
// ConfigDegraded warning instead of failing the caller.
func Load(path string) LoadResult {
	cfg := Config{Defaults: BundledDefaults()}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return LoadResult{Config: cfg}
		}
		return LoadResult{Config: cfg, Warning: errs.Degraded("could not read config overlay %s: %v", path, err)}
	}

	var overlay struct {
		Defaults `yaml:",inline"`
		DB       DBConfig `yaml:"database"`
	}
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return LoadResult{Config: cfg, Warning: errs.Degraded("could not parse config overlay %s: %v", path, err)}
	}

	cfg.Defaults = mergeNonZero(cfg.Defaults, overlay.Defaults)
	if overlay.DB.ConnectionString != "" {
		cfg.DB.ConnectionString = overlay.DB.ConnectionString
	}
	return LoadResult{Config: cfg}
}

// mergeNonZero overlays any non-zero-valued field of `over` onto `base`.
// yaml.v3 gives us no cheap reflection-based presence test for a plain
// struct target, so each tunable field is listed explicitly — the same
// approach the teacher's own Config (a single flat struct) would take if
// it grew a second source of truth.
func mergeNonZero(base, over Defaults) Defaults {
	if over.RestFactorMin != 0 {
		base.RestFactorMin = over.RestFactorMin
	}
	if over.RestFactorMax != 0 {
		base.RestFactorMax = over.RestFactorMax
	}
	if over.FitnessTauDays != 0 {
		base.FitnessTauDays = over.FitnessTauDays
	}
	if over.FatigueTauDays != 0 {
		base.FatigueTauDays = over.FatigueTauDays
	}
	if over.FitnessGain != 0 {
		base.FitnessGain = over.FitnessGain
	}
	if over.FatigueGain != 0 {
		base.FatigueGain = over.FatigueGain
	}
	if over.EWMAMaxAlpha != 0 {
		base.EWMAMaxAlpha = over.EWMAMaxAlpha
	}
	if over.EWMAVarBeta != 0 {
		base.EWMAVarBeta = over.EWMAVarBeta
	}
	if over.ReadinessAlpha != 0 {
		base.ReadinessAlpha = over.ReadinessAlpha
	}
	if over.InitialSigmaM != 0 {
		base.InitialSigmaM = over.InitialSigmaM
	}
	if over.AutoregGateSessions != 0 {
		base.AutoregGateSessions = over.AutoregGateSessions
	}
	if over.PlateauSlopeThreshold != 0 {
		base.PlateauSlopeThreshold = over.PlateauSlopeThreshold
	}
	if over.PlateauWindowDays != 0 {
		base.PlateauWindowDays = over.PlateauWindowDays
	}
	if over.DeloadReadinessZ != 0 {
		base.DeloadReadinessZ = over.DeloadReadinessZ
	}
	if over.UnderperformFraction != 0 {
		base.UnderperformFraction = over.UnderperformFraction
	}
	if over.ComplianceDeloadFloor != 0 {
		base.ComplianceDeloadFloor = over.ComplianceDeloadFloor
	}
	if over.WeightRoundToKg != 0 {
		base.WeightRoundToKg = over.WeightRoundToKg
	}
	return base
}
