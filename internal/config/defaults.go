package config

// Defaults holds the bundled numeric constants spec.md §4 hard-codes.
// A user overlay (see config.go) may override any of these; an absent
// key falls back to the value here.
type Defaults struct {
	RestFactorMin float64 `yaml:"rest_factor_min"`
	RestFactorMax float64 `yaml:"rest_factor_max"`

	FitnessTauDays float64 `yaml:"fitness_tau_days"`
	FatigueTauDays float64 `yaml:"fatigue_tau_days"`
	FitnessGain    float64 `yaml:"fitness_gain"`
	FatigueGain    float64 `yaml:"fatigue_gain"`

	EWMAMaxAlpha float64 `yaml:"ewma_max_alpha"`
	EWMAVarBeta  float64 `yaml:"ewma_var_beta"`
	ReadinessAlpha float64 `yaml:"readiness_alpha"`
	InitialSigmaM  float64 `yaml:"initial_sigma_m"`

	AutoregGateSessions  int     `yaml:"autoreg_gate_sessions"`
	PlateauSlopeThreshold float64 `yaml:"plateau_slope_threshold"`
	PlateauWindowDays      int     `yaml:"plateau_window_days"`
	DeloadReadinessZ       float64 `yaml:"deload_readiness_z"`
	UnderperformFraction   float64 `yaml:"underperform_fraction"`
	ComplianceDeloadFloor  float64 `yaml:"compliance_deload_floor"`

	WeightRoundToKg float64 `yaml:"weight_round_to_kg"`
}

// BundledDefaults is the built-in constant set matching spec.md §4
// exactly; it is always a complete, valid Config on its own.
func BundledDefaults() Defaults {
	return Defaults{
		RestFactorMin: 0.80,
		RestFactorMax: 1.05,

		FitnessTauDays: 42,
		FatigueTauDays: 7,
		FitnessGain:    0.5,
		FatigueGain:    1.0,

		EWMAMaxAlpha:   0.25,
		EWMAVarBeta:    0.15,
		ReadinessAlpha: 0.1,
		InitialSigmaM:  1.5,

		AutoregGateSessions:   10,
		PlateauSlopeThreshold: 0.05,
		PlateauWindowDays:     21,
		DeloadReadinessZ:      -0.5,
		UnderperformFraction:  0.90,
		ComplianceDeloadFloor: 0.70,

		WeightRoundToKg: 0.5,
	}
}
