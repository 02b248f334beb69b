package models

// SessionType is the closed set of training-day kinds the planner schedules.
type SessionType string

const (
	SessionStrength    SessionType = "S"
	SessionHypertrophy SessionType = "H"
	SessionEndurance   SessionType = "E"
	SessionTechnique   SessionType = "T"
	SessionTest        SessionType = "TEST"
	SessionRest        SessionType = "REST"
)

// LoadType distinguishes exercises where bodyweight itself is part of the
// lifted load (pull-up, dip) from exercises where only the external load
// counts toward 1RM (Bulgarian split squat).
type LoadType string

const (
	LoadBodyweightPlusExternal LoadType = "bw_plus_external"
	LoadExternalOnly           LoadType = "external_only"
)

// TargetMetric is what the user's long-term goal is expressed in.
type TargetMetric string

const (
	TargetMaxReps TargetMetric = "max_reps"
	Target1RMKg   TargetMetric = "1rm_kg"
)

// SessionTypeParams bounds the rep/set/rest prescription for one session type
// of one exercise.
type SessionTypeParams struct {
	RepsFractionLow  float64 `yaml:"reps_fraction_low" toml:"reps_fraction_low"`
	RepsFractionHigh float64 `yaml:"reps_fraction_high" toml:"reps_fraction_high"`
	RepsMin          int     `yaml:"reps_min" toml:"reps_min"`
	RepsMax          int     `yaml:"reps_max" toml:"reps_max"`
	SetsMin          int     `yaml:"sets_min" toml:"sets_min"`
	SetsMax          int     `yaml:"sets_max" toml:"sets_max"`
	RestMin          int     `yaml:"rest_min" toml:"rest_min"`
	RestMax          int     `yaml:"rest_max" toml:"rest_max"`
	RIRTarget        float64 `yaml:"rir_target" toml:"rir_target"`
}

// Exercise is the immutable configuration for one of the supported
// movements. Nothing in the engine mutates an Exercise after it is loaded.
type Exercise struct {
	ID          string `yaml:"id" toml:"id"`
	Name        string `yaml:"name" toml:"name"`
	MuscleGroup string `yaml:"muscle_group" toml:"muscle_group"`

	// BWFraction is the portion of bodyweight lifted by this movement:
	// pull-up 1.0, dip 0.92, Bulgarian split squat 0.71.
	BWFraction float64  `yaml:"bw_fraction" toml:"bw_fraction" validate:"gte=0,lte=1"`
	LoadType   LoadType `yaml:"load_type" toml:"load_type"`

	Variants           []string                          `yaml:"variants" toml:"variants"`
	PrimaryVariant     string                             `yaml:"primary_variant" toml:"primary_variant"`
	VariantStress      map[string]float64                 `yaml:"variant_stress" toml:"variant_stress"`
	HasVariantRotation bool                               `yaml:"has_variant_rotation" toml:"has_variant_rotation"`
	GripCycles         map[SessionType][]string           `yaml:"grip_cycles" toml:"grip_cycles"`
	SessionParams      map[SessionType]SessionTypeParams  `yaml:"session_params" toml:"session_params"`

	TargetMetric TargetMetric `yaml:"target_metric" toml:"target_metric"`
	TargetValue  float64      `yaml:"target_value" toml:"target_value"`

	TestFrequencyWeeks     int  `yaml:"test_frequency_weeks" toml:"test_frequency_weeks"`
	OneRMIncludesBodyweight bool `yaml:"onerm_includes_bodyweight" toml:"onerm_includes_bodyweight"`

	WeightIncrementFraction float64 `yaml:"weight_increment_fraction" toml:"weight_increment_fraction"`
	WeightTMThreshold       float64 `yaml:"weight_tm_threshold" toml:"weight_tm_threshold"`
	MaxAddedWeightKg        float64 `yaml:"max_added_weight_kg" toml:"max_added_weight_kg"`
}

// VariantStressFactor looks up the stress multiplier for a grip/variant,
// defaulting to 1.0 for variants the exercise did not enumerate explicitly.
func (e Exercise) VariantStressFactor(variant string) float64 {
	if f, ok := e.VariantStress[variant]; ok {
		return f
	}
	return 1.0
}

// Params returns the SessionTypeParams for a session type, or false if the
// exercise did not define one (callers surface that as Inconsistent).
func (e Exercise) Params(t SessionType) (SessionTypeParams, bool) {
	p, ok := e.SessionParams[t]
	return p, ok
}
