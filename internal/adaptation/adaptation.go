// Package adaptation implements trend/plateau/deload detection,
// autoregulation, overtraining severity, progression rate, and volume
// policy (spec.md §4.3). All functions are pure over their inputs.
package adaptation

import (
	"math"
	"time"

	"github.com/misterclayt0n/lazaro/internal/metrics"
	"github.com/misterclayt0n/lazaro/internal/models"
)

// Tunables holds the engine's trend/plateau/deload/autoregulation
// thresholds (spec.md §4.3). They are overridable via the CLI's config
// overlay (spec.md §4.9); DefaultTunables reproduces the spec's bundled
// values exactly.
type Tunables struct {
	AutoregGateSessions   int
	PlateauSlopeThreshold float64
	PlateauWindowDays     int
	DeloadReadinessZ      float64
	UnderperformFraction  float64
	ComplianceDeloadFloor float64
}

// DefaultTunables is the bundled constant set spec.md §4.3 hard-codes.
func DefaultTunables() Tunables {
	return Tunables{
		AutoregGateSessions:   10,
		PlateauSlopeThreshold: 0.05,
		PlateauWindowDays:     21,
		DeloadReadinessZ:      -0.5,
		UnderperformFraction:  0.90,
		ComplianceDeloadFloor: 0.70,
	}
}

// TrainingStatus is the aggregate status surface spec.md §4.3 names.
type TrainingStatus struct {
	TrainingMax       int
	LatestTestMax     float64
	TrendSlope        float64
	IsPlateau         bool
	DeloadRecommended bool
	ReadinessZScore   float64
	Fitness           float64
	Fatigue           float64
}

// BuildStatus assembles TrainingStatus from a replayed state, the
// exercise's TEST history, and weekly compliance. allTimeBestMax is the
// best max observed across all TEST sessions ever logged (used by the
// plateau rule below). lastTwoS is the caller's two most recent non-TEST
// S-session observations (see Underperformance); fewer than two never
// triggers the underperformance disjunct.
func BuildStatus(state models.FitnessFatigueState, testPoints []metrics.TrendPoint, allTimeBestMax float64, weeklyCompliance float64, asOf time.Time, t Tunables, lastTwoS []SessionObservation) TrainingStatus {
	var latestTestMax float64
	if len(testPoints) > 0 {
		latestTestMax = testPoints[len(testPoints)-1].Value
	} else {
		latestTestMax = state.MHat
	}

	trainingMax := metrics.TrainingMaxFrom(latestTestMax)
	slope := metrics.LinearTrend(testPoints, t.PlateauWindowDays)
	z := state.ReadinessZ()

	plateau := Plateau(slope, testPoints, allTimeBestMax, asOf, t)
	underperf := Underperformance(lastTwoS, t)
	deload := DeloadRecommended(plateau, z, underperf, weeklyCompliance, t)

	return TrainingStatus{
		TrainingMax:       trainingMax,
		LatestTestMax:     latestTestMax,
		TrendSlope:        slope,
		IsPlateau:         plateau,
		DeloadRecommended: deload,
		ReadinessZScore:   z,
		Fitness:           state.Fitness,
		Fatigue:           state.Fatigue,
	}
}

// Plateau holds when the trend slope is below threshold AND no TEST in
// the last t.PlateauWindowDays exceeded the all-time best max.
func Plateau(trendSlope float64, testPoints []metrics.TrendPoint, allTimeBestMax float64, asOf time.Time, t Tunables) bool {
	if trendSlope >= t.PlateauSlopeThreshold {
		return false
	}
	cutoff := asOf.AddDate(0, 0, -t.PlateauWindowDays)
	for _, p := range testPoints {
		if !p.Date.Before(cutoff) && p.Value > allTimeBestMax {
			return false
		}
	}
	return true
}

// SessionObservation is the minimal shape Underperformance needs: a
// non-TEST S session's date and the predicted max at that date.
type SessionObservation struct {
	Date          time.Time
	MaxReps       int
	PredictedMax  float64
}

// Underperformance holds when the last two non-TEST S sessions both fell
// below 90% of their own date's predicted max. Fewer than 2 qualifying
// observations never triggers it.
func Underperformance(lastTwoS []SessionObservation, t Tunables) bool {
	if len(lastTwoS) < 2 {
		return false
	}
	for _, o := range lastTwoS[len(lastTwoS)-2:] {
		if o.PredictedMax <= 0 {
			return false
		}
		if float64(o.MaxReps) >= t.UnderperformFraction*o.PredictedMax {
			return false
		}
	}
	return true
}

// DeloadRecommended combines plateau+low readiness, underperformance,
// and low compliance into the single deload trigger.
func DeloadRecommended(plateau bool, readinessZ float64, underperformance bool, weeklyCompliance float64, t Tunables) bool {
	if plateau && readinessZ < t.DeloadReadinessZ {
		return true
	}
	if underperformance {
		return true
	}
	if weeklyCompliance < t.ComplianceDeloadFloor {
		return true
	}
	return false
}

// Prescription is the (sets, reps) pair autoregulation perturbs.
type Prescription struct {
	Sets int
	Reps int
}

// Autoregulate applies the readiness-gated sets/reps perturbation. Below
// the completed-non-TEST-session gate, base is returned unchanged.
func Autoregulate(base Prescription, completedNonTestSessions int, readinessZ float64, t Tunables) Prescription {
	if completedNonTestSessions < t.AutoregGateSessions {
		return base
	}
	out := base
	switch {
	case readinessZ < -1.0:
		reduced := int(math.Floor(float64(base.Sets) * 0.70))
		if reduced < 3 {
			reduced = 3
		}
		out.Sets = reduced
	case readinessZ > 1.0:
		out.Reps = base.Reps + 1
	}
	return out
}

// OvertrainingLevel is the closed 0..3 severity scale.
type OvertrainingLevel int

const (
	OvertrainNone     OvertrainingLevel = 0
	OvertrainMild     OvertrainingLevel = 1
	OvertrainModerate OvertrainingLevel = 2
	OvertrainSevere   OvertrainingLevel = 3
)

// OvertrainingResult is the severity assessment over the trailing
// 7-day window.
type OvertrainingResult struct {
	Level          OvertrainingLevel
	ExtraRestDays  int
}

// OvertrainingSeverity computes the 7-day-window overtraining severity
// from the session dates and REST-day count observed in that window.
// sessionDates must contain only non-REST session dates within the
// window; restDaysInWindow is the count of explicit REST records in the
// same window.
func OvertrainingSeverity(sessionDates []time.Time, restDaysInWindow int, daysPerWeek int) OvertrainingResult {
	n := len(sessionDates)
	if n == 0 || daysPerWeek <= 0 {
		return OvertrainingResult{Level: OvertrainNone}
	}
	first, last := sessionDates[0], sessionDates[0]
	for _, d := range sessionDates {
		if d.Before(first) {
			first = d
		}
		if d.After(last) {
			last = d
		}
	}
	span := last.Sub(first).Hours() / 24
	expectedTime := float64(n) * (7.0 / float64(daysPerWeek))
	extra := int(math.Round(expectedTime - (span + float64(restDaysInWindow))))
	if extra < 0 {
		extra = 0
	}

	var level OvertrainingLevel
	switch {
	case extra == 0:
		level = OvertrainNone
	case extra == 1:
		level = OvertrainMild
	case extra == 2 || extra == 3:
		level = OvertrainModerate
	default:
		level = OvertrainSevere
	}

	result := OvertrainingResult{Level: level}
	if level == OvertrainSevere {
		result.ExtraRestDays = extra
	}
	return result
}

// ProgressionRate returns the reps/week increment applied at a week
// boundary: Δ = 0.3 + 0.7*f^1.5, f = max(0, 1 - TM/target).
func ProgressionRate(tm int, target float64) float64 {
	f := 0.0
	if target > 0 {
		f = math.Max(0, 1-float64(tm)/target)
	}
	return 0.3 + (1.0-0.3)*math.Pow(f, 1.5)
}

// VolumePolicy adjusts a base weekly hard-set count per the deload /
// readiness / compliance rules. A reduction is floored at 8 and an
// increase is capped at 20; an unchanged count is returned as is.
func VolumePolicy(baseSets float64, deload bool, readinessZ float64, weeklyCompliance float64) float64 {
	switch {
	case deload:
		s := baseSets * 0.60
		if s < 8 {
			s = 8
		}
		return s
	case readinessZ < -1.0:
		s := baseSets * 0.70
		if s < 8 {
			s = 8
		}
		return s
	case readinessZ > 1.0 && weeklyCompliance > 0.90:
		s := baseSets * 1.10
		if s > 20 {
			s = 20
		}
		return s
	default:
		return baseSets
	}
}
