// Package metrics holds the pure normalization and aggregation functions
// over sets and sessions (spec.md §4.1). Every function here is a pure
// function of its inputs: no I/O, no shared state, no error return —
// out-of-range inputs saturate or clamp rather than fail.
package metrics

import (
	"math"
	"sort"
	"time"

	"github.com/misterclayt0n/lazaro/internal/models"
)

// RestFactor maps a rest duration in seconds to a multiplier in
// [0.80, 1.05] used to credit short-rest work as harder.
func RestFactor(restS float64) float64 {
	r := math.Max(restS, 30)
	f := math.Pow(r/180, 0.20)
	return clamp(f, 0.80, 1.05)
}

// EffectiveReps scales reps by the inverse of RestFactor: a short rest
// makes the same rep count count for more.
func EffectiveReps(reps int, restS float64) float64 {
	return float64(reps) / RestFactor(restS)
}

// LRel computes the relative-load ratio used by both
// BodyweightNormalizedReps and the training-load impulse: a bodyweight
// ratio when the exercise carries a nonzero bw_fraction, otherwise a
// ratio of added loads (epsilon-guarded against 0/0 for an untested
// external-only exercise).
func LRel(bw, added, bwRef, addedRef, bwFraction float64) float64 {
	const eps = 1e-6
	if bwFraction > 0 {
		return (bw*bwFraction + added) / (bwRef * bwFraction)
	}
	return (added + eps) / (addedRef + eps)
}

// BodyweightNormalizedReps maps a rep count onto a bodyweight-relative
// load scale so sessions at different bodyweights/added-loads compare.
func BodyweightNormalizedReps(reps float64, bw, added, bwRef, addedRef, bwFraction float64) float64 {
	lRel := LRel(bw, added, bwRef, addedRef, bwFraction)
	return reps * math.Pow(lRel, 1.0)
}

// VariantNormalized applies a per-variant stress factor to a normalized
// rep count.
func VariantNormalized(reps, factor float64) float64 {
	return reps * factor
}

// SessionMaxBWOnly returns the largest rep count among sets performed
// with zero added weight, or 0 if there are none.
func SessionMaxBWOnly(session models.SessionResult) int {
	best := 0
	for _, s := range session.Sets {
		if s.WeightKg == 0 && s.Reps > best {
			best = s.Reps
		}
	}
	return best
}

// DropOff is the fractional decline from the first set's reps to the
// mean of the last two sets' reps. Undefined (treated as 0) for fewer
// than 3 sets.
func DropOff(session models.SessionResult) float64 {
	n := len(session.Sets)
	if n < 3 {
		return 0
	}
	first := float64(session.Sets[0].Reps)
	if first == 0 {
		return 0
	}
	last := float64(session.Sets[n-1].Reps+session.Sets[n-2].Reps) / 2
	return 1 - last/first
}

// TrainingMaxFrom computes TM = max(1, floor(0.9*x)).
func TrainingMaxFrom(latestTestMax float64) int {
	tm := int(math.Floor(0.9 * latestTestMax))
	if tm < 1 {
		tm = 1
	}
	return tm
}

// EstimateRIR clamps m_hat - reps into [0, 5] when RIR was not reported.
func EstimateRIR(reps int, mHat float64) float64 {
	return clamp(mHat-float64(reps), 0, 5)
}

// TrendPoint is one (date, value) sample fed to LinearTrend — in
// practice the max-reps observed at each TEST session.
type TrendPoint struct {
	Date  time.Time
	Value float64
}

// LinearTrend computes the ordinary-least-squares slope, in
// value-per-week, of points falling within windowDays of the last point.
// Returns 0 with fewer than two points in the window.
func LinearTrend(points []TrendPoint, windowDays int) float64 {
	if len(points) == 0 {
		return 0
	}
	sorted := make([]TrendPoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	latest := sorted[len(sorted)-1].Date
	cutoff := latest.AddDate(0, 0, -windowDays)

	var windowed []TrendPoint
	for _, p := range sorted {
		if !p.Date.Before(cutoff) {
			windowed = append(windowed, p)
		}
	}
	if len(windowed) < 2 {
		return 0
	}

	// x measured in days since the first windowed point, for numerical
	// stability; slope is converted from reps/day to reps/week.
	x0 := windowed[0].Date
	var n, sumX, sumY, sumXY, sumXX float64
	for _, p := range windowed {
		x := p.Date.Sub(x0).Hours() / 24
		y := p.Value
		n++
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	slopePerDay := (n*sumXY - sumX*sumY) / denom
	return slopePerDay * 7
}

// Compliance is the ratio of actual reps performed to target reps
// prescribed for one session.
func Compliance(actualReps, targetReps int) float64 {
	if targetReps <= 0 {
		return 0
	}
	return float64(actualReps) / float64(targetReps)
}

// WeeklyCompliance averages per-session Compliance over the last weeks
// weeks (weeks*7 days) ending at `asOf`.
func WeeklyCompliance(samples []ComplianceSample, asOf time.Time, weeks int) float64 {
	cutoff := asOf.AddDate(0, 0, -weeks*7)
	var sum float64
	var n int
	for _, s := range samples {
		if !s.Date.Before(cutoff) && !s.Date.After(asOf) {
			sum += s.Value
			n++
		}
	}
	if n == 0 {
		return 1 // no sessions in window: neither compliant nor not, default to neutral
	}
	return sum / float64(n)
}

// ComplianceSample is one session's Compliance value, dated for windowing.
type ComplianceSample struct {
	Date  time.Time
	Value float64
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
