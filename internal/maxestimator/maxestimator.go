// Package maxestimator implements the between-test "Track B" max
// inference: a fatigue-index estimate and a Nuzzo reps~%1RM lookup
// estimate (spec.md §4.4). Both are pure functions over one session.
package maxestimator

import (
	"math"
	"sort"

	"github.com/misterclayt0n/lazaro/internal/models"
)

// pcrRecoveryTable maps rest seconds to the fraction of phosphocreatine
// recovery achieved, used to correct an artificially-short first set.
var pcrRecoveryTable = []point{
	{0, 0.00}, {10, 0.25}, {30, 0.50}, {60, 0.75}, {90, 0.87},
	{120, 0.93}, {180, 0.97}, {240, 0.99}, {300, 1.00},
}

// nuzzoTable maps reps-to-failure to %1RM, per Nuzzo's reference curve.
var nuzzoTable = []point{
	{1, 1.00}, {3, 0.95}, {5.3, 0.90}, {7.7, 0.85}, {11, 0.80},
	{13.4, 0.75}, {17, 0.70}, {21, 0.65}, {25, 0.60}, {29.7, 0.55}, {35, 0.50},
}

type point struct{ x, y float64 }

const defaultRestForCorrectionS = 180

// Estimate is the (fi_est, nz_est) pair returned for display, or ok=false
// when the session has fewer than 2 completed sets (Track B is undefined
// there).
type Estimate struct {
	FIEstimate    float64
	NuzzoEstimate float64
}

// Compute runs both Track B methods over one non-TEST session's sets.
// restBeforeFirstSet is the rest, in seconds, preceding the first set
// (e.g. the rest recorded on the prior set, or 0/unknown); when the
// caller has no such value, pass a negative number and the estimator
// falls back to the documented 180s assumption.
func Compute(sets []models.CompletedSet, restBeforeFirstSetS float64) (Estimate, bool) {
	if len(sets) < 2 {
		return Estimate{}, false
	}

	reps1 := float64(sets[0].Reps)
	tailMean := meanReps(sets[1:])
	fi := 0.0
	if reps1 > 0 {
		fi = 1 - tailMean/reps1
	}

	rest := restBeforeFirstSetS
	if rest < 0 {
		rest = defaultRestForCorrectionS
	}
	recovery := interpolate(pcrRecoveryTable, rest)
	reps1Corrected := reps1
	if recovery > 0 {
		reps1Corrected = reps1 / recovery
	}

	fiEst := reps1Corrected * (1 + math.Max(0, 0.35-fi)*0.6)

	actualMax := float64(SessionMaxReps(sets))
	rirEst := rirEstimate(sets, fi)
	rHat := actualMax + rirEst
	pct := inverseInterpolate(nuzzoTable, rHat)
	var nzEst float64
	if pct > 0 {
		nzEst = math.Round(rHat / pct)
	}

	return Estimate{FIEstimate: fiEst, NuzzoEstimate: nzEst}, true
}

// SessionMaxReps returns the largest single-set rep count.
func SessionMaxReps(sets []models.CompletedSet) int {
	best := 0
	for _, s := range sets {
		if s.Reps > best {
			best = s.Reps
		}
	}
	return best
}

func rirEstimate(sets []models.CompletedSet, fi float64) float64 {
	for _, s := range sets {
		if s.RIR != nil {
			return *s.RIR
		}
	}
	return math.Max(0, math.Round((0.35-fi)*8))
}

func meanReps(sets []models.CompletedSet) float64 {
	if len(sets) == 0 {
		return 0
	}
	var sum float64
	for _, s := range sets {
		sum += float64(s.Reps)
	}
	return sum / float64(len(sets))
}

// interpolate performs piecewise-linear interpolation of y at x over an
// ascending-x table, clamping at the edges.
func interpolate(table []point, x float64) float64 {
	if x <= table[0].x {
		return table[0].y
	}
	last := table[len(table)-1]
	if x >= last.x {
		return last.y
	}
	for i := 1; i < len(table); i++ {
		if x <= table[i].x {
			a, b := table[i-1], table[i]
			t := (x - a.x) / (b.x - a.x)
			return a.y + t*(b.y-a.y)
		}
	}
	return last.y
}

// inverseInterpolate performs piecewise-linear interpolation of y as a
// function of x, where the table is keyed by x but the caller supplies a
// value in x's domain (reps-to-failure) and wants the corresponding y
// (%1RM). Distinct helper name from interpolate purely for readability
// at the call sites in Compute.
func inverseInterpolate(table []point, reps float64) float64 {
	sorted := make([]point, len(table))
	copy(sorted, table)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].x < sorted[j].x })
	return interpolate(sorted, reps)
}
