// Package physiology implements the training-load impulse, the
// two-timescale fitness-fatigue state machine, and the EWMA max
// estimator (spec.md §4.2). Build and BuildObservations are the only
// entry points that take a full history; every other function operates on one state transition at
// a time and is a pure function of its inputs.
package physiology

import (
	"math"
	"sort"
	"time"

	"github.com/misterclayt0n/lazaro/internal/metrics"
	"github.com/misterclayt0n/lazaro/internal/models"
)

const (
	rirFullEffortPenalty = 0.15
	rirFullEffortCap     = 3.0
)

// Tunables holds the engine's decay/gain/EWMA constants (spec.md §4.2).
// They are overridable via the CLI's config overlay (spec.md §4.9);
// DefaultTunables reproduces the spec's bundled values exactly.
type Tunables struct {
	FitnessTauDays float64
	FatigueTauDays float64
	FitnessGain    float64
	FatigueGain    float64

	EWMAMaxAlpha   float64
	EWMAVarBeta    float64
	ReadinessAlpha float64
	InitialSigmaM  float64
}

// DefaultTunables is the bundled constant set spec.md §4.2 hard-codes.
func DefaultTunables() Tunables {
	return Tunables{
		FitnessTauDays: 42.0,
		FatigueTauDays: 7.0,
		FitnessGain:    0.5,
		FatigueGain:    1.0,

		EWMAMaxAlpha:   0.25,
		EWMAVarBeta:    0.15,
		ReadinessAlpha: 0.1,
		InitialSigmaM:  1.5,
	}
}

// Impulse computes w(session): the summed heart-rate-like load across
// every completed set, weighted by relative load and variant stress.
// bwRef/addedRef are the reference bodyweight/added-load the exercise's
// relative-load scale is anchored to (the user's bodyweight at the time
// of the exercise's last TEST, by convention — callers thread that
// through, Impulse itself stays ignorant of where the reference came
// from).
func Impulse(session models.SessionResult, ex models.Exercise, bwRef, addedRef float64) float64 {
	var w float64
	for _, set := range session.Sets {
		rir := rirOf(set, session)
		hr := float64(set.Reps) * (1 + rirFullEffortPenalty*math.Max(0, rirFullEffortCap-rir))

		lRel := metrics.LRel(session.BodyweightKg, set.WeightKg, bwRef, addedRef, ex.BWFraction)
		sLoad := math.Pow(lRel, 1.5)
		sVariant := ex.VariantStressFactor(session.Variant)

		w += hr * sLoad * sVariant
	}
	return w
}

func rirOf(set models.CompletedSet, session models.SessionResult) float64 {
	if set.RIR != nil {
		return *set.RIR
	}
	if session.RIR != nil {
		return *session.RIR
	}
	// No reported RIR: treat as to-failure for the load-impulse purpose.
	return 0
}

// Advance applies one fitness-fatigue update for a training session
// occurring `deltaDays` after the previous state, with load impulse w.
// Readiness running statistics are updated via EWMA(alpha=t.ReadinessAlpha).
func Advance(prev models.FitnessFatigueState, deltaDays float64, w float64, t Tunables) models.FitnessFatigueState {
	next := prev
	next.Fitness = prev.Fitness*math.Exp(-deltaDays/t.FitnessTauDays) + t.FitnessGain*w
	next.Fatigue = prev.Fatigue*math.Exp(-deltaDays/t.FatigueTauDays) + t.FatigueGain*w

	r := next.Fitness - next.Fatigue
	next.UpdateCount = prev.UpdateCount + 1
	if next.UpdateCount == 1 {
		next.ReadinessMean = r
		next.ReadinessVar = 0
	} else {
		delta := r - prev.ReadinessMean
		next.ReadinessMean = prev.ReadinessMean + t.ReadinessAlpha*delta
		next.ReadinessVar = (1-t.ReadinessAlpha)*prev.ReadinessVar + t.ReadinessAlpha*delta*delta
	}
	return next
}

// Decay applies pure rest-day decay (no training impulse) across
// deltaDays elapsed, without touching readiness statistics.
func Decay(prev models.FitnessFatigueState, deltaDays float64, t Tunables) models.FitnessFatigueState {
	next := prev
	next.Fitness = prev.Fitness * math.Exp(-deltaDays/t.FitnessTauDays)
	next.Fatigue = prev.Fatigue * math.Exp(-deltaDays/t.FatigueTauDays)
	return next
}

// UpdateMax folds an observed TEST max into the EWMA max estimate and its
// uncertainty.
func UpdateMax(prev models.FitnessFatigueState, observedMax float64, t Tunables) models.FitnessFatigueState {
	next := prev
	mHatOld := prev.MHat
	next.MHat = (1-t.EWMAMaxAlpha)*prev.MHat + t.EWMAMaxAlpha*observedMax
	diff := observedMax - mHatOld
	next.SigmaM2 = (1-t.EWMAVarBeta)*prev.SigmaM2 + t.EWMAVarBeta*diff*diff
	return next
}

// PredictedMax returns the readiness-adjusted max prediction:
// m_hat * (1 + 0.02*(R - R_mean)).
func PredictedMax(s models.FitnessFatigueState) float64 {
	return s.MHat * (1 + 0.02*(s.Readiness()-s.ReadinessMean))
}

// InitialState seeds a FitnessFatigueState for an exercise that has no
// prior history, anchored to the user's baseline max.
func InitialState(baselineMax float64, asOf time.Time, t Tunables) models.FitnessFatigueState {
	return models.FitnessFatigueState{
		MHat:       baselineMax,
		SigmaM2:    t.InitialSigmaM * t.InitialSigmaM,
		LastUpdate: asOf,
	}
}

// SessionObservation pairs a logged session's actual bodyweight-only max
// with the readiness-adjusted max Build predicted for it immediately
// before that session's own load was folded in — spec.md §4.3's
// "each evaluated at its own date" for the underperformance rule.
type SessionObservation struct {
	Date         time.Time
	SessionType  models.SessionType
	MaxReps      int
	PredictedMax float64
}

// Build replays history in ascending date order and returns the terminal
// FitnessFatigueState. It is a pure, deterministic function of history:
// Build(h) == Build(h) for any h.
func Build(history []models.SessionResult, ex models.Exercise, baselineMax float64, t Tunables) models.FitnessFatigueState {
	state, _ := BuildObservations(history, ex, baselineMax, t)
	return state
}

// BuildObservations replays history exactly as Build does, additionally
// returning one SessionObservation per non-REST session encountered
// along the way.
//
// history must already be filtered to one exercise; non-training (REST)
// records apply pure decay, training records apply Advance, and a TEST
// record additionally folds its observed max into the EWMA estimator.
// bwRef/addedRef mirror Impulse's reference-load parameters: they start
// as the first record's bodyweight and zero added load, and are replaced
// by a TEST session's bodyweight and heaviest set after that TEST's own
// impulse has been computed.
func BuildObservations(history []models.SessionResult, ex models.Exercise, baselineMax float64, t Tunables) (models.FitnessFatigueState, []SessionObservation) {
	sorted := sortedHistory(history)
	if len(sorted) == 0 {
		return InitialState(baselineMax, time.Time{}, t), nil
	}

	state := InitialState(baselineMax, sorted[0].Date, t)
	bwRef := sorted[0].BodyweightKg
	addedRef := 0.0

	var observations []SessionObservation

	prevDate := sorted[0].Date
	first := true

	for _, s := range sorted {
		if !first {
			delta := s.Date.Sub(prevDate).Hours() / 24
			if s.SessionType == models.SessionRest {
				state = Decay(state, delta, t)
				prevDate = s.Date
				continue
			}
			if delta > 0 {
				state = Decay(state, delta, t)
			}
		}
		first = false

		if s.SessionType == models.SessionRest {
			prevDate = s.Date
			continue
		}

		observations = append(observations, SessionObservation{
			Date:         s.Date,
			SessionType:  s.SessionType,
			MaxReps:      s.MaxReps(),
			PredictedMax: PredictedMax(state),
		})

		w := Impulse(s, ex, nonZero(bwRef, s.BodyweightKg), nonZero(addedRef, 0))
		state = Advance(state, 0, w, t)

		if s.SessionType == models.SessionTest {
			obs := float64(s.MaxReps())
			state = UpdateMax(state, obs, t)
			bwRef = s.BodyweightKg
			addedRef = maxSetWeight(s)
		}
		state.LastUpdate = s.Date
		prevDate = s.Date
	}
	return state, observations
}

func maxSetWeight(s models.SessionResult) float64 {
	var best float64
	for _, set := range s.Sets {
		if set.WeightKg > best {
			best = set.WeightKg
		}
	}
	return best
}

func nonZero(v, fallback float64) float64 {
	if v != 0 {
		return v
	}
	return fallback
}

func sortedHistory(history []models.SessionResult) []models.SessionResult {
	out := make([]models.SessionResult, len(history))
	copy(out, history)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
