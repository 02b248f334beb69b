// Package planner is the core scheduling and prescription engine
// (spec.md §4.5): schedule calendar, type rotation, variant rotation,
// per-session prescription, TEST insertion, and the shift-forward
// operator. Plan is deterministic over its inputs — two consecutive
// invocations with unchanged history produce byte-equal output.
package planner

import (
	"math"
	"sort"
	"time"

	"github.com/misterclayt0n/lazaro/internal/adaptation"
	"github.com/misterclayt0n/lazaro/internal/errs"
	"github.com/misterclayt0n/lazaro/internal/metrics"
	"github.com/misterclayt0n/lazaro/internal/models"
	"github.com/misterclayt0n/lazaro/internal/physiology"
	"github.com/misterclayt0n/lazaro/internal/utils"
)

const defaultWeightRoundToKg = 0.5

// Input gathers everything Plan needs for one exercise.
type Input struct {
	Profile   models.UserProfile
	Exercise  models.Exercise
	History   []models.SessionResult // full history for this exercise, REST included
	PlanStart time.Time              // anchor before the overtraining shift
	Weeks     int
	AsOf      time.Time // "today", used for the overtraining window

	// WeightRoundToKg overrides the default 0.5kg added-weight rounding
	// (config.Defaults.WeightRoundToKg); zero means use the default.
	WeightRoundToKg float64

	// WeeklyCompliance is the caller-computed metrics.WeeklyCompliance
	// over the last 4 weeks of history for this exercise; it feeds the
	// deload trigger of Output.Status. A nil pointer (no samples in
	// window, or the caller skipped computing it) defaults to 1.0, fully
	// compliant — distinct from a non-nil 0.0, which is a genuine
	// zero-compliance reading and must still trip the deload threshold.
	WeeklyCompliance *float64

	// PhysiologyTunables and AdaptationTunables override the engine's
	// constants (config.Defaults); a zero field within either struct
	// falls back to that field's physiology.DefaultTunables /
	// adaptation.DefaultTunables value.
	PhysiologyTunables physiology.Tunables
	AdaptationTunables adaptation.Tunables
}

func resolvePhysiologyTunables(t physiology.Tunables) physiology.Tunables {
	d := physiology.DefaultTunables()
	if t.FitnessTauDays == 0 {
		t.FitnessTauDays = d.FitnessTauDays
	}
	if t.FatigueTauDays == 0 {
		t.FatigueTauDays = d.FatigueTauDays
	}
	if t.FitnessGain == 0 {
		t.FitnessGain = d.FitnessGain
	}
	if t.FatigueGain == 0 {
		t.FatigueGain = d.FatigueGain
	}
	if t.EWMAMaxAlpha == 0 {
		t.EWMAMaxAlpha = d.EWMAMaxAlpha
	}
	if t.EWMAVarBeta == 0 {
		t.EWMAVarBeta = d.EWMAVarBeta
	}
	if t.ReadinessAlpha == 0 {
		t.ReadinessAlpha = d.ReadinessAlpha
	}
	if t.InitialSigmaM == 0 {
		t.InitialSigmaM = d.InitialSigmaM
	}
	return t
}

func resolveAdaptationTunables(t adaptation.Tunables) adaptation.Tunables {
	d := adaptation.DefaultTunables()
	if t.AutoregGateSessions == 0 {
		t.AutoregGateSessions = d.AutoregGateSessions
	}
	if t.PlateauSlopeThreshold == 0 {
		t.PlateauSlopeThreshold = d.PlateauSlopeThreshold
	}
	if t.PlateauWindowDays == 0 {
		t.PlateauWindowDays = d.PlateauWindowDays
	}
	if t.DeloadReadinessZ == 0 {
		t.DeloadReadinessZ = d.DeloadReadinessZ
	}
	if t.UnderperformFraction == 0 {
		t.UnderperformFraction = d.UnderperformFraction
	}
	if t.ComplianceDeloadFloor == 0 {
		t.ComplianceDeloadFloor = d.ComplianceDeloadFloor
	}
	return t
}

// Output is everything Plan produces for one exercise.
type Output struct {
	Plans              []models.SessionPlan
	ShiftedPlanStart   time.Time
	OvertrainingLevel  adaptation.OvertrainingLevel
	ExtraRestDays      int
	Status             adaptation.TrainingStatus
	FirstMonday        time.Time
}

// Plan runs the full eight-step algorithm of spec.md §4.5.
func Plan(in Input) (Output, error) {
	tmpl, ok := scheduleTemplates[in.Profile.DaysPerWeek(in.Exercise.ID)]
	if !ok {
		return Output{}, errs.Invalid("days-per-week %d outside 1..5", in.Profile.DaysPerWeek(in.Exercise.ID))
	}
	offsets := dayOffsets[in.Profile.DaysPerWeek(in.Exercise.ID)]

	roundTo := in.WeightRoundToKg
	if roundTo <= 0 {
		roundTo = defaultWeightRoundToKg
	}
	physTunables := resolvePhysiologyTunables(in.PhysiologyTunables)
	adaptTunables := resolveAdaptationTunables(in.AdaptationTunables)

	// Step 1 — filter & status.
	training := trainingOnly(in.History)
	testPoints := testPointsOf(training)
	baseline := in.Profile.Baseline(in.Exercise.ID)

	var tmFloat float64
	var latestTestMax float64
	if len(testPoints) > 0 {
		latestTestMax = testPoints[len(testPoints)-1].Value
		tmFloat = latestTestMax
	} else {
		latestTestMax = baseline
		tmFloat = baseline
	}

	state, physObs := physiology.BuildObservations(in.History, in.Exercise, baseline, physTunables)
	allTimeBest := allTimeBestMax(testPoints, baseline)

	// Step 2 — overtraining shift.
	otLevel, extraRestDays := overtrainingFor(in.History, in.AsOf, in.Profile.DaysPerWeek(in.Exercise.ID))
	planStart := utils.DateOnly(in.PlanStart)
	if extraRestDays > 0 {
		planStart = planStart.AddDate(0, 0, extraRestDays)
	}

	// Step 4 — resume rotation index.
	nonTestNonRest := countNonTestNonRest(in.History)
	rotationIndex := nonTestNonRest % len(tmpl)

	// Step 5 — variant rotation counters, seeded from history.
	variantCounter := seedVariantCounters(in.History)

	// Week numbering anchor (spec.md §4.5 Step 6l / §4.6 Step 1).
	firstMonday := firstMondayAnchor(in.History, in.PlanStart)

	// Generate the base (pre-TEST-insertion) slot sequence.
	type slot struct {
		date time.Time
		typ  models.SessionType
	}
	var slots []slot
	for w := 0; w < in.Weeks; w++ {
		for pos, offset := range offsets {
			k := w*len(tmpl) + pos
			typ := tmpl[(rotationIndex+k)%len(tmpl)]
			date := planStart.AddDate(0, 0, 7*w+offset)
			slots = append(slots, slot{date: date, typ: typ})
		}
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].date.Before(slots[j].date) })

	// Step 7 — TEST insertion.
	isTestSlot := make([]bool, len(slots))
	if in.Exercise.TestFrequencyWeeks > 0 {
		lastTest := lastTestDate(in.History)
		anchor := in.PlanStart
		if !lastTest.IsZero() {
			anchor = lastTest
		}
		horizonEnd := planStart.AddDate(0, 0, 7*in.Weeks)
		due := anchor.AddDate(0, 0, 7*in.Exercise.TestFrequencyWeeks)
		for !due.After(horizonEnd) {
			idx := -1
			for i, s := range slots {
				if !s.date.Before(due) && !isTestSlot[i] {
					idx = i
					break
				}
			}
			if idx == -1 {
				break
			}
			isTestSlot[idx] = true
			due = due.AddDate(0, 0, 7*in.Exercise.TestFrequencyWeeks)
		}
	}

	// Step 6 — per-slot prescription.
	var plans []models.SessionPlan
	var prevWeekKey string
	if len(slots) > 0 {
		prevWeekKey = utils.FormatISODate(utils.MondayOnOrBefore(slots[0].date))
	}

	for i, s := range slots {
		typ := s.typ
		if isTestSlot[i] {
			typ = models.SessionTest
		}

		weekKey := utils.FormatISODate(utils.MondayOnOrBefore(s.date))
		if weekKey != prevWeekKey {
			tmFloat += adaptation.ProgressionRate(int(math.Round(tmFloat)), in.Exercise.TargetValue)
			prevWeekKey = weekKey
		}
		tm := int(math.Round(tmFloat))

		variant := variantFor(in.Exercise, typ, variantCounter)

		weekNumber := utils.WeekNumber(firstMonday, s.date)
		date := s.date

		if typ == models.SessionTest {
			plans = append(plans, models.SessionPlan{
				Date:        date,
				ExerciseID:  in.Exercise.ID,
				SessionType: models.SessionTest,
				Variant:     in.Exercise.PrimaryVariant,
				ExpectedTM:  tm,
				WeekNumber:  weekNumber,
				PlannedSets: testSets(),
			})
			continue
		}

		params, ok := in.Exercise.Params(typ)
		if !ok {
			return Output{}, errs.Incon("exercise %s has no session params for type %s", in.Exercise.ID, typ)
		}

		rz := state.ReadinessZ()
		baseSets := (params.SetsMin + params.SetsMax) / 2
		baseRepsLow := maxInt(params.RepsMin, int(math.Floor(float64(tm)*params.RepsFractionLow)))
		baseRepsHigh := minInt(params.RepsMax, int(math.Floor(float64(tm)*params.RepsFractionHigh)))
		baseReps := (baseRepsLow + baseRepsHigh) / 2

		presc := adaptation.Autoregulate(adaptation.Prescription{Sets: baseSets, Reps: baseReps}, nonTestNonRest, rz, adaptTunables)

		// Overtraining modifiers (spec.md §4.3 "Effects applied by the Planner").
		extraRestS := 0
		if otLevel >= adaptation.OvertrainMild {
			extraRestS += 30
		}
		if otLevel >= adaptation.OvertrainModerate {
			presc.Sets = maxInt(1, presc.Sets-1)
		}
		if otLevel >= adaptation.OvertrainSevere {
			presc.Reps = maxInt(1, presc.Reps-1)
		}

		rest := adaptiveRest(params, typ, in.History, rz, otLevel)

		weight := addedWeight(in.Exercise, typ, tm, in.Profile.BodyweightKg, roundTo, in.History)

		var sets []models.PlannedSet
		if typ == models.SessionEndurance {
			sets = enduranceLadder(tm, baseReps, params, weight, rest)
		} else {
			for i := 0; i < presc.Sets; i++ {
				sets = append(sets, models.PlannedSet{Reps: presc.Reps, WeightKg: weight, RestS: rest})
			}
		}

		plans = append(plans, models.SessionPlan{
			Date:        date,
			ExerciseID:  in.Exercise.ID,
			SessionType: typ,
			Variant:     variant,
			ExpectedTM:  tm,
			WeekNumber:  weekNumber,
			PlannedSets: sets,
		})
	}

	weeklyCompliance := 1.0
	if in.WeeklyCompliance != nil {
		weeklyCompliance = *in.WeeklyCompliance
	}
	status := adaptation.BuildStatus(state, testPoints, allTimeBest, weeklyCompliance, in.AsOf, adaptTunables, lastTwoStrengthObservations(physObs))
	status.LatestTestMax = latestTestMax

	return Output{
		Plans:             plans,
		ShiftedPlanStart:  planStart,
		OvertrainingLevel: otLevel,
		ExtraRestDays:     extraRestDays,
		Status:            status,
		FirstMonday:       firstMonday,
	}, nil
}

func testSets() []models.PlannedSet {
	return []models.PlannedSet{{Reps: 0, WeightKg: 0, RestS: 300}}
}

// lastTwoStrengthObservations narrows a full session replay down to the
// last two non-TEST S sessions, each paired with the max Build predicted
// for it at its own date — spec.md §4.3's underperformance rule.
func lastTwoStrengthObservations(obs []physiology.SessionObservation) []adaptation.SessionObservation {
	var strength []adaptation.SessionObservation
	for _, o := range obs {
		if o.SessionType != models.SessionStrength {
			continue
		}
		strength = append(strength, adaptation.SessionObservation{
			Date: o.Date, MaxReps: o.MaxReps, PredictedMax: o.PredictedMax,
		})
	}
	if len(strength) > 2 {
		strength = strength[len(strength)-2:]
	}
	return strength
}

func trainingOnly(history []models.SessionResult) []models.SessionResult {
	var out []models.SessionResult
	for _, h := range history {
		if h.SessionType != models.SessionRest {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func testPointsOf(training []models.SessionResult) []metrics.TrendPoint {
	var out []metrics.TrendPoint
	for _, s := range training {
		if s.SessionType == models.SessionTest {
			out = append(out, metrics.TrendPoint{Date: s.Date, Value: float64(s.MaxReps())})
		}
	}
	return out
}

func allTimeBestMax(points []metrics.TrendPoint, baseline float64) float64 {
	best := baseline
	for _, p := range points {
		if p.Value > best {
			best = p.Value
		}
	}
	return best
}

func countNonTestNonRest(history []models.SessionResult) int {
	n := 0
	for _, h := range history {
		if h.SessionType != models.SessionRest && h.SessionType != models.SessionTest {
			n++
		}
	}
	return n
}

func lastTestDate(history []models.SessionResult) time.Time {
	var last time.Time
	for _, h := range history {
		if h.SessionType == models.SessionTest && h.Date.After(last) {
			last = h.Date
		}
	}
	return last
}

func seedVariantCounters(history []models.SessionResult) map[models.SessionType]int {
	counters := map[models.SessionType]int{}
	for _, h := range history {
		if h.SessionType == models.SessionRest {
			continue
		}
		counters[h.SessionType]++
	}
	return counters
}

func variantFor(ex models.Exercise, typ models.SessionType, counters map[models.SessionType]int) string {
	if typ == models.SessionTest {
		return ex.PrimaryVariant
	}
	if !ex.HasVariantRotation {
		return ex.PrimaryVariant
	}
	cycle, ok := ex.GripCycles[typ]
	if !ok || len(cycle) == 0 {
		return ex.PrimaryVariant
	}
	idx := counters[typ] % len(cycle)
	counters[typ]++
	return cycle[idx]
}

func firstMondayAnchor(history []models.SessionResult, planStart time.Time) time.Time {
	earliest := planStart
	found := false
	for _, h := range history {
		if h.SessionType == models.SessionRest {
			continue
		}
		if !found || h.Date.Before(earliest) {
			earliest = h.Date
			found = true
		}
	}
	return utils.MondayOnOrBefore(earliest)
}

func overtrainingFor(history []models.SessionResult, asOf time.Time, daysPerWeek int) (adaptation.OvertrainingLevel, int) {
	cutoff := asOf.AddDate(0, 0, -7)
	var sessionDates []time.Time
	restCount := 0
	for _, h := range history {
		if h.Date.Before(cutoff) || h.Date.After(asOf) {
			continue
		}
		if h.SessionType == models.SessionRest {
			restCount++
			continue
		}
		sessionDates = append(sessionDates, h.Date)
	}
	res := adaptation.OvertrainingSeverity(sessionDates, restCount, daysPerWeek)
	return res.Level, res.ExtraRestDays
}

func adaptiveRest(params models.SessionTypeParams, typ models.SessionType, history []models.SessionResult, readinessZ float64, otLevel adaptation.OvertrainingLevel) int {
	base := (params.RestMin + params.RestMax) / 2

	var mostRecent *models.SessionResult
	for i := range history {
		h := history[i]
		if h.SessionType != typ {
			continue
		}
		if mostRecent == nil || h.Date.After(mostRecent.Date) {
			mostRecent = &history[i]
		}
	}

	rest := float64(base)
	if mostRecent != nil {
		if mostRecent.AnySetAtMostRIR(1) {
			rest += 30
		}
		if metrics.DropOff(*mostRecent) > 0.35 {
			rest += 15
		}
		if mostRecent.AllSetsAtLeastRIR(3) {
			rest -= 15
		}
	}
	if readinessZ < -1.0 {
		rest += 30
	}
	if otLevel >= adaptation.OvertrainMild {
		rest += 30
	}

	return clampInt(int(rest), params.RestMin, params.RestMax)
}

func addedWeight(ex models.Exercise, typ models.SessionType, tm int, bodyweightKg, roundTo float64, history []models.SessionResult) float64 {
	if typ != models.SessionStrength {
		return 0
	}
	if ex.LoadType == models.LoadExternalOnly {
		// BSS: carried from the most recent TEST's logged weight.
		var best *models.SessionResult
		for i := range history {
			h := history[i]
			if h.SessionType != models.SessionTest {
				continue
			}
			if best == nil || h.Date.After(best.Date) {
				best = &history[i]
			}
		}
		if best == nil {
			return 0
		}
		return best.MaxWeight()
	}

	if float64(tm) <= ex.WeightTMThreshold {
		return 0
	}
	raw := bodyweightKg * ex.WeightIncrementFraction * (float64(tm) - ex.WeightTMThreshold)
	rounded := math.Round(raw/roundTo) * roundTo
	if rounded > ex.MaxAddedWeightKg {
		rounded = ex.MaxAddedWeightKg
	}
	if rounded < 0 {
		rounded = 0
	}
	return rounded
}

func enduranceLadder(tm, baseReps int, params models.SessionTypeParams, weight float64, rest int) []models.PlannedSet {
	f := clampFloat((float64(tm)-5)/25, 0, 1)
	kE := 3.0 + 2.0*f
	totalTarget := int(kE * float64(tm))

	var sets []models.PlannedSet
	cur := baseReps
	sum := 0
	for len(sets) < params.SetsMax && sum < totalTarget {
		reps := cur
		if reps < 3 {
			reps = 3
		}
		sets = append(sets, models.PlannedSet{Reps: reps, WeightKg: weight, RestS: rest})
		sum += reps
		cur--
	}
	if len(sets) == 0 {
		sets = append(sets, models.PlannedSet{Reps: maxInt(3, baseReps), WeightKg: weight, RestS: rest})
	}
	return sets
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func clampInt(x, lo, hi int) int {
	if lo > hi {
		return x
	}
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func clampFloat(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
