// Package timeline merges generated SessionPlans with logged history into
// the single reconciled view spec.md §4.6 describes: past entries always
// read their prescription from history, never from a freshly computed
// plan (Invariant 2 of the data model).
package timeline

import (
	"math"
	"sort"
	"time"

	"github.com/misterclayt0n/lazaro/internal/maxestimator"
	"github.com/misterclayt0n/lazaro/internal/models"
	"github.com/misterclayt0n/lazaro/internal/utils"
)

// Build reconciles plans against history as of `today` and returns the
// ordered timeline. latestTestMax is the most recent TEST's observed max
// (or the baseline if none), used for the future max projection.
func Build(plans []models.SessionPlan, history []models.SessionResult, today time.Time, latestTestMax float64) []models.TimelineEntry {
	firstMonday := firstMondayOf(plans, history)

	matchedHistory := make([]bool, len(history))
	var entries []models.TimelineEntry

	for _, p := range plans {
		idx := matchHistory(history, matchedHistory, p.Date, p.SessionType)
		entry := models.TimelineEntry{
			Date:        p.Date,
			SessionType: p.SessionType,
			Variant:     p.Variant,
			ExpectedTM:  p.ExpectedTM,
			WeekNumber:  utils.WeekNumber(firstMonday, p.Date),
		}

		if idx >= 0 {
			matchedHistory[idx] = true
			h := history[idx]
			entry.Actual = &h
			entry.SessionType = h.SessionType
			hid := h.HistoryID
			entry.HistoryID = &hid
			if h.SessionType == models.SessionRest {
				entry.Status = models.StatusRested
			} else {
				entry.Status = models.StatusDone
				entry.Prescribed = h.PlannedSets
			}
			if h.SessionType != models.SessionTest && len(h.Sets) >= 2 {
				if est, ok := maxestimator.Compute(h.Sets, restBeforeFirst(h)); ok {
					entry.TrackB = &models.TrackBEstimate{FIEstimate: est.FIEstimate, NuzzoEstimate: est.NuzzoEstimate}
				}
			}
		} else if p.Date.Before(utils.DateOnly(today)) {
			entry.Status = models.StatusMissed
		} else {
			entry.Status = models.StatusPlanned
			entry.Prescribed = p.PlannedSets
			proj := maxInt(int(math.Round(float64(p.ExpectedTM)/0.9)), int(math.Round(latestTestMax)))
			entry.MaxProjection = &proj
		}

		entries = append(entries, entry)
	}

	// Unmatched history records become "extra" entries.
	for i, h := range history {
		if matchedHistory[i] {
			continue
		}
		hh := h
		hid := h.HistoryID
		entries = append(entries, models.TimelineEntry{
			Date:        h.Date,
			SessionType: h.SessionType,
			Variant:     h.Variant,
			Status:      models.StatusExtra,
			Actual:      &hh,
			HistoryID:   &hid,
			WeekNumber:  utils.WeekNumber(firstMonday, h.Date),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date.Before(entries[j].Date) })

	// Retag the first planned entry as "next".
	for i := range entries {
		if entries[i].Status == models.StatusPlanned {
			entries[i].Status = models.StatusNext
			break
		}
	}

	return entries
}

func matchHistory(history []models.SessionResult, matched []bool, date time.Time, typ models.SessionType) int {
	sameDate := func(idx int) bool { return utils.DateOnly(history[idx].Date).Equal(utils.DateOnly(date)) }

	preferred := -1
	fallback := -1
	for i := range history {
		if matched[i] || !sameDate(i) {
			continue
		}
		if history[i].SessionType == typ {
			preferred = i
			break
		}
		if fallback == -1 {
			fallback = i
		}
	}
	if preferred != -1 {
		return preferred
	}
	return fallback
}

// restBeforeFirst is unknown from a stored SessionResult's shape; the
// negative sentinel tells maxestimator.Compute to fall back to its
// documented 180s PCr-recovery assumption.
func restBeforeFirst(models.SessionResult) float64 {
	return -1
}

func firstMondayOf(plans []models.SessionPlan, history []models.SessionResult) time.Time {
	var earliest time.Time
	found := false
	consider := func(d time.Time) {
		if !found || d.Before(earliest) {
			earliest = d
			found = true
		}
	}
	for _, h := range history {
		if h.SessionType != models.SessionRest {
			consider(h.Date)
		}
	}
	if !found {
		for _, p := range plans {
			consider(p.Date)
		}
	}
	if !found {
		return utils.DateOnly(time.Now())
	}
	return utils.MondayOnOrBefore(earliest)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
