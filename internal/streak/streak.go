// Package streak computes the current run of qualifying days and archives
// runs that can no longer grow.
package streak

import (
	"slices"
	"sort"
	"time"

	"github.com/theirongolddev/selforge/internal/model"
)

// Current walks the recorded dates from the most recent backward and counts
// qualifying days. Today is tolerated while it does not yet qualify. A
// non-qualifying day, or a gap of more than one calendar day between two
// recorded dates, ends the walk. Dates after today are ignored.
func Current(days map[string]model.DailyData, today time.Time) int {
	todayKey := today.Format(model.DateLayout)
	dates := recordedDates(days, todayKey)

	streak := 0
	for i := len(dates) - 1; i >= 0; i-- {
		if i < len(dates)-1 && daysBetween(dates[i], dates[i+1]) > 1 {
			break
		}
		key := dates[i].Format(model.DateLayout)
		if days[key].Qualifies() {
			streak++
			continue
		}
		if key == todayKey {
			continue
		}
		break
	}
	return streak
}

// Run is a maximal sequence of consecutive qualifying days.
type Run struct {
	Start, End time.Time
}

// Len returns the run length in days.
func (r Run) Len() int { return daysBetween(r.Start, r.End) + 1 }

// Runs returns every qualifying run up to and including today, oldest first.
func Runs(days map[string]model.DailyData, today time.Time) []Run {
	todayKey := today.Format(model.DateLayout)
	var runs []Run
	var cur *Run
	for _, d := range recordedDates(days, todayKey) {
		if !days[d.Format(model.DateLayout)].Qualifies() {
			cur = nil
			continue
		}
		if cur != nil && daysBetween(cur.End, d) == 1 {
			cur.End = d
			continue
		}
		runs = append(runs, Run{Start: d, End: d})
		cur = &runs[len(runs)-1]
	}
	return runs
}

// Archive appends every run that ended before yesterday and is not yet in
// history. A run ending yesterday can still be extended by today.
func Archive(history []model.StreakHistoryEntry, days map[string]model.DailyData, today time.Time) []model.StreakHistoryEntry {
	t := dateOnly(today)
	out := slices.Clone(history)
	if out == nil {
		out = []model.StreakHistoryEntry{}
	}
	for _, r := range Runs(days, today) {
		if daysBetween(r.End, t) < 2 {
			continue
		}
		start := r.Start.Format(model.DateLayout)
		if slices.ContainsFunc(out, func(h model.StreakHistoryEntry) bool { return h.StartDate == start }) {
			continue
		}
		out = append(out, model.StreakHistoryEntry{
			StartDate:  start,
			EndDate:    r.End.Format(model.DateLayout),
			LengthDays: r.Len(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartDate < out[j].StartDate })
	return out
}

// Apply returns s with CurrentStreak recomputed and finished runs archived.
func Apply(s model.AppState, today time.Time) model.AppState {
	s.CurrentStreak = Current(s.DailyData, today)
	s.StreakHistory = Archive(s.StreakHistory, s.DailyData, today)
	return s
}

// Longest returns the longest archived or current run length.
func Longest(s model.AppState) int {
	best := s.CurrentStreak
	for _, h := range s.StreakHistory {
		best = max(best, h.LengthDays)
	}
	return best
}

// recordedDates returns parsed keys up to todayKey in ascending order.
// Malformed keys are skipped.
func recordedDates(days map[string]model.DailyData, todayKey string) []time.Time {
	dates := make([]time.Time, 0, len(days))
	for k := range days {
		if k > todayKey {
			continue
		}
		t, err := time.Parse(model.DateLayout, k)
		if err != nil {
			continue
		}
		dates = append(dates, t)
	}
	slices.SortFunc(dates, func(a, b time.Time) int { return a.Compare(b) })
	return dates
}

// dateOnly maps a local wall-clock time to its UTC calendar date so day
// arithmetic is free of DST shifts.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
