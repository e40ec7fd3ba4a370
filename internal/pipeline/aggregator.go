package pipeline

import (
	"math"
	"slices"
	"sort"
	"time"

	"github.com/theirongolddev/selforge/internal/model"
)

// SummarizeDay computes derived totals for one ledger record.
func SummarizeDay(d model.DailyData) model.DaySummary {
	t, _ := time.ParseInLocation(model.DateLayout, d.Date, time.Local)
	ds := model.DaySummary{
		Date:         t,
		Key:          d.Date,
		Recorded:     true,
		FoodItems:    len(d.FoodEntries),
		Activities:   len(d.GymActivities),
		Goals:        d.GoalsCompleted,
		WentToSchool: d.WentToSchool,
	}

	for _, f := range d.FoodEntries {
		ds.CaloriesEaten += f.Calories
		ds.Protein += f.Protein
		ds.Sugar += f.Sugar
	}
	ds.Protein = round1(ds.Protein)
	ds.Sugar = round1(ds.Sugar)

	for _, a := range d.GymActivities {
		ds.ActivityBurn += a.CaloriesBurned
		switch a.Type {
		case model.ActivityGym:
			ds.StrengthSets += a.Sets
			if a.MuscleGroup != "" && !slices.Contains(ds.MuscleGroups, a.MuscleGroup) {
				ds.MuscleGroups = append(ds.MuscleGroups, a.MuscleGroup)
			}
		case model.ActivityCardio:
			ds.CardioMinutes += a.DurationMinutes
		}
	}
	if d.WentToSchool {
		ds.SchoolBurn = model.SchoolBurnCalories
	}
	ds.CaloriesBurned = ds.ActivityBurn + ds.SchoolBurn
	ds.NetCalories = ds.CaloriesEaten - ds.CaloriesBurned

	for _, st := range d.StudyTopics {
		switch st.Status {
		case model.StudyDone:
			ds.StudyDone++
		case model.StudyPending:
			ds.StudyPending++
		case model.StudyLater:
			ds.StudyLater++
		}
	}

	ds.GoalsCompleted = d.GoalsCompleted.Count()
	ds.Qualifies = d.Qualifies()
	return ds
}

// SummarizeDate summarizes the record for date together with the focus
// sessions logged on it. A date with no record yields an unrecorded summary.
func SummarizeDate(s model.AppState, date string) model.DaySummary {
	var ds model.DaySummary
	if d, ok := s.DailyData[date]; ok {
		d.Date = date
		ds = SummarizeDay(d)
	} else {
		t, _ := time.ParseInLocation(model.DateLayout, date, time.Local)
		ds = model.DaySummary{Date: t, Key: date}
	}
	f := FocusByDay(s.ProtocolSessions)[date]
	ds.FocusSessions, ds.FocusMinutes = f.Sessions, f.Seconds/60
	return ds
}

// Focus totals the focus sessions of one day.
type Focus struct {
	Sessions int
	Seconds  int
}

// FocusByDay groups sessions by the local date they were recorded on.
func FocusByDay(sessions []model.ProtocolSession) map[string]Focus {
	out := make(map[string]Focus)
	for _, p := range sessions {
		key := p.Time().Local().Format(model.DateLayout)
		f := out[key]
		f.Sessions++
		f.Seconds += max(p.DurationSeconds, 0)
		out[key] = f
	}
	return out
}

// SummarizeDays returns one summary per calendar day in [since, until],
// most recent first. Days with no record are filled in as empty.
func SummarizeDays(s model.AppState, since, until time.Time) []model.DaySummary {
	dayMap := make(map[string]model.DaySummary)

	start := truncateDay(since)
	end := truncateDay(until)
	for key, d := range s.DailyData {
		t, err := time.ParseInLocation(model.DateLayout, key, time.Local)
		if err != nil || t.Before(start) || t.After(end) {
			continue
		}
		d.Date = key
		dayMap[key] = SummarizeDay(d)
	}

	// Fill in every day in the range so gaps show as zeros
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format(model.DateLayout)
		if _, ok := dayMap[key]; !ok {
			dayMap[key] = model.DaySummary{Date: day, Key: key}
		}
	}

	focus := FocusByDay(s.ProtocolSessions)
	days := make([]model.DaySummary, 0, len(dayMap))
	for key, ds := range dayMap {
		f := focus[key]
		ds.FocusSessions, ds.FocusMinutes = f.Sessions, f.Seconds/60
		days = append(days, ds)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.After(days[j].Date)
	})
	return days
}

// SummarizePeriod folds day summaries into totals and per-recorded-day
// averages.
func SummarizePeriod(days []model.DaySummary) model.PeriodSummary {
	ps := model.PeriodSummary{
		Days:     len(days),
		GoalHits: make(map[model.GoalKey]int, len(model.GoalKeys)),
	}
	goals := 0
	for _, d := range days {
		if d.Recorded {
			ps.RecordedDays++
		}
		if d.Qualifies {
			ps.QualifyingDays++
		}
		ps.CaloriesEaten += d.CaloriesEaten
		ps.CaloriesBurned += d.CaloriesBurned
		ps.Protein += d.Protein
		ps.Sugar += d.Sugar
		ps.StudyDone += d.StudyDone
		ps.CardioMinutes += d.CardioMinutes
		ps.FocusMinutes += d.FocusMinutes
		if d.StrengthSets > 0 {
			ps.GymSessions++
		}
		for _, k := range model.GoalKeys {
			if d.Goals.Get(k) {
				ps.GoalHits[k]++
			}
		}
		goals += d.GoalsCompleted
	}
	ps.Protein = round1(ps.Protein)
	ps.Sugar = round1(ps.Sugar)

	if ps.RecordedDays > 0 {
		n := float64(ps.RecordedDays)
		ps.CaloriesPerDay = math.Round(float64(ps.CaloriesEaten) / n)
		ps.BurnPerDay = math.Round(float64(ps.CaloriesBurned) / n)
		ps.ProteinPerDay = round1(ps.Protein / n)
		ps.GoalsPerDay = round1(float64(goals) / n)
	}
	return ps
}

// DateRange returns the local-midnight bounds of the last n days ending at
// now, inclusive.
func DateRange(now time.Time, n int) (since, until time.Time) {
	if n < 1 {
		n = 1
	}
	until = truncateDay(now)
	return until.AddDate(0, 0, -(n - 1)), until
}

func truncateDay(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
