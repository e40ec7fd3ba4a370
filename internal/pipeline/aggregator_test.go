package pipeline

import (
	"testing"
	"time"

	"github.com/theirongolddev/selforge/internal/model"
)

func sampleDay() model.DailyData {
	d := model.NewDailyData("2025-03-10")
	d.FoodEntries = []model.FoodEntry{
		{Name: "rice", Calories: 260, Protein: 5.4, Sugar: 0.1},
		{Name: "dal", Calories: 180, Protein: 9.2, Sugar: 1.3},
	}
	d.GymActivities = []model.GymActivity{
		{Type: model.ActivityGym, MuscleGroup: "chest", Sets: 3, CaloriesBurned: 39},
		{Type: model.ActivityGym, MuscleGroup: "chest", Sets: 4, CaloriesBurned: 50},
		{Type: model.ActivityCardio, ActivityType: "running", DurationMinutes: 30, CaloriesBurned: 392},
	}
	d.StudyTopics = []model.StudyTopic{
		{Status: model.StudyDone}, {Status: model.StudyLater}, {Status: model.StudyPending},
	}
	d.GoalsCompleted = model.Goals{Study: true, Gym: true, Nutrition: true}
	d.WentToSchool = true
	return d
}

func TestSummarizeDay(t *testing.T) {
	ds := SummarizeDay(sampleDay())

	checks := []struct {
		name      string
		got, want any
	}{
		{"CaloriesEaten", ds.CaloriesEaten, 440},
		{"Protein", ds.Protein, 14.6},
		{"ActivityBurn", ds.ActivityBurn, 481},
		{"SchoolBurn", ds.SchoolBurn, model.SchoolBurnCalories},
		{"CaloriesBurned", ds.CaloriesBurned, 481 + model.SchoolBurnCalories},
		{"NetCalories", ds.NetCalories, 440 - 481 - model.SchoolBurnCalories},
		{"StrengthSets", ds.StrengthSets, 7},
		{"CardioMinutes", ds.CardioMinutes, 30},
		{"MuscleGroups", len(ds.MuscleGroups), 1},
		{"StudyDone", ds.StudyDone, 1},
		{"StudyLater", ds.StudyLater, 1},
		{"GoalsCompleted", ds.GoalsCompleted, 3},
		{"Qualifies", ds.Qualifies, true},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestSummarizeDays_FillsGapsMostRecentFirst(t *testing.T) {
	s := model.NewAppState(3)
	s.DailyData["2025-03-10"] = sampleDay()
	s.DailyData["2025-03-12"] = model.NewDailyData("2025-03-12")
	s.DailyData["2025-02-01"] = model.NewDailyData("2025-02-01")

	since := time.Date(2025, 3, 9, 0, 0, 0, 0, time.Local)
	until := time.Date(2025, 3, 12, 15, 0, 0, 0, time.Local)
	days := SummarizeDays(s, since, until)

	want := []string{"2025-03-12", "2025-03-11", "2025-03-10", "2025-03-09"}
	if len(days) != len(want) {
		t.Fatalf("got %d days, want %d", len(days), len(want))
	}
	for i, k := range want {
		if days[i].Key != k {
			t.Errorf("days[%d] = %s, want %s", i, days[i].Key, k)
		}
	}
	if days[1].Recorded || !days[2].Recorded {
		t.Errorf("Recorded flags wrong: %v %v", days[1].Recorded, days[2].Recorded)
	}
}

func TestSummarizePeriod(t *testing.T) {
	empty := model.DaySummary{Key: "2025-03-11"}
	ps := SummarizePeriod([]model.DaySummary{SummarizeDay(sampleDay()), empty})

	if ps.Days != 2 || ps.RecordedDays != 1 || ps.QualifyingDays != 1 {
		t.Fatalf("days = %d/%d/%d, want 2/1/1", ps.Days, ps.RecordedDays, ps.QualifyingDays)
	}
	if ps.CaloriesPerDay != 440 {
		t.Errorf("CaloriesPerDay = %v, want 440 (per recorded day)", ps.CaloriesPerDay)
	}
	if ps.GoalHits[model.GoalGym] != 1 || ps.GoalHits[model.GoalSleep] != 0 {
		t.Errorf("GoalHits = %v", ps.GoalHits)
	}
	if ps.GymSessions != 1 {
		t.Errorf("GymSessions = %d, want 1", ps.GymSessions)
	}
}

func TestDateRange(t *testing.T) {
	now := time.Date(2025, 3, 12, 18, 30, 0, 0, time.Local)
	since, until := DateRange(now, 7)
	if got := since.Format(model.DateLayout); got != "2025-03-06" {
		t.Errorf("since = %s", got)
	}
	if got := until.Format(model.DateLayout); got != "2025-03-12" {
		t.Errorf("until = %s", got)
	}
	if s, u := DateRange(now, 0); !s.Equal(u) {
		t.Errorf("n=0 should clamp to a single day, got %v..%v", s, u)
	}
}

func TestSummarizeDate_Focus(t *testing.T) {
	at := func(d, h int) int64 { return time.Date(2025, 3, d, h, 0, 0, 0, time.Local).UnixMilli() }
	s := model.NewAppState(3)
	s.DailyData["2025-03-10"] = sampleDay()
	s.ProtocolSessions = []model.ProtocolSession{
		{ID: "a", DurationSeconds: 1500, Timestamp: at(10, 9)},
		{ID: "b", DurationSeconds: 930, Timestamp: at(10, 21)},
		{ID: "c", DurationSeconds: 600, Timestamp: at(11, 8)},
	}

	ds := SummarizeDate(s, "2025-03-10")
	if !ds.Recorded || ds.CaloriesEaten != 440 {
		t.Errorf("record not summarized: %+v", ds)
	}
	if ds.FocusSessions != 2 || ds.FocusMinutes != 40 {
		t.Errorf("focus = %d sessions %d min, want 2 and 40", ds.FocusSessions, ds.FocusMinutes)
	}

	gap := SummarizeDate(s, "2025-03-11")
	if gap.Recorded || gap.FocusSessions != 1 || gap.FocusMinutes != 10 {
		t.Errorf("unrecorded day = %+v", gap)
	}

	days := SummarizeDays(s, time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local), time.Date(2025, 3, 11, 0, 0, 0, 0, time.Local))
	if ps := SummarizePeriod(days); ps.FocusMinutes != 50 {
		t.Errorf("period focus = %d, want 50", ps.FocusMinutes)
	}
}
