package ledger

import (
	"testing"

	"github.com/theirongolddev/selforge/internal/model"
)

func TestMerge(t *testing.T) {
	ours := model.NewAppState(3)
	ours = ToggleGoal(ours, day, model.GoalGym, true)
	ours.StreakHistory = []model.StreakHistoryEntry{{StartDate: "2025-02-01", EndDate: "2025-02-03", LengthDays: 3}}

	theirs := model.NewAppState(3)
	theirs = ToggleGoal(theirs, day, model.GoalSleep, true)
	theirs = ToggleGoal(theirs, "2025-03-01", model.GoalStudy, true)
	theirs.StreakHistory = []model.StreakHistoryEntry{
		{StartDate: "2025-01-05", EndDate: "2025-01-09", LengthDays: 5},
		{StartDate: "2025-02-01", EndDate: "2025-02-03", LengthDays: 3},
	}
	theirs.Profile = model.Profile{Name: "Sam", Age: 17}
	theirs.OnboardingCompleted = true

	got, stats := Merge(ours, theirs)

	want := MergeStats{DaysAdded: 1, DaysKept: 1, HistoryAdded: 1, ProfileAdopted: true}
	if stats != want {
		t.Fatalf("stats = %+v, want %+v", stats, want)
	}
	if d := got.DailyData[day]; !d.GoalsCompleted.Gym || d.GoalsCompleted.Sleep {
		t.Errorf("existing day was overwritten: %+v", d.GoalsCompleted)
	}
	if d, ok := got.DailyData["2025-03-01"]; !ok || !d.GoalsCompleted.Study || d.Date != "2025-03-01" {
		t.Errorf("new day = %+v, ok=%v", d, ok)
	}
	if len(got.StreakHistory) != 2 || got.StreakHistory[0].StartDate != "2025-01-05" {
		t.Errorf("history = %+v", got.StreakHistory)
	}
	if got.Profile.Name != "Sam" || !got.OnboardingCompleted {
		t.Errorf("profile = %+v onboarding=%v", got.Profile, got.OnboardingCompleted)
	}

	if _, ok := ours.DailyData["2025-03-01"]; ok {
		t.Error("Merge mutated its input")
	}
	if len(ours.StreakHistory) != 1 {
		t.Error("Merge mutated the input history")
	}
}

func TestMerge_KeepsExistingProfile(t *testing.T) {
	ours := model.NewAppState(3)
	ours.Profile = model.Profile{Name: "Alex"}
	theirs := model.NewAppState(3)
	theirs.Profile = model.Profile{Name: "Sam"}

	got, stats := Merge(ours, theirs)
	if got.Profile.Name != "Alex" || stats.ProfileAdopted {
		t.Errorf("profile = %+v adopted=%v", got.Profile, stats.ProfileAdopted)
	}
}

func TestMerge_ReplacesTouchedBlankDay(t *testing.T) {
	// A tracker that was just opened has an empty record for today.
	ours := Touch(model.NewAppState(3), day)

	theirs := model.NewAppState(3)
	theirs, _ = AddFoodEntries(theirs, day, model.FoodEntry{ID: "f1", Name: "banana", Calories: 105})
	theirs = ToggleGoal(theirs, day, model.GoalSleep, true)

	got, stats := Merge(ours, theirs)
	if stats.DaysAdded != 1 || stats.DaysKept != 0 {
		t.Fatalf("stats = %+v, want 1 added 0 kept", stats)
	}
	d := got.DailyData[day]
	if len(d.FoodEntries) != 1 || d.FoodEntries[0].Name != "banana" || !d.GoalsCompleted.Sleep {
		t.Errorf("backup day lost: %+v", d)
	}
}

func TestIsBlank(t *testing.T) {
	tests := []struct {
		name string
		edit func(d *model.DailyData)
		want bool
	}{
		{"fresh", func(d *model.DailyData) {}, true},
		{"goal", func(d *model.DailyData) { d.GoalsCompleted.Sleep = true }, false},
		{"override only", func(d *model.DailyData) { d.GoalManualOverrides.Gym = true }, false},
		{"school", func(d *model.DailyData) { d.WentToSchool = true }, false},
		{"topic", func(d *model.DailyData) { d.StudyTopics = append(d.StudyTopics, model.StudyTopic{ID: "s"}) }, false},
		{"activity", func(d *model.DailyData) { d.GymActivities = append(d.GymActivities, model.GymActivity{ID: "g"}) }, false},
		{"food", func(d *model.DailyData) { d.FoodEntries = append(d.FoodEntries, model.FoodEntry{ID: "f"}) }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := model.NewDailyData(day)
			tt.edit(&d)
			if got := d.IsBlank(); got != tt.want {
				t.Errorf("IsBlank = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMerge_SessionsMeasurementsAndStart(t *testing.T) {
	early, late := int64(1_700_000_000_000), int64(1_710_000_000_000)

	ours := model.NewAppState(3)
	ours.UserStartTimestamp = &late
	ours.WeeklyMeasurements = model.BodyMeasurements{Weight: 60}
	ours.ProtocolSessions = []model.ProtocolSession{{ID: "b", Timestamp: 20}}

	theirs := model.NewAppState(3)
	theirs.UserStartTimestamp = &early
	theirs.WeeklyMeasurements = model.BodyMeasurements{Weight: 70}
	theirs.MonthlyMeasurements = model.BodyMeasurements{Waist: 72}
	theirs.ProtocolSessions = []model.ProtocolSession{{ID: "a", Timestamp: 10}, {ID: "b", Timestamp: 20}}
	theirs.OledAccentColorID = "electric-violet"

	got, stats := Merge(ours, theirs)
	if stats.SessionsAdded != 1 || stats.MeasurementsAdopted != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if len(got.ProtocolSessions) != 2 || got.ProtocolSessions[0].ID != "a" {
		t.Errorf("sessions = %+v", got.ProtocolSessions)
	}
	if got.WeeklyMeasurements.Weight != 60 || got.MonthlyMeasurements.Waist != 72 {
		t.Errorf("measurements = %+v / %+v", got.WeeklyMeasurements, got.MonthlyMeasurements)
	}
	if got.UserStartTimestamp == nil || *got.UserStartTimestamp != early {
		t.Errorf("start = %v, want %d", got.UserStartTimestamp, early)
	}
	if got.OledAccentColorID != "electric-violet" {
		t.Errorf("accent = %q", got.OledAccentColorID)
	}
	if *ours.UserStartTimestamp != late || len(ours.ProtocolSessions) != 1 {
		t.Error("Merge mutated its input")
	}
}
