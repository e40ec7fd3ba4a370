package store

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/selforge/internal/model"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "state.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLoad_MissingReturnsFreshState(t *testing.T) {
	s := openTemp(t)
	st, err := s.Load(DefaultName)
	if err != nil {
		t.Fatal(err)
	}
	if st.Version != CurrentVersion || st.DailyData == nil || st.StreakHistory == nil {
		t.Fatalf("fresh state = %+v", st)
	}
	if _, ok, err := s.SavedAt(DefaultName); ok || err != nil {
		t.Fatalf("SavedAt on empty store = %v, %v", ok, err)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := openTemp(t)

	st := model.NewAppState(1)
	d := model.NewDailyData("2025-03-10")
	d.FoodEntries = append(d.FoodEntries, model.FoodEntry{ID: "f1", Name: "rice", Calories: 260, Source: model.TierGeneral})
	d.GoalsCompleted = model.Goals{Nutrition: true, Sleep: true}
	d.GoalManualOverrides = model.Goals{Sleep: true}
	st.DailyData[d.Date] = d
	st.CurrentStreak = 4
	st.Profile = model.Profile{Name: "Sam", Age: 17}

	if err := s.Save(DefaultName, st); err != nil {
		t.Fatal(err)
	}
	got, err := s.Load(DefaultName)
	if err != nil {
		t.Fatal(err)
	}
	if got.Version != CurrentVersion {
		t.Errorf("Version = %d, want %d", got.Version, CurrentVersion)
	}
	gd := got.DailyData["2025-03-10"]
	if len(gd.FoodEntries) != 1 || gd.FoodEntries[0].Source != model.TierGeneral {
		t.Errorf("food = %+v", gd.FoodEntries)
	}
	if gd.GoalsCompleted != d.GoalsCompleted || gd.GoalManualOverrides != d.GoalManualOverrides {
		t.Errorf("goals = %+v / %+v", gd.GoalsCompleted, gd.GoalManualOverrides)
	}
	if got.CurrentStreak != 4 || got.Profile.Name != "Sam" {
		t.Errorf("state = %+v", got)
	}
	if _, ok, err := s.SavedAt(DefaultName); !ok || err != nil {
		t.Errorf("SavedAt = %v, %v", ok, err)
	}
}

const v1Blob = `{
  "dailyData": {
    "2024-11-02": {
      "date": "2024-11-02",
      "studyTopics": [{"id": "s1", "subject": "Math", "chapter": "Limits", "status": "done", "date": "2024-11-02"}],
      "gymActivities": [{"id": "g1", "type": "cardio", "activityType": "running", "duration": 30, "caloriesBurned": 392, "date": "2024-11-02"}],
      "foodEntries": null,
      "goalsCompleted": {"study": true, "gym": true, "nutrition": false, "sleep": true, "discipline": false},
      "wentToSchool": true
    }
  },
  "currentStreak": 1,
  "userName": "Sam",
  "userAge": 17,
  "deepseekApiKey": "sk-secret",
  "nutritionixAppKey": "nx",
  "onboardingCompleted": true
}`

func TestDecode_MigratesV1(t *testing.T) {
	st, err := Decode([]byte(v1Blob), 0)
	if err != nil {
		t.Fatal(err)
	}
	d, ok := st.DailyData["2024-11-02"]
	if !ok {
		t.Fatal("day record lost in migration")
	}
	if len(d.StudyTopics) != 1 || len(d.GymActivities) != 1 || d.GymActivities[0].DurationMinutes != 30 {
		t.Fatalf("activity history altered: %+v", d)
	}
	if d.FoodEntries == nil {
		t.Error("null foodEntries not normalized")
	}
	if d.GoalManualOverrides != (model.Goals{}) {
		t.Errorf("overrides = %+v, want all false", d.GoalManualOverrides)
	}
	if !d.WentToSchool || d.GoalsCompleted.Count() != 3 {
		t.Errorf("day flags changed: %+v", d)
	}
	if st.Profile.Name != "Sam" || st.Profile.Age != 17 {
		t.Errorf("profile = %+v", st.Profile)
	}
	if st.StreakHistory == nil || !st.OnboardingCompleted || st.CurrentStreak != 1 {
		t.Errorf("state = %+v", st)
	}
}

func TestMigrate_DropsCredentials(t *testing.T) {
	raw := map[string]any{"deepseekApiKey": "x", "apiNinjasKey": "y", "dailyData": map[string]any{}}
	Migrate(raw, 1)
	for _, k := range deprecatedKeys {
		if _, ok := raw[k]; ok {
			t.Errorf("%s survived migration", k)
		}
	}
	if raw["version"] != CurrentVersion {
		t.Errorf("version = %v", raw["version"])
	}
}

func TestMigrate_KeepsExistingOverrides(t *testing.T) {
	raw := map[string]any{"dailyData": map[string]any{
		"2025-01-01": map[string]any{"goalManualOverrides": map[string]any{"sleep": true}},
	}}
	Migrate(raw, 1)
	day := raw["dailyData"].(map[string]any)["2025-01-01"].(map[string]any)
	if day["goalManualOverrides"].(map[string]any)["sleep"] != true {
		t.Fatal("existing override overwritten")
	}
}

func TestDecode_Errors(t *testing.T) {
	if _, err := Decode([]byte(`{"version": 9}`), 0); !errors.Is(err, ErrNewerVersion) {
		t.Errorf("err = %v, want ErrNewerVersion", err)
	}
	if _, err := Decode([]byte(`not json`), 1); err == nil {
		t.Error("expected decode error")
	}
}

func TestDecode_V3FlatProfileAndLegacyKeys(t *testing.T) {
	const blob = `{
  "version": 3,
  "userName": "Ava",
  "userAge": 16,
  "userGender": "female",
  "profile": {"userName": "Kept"},
  "dailyData": {
    "2025-03-09": {
      "foodEntries": [
        {"id": "f1", "foodName": "rice", "aiSummary": "plain rice", "calories": 260},
        {"id": "f2", "foodName": "old", "name": "new", "calories": 1}
      ],
      "gymActivities": [{"id": "g1", "type": "gym", "aiSummary": "bench", "caloriesBurned": 50}]
    }
  },
  "streakHistory": [{"startDate": "2025-01-01", "endDate": "2025-01-03", "length": 3}]
}`
	st, err := Decode([]byte(blob), 3)
	if err != nil {
		t.Fatal(err)
	}
	if st.Profile.Name != "Kept" || st.Profile.Age != 16 || st.Profile.Gender != "female" {
		t.Errorf("profile = %+v", st.Profile)
	}
	d := st.DailyData["2025-03-09"]
	if d.Date != "2025-03-09" || len(d.FoodEntries) != 2 {
		t.Fatalf("day = %+v", d)
	}
	if f := d.FoodEntries[0]; f.Name != "rice" || f.Summary != "plain rice" {
		t.Errorf("legacy food keys = %+v", f)
	}
	if f := d.FoodEntries[1]; f.Name != "new" {
		t.Errorf("name overwritten by legacy key: %+v", f)
	}
	if g := d.GymActivities[0]; g.Summary != "bench" {
		t.Errorf("gym summary = %q", g.Summary)
	}
	if len(st.StreakHistory) != 1 || st.StreakHistory[0].LengthDays != 3 {
		t.Errorf("history = %+v", st.StreakHistory)
	}
	if st.ProtocolSessions == nil || st.UserStartTimestamp != nil {
		t.Errorf("sessions = %v, start = %v", st.ProtocolSessions, st.UserStartTimestamp)
	}
}

func TestSave_WritesBrowserKeys(t *testing.T) {
	s := openTemp(t)
	st := model.NewAppState(CurrentVersion)
	d := model.NewDailyData("2025-03-10")
	d.FoodEntries = append(d.FoodEntries, model.FoodEntry{ID: "f1", Name: "rice", Summary: "s"})
	st.DailyData[d.Date] = d
	st.StreakHistory = append(st.StreakHistory, model.StreakHistoryEntry{StartDate: "a", EndDate: "b", LengthDays: 2})
	if err := s.Save(DefaultName, st); err != nil {
		t.Fatal(err)
	}
	var payload string
	if err := s.db.QueryRow("SELECT payload FROM app_state WHERE name = ?", DefaultName).Scan(&payload); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"name":"rice"`, `"summary":"s"`, `"lengthDays":2`, `"protocolSessions":[]`} {
		if !strings.Contains(payload, want) {
			t.Errorf("payload missing %s: %s", want, payload)
		}
	}
	for _, legacy := range []string{`"foodName"`, `"aiSummary"`, `"length"`} {
		if strings.Contains(payload, legacy) {
			t.Errorf("payload still has %s", legacy)
		}
	}
}
