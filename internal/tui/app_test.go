package tui

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/theirongolddev/selforge/internal/burn"
	"github.com/theirongolddev/selforge/internal/config"
	"github.com/theirongolddev/selforge/internal/model"
	"github.com/theirongolddev/selforge/internal/nutrition"
	"github.com/theirongolddev/selforge/internal/parser"
	"github.com/theirongolddev/selforge/internal/pipeline"
	"github.com/theirongolddev/selforge/internal/tracker"

	tea "github.com/charmbracelet/bubbletea"
)

type memStore struct {
	mu    sync.Mutex
	state *model.AppState
}

func (m *memStore) Load(string) (model.AppState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return model.NewAppState(3), nil
	}
	return *m.state, nil
}

func (m *memStore) Save(_ string, st model.AppState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = &st
	return nil
}

func newTestApp(t *testing.T) App {
	t.Helper()
	now := func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local) }
	p := pipeline.New(nutrition.NewResolver(nutrition.Options{}), burn.NewEstimator(burn.Options{}))
	tr, err := tracker.New(&memStore{}, parser.New(nil, nil), p, tracker.WithClock(now))
	if err != nil {
		t.Fatalf("tracker.New: %v", err)
	}
	a := NewApp(tr, 7)
	t.Cleanup(a.Close)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m.(App)
}

func press(t *testing.T, a App, keys ...string) (App, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		var m tea.Model
		m, cmd = a.Update(msg)
		a = m.(App)
	}
	return a, cmd
}

func TestGoalKeysToggle(t *testing.T) {
	a := newTestApp(t)

	a, _ = press(t, a, "1", "4", "5")
	if a.today.GoalsCompleted != 3 || !a.today.Qualifies {
		t.Fatalf("goals = %d qualifies=%v, want 3 and true", a.today.GoalsCompleted, a.today.Qualifies)
	}
	if a.streak != 1 {
		t.Errorf("streak = %d, want 1", a.streak)
	}
	if !a.day.GoalManualOverrides.Study {
		t.Error("study toggle should be a manual override")
	}

	a, _ = press(t, a, "4")
	if a.day.GoalsCompleted.Sleep || a.streak != 0 {
		t.Errorf("after untoggling sleep: sleep=%v streak=%d", a.day.GoalsCompleted.Sleep, a.streak)
	}
	if !strings.Contains(a.status, "sleep goal cleared") {
		t.Errorf("status = %q", a.status)
	}
}

func TestSchoolToggle(t *testing.T) {
	a := newTestApp(t)
	a, _ = press(t, a, "c")
	if !a.day.WentToSchool || a.today.SchoolBurn != model.SchoolBurnCalories {
		t.Fatalf("school = %v burn = %d", a.day.WentToSchool, a.today.SchoolBurn)
	}
}

func TestLogTextRunsInBackground(t *testing.T) {
	a := newTestApp(t)

	a, _ = press(t, a, "i")
	if !a.typing {
		t.Fatal("i should focus the input")
	}
	a, _ = press(t, a, "had 2 eggs for breakfast")
	if a.input.Value() != "had 2 eggs for breakfast" {
		t.Fatalf("input = %q", a.input.Value())
	}
	a, cmd := press(t, a, "enter")
	if !a.busy || a.typing || cmd == nil {
		t.Fatalf("busy=%v typing=%v cmd=%v, want a pending log", a.busy, a.typing, cmd != nil)
	}
	if len(a.day.FoodEntries) != 0 {
		t.Fatal("nothing should be written before the command runs")
	}

	msg := logCmd(a.tracker, "had 2 eggs for breakfast")()
	m, _ := a.Update(msg)
	a = m.(App)
	if a.busy || a.statusErr {
		t.Fatalf("busy=%v status=%q", a.busy, a.status)
	}
	if len(a.day.FoodEntries) == 0 || a.today.CaloriesEaten == 0 {
		t.Fatalf("food = %+v", a.day.FoodEntries)
	}
	if !strings.HasPrefix(a.status, "Logged ") {
		t.Errorf("status = %q", a.status)
	}
}

func TestLogTextUnknownShowsSummary(t *testing.T) {
	a := newTestApp(t)
	m, _ := a.Update(logCmd(a.tracker, "read a novel")())
	a = m.(App)
	if !a.statusErr || !strings.HasPrefix(a.status, "Could not determine type") {
		t.Fatalf("status = %q err=%v", a.status, a.statusErr)
	}
	if len(a.day.FoodEntries)+len(a.day.GymActivities) != 0 {
		t.Fatal("unknown text must not be recorded")
	}
}

func TestEscCancelsInput(t *testing.T) {
	a := newTestApp(t)
	a, _ = press(t, a, "i", "q", "esc")
	if a.typing || a.input.Value() != "" {
		t.Fatalf("typing=%v input=%q", a.typing, a.input.Value())
	}
}

func TestStudyTab(t *testing.T) {
	a := newTestApp(t)
	a, _ = press(t, a, "s")
	if a.activeTab != tabStudy {
		t.Fatalf("activeTab = %d, want study", a.activeTab)
	}

	a, _ = press(t, a, "a", "math: limits", "enter")
	a, _ = press(t, a, "a", "physics", "enter")
	if len(a.day.StudyTopics) != 2 {
		t.Fatalf("topics = %+v", a.day.StudyTopics)
	}
	if got := a.day.StudyTopics[0]; got.Subject != "math" || got.Chapter != "limits" {
		t.Errorf("topic 0 = %+v", got)
	}
	if a.studyCursor != 1 {
		t.Errorf("cursor = %d, want the new topic", a.studyCursor)
	}

	a, _ = press(t, a, "l", "k", "d")
	if a.day.StudyTopics[0].Status != model.StudyDone || a.day.StudyTopics[1].Status != model.StudyLater {
		t.Fatalf("statuses = %s %s", a.day.StudyTopics[0].Status, a.day.StudyTopics[1].Status)
	}
	if !a.day.GoalsCompleted.Study {
		t.Error("study goal should follow topics when one is done and the rest are later")
	}

	a, _ = press(t, a, "x")
	if len(a.day.StudyTopics) != 1 || a.day.StudyTopics[0].Subject != "physics" {
		t.Fatalf("after delete = %+v", a.day.StudyTopics)
	}
}

func TestLedgerChangedRefreshes(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.tracker.ToggleGoal(model.GoalGym, true); err != nil {
		t.Fatal(err)
	}
	m, cmd := a.Update(LedgerChangedMsg{})
	a = m.(App)
	if !a.day.GoalsCompleted.Gym {
		t.Fatal("external change not picked up")
	}
	if cmd == nil {
		t.Fatal("should keep waiting for events")
	}
}

func TestViewRendersEveryTab(t *testing.T) {
	a := newTestApp(t)
	a, _ = press(t, a, "1")
	for i := range 3 {
		view := a.View()
		if view == "" {
			t.Fatalf("tab %d rendered nothing", i)
		}
		a, _ = press(t, a, "right")
	}

	a, _ = press(t, a, "?")
	if !strings.Contains(a.View(), "Keyboard Shortcuts") {
		t.Error("help overlay missing")
	}

	m, _ := a.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	if !strings.Contains(m.(App).View(), "too narrow") {
		t.Error("narrow terminal message missing")
	}
}

func TestSetupValuesApply(t *testing.T) {
	cfg := config.DefaultConfig()
	v := SetupValuesFrom(cfg, model.Profile{})
	if v.BodyWeight != "80" || !v.Online {
		t.Fatalf("seeded values = %+v", v)
	}

	v.Name = " Sam "
	v.Age = "17"
	v.BodyWeight = "72.5"
	v.APIKey = "sk-test"
	v.Online = false
	v.Theme = "no-such-theme"

	got, p, err := v.Apply(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got.Profile.BodyWeightKg != 72.5 || got.AI.APIKey != "sk-test" || got.Online.Enabled {
		t.Errorf("config = %+v", got)
	}
	if got.Appearance.Theme != "flexoki-dark" {
		t.Errorf("theme = %q, want fallback", got.Appearance.Theme)
	}
	if p.Name != "Sam" || p.Age != 17 || got.Profile.Age != 17 {
		t.Errorf("profile = %+v", p)
	}

	v.BodyWeight = "heavy"
	if _, _, err := v.Apply(cfg); err == nil {
		t.Error("invalid weight accepted")
	}
}
