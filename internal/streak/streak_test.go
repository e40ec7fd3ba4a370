package streak

import (
	"testing"
	"time"

	"github.com/theirongolddev/selforge/internal/model"
)

var qualifying = model.Goals{Study: true, Gym: true, Nutrition: true}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation(model.DateLayout, s, time.Local)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

// ledger builds a date map; "q" marks a qualifying day, "-" a recorded
// day with fewer than three goals.
func ledger(marks map[string]string) map[string]model.DailyData {
	days := make(map[string]model.DailyData, len(marks))
	for date, mark := range marks {
		d := model.NewDailyData(date)
		if mark == "q" {
			d.GoalsCompleted = qualifying
		} else {
			d.GoalsCompleted = model.Goals{Sleep: true, Gym: true}
		}
		days[date] = d
	}
	return days
}

func TestCurrent(t *testing.T) {
	tests := []struct {
		name  string
		today string
		days  map[string]string
		want  int
	}{
		{"empty", "2025-03-10", nil, 0},
		{"three consecutive", "2025-03-10", map[string]string{
			"2025-03-08": "q", "2025-03-09": "q", "2025-03-10": "q",
		}, 3},
		{"today pending is tolerated", "2025-03-10", map[string]string{
			"2025-03-08": "q", "2025-03-09": "q", "2025-03-10": "-",
		}, 2},
		{"non-qualifying yesterday breaks", "2025-03-10", map[string]string{
			"2025-03-07": "q", "2025-03-08": "q", "2025-03-09": "-", "2025-03-10": "q",
		}, 1},
		{"missing day breaks", "2025-03-10", map[string]string{
			"2025-03-06": "q", "2025-03-07": "q", "2025-03-09": "q", "2025-03-10": "q",
		}, 2},
		{"stale run behind an empty today", "2025-03-10", map[string]string{
			"2025-03-01": "q", "2025-03-02": "q", "2025-03-10": "-",
		}, 0},
		{"future dates ignored", "2025-03-10", map[string]string{
			"2025-03-09": "q", "2025-03-10": "q", "2025-03-11": "-", "2025-03-12": "q",
		}, 2},
		{"two goals is not enough", "2025-03-10", map[string]string{
			"2025-03-09": "-", "2025-03-10": "-",
		}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Current(ledger(tt.days), mustDate(t, tt.today))
			if got != tt.want {
				t.Errorf("Current = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCurrent_AcrossMonthBoundary(t *testing.T) {
	days := ledger(map[string]string{"2025-02-28": "q", "2025-03-01": "q", "2025-03-02": "q"})
	if got := Current(days, mustDate(t, "2025-03-02")); got != 3 {
		t.Fatalf("Current = %d, want 3", got)
	}
}

func TestRuns(t *testing.T) {
	days := ledger(map[string]string{
		"2025-03-01": "q", "2025-03-02": "q",
		"2025-03-03": "-",
		"2025-03-04": "q",
		"2025-03-06": "q", "2025-03-07": "q", "2025-03-08": "q",
	})
	runs := Runs(days, mustDate(t, "2025-03-10"))
	want := []int{2, 1, 3}
	if len(runs) != len(want) {
		t.Fatalf("got %d runs, want %d", len(runs), len(want))
	}
	for i, n := range want {
		if runs[i].Len() != n {
			t.Errorf("run %d len = %d, want %d", i, runs[i].Len(), n)
		}
	}
}

func TestArchive(t *testing.T) {
	days := ledger(map[string]string{
		"2025-03-01": "q", "2025-03-02": "q",
		"2025-03-05": "q", "2025-03-06": "q",
		"2025-03-08": "q", "2025-03-09": "q",
	})
	today := mustDate(t, "2025-03-10")

	hist := Archive(nil, days, today)
	if len(hist) != 2 {
		t.Fatalf("archived %d runs, want 2 (the run ending yesterday stays open): %+v", len(hist), hist)
	}
	if hist[0].StartDate != "2025-03-01" || hist[0].EndDate != "2025-03-02" || hist[0].LengthDays != 2 {
		t.Errorf("hist[0] = %+v", hist[0])
	}

	again := Archive(hist, days, today)
	if len(again) != 2 {
		t.Fatalf("re-archiving duplicated entries: %+v", again)
	}

	later := Archive(again, days, mustDate(t, "2025-03-12"))
	if len(later) != 3 || later[2].StartDate != "2025-03-08" {
		t.Fatalf("later = %+v", later)
	}
}

func TestApply(t *testing.T) {
	s := model.NewAppState(3)
	s.DailyData = ledger(map[string]string{
		"2025-03-01": "q", "2025-03-02": "q", "2025-03-03": "q",
		"2025-03-09": "q", "2025-03-10": "q",
	})
	s = Apply(s, mustDate(t, "2025-03-10"))

	if s.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", s.CurrentStreak)
	}
	if len(s.StreakHistory) != 1 || s.StreakHistory[0].LengthDays != 3 {
		t.Errorf("StreakHistory = %+v", s.StreakHistory)
	}
	if got := Longest(s); got != 3 {
		t.Errorf("Longest = %d, want 3", got)
	}
}
