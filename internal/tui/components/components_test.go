package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/theirongolddev/selforge/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRow(t *testing.T) {
	tests := []struct {
		total, n int
		want     []int
	}{
		{10, 3, []int{4, 3, 3}},
		{12, 4, []int{3, 3, 3, 3}},
		{5, 0, nil},
	}
	for _, tt := range tests {
		got := LayoutRow(tt.total, tt.n)
		if len(got) != len(tt.want) {
			t.Fatalf("LayoutRow(%d, %d) = %v, want %v", tt.total, tt.n, got, tt.want)
		}
		sum := 0
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("LayoutRow(%d, %d) = %v, want %v", tt.total, tt.n, got, tt.want)
			}
			sum += got[i]
		}
		if tt.n > 0 && sum != tt.total {
			t.Errorf("widths sum to %d, want %d", sum, tt.total)
		}
	}
}

func TestCardRowPadsShorterCards(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)
	shortLines := lipgloss.Height(shortCard)
	tallLines := lipgloss.Height(tallCard)
	if shortLines >= tallLines {
		t.Fatal("short card should be shorter than tall card")
	}

	lines := strings.Split(CardRow([]string{tallCard, shortCard}), "\n")
	if len(lines) != tallLines {
		t.Fatalf("joined height = %d, want %d", len(lines), tallLines)
	}
	for i := shortLines; i < len(lines); i++ {
		if !strings.Contains(lines[i], "\x1b[") {
			t.Errorf("padding line %d has no styling: %q", i, lines[i])
		}
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	row := MetricCardRow([]Metric{
		{Label: "Eaten", Value: "1,850 kcal"},
		{Label: "Burned", Value: "2,100 kcal", Note: "school 1,700"},
		{Label: "Net", Value: "-250 kcal"},
	}, 90)
	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 90 {
			t.Errorf("line %d width = %d, want 90", i, w)
		}
	}
}

func TestTabAtX(t *testing.T) {
	for active := range Tabs {
		pos := 0
		for i, tab := range Tabs {
			w := len(tabLabel(tab, i == active))
			if got := TabAtX(active, pos+w/2); got != i {
				t.Fatalf("active=%d x=%d -> tab %d, want %d", active, pos+w/2, got, i)
			}
			pos += w + len(tabSep)
		}
		if got := TabAtX(active, pos+50); got != -1 {
			t.Errorf("past the last tab = %d, want -1", got)
		}
	}
}

func TestTabIdxByKey(t *testing.T) {
	if TabIdxByKey('w') != 1 || TabIdxByKey('s') != 2 || TabIdxByKey('z') != -1 {
		t.Fatal("unexpected tab key mapping")
	}
}

func TestHBars(t *testing.T) {
	out := HBars([]Bar{
		{Label: "Mon", Value: 200},
		{Label: "Tue", Value: -100, Text: "-100 kcal"},
	}, 40)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d rows, want 2", len(lines))
	}
	if !strings.Contains(lines[1], "-100 kcal") {
		t.Errorf("row 2 missing text: %q", lines[1])
	}
	if w0, w1 := lipgloss.Width(lines[0]), lipgloss.Width(lines[1]); w0 != w1 {
		t.Errorf("row widths differ: %d vs %d", w0, w1)
	}
}

func TestSparklineEmptyAndFlat(t *testing.T) {
	if Sparkline(nil, theme.Active.Accent) != "" {
		t.Error("empty input should render nothing")
	}
	if got := Sparkline([]float64{0, 0, 0}, theme.Active.Accent); lipgloss.Width(got) != 3 {
		t.Errorf("flat sparkline width = %d, want 3", lipgloss.Width(got))
	}
}

func TestGoalBarCountsClamp(t *testing.T) {
	if got := GoalBar(7, 5, 3, 30); !strings.Contains(got, "5/5") {
		t.Errorf("GoalBar overflow = %q, want 5/5", got)
	}
	if got := GoalBar(-1, 5, 3, 30); !strings.Contains(got, "0/5") {
		t.Errorf("GoalBar negative = %q, want 0/5", got)
	}
}
