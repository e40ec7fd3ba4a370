package components

import (
	"fmt"

	"github.com/theirongolddev/selforge/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// GoalBar renders today's goal progress: a bar filled done/total, colored by
// whether the day already qualifies, followed by "done/total".
func GoalBar(done, total, qualifying, width int) string {
	t := theme.Active
	if total <= 0 {
		total = 1
	}
	done = min(max(done, 0), total)
	pct := float64(done) / float64(total)
	color := t.GoalColor(done, qualifying)

	barW := max(width-8, 4)
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barW),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	countStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return bar.ViewAs(pct) + spaceStyle.Render(" ") + countStyle.Render(fmt.Sprintf("%d/%d", done, total))
}

// RatioBar renders a bar of value against target, e.g. protein toward a
// daily target. Overshoot is clamped to a full bar.
func RatioBar(label string, value, target float64, labelW, barW int) string {
	t := theme.Active

	pct := 0.0
	if target > 0 {
		pct = min(max(value/target, 0), 1)
	}
	color := t.Highlight
	if pct >= 1 {
		color = t.Good
	}

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(max(barW, 4)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(pct) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100))
}
