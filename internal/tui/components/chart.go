package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/selforge/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var blocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders values as a single row of block characters scaled to
// the largest value.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	peak := values[0]
	for _, v := range values[1:] {
		peak = max(peak, v)
	}
	if peak <= 0 {
		peak = 1
	}

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		idx = min(max(idx, 0), len(blocks)-1)
		buf.WriteRune(blocks[idx])
	}
	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(buf.String())
}

// Bar is one row of an HBars chart.
type Bar struct {
	Label string
	Value float64
	Text  string // shown after the bar; defaults to the rounded value
	Color lipgloss.Color
}

// HBars renders labeled horizontal bars scaled to the largest absolute
// value. Negative values draw in the theme's red unless a color is set.
func HBars(bars []Bar, width int) string {
	if len(bars) == 0 {
		return ""
	}
	t := theme.Active

	labelW, textW := 0, 0
	peak := 0.0
	for i := range bars {
		if bars[i].Text == "" {
			bars[i].Text = fmt.Sprintf("%.0f", bars[i].Value)
		}
		labelW = max(labelW, lipgloss.Width(bars[i].Label))
		textW = max(textW, lipgloss.Width(bars[i].Text))
		peak = max(peak, math.Abs(bars[i].Value))
	}
	if peak == 0 {
		peak = 1
	}
	barW := max(width-labelW-textW-2, 4)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	rows := make([]string, len(bars))
	for i, b := range bars {
		color := b.Color
		if color == "" {
			color = t.Accent
			if b.Value < 0 {
				color = t.Bad
			}
		}
		filled := int(math.Round(math.Abs(b.Value) / peak * float64(barW)))
		filled = min(max(filled, 0), barW)
		rows[i] = labelStyle.Render(fmt.Sprintf("%-*s ", labelW, b.Label)) +
			lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(strings.Repeat("█", filled)) +
			emptyStyle.Render(strings.Repeat("░", barW-filled)) +
			textStyle.Render(fmt.Sprintf(" %*s", textW, b.Text))
	}
	return strings.Join(rows, "\n")
}
