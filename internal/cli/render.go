package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorBorder = lipgloss.Color("#403E3C")
	colorDim    = lipgloss.Color("#575653")
	colorMuted  = lipgloss.Color("#878580")
	colorText   = lipgloss.Color("#FFFCF0")
	colorAccent = lipgloss.Color("#3AA99F")
	colorGood   = lipgloss.Color("#879A39")
	colorWarn   = lipgloss.Color("#DA702C")
	colorStreak = lipgloss.Color("#D0A215")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorText).Align(lipgloss.Center)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	valueStyle  = lipgloss.NewStyle().Foreground(colorText)
	footerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	goodStyle   = lipgloss.NewStyle().Foreground(colorGood)
	warnStyle   = lipgloss.NewStyle().Foreground(colorWarn)
	streakStyle = lipgloss.NewStyle().Bold(true).Foreground(colorStreak)
	dimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// Table is a bordered text table. The first LeftCols columns are
// left-aligned (1 when zero); the rest are right-aligned. Footer, when set,
// is drawn below a rule in bold.
type Table struct {
	Title    string
	Headers  []string
	Rows     [][]string
	Footer   []string
	LeftCols int
}

// RenderTitle renders a centered title in a rounded box.
func RenderTitle(title string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)
	return box.Render(titleStyle.Render(title))
}

// RenderTable renders t, or "" when it has neither headers nor rows.
func RenderTable(t Table) string {
	cols := len(t.Headers)
	for _, r := range t.Rows {
		cols = max(cols, len(r))
	}
	if cols == 0 {
		return ""
	}
	left := t.LeftCols
	if left < 1 {
		left = 1
	}

	widths := make([]int, cols)
	measure := func(row []string) {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}
	measure(t.Headers)
	for _, r := range t.Rows {
		measure(r)
	}
	measure(t.Footer)

	rule := func(l, mid, r string) string {
		parts := make([]string, cols)
		for i, w := range widths {
			parts[i] = strings.Repeat("─", w+2)
		}
		return dimStyle.Render(l+strings.Join(parts, mid)+r) + "\n"
	}
	line := func(row []string, style lipgloss.Style) string {
		sep := dimStyle.Render("│")
		var b strings.Builder
		b.WriteString(sep)
		for i := range cols {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(style.Render(" " + pad(cell, widths[i], i < left) + " "))
			b.WriteString(sep)
		}
		return b.String() + "\n"
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  " + headerStyle.Render(t.Title) + "\n")
	}
	b.WriteString(rule("╭", "┬", "╮"))
	if len(t.Headers) > 0 {
		b.WriteString(line(t.Headers, headerStyle))
		b.WriteString(rule("├", "┼", "┤"))
	}
	for _, r := range t.Rows {
		b.WriteString(line(r, valueStyle))
	}
	if len(t.Footer) > 0 {
		b.WriteString(rule("├", "┼", "┤"))
		b.WriteString(line(t.Footer, footerStyle))
	}
	b.WriteString(rule("╰", "┴", "╯"))
	return b.String()
}

// pad fills s to width display cells.
func pad(s string, width int, leftAlign bool) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	if leftAlign {
		return s + strings.Repeat(" ", gap)
	}
	return strings.Repeat(" ", gap) + s
}

// Good styles a completed or positive value.
func Good(s string) string { return goodStyle.Render(s) }

// Warn styles a value that needs attention.
func Warn(s string) string { return warnStyle.Render(s) }

// Muted styles secondary text.
func Muted(s string) string { return mutedStyle.Render(s) }

// Header styles a section heading.
func Header(s string) string { return headerStyle.Render(s) }

// RenderStreak renders the current streak with its best run.
func RenderStreak(current, longest int) string {
	line := streakStyle.Render("Streak: " + FormatDays(current))
	if longest > current {
		line += mutedStyle.Render(fmt.Sprintf("  (best %s)", FormatDays(longest)))
	}
	return line
}

// RenderGoalBar draws done of total as a block bar. The filled part is
// orange until done reaches qualifying, then green.
func RenderGoalBar(done, total, qualifying, width int) string {
	if total <= 0 || width <= 0 {
		return ""
	}
	done = min(max(done, 0), total)
	filled := done * width / total

	style := warnStyle
	switch {
	case done >= qualifying:
		style = goodStyle
	case done == 0:
		style = dimStyle
	}
	return "[" + style.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", width-filled)) + "]"
}
