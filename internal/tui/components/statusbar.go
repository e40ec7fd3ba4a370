package components

import (
	"github.com/theirongolddev/selforge/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom bar: key hints on the left and the
// last message on the right. isErr colors the message as a warning.
func RenderStatusBar(width int, hints, message string, isErr bool) string {
	t := theme.Active

	barStyle := lipgloss.NewStyle().Background(t.Surface)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	msgStyle := lipgloss.NewStyle().Foreground(t.Good).Background(t.Surface)
	if isErr {
		msgStyle = msgStyle.Foreground(t.Warn)
	}

	left := hintStyle.Render(" " + hints)
	right := ""
	if message != "" {
		room := width - lipgloss.Width(left) - 2
		if room > 3 && lipgloss.Width(message) > room {
			message = truncate(message, room)
		}
		right = msgStyle.Render(message + " ")
	}

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return barStyle.Width(width).Render(left + barStyle.Render(spaces(gap)) + right)
}

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}
