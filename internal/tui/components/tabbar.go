package components

import (
	"github.com/theirongolddev/selforge/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name (-1 if not in name)
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Today", Key: 't', KeyPos: 0},
	{Name: "Week", Key: 'w', KeyPos: 0},
	{Name: "Study", Key: 's', KeyPos: 0},
}

const tabSep = " "

// tabLabel returns the plain text drawn for a tab, without styling.
func tabLabel(tab Tab, active bool) string {
	if active || (tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name)) {
		return " " + tab.Name + " "
	}
	return " " + tab.Name + "[" + string(tab.Key) + "] "
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover).Bold(true)
	inactiveStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true).Underline(true)
	barStyle := lipgloss.NewStyle().Background(t.Surface)

	var row string
	for i, tab := range Tabs {
		if i > 0 {
			row += barStyle.Render(tabSep)
		}
		if i == activeIdx {
			row += activeStyle.Render(tabLabel(tab, true))
			continue
		}
		if tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name) {
			row += inactiveStyle.Render(" "+tab.Name[:tab.KeyPos]) +
				keyStyle.Render(string(tab.Name[tab.KeyPos])) +
				inactiveStyle.Render(tab.Name[tab.KeyPos+1:]+" ")
			continue
		}
		row += inactiveStyle.Render(tabLabel(tab, false))
	}
	return barStyle.Width(width).Render(row)
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}

// TabAtX returns the tab under column x of the rendered tab bar, or -1.
func TabAtX(activeIdx, x int) int {
	pos := 0
	for i, tab := range Tabs {
		w := len(tabLabel(tab, i == activeIdx))
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + len(tabSep)
	}
	return -1
}
