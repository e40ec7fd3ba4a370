// Package theme defines the color themes shared by the dashboard and the
// setup form.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme maps the dashboard's color roles to concrete colors.
type Theme struct {
	Name string

	Background   lipgloss.Color
	Surface      lipgloss.Color // cards and panels
	SurfaceHover lipgloss.Color // active tab, selected row
	Border       lipgloss.Color
	BorderAccent lipgloss.Color // focused input

	TextDim     lipgloss.Color
	TextMuted   lipgloss.Color
	TextPrimary lipgloss.Color

	Accent       lipgloss.Color
	AccentBright lipgloss.Color

	Good      lipgloss.Color // goal met, qualifying day, calorie deficit
	Warn      lipgloss.Color // partly done, calorie surplus
	Bad       lipgloss.Color // missed day
	Highlight lipgloss.Color // key hints, burn bars
}

// Active is the theme the dashboard renders with.
var Active = FlexokiDark

// FlexokiDark is the default.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Background:   "#100F0F",
	Surface:      "#1C1B1A",
	SurfaceHover: "#282726",
	Border:       "#403E3C",
	BorderAccent: "#3AA99F",
	TextDim:      "#575653",
	TextMuted:    "#878580",
	TextPrimary:  "#FFFCF0",
	Accent:       "#3AA99F",
	AccentBright: "#5BC8BE",
	Good:         "#879A39",
	Warn:         "#DA702C",
	Bad:          "#D14D41",
	Highlight:    "#24837B",
}

// GruvboxDark trades the teal accent for gruvbox's warm yellows.
var GruvboxDark = Theme{
	Name:         "gruvbox-dark",
	Background:   "#1D2021",
	Surface:      "#282828",
	SurfaceHover: "#3C3836",
	Border:       "#504945",
	BorderAccent: "#FABD2F",
	TextDim:      "#665C54",
	TextMuted:    "#A89984",
	TextPrimary:  "#EBDBB2",
	Accent:       "#FABD2F",
	AccentBright: "#FFD866",
	Good:         "#B8BB26",
	Warn:         "#FE8019",
	Bad:          "#FB4934",
	Highlight:    "#83A598",
}

// Nord is a low-contrast arctic palette.
var Nord = Theme{
	Name:         "nord",
	Background:   "#2E3440",
	Surface:      "#3B4252",
	SurfaceHover: "#434C5E",
	Border:       "#4C566A",
	BorderAccent: "#88C0D0",
	TextDim:      "#616E88",
	TextMuted:    "#D8DEE9",
	TextPrimary:  "#ECEFF4",
	Accent:       "#88C0D0",
	AccentBright: "#8FBCBB",
	Good:         "#A3BE8C",
	Warn:         "#D08770",
	Bad:          "#BF616A",
	Highlight:    "#81A1C1",
}

// Terminal sticks to the 16 ANSI colors.
var Terminal = Theme{
	Name:         "terminal",
	Background:   "0",
	Surface:      "0",
	SurfaceHover: "8",
	Border:       "8",
	BorderAccent: "6",
	TextDim:      "8",
	TextMuted:    "7",
	TextPrimary:  "15",
	Accent:       "6",
	AccentBright: "14",
	Good:         "2",
	Warn:         "3",
	Bad:          "1",
	Highlight:    "6",
}

// All lists the themes in the order the setup form offers them.
var All = []Theme{FlexokiDark, GruvboxDark, Nord, Terminal}

// ByName returns the named theme, or FlexokiDark when the name is unknown.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive switches Active to the named theme.
func SetActive(name string) {
	Active = ByName(name)
}

// Names lists the theme names in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// GoalColor picks the color for a completed goal count: dim with none done,
// Warn while short of qualifying, Good once the day counts.
func (t Theme) GoalColor(done, qualifying int) lipgloss.Color {
	switch {
	case done >= qualifying:
		return t.Good
	case done > 0:
		return t.Warn
	default:
		return t.TextDim
	}
}
