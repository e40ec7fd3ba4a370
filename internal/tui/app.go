// Package tui provides the interactive Bubble Tea dashboard for selforge.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/selforge/internal/cli"
	"github.com/theirongolddev/selforge/internal/model"
	"github.com/theirongolddev/selforge/internal/pipeline"
	"github.com/theirongolddev/selforge/internal/streak"
	"github.com/theirongolddev/selforge/internal/tracker"
	"github.com/theirongolddev/selforge/internal/tui/components"
	"github.com/theirongolddev/selforge/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LoggedMsg is sent when a background LogText call finishes.
type LoggedMsg struct {
	Text   string
	Result tracker.Result
	Err    error
}

// LedgerChangedMsg is sent when the tracker commits a change, whether it
// came from this dashboard or from another writer such as the HTTP API.
type LedgerChangedMsg struct {
	Event tracker.Event
}

type inputMode int

const (
	inputLog inputMode = iota
	inputStudy
)

const (
	minTerminalWidth = 60
	compactWidth     = 100
	maxContentWidth  = 160
	minContentHeight = 5

	logTimeout = 45 * time.Second
)

// App is the root Bubble Tea model.
type App struct {
	tracker *tracker.Tracker
	days    int

	// Data, refreshed after every committed change
	day       model.DailyData
	today     model.DaySummary
	week      []model.DaySummary
	period    model.PeriodSummary
	streak    int
	longest   int
	countdown model.Countdown

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	input   textinput.Model
	mode    inputMode
	typing  bool
	busy    bool
	spinner spinner.Model

	status    string
	statusErr bool

	studyCursor int

	events chan tracker.Event
	subID  int
}

// NewApp creates the dashboard for t, showing days of history on the Week
// tab. It subscribes to t; call Close when the program exits.
func NewApp(t *tracker.Tracker, days int) App {
	if days <= 0 {
		days = 7
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	a := App{
		tracker: t,
		days:    days,
		input:   newLogInput(),
		spinner: sp,
		events:  make(chan tracker.Event, 16),
	}
	a.subID = t.Subscribe(a.events)
	a.refresh()
	return a
}

// Close stops the change subscription.
func (a App) Close() {
	a.tracker.Unsubscribe(a.subID)
}

func newLogInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = "press i, then describe a meal or workout"
	ti.CharLimit = 280
	return ti
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		waitForEvent(a.events),
	)
}

func (a *App) refresh() {
	a.day = a.tracker.Today()
	st := a.tracker.State()
	a.today = pipeline.SummarizeDate(st, a.day.Date)
	a.week = a.tracker.Days(a.days)
	a.period = pipeline.SummarizePeriod(a.week)
	a.countdown = a.tracker.Countdown()

	a.streak = st.CurrentStreak
	a.longest = streak.Longest(st)

	if a.studyCursor >= len(a.day.StudyTopics) {
		a.studyCursor = len(a.day.StudyTopics) - 1
	}
	if a.studyCursor < 0 {
		a.studyCursor = 0
	}
}

func (a *App) setStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.Width = max(a.contentWidth()-6, 10)
		return a, nil

	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := components.TabAtX(a.activeTab, msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.typing {
			return a.updateInput(msg)
		}
		return a.updateKeys(msg)

	case LoggedMsg:
		a.busy = false
		switch {
		case errors.Is(msg.Err, tracker.ErrUnrecognized):
			a.setStatus("Could not determine type: "+msg.Result.Entry.Summary, true)
		case msg.Err != nil:
			a.setStatus("Not logged: "+msg.Err.Error(), true)
		default:
			a.setStatus(describeResult(msg.Result), false)
		}
		a.refresh()
		return a, nil

	case LedgerChangedMsg:
		a.refresh()
		return a, waitForEvent(a.events)

	case spinner.TickMsg:
		if !a.busy {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	if a.typing {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "?":
		a.showHelp = true
		return a, nil
	case "r":
		a.refresh()
		return a, nil
	case "i", "/":
		return a.startInput(inputLog)
	case "1", "2", "3", "4", "5":
		return a.toggleGoal(model.GoalKeys[key[0]-'1'])
	case "c":
		went := !a.day.WentToSchool
		if _, err := a.tracker.SetWentToSchool(went); err != nil {
			a.setStatus(err.Error(), true)
			return a, nil
		}
		if went {
			a.setStatus(fmt.Sprintf("School day: +%s burned", cli.FormatKcal(model.SchoolBurnCalories)), false)
		} else {
			a.setStatus("School day cleared", false)
		}
		a.refresh()
		return a, nil
	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	}

	if a.activeTab == tabStudy {
		if m, cmd, ok := a.updateStudyKeys(key); ok {
			return m, cmd
		}
	}

	if len(key) == 1 {
		if tab := components.TabIdxByKey(rune(key[0])); tab >= 0 {
			a.activeTab = tab
		}
	}
	return a, nil
}

func (a App) startInput(mode inputMode) (tea.Model, tea.Cmd) {
	if a.busy {
		return a, nil
	}
	a.mode = mode
	a.typing = true
	a.input.Reset()
	switch mode {
	case inputStudy:
		a.input.Placeholder = "subject: chapter"
	default:
		a.input.Placeholder = "e.g. 2 eggs and a cup of milk, or ran 30 minutes"
	}
	a.input.Focus()
	return a, a.input.Cursor.BlinkCmd()
}

func (a App) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.typing = false
		a.input.Blur()
		a.input.Reset()
		a.input.Placeholder = newLogInput().Placeholder
		return a, nil
	case "enter":
		text := strings.TrimSpace(a.input.Value())
		a.typing = false
		a.input.Blur()
		a.input.Reset()
		a.input.Placeholder = newLogInput().Placeholder
		if text == "" {
			return a, nil
		}
		if a.mode == inputStudy {
			return a.addStudy(text)
		}
		a.busy = true
		a.setStatus("Analyzing "+text, false)
		return a, tea.Batch(logCmd(a.tracker, text), a.spinner.Tick)
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a App) toggleGoal(k model.GoalKey) (tea.Model, tea.Cmd) {
	completed := !a.day.GoalsCompleted.Get(k)
	if _, err := a.tracker.ToggleGoal(k, completed); err != nil {
		a.setStatus(err.Error(), true)
		return a, nil
	}
	if completed {
		a.setStatus(fmt.Sprintf("%s goal done", k), false)
	} else {
		a.setStatus(fmt.Sprintf("%s goal cleared", k), false)
	}
	a.refresh()
	return a, nil
}

// describeResult is the status line after a successful log.
func describeResult(res tracker.Result) string {
	e := res.Entry
	switch e.Kind {
	case model.KindFood:
		items := "1 item"
		if len(e.Items) != 1 {
			items = fmt.Sprintf("%d items", len(e.Items))
		}
		return fmt.Sprintf("Logged %s: %s, %s protein", items, cli.FormatKcal(e.TotalCalories), cli.FormatGrams(e.TotalProtein))
	case model.KindGym, model.KindCardio:
		return fmt.Sprintf("Logged %s: ~%s burned", e.Summary, cli.FormatKcal(e.CaloriesBurned))
	}
	return "Logged " + e.Summary
}

func logCmd(t *tracker.Tracker, text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), logTimeout)
		defer cancel()
		res, err := t.LogText(ctx, text)
		return LoggedMsg{Text: text, Result: res, Err: err}
	}
}

func waitForEvent(ch <-chan tracker.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return LedgerChangedMsg{Event: ev}
	}
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  selforge needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Highlight).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Today", []struct{ key, desc string }{
			{"i /", "Log food or exercise"},
			{"1-5", "Toggle study, gym, nutrition, sleep, discipline"},
			{"c", "Toggle went to school"},
		}},
		{"Study", []struct{ key, desc string }{
			{"a", "Add topic (subject: chapter)"},
			{"j k", "Move"},
			{"d p l", "Mark done / pending / later"},
			{"x", "Delete topic"},
		}},
		{"General", []struct{ key, desc string }{
			{"t w s", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"r", "Reload"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-6s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()

	// 1. Header: tab bar and a date/streak line
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accentStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	info := dimStyle.Render(" "+a.today.Date.Format("Mon 02 Jan 2006")+" │ streak ") +
		accentStyle.Render(cli.FormatDays(a.streak)) +
		dimStyle.Render(" ")
	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		lipgloss.NewStyle().Background(t.Surface).Width(w).Render(info)

	// 2. Input line and status bar
	inputLine := a.renderInputLine(w)
	hints := "[i]log  [1-5]goals  [?]help  [q]uit"
	if a.typing {
		hints = "[enter]save  [esc]cancel"
	}
	statusBar := components.RenderStatusBar(w, hints, a.status, a.statusErr)

	// 3. Content zone
	contentH := max(a.height-lipgloss.Height(header)-lipgloss.Height(inputLine)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabToday:
		content = a.renderTodayTab(cw)
	case tabWeek:
		content = a.renderWeekTab(cw)
	case tabStudy:
		content = a.renderStudyTab(cw)
	}
	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, inputLine, statusBar)
	return lipgloss.Place(w, a.height, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) renderInputLine(w int) string {
	t := theme.Active
	style := lipgloss.NewStyle().Background(t.Surface).Width(w)
	if a.busy {
		return style.Render(" " + a.spinner.View() + " analyzing…")
	}
	return style.Render(" " + a.input.View())
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	runes := []rune(s)
	if limit <= 0 || len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with the background
// color so gaps between cards are not left unstyled.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}
