package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/selforge/internal/cli"
	"github.com/theirongolddev/selforge/internal/model"
	"github.com/theirongolddev/selforge/internal/tui/components"
	"github.com/theirongolddev/selforge/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const (
	tabToday = iota
	tabWeek
	tabStudy
)

// proteinTarget is the daily protein reference drawn on the Today tab.
const proteinTarget = 120.0

func (a App) renderTodayTab(cw int) string {
	t := theme.Active
	d := a.today
	var b strings.Builder

	// Row 1: metric cards
	goalNote := "day counts"
	if !d.Qualifies {
		goalNote = fmt.Sprintf("%d more to count", model.QualifyingGoals-d.GoalsCompleted)
	}
	burnNote := fmt.Sprintf("%d activities", d.Activities)
	if d.WentToSchool {
		burnNote = "incl. school " + cli.FormatNumber(int64(d.SchoolBurn))
	}
	netColor := t.TextPrimary
	if d.NetCalories < 0 {
		netColor = t.Good
	}
	metrics := []components.Metric{
		{Label: "Streak", Value: cli.FormatDays(a.streak), Note: fmt.Sprintf("best %s, result in %dd", cli.FormatDays(a.longest), a.countdown.Weekly),
			Color: t.AccentBright},
		{Label: "Goals", Value: fmt.Sprintf("%d/%d", d.GoalsCompleted, len(model.GoalKeys)), Note: goalNote,
			Color: t.GoalColor(d.GoalsCompleted, model.QualifyingGoals)},
		{Label: "Eaten", Value: cli.FormatKcal(d.CaloriesEaten), Note: cli.FormatGrams(d.Protein) + " protein"},
		{Label: "Burned", Value: cli.FormatKcal(d.CaloriesBurned), Note: burnNote},
		{Label: "Net", Value: cli.FormatSignedKcal(d.NetCalories), Note: cli.FormatGrams(d.Sugar) + " sugar", Color: netColor},
	}
	if a.isCompactLayout() {
		b.WriteString(components.MetricCardRow(metrics[:3], cw))
		b.WriteString("\n")
		b.WriteString(components.MetricCardRow(metrics[3:], cw))
	} else {
		b.WriteString(components.MetricCardRow(metrics, cw))
	}
	b.WriteString("\n")

	// Row 2: goals beside food
	halves := components.LayoutRow(cw, 2)
	if a.isCompactLayout() {
		halves = []int{cw, cw}
	}
	goals := components.ContentCard("Goals", a.renderGoals(components.CardInnerWidth(halves[0])), halves[0])
	food := components.ContentCard(fmt.Sprintf("Food (%d)", len(a.day.FoodEntries)),
		renderFood(a.day.FoodEntries, components.CardInnerWidth(halves[1])), halves[1])
	if a.isCompactLayout() {
		b.WriteString(goals + "\n" + food)
	} else {
		b.WriteString(components.CardRow([]string{goals, food}))
	}
	b.WriteString("\n")

	// Row 3: activities
	b.WriteString(components.ContentCard(fmt.Sprintf("Activities (%d)", len(a.day.GymActivities)),
		renderActivities(a.day.GymActivities, components.CardInnerWidth(cw)), cw))

	return b.String()
}

func (a App) renderGoals(innerW int) string {
	t := theme.Active
	keyStyle := lipgloss.NewStyle().Foreground(t.Highlight).Background(t.Surface).Bold(true)
	doneStyle := lipgloss.NewStyle().Foreground(t.Good).Background(t.Surface)
	openStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	for i, k := range model.GoalKeys {
		box, style := "[ ]", openStyle
		if a.day.GoalsCompleted.Get(k) {
			box, style = "[x]", doneStyle
		}
		b.WriteString(keyStyle.Render(fmt.Sprintf("%d ", i+1)))
		b.WriteString(style.Render(box + " " + string(k)))
		if a.day.GoalManualOverrides.Get(k) {
			b.WriteString(dimStyle.Render("  manual"))
		}
		b.WriteString("\n")
	}
	school := "[ ] went to school"
	if a.day.WentToSchool {
		school = "[x] went to school"
	}
	b.WriteString(keyStyle.Render("c ") + openStyle.Render(school) + "\n\n")

	b.WriteString(components.GoalBar(a.today.GoalsCompleted, len(model.GoalKeys), model.QualifyingGoals, innerW))
	b.WriteString("\n")
	b.WriteString(components.RatioBar("protein", a.today.Protein, proteinTarget, 7, innerW-13))
	return b.String()
}

func renderFood(entries []model.FoodEntry, innerW int) string {
	t := theme.Active
	if len(entries) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("nothing logged yet")
	}
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	numStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	badgeStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	// name | grams | kcal | source
	nameW := max(innerW-26, 8)
	var b strings.Builder
	for i, f := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(nameStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(f.Name, nameW))))
		b.WriteString(numStyle.Render(fmt.Sprintf("%7s %10s", cli.FormatGrams(f.QuantityGrams), cli.FormatKcal(f.Calories))))
		b.WriteString(badgeStyle.Render(fmt.Sprintf(" %-6s", cli.FormatSource(f.Source))))
	}
	return b.String()
}

func renderActivities(acts []model.GymActivity, innerW int) string {
	t := theme.Active
	if len(acts) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("no workouts yet")
	}
	descStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	burnStyle := lipgloss.NewStyle().Foreground(t.Warn).Background(t.Surface)
	tagStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	descW := max(innerW-22, 10)
	var b strings.Builder
	for i, act := range acts {
		if i > 0 {
			b.WriteString("\n")
		}
		tag := string(act.Type)
		if act.Type == model.ActivityGym && act.MuscleGroup != "" {
			tag = act.MuscleGroup
		}
		b.WriteString(tagStyle.Render(fmt.Sprintf("%-8s ", truncStr(tag, 8))))
		b.WriteString(descStyle.Render(fmt.Sprintf("%-*s", descW, truncStr(act.Description, descW))))
		b.WriteString(burnStyle.Render(fmt.Sprintf(" %11s", "-"+cli.FormatKcal(act.CaloriesBurned))))
	}
	return b.String()
}
