package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/selforge/internal/cli"
	"github.com/theirongolddev/selforge/internal/model"
	"github.com/theirongolddev/selforge/internal/tui/components"
	"github.com/theirongolddev/selforge/internal/tui/theme"
)

func (a App) renderWeekTab(cw int) string {
	t := theme.Active
	p := a.period
	var b strings.Builder

	metrics := []components.Metric{
		{Label: "Counted days", Value: fmt.Sprintf("%d/%d", p.QualifyingDays, p.Days), Note: fmt.Sprintf("%.1f goals/day", p.GoalsPerDay)},
		{Label: "Eaten/day", Value: cli.FormatKcal(int(p.CaloriesPerDay)), Note: cli.FormatGrams(p.ProteinPerDay) + " protein"},
		{Label: "Burned/day", Value: cli.FormatKcal(int(p.BurnPerDay)), Note: fmt.Sprintf("%d gym sessions", p.GymSessions)},
		{Label: "Cardio", Value: cli.FormatMinutes(p.CardioMinutes), Note: fmt.Sprintf("%d topics done", p.StudyDone)},
	}
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	halves := components.LayoutRow(cw, 2)
	if a.isCompactLayout() {
		halves = []int{cw, cw}
	}

	// Net calories per day, oldest at the top.
	net := make([]components.Bar, 0, len(a.week))
	goalTrend := make([]float64, len(a.week))
	for i := len(a.week) - 1; i >= 0; i-- {
		d := a.week[i]
		bar := components.Bar{
			Label: cli.FormatDayOfWeek(int(d.Date.Weekday())) + " " + d.Date.Format("01-02"),
			Value: float64(d.NetCalories),
			Text:  cli.FormatSignedKcal(d.NetCalories),
		}
		if !d.Recorded {
			bar.Text = "-"
			bar.Color = t.TextDim
		}
		net = append(net, bar)
		goalTrend[len(a.week)-1-i] = float64(d.GoalsCompleted)
	}
	netCard := components.ContentCard(fmt.Sprintf("Net calories (%dd)", a.days),
		components.HBars(net, components.CardInnerWidth(halves[0])), halves[0])

	hits := make([]components.Bar, len(model.GoalKeys))
	for i, k := range model.GoalKeys {
		hits[i] = components.Bar{
			Label: string(k),
			Value: float64(p.GoalHits[k]),
			Text:  fmt.Sprintf("%d/%d", p.GoalHits[k], p.Days),
			Color: t.Good,
		}
	}
	goalsBody := components.HBars(hits, components.CardInnerWidth(halves[1])) + "\n\n" +
		components.Sparkline(goalTrend, t.Accent)
	goalsCard := components.ContentCard("Goal hits", goalsBody, halves[1])

	if a.isCompactLayout() {
		b.WriteString(netCard + "\n" + goalsCard)
	} else {
		b.WriteString(components.CardRow([]string{netCard, goalsCard}))
	}
	return b.String()
}
