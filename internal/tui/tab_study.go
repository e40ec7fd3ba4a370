package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/selforge/internal/model"
	"github.com/theirongolddev/selforge/internal/tui/components"
	"github.com/theirongolddev/selforge/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// updateStudyKeys handles keys specific to the Study tab. ok is false when
// the key is not one of them.
func (a App) updateStudyKeys(key string) (m tea.Model, cmd tea.Cmd, ok bool) {
	topics := a.day.StudyTopics
	switch key {
	case "a":
		m, cmd = a.startInput(inputStudy)
		return m, cmd, true
	case "j", "down":
		if a.studyCursor < len(topics)-1 {
			a.studyCursor++
		}
		return a, nil, true
	case "k", "up":
		if a.studyCursor > 0 {
			a.studyCursor--
		}
		return a, nil, true
	case "d", "p", "l":
		if len(topics) == 0 {
			return a, nil, true
		}
		status := map[string]model.StudyStatus{"d": model.StudyDone, "p": model.StudyPending, "l": model.StudyLater}[key]
		topic := topics[a.studyCursor]
		if err := a.tracker.SetStudyStatus(topic.ID, status); err != nil {
			a.setStatus(err.Error(), true)
			return a, nil, true
		}
		a.setStatus(fmt.Sprintf("%s marked %s", topicTitle(topic), status), false)
		a.refresh()
		return a, nil, true
	case "x", "delete":
		if len(topics) == 0 {
			return a, nil, true
		}
		topic := topics[a.studyCursor]
		if err := a.tracker.DeleteStudyTopic(topic.ID); err != nil {
			a.setStatus(err.Error(), true)
			return a, nil, true
		}
		a.setStatus("Removed "+topicTitle(topic), false)
		a.refresh()
		return a, nil, true
	}
	return a, nil, false
}

// addStudy adds a pending topic from "subject: chapter" input. The chapter
// is optional.
func (a App) addStudy(text string) (tea.Model, tea.Cmd) {
	subject, chapter, _ := strings.Cut(text, ":")
	topic, err := a.tracker.AddStudyTopic(strings.TrimSpace(subject), strings.TrimSpace(chapter), model.StudyPending)
	if err != nil {
		a.setStatus(err.Error(), true)
		return a, nil
	}
	a.setStatus("Added "+topicTitle(topic), false)
	a.refresh()
	a.studyCursor = len(a.day.StudyTopics) - 1
	return a, nil
}

func topicTitle(t model.StudyTopic) string {
	if t.Chapter == "" {
		return t.Subject
	}
	return t.Subject + ": " + t.Chapter
}

func (a App) renderStudyTab(cw int) string {
	t := theme.Active
	d := a.today
	var b strings.Builder

	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Done", Value: fmt.Sprintf("%d", d.StudyDone), Color: t.Good},
		{Label: "Pending", Value: fmt.Sprintf("%d", d.StudyPending), Color: t.Warn},
		{Label: "Later", Value: fmt.Sprintf("%d", d.StudyLater), Color: t.TextMuted},
	}, cw))
	b.WriteString("\n")

	innerW := components.CardInnerWidth(cw)
	var body strings.Builder
	if len(a.day.StudyTopics) == 0 {
		body.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
			Render("no topics planned, press a to add one"))
	}
	for i, topic := range a.day.StudyTopics {
		if i > 0 {
			body.WriteString("\n")
		}
		bg := t.Surface
		marker := "  "
		if i == a.studyCursor {
			bg = t.SurfaceHover
			marker = "▸ "
		}
		statusColor := t.TextMuted
		switch topic.Status {
		case model.StudyDone:
			statusColor = t.Good
		case model.StudyPending:
			statusColor = t.Warn
		}
		line := lipgloss.NewStyle().Foreground(t.Accent).Background(bg).Render(marker) +
			lipgloss.NewStyle().Foreground(statusColor).Background(bg).Render(fmt.Sprintf("%-8s", topic.Status)) +
			lipgloss.NewStyle().Foreground(t.TextPrimary).Background(bg).Render(truncStr(topicTitle(topic), innerW-10))
		body.WriteString(lipgloss.NewStyle().Background(bg).Width(innerW).Render(line))
	}

	goal := "study goal open"
	if a.day.GoalsCompleted.Study {
		goal = "study goal done"
	}
	if a.day.GoalManualOverrides.Study {
		goal += " (manual)"
	}
	title := fmt.Sprintf("Today's topics · %s", goal)
	b.WriteString(components.ContentCard(title, body.String(), cw))
	return b.String()
}
