package ledger

import (
	"maps"
	"slices"
	"sort"

	"github.com/theirongolddev/selforge/internal/model"
)

// MergeStats counts what Merge took from the incoming state.
type MergeStats struct {
	DaysAdded      int  `json:"daysAdded"`
	DaysKept       int  `json:"daysKept"`
	HistoryAdded   int  `json:"historyAdded"`
	SessionsAdded  int  `json:"sessionsAdded"`
	ProfileAdopted bool `json:"profileAdopted"`
	// MeasurementsAdopted counts the measurement sets (weekly, monthly)
	// taken from incoming.
	MeasurementsAdopted int `json:"measurementsAdopted"`
}

// Merge folds incoming into s. Dates already recorded in s win; a blank
// record in s (one that was only touched by a rollover) counts as absent.
// Streak history is unioned by start date and focus sessions by ID. The
// profile and each measurement set are adopted only when s has none; of two
// start timestamps the earlier is kept.
func Merge(s, incoming model.AppState) (model.AppState, MergeStats) {
	var stats MergeStats

	days := maps.Clone(s.DailyData)
	if days == nil {
		days = make(map[string]model.DailyData, len(incoming.DailyData))
	}
	for date, d := range incoming.DailyData {
		if cur, ok := days[date]; ok && (!cur.IsBlank() || d.IsBlank()) {
			stats.DaysKept++
			continue
		}
		d.Date = date
		days[date] = d
		stats.DaysAdded++
	}
	s.DailyData = days

	history := slices.Clone(s.StreakHistory)
	for _, h := range incoming.StreakHistory {
		if slices.ContainsFunc(history, func(x model.StreakHistoryEntry) bool { return x.StartDate == h.StartDate }) {
			continue
		}
		history = append(history, h)
		stats.HistoryAdded++
	}
	sort.SliceStable(history, func(i, j int) bool { return history[i].StartDate < history[j].StartDate })
	s.StreakHistory = history

	sessions := slices.Clone(s.ProtocolSessions)
	for _, p := range incoming.ProtocolSessions {
		if slices.ContainsFunc(sessions, func(x model.ProtocolSession) bool { return x.ID == p.ID }) {
			continue
		}
		sessions = append(sessions, p)
		stats.SessionsAdded++
	}
	sort.SliceStable(sessions, func(i, j int) bool { return sessions[i].Timestamp < sessions[j].Timestamp })
	if sessions == nil {
		sessions = []model.ProtocolSession{}
	}
	s.ProtocolSessions = sessions

	if s.Profile == (model.Profile{}) && incoming.Profile != (model.Profile{}) {
		s.Profile = incoming.Profile
		stats.ProfileAdopted = true
	}
	var none model.BodyMeasurements
	if s.WeeklyMeasurements == none && incoming.WeeklyMeasurements != none {
		s.WeeklyMeasurements = incoming.WeeklyMeasurements
		stats.MeasurementsAdopted++
	}
	if s.MonthlyMeasurements == none && incoming.MonthlyMeasurements != none {
		s.MonthlyMeasurements = incoming.MonthlyMeasurements
		stats.MeasurementsAdopted++
	}
	if in := incoming.UserStartTimestamp; in != nil && (s.UserStartTimestamp == nil || *in < *s.UserStartTimestamp) {
		ts := *in
		s.UserStartTimestamp = &ts
	}
	if s.OledAccentColorID == "" {
		s.OledAccentColorID = incoming.OledAccentColorID
	}
	s.OledMode = s.OledMode || incoming.OledMode
	s.OnboardingCompleted = s.OnboardingCompleted || incoming.OnboardingCompleted
	return s, stats
}
