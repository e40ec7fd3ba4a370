package ledger

import (
	"slices"
	"time"

	"github.com/theirongolddev/selforge/internal/model"
)

// AddProtocolSession appends a focus session, filling ID and timestamp
// when they are unset.
func AddProtocolSession(s model.AppState, p model.ProtocolSession, now time.Time) (model.AppState, model.ProtocolSession) {
	if p.ID == "" {
		p.ID = NewID()
	}
	if p.Timestamp == 0 {
		p.Timestamp = now.UnixMilli()
	}
	s.ProtocolSessions = append(slices.Clip(s.ProtocolSessions), p)
	return s, p
}

// SetMeasurements merges u into the weekly or monthly set.
func SetMeasurements(s model.AppState, period model.MeasurementPeriod, u model.MeasurementUpdate) model.AppState {
	if period == model.MeasureMonthly {
		s.MonthlyMeasurements = s.MonthlyMeasurements.Apply(u)
	} else {
		s.WeeklyMeasurements = s.WeeklyMeasurements.Apply(u)
	}
	return s
}

// MarkStarted completes onboarding and records the start time the first
// time it is called.
func MarkStarted(s model.AppState, now time.Time) model.AppState {
	s.OnboardingCompleted = true
	if s.UserStartTimestamp == nil {
		ts := now.UnixMilli()
		s.UserStartTimestamp = &ts
	}
	return s
}
