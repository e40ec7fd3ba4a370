package model

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DateLayout is the calendar key format used throughout the ledger.
const DateLayout = "2006-01-02"

// StudyStatus is the state of a study topic.
type StudyStatus string

const (
	StudyDone    StudyStatus = "done"
	StudyPending StudyStatus = "pending"
	StudyLater   StudyStatus = "later"
)

// ParseStudyStatus accepts done, pending or later (case-insensitive).
func ParseStudyStatus(s string) (StudyStatus, error) {
	switch st := StudyStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case StudyDone, StudyPending, StudyLater:
		return st, nil
	}
	return "", fmt.Errorf("unknown study status %q (want done, pending or later)", s)
}

// StudyTopic is one planned or completed study item.
type StudyTopic struct {
	ID      string      `json:"id"`
	Subject string      `json:"subject"`
	Chapter string      `json:"chapter"`
	Status  StudyStatus `json:"status"`
	Date    string      `json:"date"`
}

// ActivityType distinguishes strength from cardio activities.
type ActivityType string

const (
	ActivityGym    ActivityType = "gym"
	ActivityCardio ActivityType = "cardio"
)

// GymActivity is a recorded strength or cardio activity.
type GymActivity struct {
	ID              string       `json:"id"`
	Type            ActivityType `json:"type"`
	MuscleGroup     string       `json:"muscleGroup,omitempty"`
	ExerciseName    string       `json:"exerciseName,omitempty"`
	Sets            int          `json:"sets,omitempty"`
	Reps            int          `json:"reps,omitempty"`
	WeightKg        float64      `json:"weight,omitempty"`
	ActivityType    string       `json:"activityType,omitempty"`
	DurationMinutes int          `json:"duration,omitempty"`
	CaloriesBurned  int          `json:"caloriesBurned"`
	Date            string       `json:"date"`
	Description     string       `json:"description,omitempty"`
	Summary         string       `json:"summary,omitempty"`
}

// FoodEntry is one eaten food item.
type FoodEntry struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	QuantityGrams float64    `json:"quantity"`
	Brand         string     `json:"brand,omitempty"`
	Calories      int        `json:"calories"`
	Protein       float64    `json:"protein"`
	Sugar         float64    `json:"sugar"`
	Source        SourceTier `json:"source,omitempty"`
	Date          string     `json:"date"`
	Description   string     `json:"description,omitempty"`
	Summary       string     `json:"summary,omitempty"`
}

// GoalKey names one of the five daily goals.
type GoalKey string

const (
	GoalStudy      GoalKey = "study"
	GoalGym        GoalKey = "gym"
	GoalNutrition  GoalKey = "nutrition"
	GoalSleep      GoalKey = "sleep"
	GoalDiscipline GoalKey = "discipline"
)

// GoalKeys lists the goals in display order.
var GoalKeys = []GoalKey{GoalStudy, GoalGym, GoalNutrition, GoalSleep, GoalDiscipline}

// ParseGoalKey resolves a goal name.
func ParseGoalKey(s string) (GoalKey, error) {
	k := GoalKey(strings.ToLower(strings.TrimSpace(s)))
	for _, g := range GoalKeys {
		if g == k {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown goal %q", s)
}

// Goals holds one boolean per goal key. It is used both for completion and
// for the manual-override flags.
type Goals struct {
	Study      bool `json:"study"`
	Gym        bool `json:"gym"`
	Nutrition  bool `json:"nutrition"`
	Sleep      bool `json:"sleep"`
	Discipline bool `json:"discipline"`
}

// Get returns the flag for k.
func (g Goals) Get(k GoalKey) bool {
	switch k {
	case GoalStudy:
		return g.Study
	case GoalGym:
		return g.Gym
	case GoalNutrition:
		return g.Nutrition
	case GoalSleep:
		return g.Sleep
	case GoalDiscipline:
		return g.Discipline
	}
	return false
}

// With returns a copy with the flag for k set to v.
func (g Goals) With(k GoalKey, v bool) Goals {
	switch k {
	case GoalStudy:
		g.Study = v
	case GoalGym:
		g.Gym = v
	case GoalNutrition:
		g.Nutrition = v
	case GoalSleep:
		g.Sleep = v
	case GoalDiscipline:
		g.Discipline = v
	}
	return g
}

// Count returns how many flags are set.
func (g Goals) Count() int {
	n := 0
	for _, k := range GoalKeys {
		if g.Get(k) {
			n++
		}
	}
	return n
}

// DailyData is the per-date ledger record.
type DailyData struct {
	Date                string        `json:"date"`
	StudyTopics         []StudyTopic  `json:"studyTopics"`
	GymActivities       []GymActivity `json:"gymActivities"`
	FoodEntries         []FoodEntry   `json:"foodEntries"`
	GoalsCompleted      Goals         `json:"goalsCompleted"`
	GoalManualOverrides Goals         `json:"goalManualOverrides"`
	WentToSchool        bool          `json:"wentToSchool"`
}

// QualifyingGoals is the number of completed goals that makes a day count
// toward the streak.
const QualifyingGoals = 3

// Qualifies reports whether the day counts toward the streak.
func (d DailyData) Qualifies() bool {
	return d.GoalsCompleted.Count() >= QualifyingGoals
}

// IsBlank reports whether the record holds nothing a user entered: no
// topics, activities or food, no goals or overrides, no school flag.
func (d DailyData) IsBlank() bool {
	return len(d.StudyTopics) == 0 &&
		len(d.GymActivities) == 0 &&
		len(d.FoodEntries) == 0 &&
		d.GoalsCompleted == Goals{} &&
		d.GoalManualOverrides == Goals{} &&
		!d.WentToSchool
}

// NewDailyData returns an empty record for date.
func NewDailyData(date string) DailyData {
	return DailyData{
		Date:          date,
		StudyTopics:   []StudyTopic{},
		GymActivities: []GymActivity{},
		FoodEntries:   []FoodEntry{},
	}
}

// StreakHistoryEntry is an archived run of qualifying days.
type StreakHistoryEntry struct {
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	LengthDays int    `json:"lengthDays"`
}

// Profile holds the user's self-description.
type Profile struct {
	Name   string `json:"userName,omitempty"`
	Age    int    `json:"userAge,omitempty"`
	Gender string `json:"userGender,omitempty"`
}

// ProtocolSession is one timed focus-study session.
type ProtocolSession struct {
	ID              string `json:"id"`
	Subject         string `json:"subject"`
	Topic           string `json:"topic"`
	DurationSeconds int    `json:"durationSeconds"`
	Timestamp       int64  `json:"timestamp"` // Unix milliseconds
}

// Time returns when the session was recorded.
func (p ProtocolSession) Time() time.Time { return time.UnixMilli(p.Timestamp) }

// MeasurementPeriod selects the weekly or monthly measurement set.
type MeasurementPeriod string

const (
	MeasureWeekly  MeasurementPeriod = "weekly"
	MeasureMonthly MeasurementPeriod = "monthly"
)

// ParseMeasurementPeriod accepts weekly or monthly (w and m also work).
func ParseMeasurementPeriod(s string) (MeasurementPeriod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weekly", "week", "w":
		return MeasureWeekly, nil
	case "monthly", "month", "m":
		return MeasureMonthly, nil
	}
	return "", fmt.Errorf("unknown measurement period %q (want weekly or monthly)", s)
}

// BodyMeasurements are circumferences in cm, weight in kg and height in cm.
// Zero means not measured.
type BodyMeasurements struct {
	Chest  float64 `json:"chest"`
	Waist  float64 `json:"waist"`
	Butt   float64 `json:"butt"`
	Thighs float64 `json:"thighs"`
	Weight float64 `json:"weight"`
	Height float64 `json:"height"`
}

// MeasurementUpdate changes only the fields that are set.
type MeasurementUpdate struct {
	Chest  *float64 `json:"chest,omitempty"`
	Waist  *float64 `json:"waist,omitempty"`
	Butt   *float64 `json:"butt,omitempty"`
	Thighs *float64 `json:"thighs,omitempty"`
	Weight *float64 `json:"weight,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

func (u MeasurementUpdate) fields(m *BodyMeasurements) []struct {
	name string
	src  *float64
	dst  *float64
} {
	return []struct {
		name string
		src  *float64
		dst  *float64
	}{
		{"chest", u.Chest, &m.Chest},
		{"waist", u.Waist, &m.Waist},
		{"butt", u.Butt, &m.Butt},
		{"thighs", u.Thighs, &m.Thighs},
		{"weight", u.Weight, &m.Weight},
		{"height", u.Height, &m.Height},
	}
}

// Validate rejects negative and non-finite values and empty updates.
func (u MeasurementUpdate) Validate() error {
	var scratch BodyMeasurements
	set := 0
	for _, f := range u.fields(&scratch) {
		if f.src == nil {
			continue
		}
		set++
		if v := *f.src; v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be a non-negative number", f.name)
		}
	}
	if set == 0 {
		return fmt.Errorf("no measurements given")
	}
	return nil
}

// Apply returns m with the set fields of u copied in.
func (m BodyMeasurements) Apply(u MeasurementUpdate) BodyMeasurements {
	for _, f := range u.fields(&m) {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
	return m
}

// AppState is the complete persisted state.
type AppState struct {
	Version             int                  `json:"version"`
	DailyData           map[string]DailyData `json:"dailyData"`
	CurrentStreak       int                  `json:"currentStreak"`
	StreakHistory       []StreakHistoryEntry `json:"streakHistory"`
	Profile             Profile              `json:"profile"`
	OnboardingCompleted bool                 `json:"onboardingCompleted"`

	// UserStartTimestamp is set once, when onboarding first completes, in
	// Unix milliseconds. The result countdowns cycle from it.
	UserStartTimestamp  *int64            `json:"userStartTimestamp"`
	WeeklyMeasurements  BodyMeasurements  `json:"weeklyMeasurements"`
	MonthlyMeasurements BodyMeasurements  `json:"monthlyMeasurements"`
	ProtocolSessions    []ProtocolSession `json:"protocolSessions"`

	// Display preferences of the browser app, carried so a round trip
	// through this store keeps them.
	OledMode          bool   `json:"oledMode,omitempty"`
	OledAccentColorID string `json:"oledAccentColorId,omitempty"`
}

// Measurements returns the set for period.
func (s AppState) Measurements(period MeasurementPeriod) BodyMeasurements {
	if period == MeasureMonthly {
		return s.MonthlyMeasurements
	}
	return s.WeeklyMeasurements
}

// MeasuredWeightKg returns the weekly weight, else the monthly one, else 0.
func (s AppState) MeasuredWeightKg() float64 {
	if w := s.WeeklyMeasurements.Weight; w > 0 {
		return w
	}
	return s.MonthlyMeasurements.Weight
}

// NewAppState returns an empty state at the given schema version.
func NewAppState(version int) AppState {
	return AppState{
		Version:          version,
		DailyData:        map[string]DailyData{},
		StreakHistory:    []StreakHistoryEntry{},
		ProtocolSessions: []ProtocolSession{},
	}
}

// Day returns the record for date, or an empty one if none exists.
func (s AppState) Day(date string) (DailyData, bool) {
	d, ok := s.DailyData[date]
	if !ok {
		return NewDailyData(date), false
	}
	return d, true
}
