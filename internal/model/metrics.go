package model

import "time"

// SchoolBurnCalories is credited to a day's burn when the user went to school.
const SchoolBurnCalories = 1700

// DaySummary holds the derived totals for a single calendar day.
type DaySummary struct {
	Date     time.Time `json:"-"`
	Key      string    `json:"date"`
	Recorded bool      `json:"recorded"`

	CaloriesEaten  int     `json:"caloriesEaten"`
	Protein        float64 `json:"protein"`
	Sugar          float64 `json:"sugar"`
	FoodItems      int     `json:"foodItems"`
	ActivityBurn   int     `json:"activityBurn"`
	SchoolBurn     int     `json:"schoolBurn"`
	CaloriesBurned int     `json:"caloriesBurned"`
	NetCalories    int     `json:"netCalories"`

	Activities    int      `json:"activities"`
	StrengthSets  int      `json:"strengthSets"`
	CardioMinutes int      `json:"cardioMinutes"`
	MuscleGroups  []string `json:"muscleGroups"`

	StudyDone    int `json:"studyDone"`
	StudyPending int `json:"studyPending"`
	StudyLater   int `json:"studyLater"`

	FocusSessions int `json:"focusSessions"`
	FocusMinutes  int `json:"focusMinutes"`

	Goals          Goals `json:"goals"`
	GoalsCompleted int   `json:"goalsCompleted"`
	Qualifies      bool  `json:"qualifies"`
	WentToSchool   bool  `json:"wentToSchool"`
}

// PeriodSummary holds averages and totals across a window of days.
type PeriodSummary struct {
	Days           int `json:"days"`
	RecordedDays   int `json:"recordedDays"`
	QualifyingDays int `json:"qualifyingDays"`

	CaloriesEaten  int     `json:"caloriesEaten"`
	CaloriesBurned int     `json:"caloriesBurned"`
	Protein        float64 `json:"protein"`
	Sugar          float64 `json:"sugar"`

	StudyDone     int `json:"studyDone"`
	GymSessions   int `json:"gymSessions"`
	CardioMinutes int `json:"cardioMinutes"`
	FocusMinutes  int `json:"focusMinutes"`

	GoalHits map[GoalKey]int `json:"goalHits"`

	CaloriesPerDay float64 `json:"caloriesPerDay"`
	BurnPerDay     float64 `json:"burnPerDay"`
	ProteinPerDay  float64 `json:"proteinPerDay"`
	GoalsPerDay    float64 `json:"goalsPerDay"`
}

// Countdown is the number of days left in the current weekly (7-day) and
// monthly (30-day) result cycles.
type Countdown struct {
	Weekly  int `json:"weekly"`
	Monthly int `json:"monthly"`
	// FromStart is false when no start timestamp was recorded and the
	// calendar week and month were used instead.
	FromStart bool `json:"fromStart"`
}
