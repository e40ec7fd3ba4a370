// Package ledger holds the pure state transitions of the per-date ledger.
// Every function returns a new AppState and leaves its input untouched.
package ledger

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/theirongolddev/selforge/internal/model"
)

// ErrUnrecognized is returned when an entry has no ledger representation.
var ErrUnrecognized = errors.New("ledger: unrecognized entry")

// NewID returns a fresh entry ID. Tests may replace it.
var NewID = func() string { return uuid.NewString() }

// update copies the date map, applies fn to the record for date (created
// empty if missing) and stores the result.
func update(s model.AppState, date string, fn func(d model.DailyData) model.DailyData) model.AppState {
	days := maps.Clone(s.DailyData)
	if days == nil {
		days = make(map[string]model.DailyData)
	}
	d, ok := days[date]
	if !ok {
		d = model.NewDailyData(date)
	}
	days[date] = fn(d)
	s.DailyData = days
	return s
}

// Touch creates the record for date if it does not exist.
func Touch(s model.AppState, date string) model.AppState {
	if _, ok := s.DailyData[date]; ok {
		return s
	}
	return update(s, date, func(d model.DailyData) model.DailyData { return d })
}

// DeriveStudy reports whether at least one topic is not deferred and every
// such topic is done.
func DeriveStudy(topics []model.StudyTopic) bool {
	active := 0
	for _, t := range topics {
		if t.Status == model.StudyLater {
			continue
		}
		if t.Status != model.StudyDone {
			return false
		}
		active++
	}
	return active > 0
}

func refreshStudy(d model.DailyData) model.DailyData {
	if !d.GoalManualOverrides.Study {
		d.GoalsCompleted.Study = DeriveStudy(d.StudyTopics)
	}
	return d
}

// AddStudyTopic appends a topic. Missing ID, date or status are filled in.
func AddStudyTopic(s model.AppState, date string, t model.StudyTopic) (model.AppState, model.StudyTopic) {
	if t.ID == "" {
		t.ID = NewID()
	}
	if t.Status == "" {
		t.Status = model.StudyPending
	}
	t.Date = date
	t.Subject = strings.TrimSpace(t.Subject)
	t.Chapter = strings.TrimSpace(t.Chapter)

	s = update(s, date, func(d model.DailyData) model.DailyData {
		d.StudyTopics = append(slices.Clip(d.StudyTopics), t)
		return refreshStudy(d)
	})
	return s, t
}

// UpdateStudyTopic applies fn to the topic with id. ok is false when no
// such topic exists on date; the state is then returned unchanged.
func UpdateStudyTopic(s model.AppState, date, id string, fn func(t *model.StudyTopic)) (model.AppState, bool) {
	d, exists := s.DailyData[date]
	if !exists {
		return s, false
	}
	idx := slices.IndexFunc(d.StudyTopics, func(t model.StudyTopic) bool { return t.ID == id })
	if idx < 0 {
		return s, false
	}
	return update(s, date, func(d model.DailyData) model.DailyData {
		d.StudyTopics = slices.Clone(d.StudyTopics)
		fn(&d.StudyTopics[idx])
		d.StudyTopics[idx].ID = id
		return refreshStudy(d)
	}), true
}

// SetStudyStatus changes a topic's status.
func SetStudyStatus(s model.AppState, date, id string, status model.StudyStatus) (model.AppState, bool) {
	return UpdateStudyTopic(s, date, id, func(t *model.StudyTopic) { t.Status = status })
}

// DeleteStudyTopic removes the topic with id.
func DeleteStudyTopic(s model.AppState, date, id string) (model.AppState, bool) {
	d, exists := s.DailyData[date]
	if !exists || !slices.ContainsFunc(d.StudyTopics, func(t model.StudyTopic) bool { return t.ID == id }) {
		return s, false
	}
	return update(s, date, func(d model.DailyData) model.DailyData {
		d.StudyTopics = slices.DeleteFunc(slices.Clone(d.StudyTopics), func(t model.StudyTopic) bool { return t.ID == id })
		return refreshStudy(d)
	}), true
}

// AddGymActivity appends an activity and latches the gym goal unless it
// was set by hand.
func AddGymActivity(s model.AppState, date string, a model.GymActivity) (model.AppState, model.GymActivity) {
	if a.ID == "" {
		a.ID = NewID()
	}
	a.Date = date
	s = update(s, date, func(d model.DailyData) model.DailyData {
		d.GymActivities = append(slices.Clip(d.GymActivities), a)
		if !d.GoalManualOverrides.Gym {
			d.GoalsCompleted.Gym = true
		}
		return d
	})
	return s, a
}

// AddFoodEntries appends all entries in one step and latches the nutrition
// goal unless it was set by hand. An empty call is a no-op.
func AddFoodEntries(s model.AppState, date string, entries ...model.FoodEntry) (model.AppState, []model.FoodEntry) {
	if len(entries) == 0 {
		return s, nil
	}
	added := make([]model.FoodEntry, len(entries))
	for i, e := range entries {
		if e.ID == "" {
			e.ID = NewID()
		}
		e.Date = date
		added[i] = e
	}
	s = update(s, date, func(d model.DailyData) model.DailyData {
		d.FoodEntries = append(slices.Clip(d.FoodEntries), added...)
		if !d.GoalManualOverrides.Nutrition {
			d.GoalsCompleted.Nutrition = true
		}
		return d
	})
	return s, added
}

// ToggleGoal sets a goal by hand. The override flag sticks for the date.
func ToggleGoal(s model.AppState, date string, key model.GoalKey, completed bool) model.AppState {
	return update(s, date, func(d model.DailyData) model.DailyData {
		d.GoalsCompleted = d.GoalsCompleted.With(key, completed)
		d.GoalManualOverrides = d.GoalManualOverrides.With(key, true)
		return d
	})
}

// SetWentToSchool records school attendance.
func SetWentToSchool(s model.AppState, date string, went bool) model.AppState {
	return update(s, date, func(d model.DailyData) model.DailyData {
		d.WentToSchool = went
		return d
	})
}

// Applied lists what ApplyEnriched recorded.
type Applied struct {
	Food     []model.FoodEntry
	Activity *model.GymActivity
}

// ApplyEnriched records an enriched entry on date. Food items become one
// FoodEntry each, appended together.
func ApplyEnriched(s model.AppState, date string, e model.EnrichedEntry) (model.AppState, Applied, error) {
	switch entry := e.Entry.(type) {
	case model.ParsedFood:
		entries := make([]model.FoodEntry, 0, len(e.Items))
		for _, it := range e.Items {
			entries = append(entries, FoodEntryFrom(it))
		}
		if len(entries) == 0 {
			return s, Applied{}, model.ErrNoFoodItems
		}
		s, added := AddFoodEntries(s, date, entries...)
		return s, Applied{Food: added}, nil

	case model.ParsedGym:
		s, a := AddGymActivity(s, date, model.GymActivity{
			Type:           model.ActivityGym,
			MuscleGroup:    entry.MuscleGroup,
			ExerciseName:   entry.ExerciseName,
			Sets:           entry.Sets,
			Reps:           entry.Reps,
			WeightKg:       entry.WeightKg,
			CaloriesBurned: e.CaloriesBurned,
			Description:    entry.Describe(),
			Summary:        fmt.Sprintf("%s, ~%d kcal", entry.Describe(), e.CaloriesBurned),
		})
		return s, Applied{Activity: &a}, nil

	case model.ParsedCardio:
		s, a := AddGymActivity(s, date, model.GymActivity{
			Type:            model.ActivityCardio,
			ActivityType:    entry.ActivityType,
			DurationMinutes: entry.DurationMinutes,
			CaloriesBurned:  e.CaloriesBurned,
			Description:     entry.Describe(),
			Summary:         fmt.Sprintf("%s, ~%d kcal", entry.Describe(), e.CaloriesBurned),
		})
		return s, Applied{Activity: &a}, nil
	}
	return s, Applied{}, ErrUnrecognized
}

// FoodEntryFrom converts an enriched item to a ledger entry.
func FoodEntryFrom(it model.EnrichedFoodItem) model.FoodEntry {
	desc := it.DisplayQuantity + " " + it.Name
	return model.FoodEntry{
		Name:          it.Name,
		QuantityGrams: it.QuantityGrams,
		Brand:         it.Nutrition.Brand,
		Calories:      it.Nutrition.Calories,
		Protein:       it.Nutrition.Protein,
		Sugar:         it.Nutrition.Sugar,
		Source:        it.Nutrition.Source,
		Description:   desc,
		Summary:       fmt.Sprintf("%s: %d kcal, %gg protein", desc, it.Nutrition.Calories, it.Nutrition.Protein),
	}
}
