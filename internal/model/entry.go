// Package model defines the shared types for parsed entries, nutrition records,
// and the persisted daily ledger.
package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNoFoodItems is returned when a food entry is built without any items.
var ErrNoFoodItems = errors.New("model: food entry needs at least one item")

// EntryKind names the variant of a ParsedEntry.
type EntryKind string

const (
	KindFood    EntryKind = "food"
	KindGym     EntryKind = "gym"
	KindCardio  EntryKind = "cardio"
	KindUnknown EntryKind = "unknown"
)

// ParsedFoodItem is one food found in free text, already normalized to grams.
type ParsedFoodItem struct {
	Name            string  `json:"name"`
	QuantityGrams   float64 `json:"quantityGrams"`
	DisplayQuantity string  `json:"displayQuantity"`
	OriginalText    string  `json:"originalText"`
}

// ParsedEntry is the classified result of a free-text line. The set of
// variants is closed: ParsedFood, ParsedGym, ParsedCardio, ParsedUnknown.
type ParsedEntry interface {
	Kind() EntryKind
	Describe() string
	parsedEntry()
}

// ParsedFood holds one or more food items. Build it with NewParsedFood.
type ParsedFood struct {
	Items []ParsedFoodItem `json:"items"`
}

// NewParsedFood returns a food entry, or ErrNoFoodItems if items is empty.
func NewParsedFood(items []ParsedFoodItem) (ParsedFood, error) {
	if len(items) == 0 {
		return ParsedFood{}, ErrNoFoodItems
	}
	return ParsedFood{Items: items}, nil
}

// ParsedGym is a strength exercise.
type ParsedGym struct {
	MuscleGroup  string  `json:"muscleGroup"`
	ExerciseName string  `json:"exerciseName"`
	Sets         int     `json:"sets"`
	Reps         int     `json:"reps"`
	WeightKg     float64 `json:"weightKg"`
}

// ParsedCardio is a timed cardio activity.
type ParsedCardio struct {
	ActivityType    string `json:"activityType"`
	DurationMinutes int    `json:"durationMinutes"`
}

// ParsedUnknown is text that matched no category.
type ParsedUnknown struct {
	Summary string `json:"summary"`
}

func (ParsedFood) Kind() EntryKind    { return KindFood }
func (ParsedGym) Kind() EntryKind     { return KindGym }
func (ParsedCardio) Kind() EntryKind  { return KindCardio }
func (ParsedUnknown) Kind() EntryKind { return KindUnknown }

func (ParsedFood) parsedEntry()    {}
func (ParsedGym) parsedEntry()     {}
func (ParsedCardio) parsedEntry()  {}
func (ParsedUnknown) parsedEntry() {}

// Describe returns a one-line human summary of the entry.
func (f ParsedFood) Describe() string {
	switch len(f.Items) {
	case 0:
		return "Food"
	case 1:
		return "Food: " + f.Items[0].OriginalText
	}
	parts := make([]string, len(f.Items))
	for i, it := range f.Items {
		parts[i] = it.OriginalText
	}
	return "Food: " + strings.Join(parts, ", ")
}

func (g ParsedGym) Describe() string {
	s := fmt.Sprintf("%s: %d sets × %d reps", g.ExerciseName, g.Sets, g.Reps)
	if g.WeightKg > 0 {
		s += " @ " + strconv.FormatFloat(g.WeightKg, 'f', -1, 64) + "kg"
	}
	return s
}

func (c ParsedCardio) Describe() string {
	return fmt.Sprintf("%s for %d minutes", c.ActivityType, c.DurationMinutes)
}

func (u ParsedUnknown) Describe() string { return u.Summary }
