// Package parser turns a free-text activity line into a model.ParsedEntry.
package parser

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/theirongolddev/selforge/internal/ai"
	"github.com/theirongolddev/selforge/internal/model"
)

// Parser classifies text, asking an AI classifier first when one is set
// and falling back to the keyword heuristics.
type Parser struct {
	ai     ai.Asker
	logger *log.Logger
}

// New returns a Parser. A nil asker disables the AI path.
func New(asker ai.Asker, logger *log.Logger) *Parser {
	return &Parser{ai: asker, logger: logger}
}

// Parse never fails. AI errors, "unknown" replies and replies missing
// required fields all fall through to ParseHeuristic.
func (p *Parser) Parse(ctx context.Context, text string) model.ParsedEntry {
	if strings.TrimSpace(text) == "" {
		return model.ParsedUnknown{Summary: unknownSummary}
	}
	if p != nil && p.ai != nil && ctx.Err() == nil {
		entry, err := p.parseAI(ctx, text)
		if err == nil {
			return entry
		}
		if p.logger != nil {
			p.logger.Printf("ai classifier declined: %v", err)
		}
	}
	return ParseHeuristic(text)
}

type aiFoodItem struct {
	Name     string    `json:"name"`
	Quantity ai.Number `json:"quantity"`
}

type aiReply struct {
	Type         string       `json:"type"`
	Summary      string       `json:"summary"`
	Name         string       `json:"name"`
	Quantity     ai.Number    `json:"quantity"`
	Items        []aiFoodItem `json:"items"`
	MuscleGroup  string       `json:"muscleGroup"`
	ExerciseName string       `json:"exerciseName"`
	Sets         ai.Number    `json:"sets"`
	Reps         ai.Number    `json:"reps"`
	Weight       ai.Number    `json:"weight"`
	ActivityType string       `json:"activityType"`
	Duration     ai.Number    `json:"duration"`
}

const classifyPrompt = `Parse this description: %q

Determine if it's food, gym exercise, or cardio activity. Extract all relevant details.

Return ONLY a JSON object with this structure:
{
  "type": "food" | "gym" | "cardio" | "unknown",
  "summary": "brief English summary of what you understood",
  "items": [{"name": "food name", "quantity": number in grams}],
  "muscleGroup": "muscle group",
  "exerciseName": "exercise name",
  "sets": number,
  "reps": number,
  "weight": number in kg,
  "activityType": "activity type",
  "duration": number in minutes
}

Only include fields relevant to the type. List every food item separately. If you can't determine the type, use "unknown".`

func (p *Parser) parseAI(ctx context.Context, text string) (model.ParsedEntry, error) {
	var r aiReply
	if err := ai.Decode(ctx, p.ai, fmt.Sprintf(classifyPrompt, text), &r); err != nil {
		return nil, err
	}
	return r.entry()
}

func (r aiReply) entry() (model.ParsedEntry, error) {
	switch model.EntryKind(strings.ToLower(strings.TrimSpace(r.Type))) {
	case model.KindFood:
		items := r.Items
		if len(items) == 0 && r.Name != "" {
			items = []aiFoodItem{{Name: r.Name, Quantity: r.Quantity}}
		}
		var parsed []model.ParsedFoodItem
		for _, it := range items {
			name := strings.ToLower(strings.TrimSpace(it.Name))
			q := float64(it.Quantity)
			if name == "" || q <= 0 {
				continue
			}
			parsed = append(parsed, model.ParsedFoodItem{
				Name:            name,
				QuantityGrams:   q,
				DisplayQuantity: formatNumber(q) + "g",
				OriginalText:    formatNumber(q) + "g " + name,
			})
		}
		food, err := model.NewParsedFood(parsed)
		if err != nil {
			return nil, fmt.Errorf("ai food reply: %w", err)
		}
		return food, nil

	case model.KindGym:
		if r.ExerciseName == "" || r.Sets <= 0 || r.Reps <= 0 {
			return nil, errors.New("ai gym reply missing exercise, sets or reps")
		}
		return model.ParsedGym{
			MuscleGroup:  strings.ToLower(r.MuscleGroup),
			ExerciseName: strings.ToLower(r.ExerciseName),
			Sets:         int(r.Sets),
			Reps:         int(r.Reps),
			WeightKg:     max(float64(r.Weight), 0),
		}, nil

	case model.KindCardio:
		if r.ActivityType == "" || r.Duration <= 0 {
			return nil, errors.New("ai cardio reply missing activity or duration")
		}
		return model.ParsedCardio{
			ActivityType:    strings.ToLower(r.ActivityType),
			DurationMinutes: int(r.Duration),
		}, nil
	}
	return nil, fmt.Errorf("ai could not classify %q", r.Type)
}
