// Package pipeline enriches parsed entries with nutrition and burn values
// and aggregates ledger days into summaries.
package pipeline

import (
	"context"
	"math"
	"sync"

	"github.com/theirongolddev/selforge/internal/model"
)

// NutritionResolver resolves nutrition for a food and gram quantity.
type NutritionResolver interface {
	Resolve(ctx context.Context, foodName string, quantityGrams float64) model.NutritionRecord
}

// BurnEstimator estimates calories burned by an activity.
type BurnEstimator interface {
	EstimateGym(ctx context.Context, exercise, muscleGroup string, sets, reps int, weightKg float64) int
	EstimateCardio(ctx context.Context, activity string, minutes int) int
}

// Pipeline joins the resolvers into a single enrichment step.
type Pipeline struct {
	nutrition NutritionResolver
	burn      BurnEstimator
}

// New returns a Pipeline.
func New(nutrition NutritionResolver, burn BurnEstimator) *Pipeline {
	return &Pipeline{nutrition: nutrition, burn: burn}
}

// Enrich resolves every value the entry needs. Food items are resolved
// concurrently and joined before totals are computed. Unknown entries pass
// through. Enrich never fails; callers that see ctx.Err() != nil afterwards
// should discard the result.
func (p *Pipeline) Enrich(ctx context.Context, entry model.ParsedEntry) model.EnrichedEntry {
	out := model.EnrichedEntry{Entry: entry}
	if entry == nil {
		out.Kind = model.KindUnknown
		return out
	}
	out.Kind = entry.Kind()
	out.Summary = entry.Describe()

	switch e := entry.(type) {
	case model.ParsedFood:
		out.Items = p.resolveItems(ctx, e.Items)
		for _, it := range out.Items {
			out.TotalCalories += it.Nutrition.Calories
			out.TotalProtein += it.Nutrition.Protein
			out.TotalSugar += it.Nutrition.Sugar
		}
		out.TotalProtein = round1(out.TotalProtein)
		out.TotalSugar = round1(out.TotalSugar)

	case model.ParsedGym:
		out.CaloriesBurned = p.burn.EstimateGym(ctx, e.ExerciseName, e.MuscleGroup, e.Sets, e.Reps, e.WeightKg)

	case model.ParsedCardio:
		out.CaloriesBurned = p.burn.EstimateCardio(ctx, e.ActivityType, e.DurationMinutes)
	}
	return out
}

// resolveItems fans out one resolver call per item and joins them in order.
func (p *Pipeline) resolveItems(ctx context.Context, items []model.ParsedFoodItem) []model.EnrichedFoodItem {
	results := make([]model.EnrichedFoodItem, len(items))
	if len(items) == 1 {
		results[0] = model.EnrichedFoodItem{
			ParsedFoodItem: items[0],
			Nutrition:      p.nutrition.Resolve(ctx, items[0].Name, items[0].QuantityGrams),
		}
		return results
	}

	var wg sync.WaitGroup
	wg.Add(len(items))
	for i := range items {
		go func(idx int) {
			defer wg.Done()
			results[idx] = model.EnrichedFoodItem{
				ParsedFoodItem: items[idx],
				Nutrition:      p.nutrition.Resolve(ctx, items[idx].Name, items[idx].QuantityGrams),
			}
		}(i)
	}
	wg.Wait()

	return results
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
