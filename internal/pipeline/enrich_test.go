package pipeline

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/theirongolddev/selforge/internal/model"
)

type fixedResolver struct {
	per100 map[string]model.NutritionRecord
	delay  time.Duration
	active atomic.Int32
	peak   atomic.Int32
}

func (r *fixedResolver) Resolve(_ context.Context, name string, grams float64) model.NutritionRecord {
	n := r.active.Add(1)
	defer r.active.Add(-1)
	for {
		p := r.peak.Load()
		if n <= p || r.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	v := r.per100[name]
	return model.NutritionRecord{
		Calories: int(float64(v.Calories) * grams / 100),
		Protein:  v.Protein * grams / 100,
		Sugar:    v.Sugar * grams / 100,
		Source:   model.TierGeneral,
	}
}

type fixedBurn struct {
	gym, cardio int
}

func (b fixedBurn) EstimateGym(context.Context, string, string, int, int, float64) int { return b.gym }
func (b fixedBurn) EstimateCardio(context.Context, string, int) int                    { return b.cardio }

func foodEntry(t *testing.T, items ...model.ParsedFoodItem) model.ParsedFood {
	t.Helper()
	f, err := model.NewParsedFood(items)
	if err != nil {
		t.Fatalf("NewParsedFood: %v", err)
	}
	return f
}

func TestEnrich_FoodTotalsAreItemSums(t *testing.T) {
	r := &fixedResolver{per100: map[string]model.NutritionRecord{
		"maggi":      {Calories: 400, Protein: 10, Sugar: 2},
		"cheese":     {Calories: 300, Protein: 25, Sugar: 1},
		"mayonnaise": {Calories: 700, Protein: 1, Sugar: 3},
	}}
	p := New(r, fixedBurn{})

	entry := foodEntry(t,
		model.ParsedFoodItem{Name: "maggi", QuantityGrams: 140, DisplayQuantity: "2 packets"},
		model.ParsedFoodItem{Name: "cheese", QuantityGrams: 40, DisplayQuantity: "2 slices"},
		model.ParsedFoodItem{Name: "mayonnaise", QuantityGrams: 10, DisplayQuantity: "10g"},
	)
	got := p.Enrich(context.Background(), entry)

	if got.Kind != model.KindFood {
		t.Fatalf("Kind = %s, want food", got.Kind)
	}
	if len(got.Items) != 3 {
		t.Fatalf("got %d items, want 3", len(got.Items))
	}
	var cal int
	var protein float64
	for i, it := range got.Items {
		if it.Name != entry.Items[i].Name {
			t.Errorf("item %d = %s, want %s (order must be preserved)", i, it.Name, entry.Items[i].Name)
		}
		cal += it.Nutrition.Calories
		protein += it.Nutrition.Protein
	}
	if got.TotalCalories != cal {
		t.Errorf("TotalCalories = %d, want sum %d", got.TotalCalories, cal)
	}
	if got.TotalCalories != 560+120+70 {
		t.Errorf("TotalCalories = %d, want 750", got.TotalCalories)
	}
	if got.TotalProtein != round1(protein) {
		t.Errorf("TotalProtein = %v, want %v", got.TotalProtein, round1(protein))
	}
}

func TestEnrich_FoodItemsResolveConcurrently(t *testing.T) {
	r := &fixedResolver{delay: 20 * time.Millisecond}
	p := New(r, fixedBurn{})

	var items []model.ParsedFoodItem
	for _, name := range []string{"a", "b", "c", "d"} {
		items = append(items, model.ParsedFoodItem{Name: name, QuantityGrams: 100})
	}
	p.Enrich(context.Background(), foodEntry(t, items...))

	if r.peak.Load() < 2 {
		t.Fatalf("peak concurrent resolves = %d, want > 1", r.peak.Load())
	}
}

func TestEnrich_Activities(t *testing.T) {
	p := New(&fixedResolver{}, fixedBurn{gym: 39, cardio: 392})

	gym := p.Enrich(context.Background(), model.ParsedGym{ExerciseName: "bench press", Sets: 3, Reps: 10, WeightKg: 60})
	if gym.Kind != model.KindGym || gym.CaloriesBurned != 39 {
		t.Errorf("gym = %s/%d, want gym/39", gym.Kind, gym.CaloriesBurned)
	}

	cardio := p.Enrich(context.Background(), model.ParsedCardio{ActivityType: "running", DurationMinutes: 30})
	if cardio.Kind != model.KindCardio || cardio.CaloriesBurned != 392 {
		t.Errorf("cardio = %s/%d, want cardio/392", cardio.Kind, cardio.CaloriesBurned)
	}
	if cardio.Summary != "running for 30 minutes" {
		t.Errorf("Summary = %q", cardio.Summary)
	}
}

func TestEnrich_UnknownPassesThrough(t *testing.T) {
	r := &fixedResolver{}
	p := New(r, fixedBurn{gym: 1, cardio: 1})

	got := p.Enrich(context.Background(), model.ParsedUnknown{Summary: "no idea"})
	if got.Kind != model.KindUnknown || got.Summary != "no idea" {
		t.Fatalf("got %+v", got)
	}
	if got.TotalCalories != 0 || got.CaloriesBurned != 0 || len(got.Items) != 0 {
		t.Fatalf("unknown entry was enriched: %+v", got)
	}

	if got := p.Enrich(context.Background(), nil); got.Kind != model.KindUnknown {
		t.Fatalf("nil entry Kind = %s", got.Kind)
	}
}
