package parser

import (
	"context"
	"errors"
	"testing"

	"github.com/theirongolddev/selforge/internal/model"
)

func TestParseHeuristic_Classification(t *testing.T) {
	tests := []struct {
		text string
		want model.EntryKind
	}{
		{"", model.KindUnknown},
		{"   \t ", model.KindUnknown},
		{"read a novel", model.KindUnknown},
		{"ran for 30 minutes", model.KindCardio},
		{"3 sets 10 reps bench press 60kg", model.KindGym},
		{"2 maggi 2 cheese slice 10 gram mayonnaise", model.KindFood},
		{"had 2 eggs for breakfast", model.KindFood},
		{"walked 5 km", model.KindCardio},
		{"ate an orange", model.KindFood},
		{"deadlift 5 sets of 5 at 100 kg", model.KindGym},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := ParseHeuristic(tt.text).Kind(); got != tt.want {
				t.Errorf("Kind = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseHeuristic_UnknownSummary(t *testing.T) {
	u, ok := ParseHeuristic("hello there").(model.ParsedUnknown)
	if !ok {
		t.Fatal("expected ParsedUnknown")
	}
	if u.Summary != unknownSummary {
		t.Errorf("Summary = %q", u.Summary)
	}
}

func TestParseHeuristic_Gym(t *testing.T) {
	g, ok := ParseHeuristic("3 sets 10 reps bench press 60kg").(model.ParsedGym)
	if !ok {
		t.Fatal("expected ParsedGym")
	}
	if g.Sets != 3 || g.Reps != 10 || g.WeightKg != 60 {
		t.Errorf("got sets=%d reps=%d weight=%v, want 3/10/60", g.Sets, g.Reps, g.WeightKg)
	}
	if g.ExerciseName != "bench press" || g.MuscleGroup != "chest" {
		t.Errorf("exercise = %q/%q", g.ExerciseName, g.MuscleGroup)
	}
	if got := g.Describe(); got != "bench press: 3 sets × 10 reps @ 60kg" {
		t.Errorf("Describe = %q", got)
	}
}

func TestParseHeuristic_GymDefaults(t *testing.T) {
	g, ok := ParseHeuristic("squat session, 5 heavy").(model.ParsedGym)
	if !ok {
		t.Fatal("expected ParsedGym")
	}
	if g.Sets != 3 || g.Reps != 10 || g.WeightKg != 0 {
		t.Errorf("got %d/%d/%v, want defaults 3/10/0", g.Sets, g.Reps, g.WeightKg)
	}
	if g.ExerciseName != "squat" {
		t.Errorf("ExerciseName = %q", g.ExerciseName)
	}
}

func TestParseHeuristic_Cardio(t *testing.T) {
	tests := []struct {
		text     string
		activity string
		minutes  int
	}{
		{"ran for 30 minutes", "running", 30},
		{"jogging 45 mins", "jogging", 45},
		{"went cycling", "cycling", 30},
		{"swam 1 hour", "swimming", 60},
		{"20 min jump rope cardio", "jump rope", 20},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			c, ok := ParseHeuristic(tt.text).(model.ParsedCardio)
			if !ok {
				t.Fatalf("expected ParsedCardio, got %T", ParseHeuristic(tt.text))
			}
			if c.ActivityType != tt.activity || c.DurationMinutes != tt.minutes {
				t.Errorf("got %s/%d, want %s/%d", c.ActivityType, c.DurationMinutes, tt.activity, tt.minutes)
			}
		})
	}
}

func TestParseHeuristic_MultiItemFood(t *testing.T) {
	f, ok := ParseHeuristic("2 maggi 2 cheese slice 10 gram mayonnaise").(model.ParsedFood)
	if !ok {
		t.Fatal("expected ParsedFood")
	}
	want := []struct {
		name  string
		grams float64
	}{
		{"maggi", 140},
		{"cheese", 40},
		{"mayonnaise", 10},
	}
	if len(f.Items) != len(want) {
		t.Fatalf("got %d items, want %d: %+v", len(f.Items), len(want), f.Items)
	}
	for i, w := range want {
		if f.Items[i].Name != w.name || f.Items[i].QuantityGrams != w.grams {
			t.Errorf("item %d = %s %vg, want %s %vg", i, f.Items[i].Name, f.Items[i].QuantityGrams, w.name, w.grams)
		}
	}
	if f.Items[2].DisplayQuantity != "10g" {
		t.Errorf("DisplayQuantity = %q, want 10g", f.Items[2].DisplayQuantity)
	}
}

func TestParseHeuristic_FoodGroups(t *testing.T) {
	tests := []struct {
		text  string
		names []string
		grams []float64
	}{
		{"ate 3 eggs and 2 slices of bread", []string{"eggs", "bread"}, []float64{150, 70}},
		{"had 200 g chicken breast for lunch", []string{"chicken breast"}, []float64{200}},
		{"breakfast: 1 cup milk, 7 am", []string{"milk"}, []float64{240}},
		{"lunch was 2 roti", []string{"roti"}, []float64{300}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			f, ok := ParseHeuristic(tt.text).(model.ParsedFood)
			if !ok {
				t.Fatalf("expected ParsedFood, got %T", ParseHeuristic(tt.text))
			}
			if len(f.Items) != len(tt.names) {
				t.Fatalf("items = %+v, want %v", f.Items, tt.names)
			}
			for i := range tt.names {
				if f.Items[i].Name != tt.names[i] || f.Items[i].QuantityGrams != tt.grams[i] {
					t.Errorf("item %d = %s %v, want %s %v", i, f.Items[i].Name, f.Items[i].QuantityGrams, tt.names[i], tt.grams[i])
				}
			}
		})
	}
}

func TestParseHeuristic_FoodFallback(t *testing.T) {
	f, ok := ParseHeuristic("had some rice for dinner").(model.ParsedFood)
	if !ok {
		t.Fatal("expected ParsedFood")
	}
	if len(f.Items) != 1 || f.Items[0].Name != "rice" || f.Items[0].QuantityGrams != 100 {
		t.Fatalf("fallback item = %+v, want rice 100g", f.Items)
	}

	f, ok = ParseHeuristic("ate lunch").(model.ParsedFood)
	if !ok {
		t.Fatal("expected ParsedFood")
	}
	if len(f.Items) != 1 || f.Items[0].QuantityGrams != 100 {
		t.Fatalf("fallback item = %+v, want 100g default", f.Items)
	}
}

func TestParseHeuristic_IgnoresBareNumbers(t *testing.T) {
	f, ok := ParseHeuristic("ate 2 apples at 9 then 3 bananas").(model.ParsedFood)
	if !ok {
		t.Fatal("expected ParsedFood")
	}
	if len(f.Items) != 2 {
		t.Fatalf("items = %+v, want apples and bananas only", f.Items)
	}
}

type stubAsker struct {
	reply string
	err   error
	calls int
}

func (s *stubAsker) Ask(context.Context, string) (string, error) {
	s.calls++
	return s.reply, s.err
}

func TestParse_AIFirst(t *testing.T) {
	a := &stubAsker{reply: `{"type":"cardio","activityType":"Rowing","duration":"25"}`}
	p := New(a, nil)

	c, ok := p.Parse(context.Background(), "did some erg work").(model.ParsedCardio)
	if !ok {
		t.Fatal("expected ParsedCardio from AI")
	}
	if c.ActivityType != "rowing" || c.DurationMinutes != 25 {
		t.Errorf("got %+v", c)
	}
}

func TestParse_AIFoodItems(t *testing.T) {
	a := &stubAsker{reply: "```json\n{\"type\":\"food\",\"items\":[{\"name\":\"Dosa\",\"quantity\":150},{\"name\":\"\",\"quantity\":10}]}\n```"}
	f, ok := New(a, nil).Parse(context.Background(), "dosa").(model.ParsedFood)
	if !ok {
		t.Fatal("expected ParsedFood")
	}
	if len(f.Items) != 1 || f.Items[0].Name != "dosa" || f.Items[0].QuantityGrams != 150 {
		t.Fatalf("items = %+v", f.Items)
	}
}

func TestParse_AIDeclines(t *testing.T) {
	tests := []struct {
		name  string
		asker *stubAsker
	}{
		{"error", &stubAsker{err: errors.New("network down")}},
		{"unknown", &stubAsker{reply: `{"type":"unknown","summary":"?"}`}},
		{"not json", &stubAsker{reply: "I think this is cardio"}},
		{"missing fields", &stubAsker{reply: `{"type":"gym","exerciseName":"squat"}`}},
		{"empty food", &stubAsker{reply: `{"type":"food","items":[]}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.asker, nil).Parse(context.Background(), "ran for 30 minutes")
			c, ok := got.(model.ParsedCardio)
			if !ok || c.DurationMinutes != 30 {
				t.Fatalf("got %#v, want heuristic cardio", got)
			}
			if tt.asker.calls != 1 {
				t.Errorf("asker calls = %d, want 1", tt.asker.calls)
			}
		})
	}
}

func TestParse_BlankSkipsAI(t *testing.T) {
	a := &stubAsker{reply: `{"type":"gym"}`}
	if got := New(a, nil).Parse(context.Background(), "  "); got.Kind() != model.KindUnknown {
		t.Fatalf("Kind = %s, want unknown", got.Kind())
	}
	if a.calls != 0 {
		t.Fatal("AI called for blank input")
	}
}

func FuzzParseHeuristic(f *testing.F) {
	seeds := []string{
		"",
		"2 maggi 2 cheese slice 10 gram mayonnaise",
		"3 sets 10 reps bench press 60kg",
		"ran for 30 minutes",
		"1.5.5 cups 99999999999999999999 eggs",
		"0 g of nothing",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, text string) {
		entry := ParseHeuristic(text)
		if entry == nil {
			t.Fatal("nil entry")
		}
		if food, ok := entry.(model.ParsedFood); ok && len(food.Items) == 0 {
			t.Fatal("food entry with no items")
		}
	})
}
