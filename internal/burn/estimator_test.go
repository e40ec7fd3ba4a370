package burn

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeAsker struct {
	reply  string
	err    error
	calls  int
	prompt string
}

func (f *fakeAsker) Ask(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	return f.reply, f.err
}

func TestCardioFormula(t *testing.T) {
	tests := []struct {
		activity string
		minutes  int
		weight   float64
		want     int
	}{
		{"running", 30, 80, 392},
		{"Running", 30, 80, 392},
		{"walking", 60, 80, 280},
		{"jump rope", 10, 70, 140},
		{"unknown activity", 30, 80, 240},
		{"cycling", 0, 80, 0},
	}
	for _, tt := range tests {
		got := CardioFormula(Cardio{Activity: tt.activity, Minutes: tt.minutes}, tt.weight)
		if got != tt.want {
			t.Errorf("CardioFormula(%s, %d, %v) = %d, want %d", tt.activity, tt.minutes, tt.weight, got, tt.want)
		}
	}
}

func TestGymFormula(t *testing.T) {
	tests := []struct {
		g    Gym
		want int
	}{
		{Gym{Sets: 3, Reps: 10, WeightKg: 60}, 39},
		{Gym{Sets: 3, Reps: 10, WeightKg: 0}, 10},
		{Gym{Sets: 4, Reps: 12, WeightKg: 20}, 31},
		{Gym{Sets: 0, Reps: 10, WeightKg: 100}, 0},
	}
	for _, tt := range tests {
		if got := GymFormula(tt.g); got != tt.want {
			t.Errorf("GymFormula(%+v) = %d, want %d", tt.g, got, tt.want)
		}
	}
}

func TestEstimator_FormulaWithoutAI(t *testing.T) {
	e := NewEstimator(Options{})
	if e.BodyWeightKg() != DefaultBodyWeightKg {
		t.Fatalf("BodyWeightKg = %v, want default", e.BodyWeightKg())
	}
	if got := e.EstimateCardio(context.Background(), "running", 30); got != 392 {
		t.Errorf("EstimateCardio = %d, want 392", got)
	}
	if got := e.EstimateGym(context.Background(), "bench press", "chest", 3, 10, 60); got != 39 {
		t.Errorf("EstimateGym = %d, want 39", got)
	}
}

func TestEstimator_ProfileWeight(t *testing.T) {
	e := NewEstimator(Options{BodyWeightKg: 60})
	if got := e.EstimateCardio(context.Background(), "walking", 60); got != 210 {
		t.Errorf("EstimateCardio = %d, want 210", got)
	}
}

func TestEstimator_MeasuredWeight(t *testing.T) {
	measured := 0.0
	e := NewEstimator(Options{BodyWeightKg: 80, WeightSource: func() float64 { return measured }})

	if got := e.EstimateCardio(context.Background(), "walking", 60); got != 280 {
		t.Errorf("unmeasured = %d, want configured-weight 280", got)
	}
	measured = 60
	if e.BodyWeightKg() != 60 {
		t.Errorf("BodyWeightKg = %v, want measured 60", e.BodyWeightKg())
	}
	if got := e.EstimateCardio(context.Background(), "walking", 60); got != 210 {
		t.Errorf("measured = %d, want 210", got)
	}

	a := &fakeAsker{reply: `{"caloriesBurned": 150}`}
	e = NewEstimator(Options{AI: a, WeightSource: func() float64 { return 55.5 }})
	e.EstimateCardio(context.Background(), "cycling", 20)
	if !strings.Contains(a.prompt, "55.5kg") {
		t.Errorf("AI prompt does not carry the measured weight: %q", a.prompt)
	}
}

func TestEstimator_AITier(t *testing.T) {
	a := &fakeAsker{reply: `{"caloriesBurned": 123.4}`}
	e := NewEstimator(Options{AI: a})
	if got := e.EstimateGym(context.Background(), "squat", "legs", 5, 5, 100); got != 123 {
		t.Errorf("EstimateGym = %d, want AI 123", got)
	}
	if got := e.EstimateCardio(context.Background(), "running", 30); got != 123 {
		t.Errorf("EstimateCardio = %d, want AI 123", got)
	}
	if a.calls != 2 {
		t.Errorf("ai calls = %d, want 2", a.calls)
	}
}

func TestEstimator_AIDeclines(t *testing.T) {
	tests := []struct {
		name  string
		asker *fakeAsker
	}{
		{"error", &fakeAsker{err: errors.New("timeout")}},
		{"zero", &fakeAsker{reply: `{"caloriesBurned": 0}`}},
		{"garbage", &fakeAsker{reply: `lots`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEstimator(Options{AI: tt.asker})
			if got := e.EstimateCardio(context.Background(), "running", 30); got != 392 {
				t.Errorf("EstimateCardio = %d, want formula 392", got)
			}
		})
	}
}

func TestEstimator_NegativeInputs(t *testing.T) {
	e := NewEstimator(Options{BodyWeightKg: -5})
	if got := e.EstimateGym(context.Background(), "x", "", -3, 10, -40); got != 0 {
		t.Errorf("EstimateGym negative = %d, want 0", got)
	}
	if got := e.EstimateCardio(context.Background(), "running", -30); got != 0 {
		t.Errorf("EstimateCardio negative = %d, want 0", got)
	}
}
