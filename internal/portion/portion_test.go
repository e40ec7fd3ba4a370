package portion

import (
	"math"
	"testing"
)

func TestEstimate(t *testing.T) {
	tests := []struct {
		name    string
		qty     float64
		unit    string
		food    string
		grams   float64
		display string
	}{
		{"cheese slices", 2, "slice", "cheese", 40, "2 slices"},
		{"bread slice", 1, "slice", "bread", 35, "1 slice"},
		{"generic slice", 2, "slices", "cake", 60, "2 slices"},
		{"maggi packet", 2, "packet", "maggi", 140, "2 packets"},
		{"maggi pieces", 2, "piece", "maggi", 140, "2 packets"},
		{"eggs", 3, "piece", "eggs", 150, "3 eggs"},
		{"grams passthrough", 10, "gram", "mayonnaise", 10, "10g"},
		{"ml passthrough", 250, "ml", "milk", 250, "250g"},
		{"tablespoon", 2, "tbsp", "peanut butter", 30, "2 tbsps"},
		{"teaspoon", 1, "teaspoon", "honey", 5, "1 teaspoon"},
		{"cup", 1, "cups", "rice", 240, "1 cup"},
		{"pizza slice", 2, "slice", "pizza", 200, "2 slices"},
		{"whole pizza", 1, "piece", "pizza", 300, "1 pizza"},
		{"zinger", 1, "piece", "zinger", 200, "1 burger"},
		{"cheese sandwich", 1, "piece", "cheese sandwich", 150, "1 sandwich"},
		{"generic piece", 2, "piece", "apple", 300, "2 pieces"},
		{"unknown unit restaurant", 1, "bowl", "chicken wrap", 200, "1 piece"},
		{"unknown unit generic", 2, "bowl", "salad", 300, "2 pieces"},
		{"no unit", 1, "", "banana", 150, "1 piece"},
		{"fractional", 0.5, "cup", "milk", 120, "0.5 cup"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Estimate(tt.qty, tt.unit, tt.food)
			if math.Abs(got.Grams-tt.grams) > 1e-9 {
				t.Errorf("Grams = %v, want %v", got.Grams, tt.grams)
			}
			if got.DisplayUnit != tt.display {
				t.Errorf("DisplayUnit = %q, want %q", got.DisplayUnit, tt.display)
			}
		})
	}
}

func TestEstimate_MalformedQuantity(t *testing.T) {
	for _, q := range []float64{-3, math.NaN(), math.Inf(1)} {
		if got := Estimate(q, "slice", "bread"); got.Grams != 0 {
			t.Errorf("Estimate(%v).Grams = %v, want 0", q, got.Grams)
		}
	}
}

func TestEstimate_Deterministic(t *testing.T) {
	a := Estimate(3, "slice", "cheese")
	b := Estimate(3, "slice", "cheese")
	if a != b {
		t.Fatalf("Estimate not deterministic: %+v vs %+v", a, b)
	}
}

func TestIsUnit(t *testing.T) {
	for _, w := range []string{"g", "Grams", "slice", "tsp", "cups", "ml"} {
		if !IsUnit(w) {
			t.Errorf("IsUnit(%q) = false, want true", w)
		}
	}
	for _, w := range []string{"cheese", "", "bowl"} {
		if IsUnit(w) {
			t.Errorf("IsUnit(%q) = true, want false", w)
		}
	}
}
