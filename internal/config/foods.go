package config

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// FoodOverrides allows user-defined per-100g nutrition for specific foods.
type FoodOverrides struct {
	Overrides map[string]FoodOverride `toml:"overrides,omitempty"`
}

// FoodOverride holds per-100g values. Unset fields are zero.
type FoodOverride struct {
	CaloriesPer100g *float64 `toml:"calories_per_100g,omitempty"`
	ProteinPer100g  *float64 `toml:"protein_per_100g,omitempty"`
	SugarPer100g    *float64 `toml:"sugar_per_100g,omitempty"`
}

// FoodValues is a validated override.
type FoodValues struct {
	Calories float64
	Protein  float64
	Sugar    float64
}

// Foods returns the validated overrides keyed by lowercase name. Entries
// without calories, or with negative or non-finite values, are reported in
// skipped and left out.
func Foods(cfg Config) (foods map[string]FoodValues, skipped []string) {
	foods = make(map[string]FoodValues, len(cfg.Foods.Overrides))
	for name, o := range cfg.Foods.Overrides {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		v, err := o.values()
		if err != nil {
			skipped = append(skipped, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		foods[key] = v
	}
	sort.Strings(skipped)
	return foods, skipped
}

func (o FoodOverride) values() (FoodValues, error) {
	if o.CaloriesPer100g == nil {
		return FoodValues{}, fmt.Errorf("calories_per_100g is required")
	}
	v := FoodValues{
		Calories: *o.CaloriesPer100g,
		Protein:  deref(o.ProteinPer100g),
		Sugar:    deref(o.SugarPer100g),
	}
	for _, f := range []float64{v.Calories, v.Protein, v.Sugar} {
		if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			return FoodValues{}, fmt.Errorf("values must be finite and non-negative")
		}
	}
	return v, nil
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
