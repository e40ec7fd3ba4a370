// Package portion converts a quantity and unit for a named food into grams.
package portion

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Portion is the result of normalizing a quantity.
type Portion struct {
	Grams       float64
	DisplayUnit string
}

type unitSize struct {
	grams float64
	desc  string
}

// massUnits pass through unchanged: 1 ml is treated as 1 g.
var massUnits = map[string]bool{
	"g": true, "gram": true, "grams": true,
	"ml": true, "milliliter": true, "milliliters": true,
}

var defaultUnits = map[string]unitSize{
	"slice":       {30, "slice"},
	"slices":      {30, "slice"},
	"packet":      {70, "packet"},
	"packets":     {70, "packet"},
	"tablespoon":  {15, "tablespoon"},
	"tablespoons": {15, "tablespoon"},
	"tbsp":        {15, "tbsp"},
	"teaspoon":    {5, "teaspoon"},
	"teaspoons":   {5, "teaspoon"},
	"tsp":         {5, "tsp"},
	"cup":         {240, "cup"},
	"cups":        {240, "cup"},
	"serving":     {100, "serving"},
	"servings":    {100, "serving"},
	"piece":       {150, "piece"},
	"pieces":      {150, "piece"},
}

// foodOverride maps a food category to unit sizes that replace the defaults.
type foodOverride struct {
	category string
	units    map[string]unitSize
}

// foodOverrides is ordered so that dishes win over their ingredients
// ("cheese sandwich" is a sandwich).
var foodOverrides = []foodOverride{
	{"burger", map[string]unitSize{"piece": {200, "burger"}}},
	{"zinger", map[string]unitSize{"piece": {200, "burger"}}},
	{"sandwich", map[string]unitSize{"piece": {150, "sandwich"}}},
	{"pizza", map[string]unitSize{"slice": {100, "slice"}, "piece": {300, "pizza"}}},
	{"wrap", map[string]unitSize{"piece": {180, "wrap"}}},
	{"roll", map[string]unitSize{"piece": {120, "roll"}}},
	{"cheese", map[string]unitSize{"slice": {20, "slice"}, "piece": {20, "slice"}}},
	{"bread", map[string]unitSize{"slice": {35, "slice"}, "piece": {35, "slice"}}},
	{"maggi", map[string]unitSize{"packet": {70, "packet"}, "piece": {70, "packet"}}},
	{"egg", map[string]unitSize{"piece": {50, "egg"}}},
}

// restaurantItems get a larger per-piece default when no unit matches.
var restaurantItems = []string{"burger", "sandwich", "zinger", "pizza", "wrap", "roll"}

const (
	restaurantPieceGrams = 200
	genericPieceGrams    = 150
)

// Estimate returns the grams for quantity of unit of foodName, plus a
// display string such as "2 slices". It never fails; a non-positive or
// non-finite quantity yields zero grams.
func Estimate(quantity float64, unit, foodName string) Portion {
	if math.IsNaN(quantity) || math.IsInf(quantity, 0) || quantity < 0 {
		quantity = 0
	}
	u := strings.ToLower(strings.TrimSpace(unit))
	food := strings.ToLower(strings.TrimSpace(foodName))

	if massUnits[u] {
		return Portion{Grams: quantity, DisplayUnit: formatQty(quantity) + "g"}
	}

	singular := singularUnit(u)
	for _, o := range foodOverrides {
		if !strings.Contains(food, o.category) {
			continue
		}
		if size, ok := o.units[singular]; ok {
			return Portion{Grams: quantity * size.grams, DisplayUnit: display(quantity, size.desc)}
		}
	}

	if size, ok := defaultUnits[u]; ok {
		return Portion{Grams: quantity * size.grams, DisplayUnit: display(quantity, size.desc)}
	}

	perPiece := float64(genericPieceGrams)
	for _, r := range restaurantItems {
		if strings.Contains(food, r) {
			perPiece = restaurantPieceGrams
			break
		}
	}
	return Portion{Grams: quantity * perPiece, DisplayUnit: display(quantity, "piece")}
}

// IsUnit reports whether word is a recognized portion unit.
func IsUnit(word string) bool {
	w := strings.ToLower(word)
	if massUnits[w] {
		return true
	}
	_, ok := defaultUnits[w]
	return ok
}

func singularUnit(u string) string {
	if size, ok := defaultUnits[u]; ok {
		switch size.desc {
		case "tbsp":
			return "tablespoon"
		case "tsp":
			return "teaspoon"
		}
		return size.desc
	}
	return u
}

func display(q float64, desc string) string {
	s := fmt.Sprintf("%s %s", formatQty(q), desc)
	if q > 1 {
		s += "s"
	}
	return s
}

func formatQty(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
