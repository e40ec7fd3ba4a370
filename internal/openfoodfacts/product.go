package openfoodfacts

import (
	"math"
	"strconv"
	"strings"
)

// Product is the subset of an Open Food Facts search hit we read.
type Product struct {
	Code        string         `json:"code"`
	ProductName string         `json:"product_name"`
	Brands      string         `json:"brands"`
	Nutriments  map[string]any `json:"nutriments"`
}

type searchResponse struct {
	Count    int       `json:"count"`
	Products []Product `json:"products"`
}

// Kcal100g returns kcal per 100 g, preferring energy-kcal_100g and falling
// back to energy-kj_100g / 4.184. ok is false when missing or implausible.
func (p Product) Kcal100g() (float64, bool) {
	if v, ok := nutriment(p.Nutriments, "energy-kcal_100g", 0, 1000); ok {
		return v, true
	}
	if v, ok := nutriment(p.Nutriments, "energy-kj_100g", 0, 4184); ok {
		return v / 4.184, true
	}
	return 0, false
}

// Protein100g returns protein grams per 100 g, or 0 when missing.
func (p Product) Protein100g() float64 {
	v, _ := nutriment(p.Nutriments, "proteins_100g", 0, 100)
	return v
}

// Sugar100g returns sugar grams per 100 g, or 0 when missing.
func (p Product) Sugar100g() float64 {
	v, _ := nutriment(p.Nutriments, "sugars_100g", 0, 100)
	return v
}

// Brand returns the first listed brand.
func (p Product) Brand() string {
	b, _, _ := strings.Cut(p.Brands, ",")
	return strings.TrimSpace(b)
}

// nutriment coerces a nutriments value (number or numeric string) to float64
// and rejects values outside [lo, hi].
func nutriment(m map[string]any, key string, lo, hi float64) (float64, bool) {
	raw, ok := m[key]
	if !ok {
		return 0, false
	}
	var v float64
	switch x := raw.(type) {
	case float64:
		v = x
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		v = f
	default:
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < lo || v > hi {
		return 0, false
	}
	return v, true
}
