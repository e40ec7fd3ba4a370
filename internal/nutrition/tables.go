package nutrition

import (
	"sort"
	"strings"
)

// Per100g is the nutrition of 100 g of a food.
type Per100g struct {
	Calories float64
	Protein  float64
	Sugar    float64
}

// Table is a static per-100g nutrition table.
type Table struct {
	name    string
	entries map[string]Per100g
	byLen   []string // keys, longest first
}

// NewTable builds a table from name -> per-100g values.
func NewTable(name string, entries map[string]Per100g) *Table {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return &Table{name: name, entries: entries, byLen: keys}
}

// minReverseMatch is the shortest query allowed to match inside a longer key.
const minReverseMatch = 3

// Lookup matches foodName exactly, then by substring in either direction.
// Longer keys win ties so "chicken breast" beats "chicken".
func (t *Table) Lookup(foodName string) (Per100g, string, bool) {
	name := strings.ToLower(strings.TrimSpace(foodName))
	if name == "" {
		return Per100g{}, "", false
	}
	if v, ok := t.entries[name]; ok {
		return v, name, true
	}
	for _, k := range t.byLen {
		if strings.Contains(name, k) {
			return t.entries[k], k, true
		}
	}
	if len(name) < minReverseMatch {
		return Per100g{}, "", false
	}
	for _, k := range t.byLen {
		if strings.Contains(k, name) {
			return t.entries[k], k, true
		}
	}
	return Per100g{}, "", false
}

// Name identifies the table in logs.
func (t *Table) Name() string { return t.name }

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.entries) }

// RegionTable holds Indian staples and brands.
var RegionTable = NewTable("region", map[string]Per100g{
	"amul milk":         {60, 3.2, 4.8},
	"mother dairy milk": {62, 3.3, 4.9},
	"amul butter":       {717, 0.5, 0.5},
	"amul cheese":       {348, 25, 2.2},
	"paneer":            {265, 18, 1.2},
	"roti":              {297, 11, 1.5},
	"chapati":           {297, 11, 1.5},
	"naan":              {310, 9, 5},
	"paratha":           {320, 6, 2},
	"dal":               {116, 9, 1},
	"rice":              {130, 2.7, 0.1},
	"biryani":           {170, 6, 2},
	"samosa":            {262, 5, 3},
	"pakora":            {250, 6, 2},
	"idli":              {156, 4, 1},
	"dosa":              {168, 4, 1.5},
	"vada":              {230, 5, 2},
	"upma":              {150, 4, 1},
	"poha":              {130, 3, 1},
	"maggi":             {400, 10, 3},
	"parle-g":           {462, 7, 25},
})

// GeneralTable holds common generic foods.
var GeneralTable = NewTable("general", map[string]Per100g{
	"chicken breast":    {165, 31, 0},
	"chicken":           {165, 31, 0},
	"beef":              {250, 26, 0},
	"pork":              {242, 27, 0},
	"fish":              {206, 22, 0},
	"salmon":            {208, 20, 0},
	"tuna":              {132, 28, 0},
	"egg":               {155, 13, 1.1},
	"eggs":              {155, 13, 1.1},
	"tofu":              {76, 8, 0.6},
	"white rice":        {130, 2.7, 0.1},
	"brown rice":        {111, 2.6, 0.4},
	"pasta":             {131, 5, 0.6},
	"bread":             {265, 9, 5},
	"white bread":       {265, 9, 5},
	"whole wheat bread": {247, 13, 6},
	"oats":              {389, 17, 1},
	"potato":            {77, 2, 0.8},
	"sweet potato":      {86, 1.6, 4.2},
	"apple":             {52, 0.3, 10.4},
	"banana":            {89, 1.1, 12.2},
	"orange":            {47, 0.9, 9.4},
	"strawberry":        {32, 0.7, 4.9},
	"strawberries":      {32, 0.7, 4.9},
	"grapes":            {69, 0.7, 15.5},
	"watermelon":        {30, 0.6, 6.2},
	"mango":             {60, 0.8, 13.7},
	"broccoli":          {34, 2.8, 1.7},
	"spinach":           {23, 2.9, 0.4},
	"carrot":            {41, 0.9, 4.7},
	"tomato":            {18, 0.9, 2.6},
	"onion":             {40, 1.1, 4.2},
	"lettuce":           {15, 1.4, 0.8},
	"cucumber":          {16, 0.7, 1.7},
	"milk":              {61, 3.2, 5.1},
	"whole milk":        {61, 3.2, 5.1},
	"skim milk":         {34, 3.4, 5},
	"yogurt":            {59, 10, 3.2},
	"greek yogurt":      {59, 10, 3.2},
	"cheese":            {402, 25, 1.3},
	"cheddar cheese":    {402, 25, 1.3},
	"peanut butter":     {588, 25, 9},
	"almonds":           {579, 21, 4.4},
	"cashew":            {553, 18, 5.9},
	"walnuts":           {654, 15, 2.6},
	"chocolate":         {546, 5, 48},
	"dark chocolate":    {546, 5, 24},
	"honey":             {304, 0.3, 82},
	"olive oil":         {884, 0, 0},
	"butter":            {717, 0.9, 0.1},
	"ghee":              {897, 0, 0},
	"pizza":             {266, 11, 3.6},
	"burger":            {295, 17, 7},
	"sandwich":          {250, 10, 5},
	"mayonnaise":        {680, 1, 0.6},
	"ketchup":           {112, 1.2, 22.8},
})
