package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/theirongolddev/selforge/internal/model"
	"github.com/theirongolddev/selforge/internal/portion"
)

var (
	tokenRe  = regexp.MustCompile(`\d+(?:\.\d+)?|[a-z][a-z'-]*`)
	numberRe = regexp.MustCompile(`^\d+(?:\.\d+)?$`)

	foodVocab   = vocab(foodSignals, foodKeywords)
	gymVocab    = vocab(gymSignals)
	cardioVocab = vocab(cardioSignals, keys(cardioAliases))
)

// ParseHeuristic classifies text with keyword scores and extracts fields
// for the winning category. It never fails; unclassifiable text yields
// model.ParsedUnknown.
func ParseHeuristic(text string) model.ParsedEntry {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return model.ParsedUnknown{Summary: unknownSummary}
	}

	food := score(tokens, foodVocab)
	gym := score(tokens, gymVocab)
	cardio := score(tokens, cardioVocab)

	switch {
	case food > gym && food > cardio:
		return extractFood(tokens)
	case gym > cardio:
		return extractGym(tokens)
	case cardio > 0:
		return extractCardio(tokens)
	}
	return model.ParsedUnknown{Summary: unknownSummary}
}

// Classify returns the winning kind without extracting fields.
func Classify(text string) model.EntryKind {
	return ParseHeuristic(text).Kind()
}

func tokenize(text string) []string {
	return tokenRe.FindAllString(strings.ToLower(text), -1)
}

func isNumber(tok string) bool { return numberRe.MatchString(tok) }

func parseNumber(tok string) float64 {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0
	}
	return v
}

func vocab(lists ...[]string) map[string]bool {
	m := make(map[string]bool)
	for _, l := range lists {
		for _, w := range l {
			m[w] = true
		}
	}
	return m
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// stem returns the keyword a token matches in v, allowing a plural suffix.
func stem(tok string, v map[string]bool) (string, bool) {
	if v[tok] {
		return tok, true
	}
	for _, suffix := range []string{"es", "s"} {
		if base, ok := strings.CutSuffix(tok, suffix); ok && base != "" && v[base] {
			return base, true
		}
	}
	return "", false
}

// score counts distinct keywords present in tokens.
func score(tokens []string, v map[string]bool) int {
	seen := make(map[string]bool)
	for _, t := range tokens {
		if k, ok := stem(t, v); ok {
			seen[k] = true
		}
	}
	return len(seen)
}

var foodKeywordSet = vocab(foodKeywords)

func isFoodWord(tok string) bool {
	_, ok := stem(tok, foodKeywordSet)
	return ok
}

// extractFood scans for "number [unit] name" groups. A group is kept only
// when a unit or a food keyword was recognized.
func extractFood(tokens []string) model.ParsedEntry {
	var items []model.ParsedFoodItem

	for i := 0; i < len(tokens); {
		if !isNumber(tokens[i]) {
			i++
			continue
		}
		qty := parseNumber(tokens[i])
		i++

		unit := ""
		if i < len(tokens) && portion.IsUnit(tokens[i]) {
			unit = tokens[i]
			i++
		}
		for i < len(tokens) && fillerWords[tokens[i]] {
			i++
		}

		var words []string
		hasKeyword := false
		for len(words) < 3 && i < len(tokens) && !isNumber(tokens[i]) {
			words = append(words, tokens[i])
			i++
			if isFoodWord(words[len(words)-1]) {
				hasKeyword = true
				if i < len(tokens) && compoundFoods[words[len(words)-1]+" "+tokens[i]] {
					words = append(words, tokens[i])
					i++
				}
				break
			}
		}
		// "2 cheese slice": a trailing unit after the name.
		if unit == "" && i < len(tokens) && portion.IsUnit(tokens[i]) {
			unit = tokens[i]
			i++
		}

		if len(words) == 0 || (unit == "" && !hasKeyword) {
			continue
		}
		items = append(items, foodItem(qty, unit, strings.Join(words, " ")))
	}

	if len(items) == 0 {
		items = append(items, fallbackFoodItem(tokens))
	}

	food, err := model.NewParsedFood(items)
	if err != nil {
		return model.ParsedUnknown{Summary: unknownSummary}
	}
	return food
}

func foodItem(qty float64, unit, name string) model.ParsedFoodItem {
	u := unit
	if u == "" {
		u = "piece"
	}
	p := portion.Estimate(qty, u, name)

	orig := formatNumber(qty)
	if unit != "" {
		orig += " " + unit
	}
	return model.ParsedFoodItem{
		Name:            name,
		QuantityGrams:   p.Grams,
		DisplayQuantity: p.DisplayUnit,
		OriginalText:    orig + " " + name,
	}
}

// fallbackFoodItem finds the earliest food keyword and the nearest number
// before it. Without any number the portion defaults to 100 g.
func fallbackFoodItem(tokens []string) model.ParsedFoodItem {
	name := ""
	at := -1
	for i, t := range tokens {
		if isFoodWord(t) {
			name, at = t, i
			if i+1 < len(tokens) && compoundFoods[t+" "+tokens[i+1]] {
				name = t + " " + tokens[i+1]
			}
			break
		}
	}
	if at < 0 {
		for _, f := range fallbackFoods {
			for i, t := range tokens {
				if strings.Contains(t, f) {
					name, at = f, i
					break
				}
			}
			if at >= 0 {
				break
			}
		}
	}
	if at < 0 {
		name, at = "unknown food", len(tokens)
	}

	for j := at - 1; j >= 0; j-- {
		if !isNumber(tokens[j]) {
			continue
		}
		unit := ""
		if j+1 < at && portion.IsUnit(tokens[j+1]) {
			unit = tokens[j+1]
		}
		return foodItem(parseNumber(tokens[j]), unit, name)
	}

	return model.ParsedFoodItem{
		Name:            name,
		QuantityGrams:   defaultGrams,
		DisplayQuantity: formatNumber(defaultGrams) + "g",
		OriginalText:    name,
	}
}

func extractGym(tokens []string) model.ParsedEntry {
	g := model.ParsedGym{
		ExerciseName: unknownExercise,
		Sets:         defaultSets,
		Reps:         defaultReps,
	}

	for _, ex := range exercises {
		if containsRun(tokens, ex.tokens) {
			g.ExerciseName = ex.name
			g.MuscleGroup = ex.muscle
			break
		}
	}

	nums := numbers(tokens)
	if len(nums) >= 2 {
		g.Sets = int(nums[0])
		g.Reps = int(nums[1])
		if len(nums) >= 3 {
			g.WeightKg = nums[2]
		}
	}
	return g
}

func extractCardio(tokens []string) model.ParsedEntry {
	c := model.ParsedCardio{ActivityType: unknownActivity, DurationMinutes: defaultDuration}

	found := false
	for i := 0; i+1 < len(tokens) && !found; i++ {
		if a, ok := cardioPhrases[tokens[i]+" "+tokens[i+1]]; ok {
			c.ActivityType, found = a, true
		}
	}
	for _, t := range tokens {
		if found {
			break
		}
		if a, ok := cardioAliases[t]; ok {
			c.ActivityType, found = a, true
		}
	}

	for i, t := range tokens {
		if !isNumber(t) {
			continue
		}
		d := parseNumber(t)
		if i+1 < len(tokens) && hourUnits[tokens[i+1]] {
			d *= 60
		}
		if d > 0 {
			c.DurationMinutes = int(d)
		}
		break
	}
	return c
}

// containsRun reports whether run appears as consecutive tokens, allowing
// plural forms.
func containsRun(tokens, run []string) bool {
	for i := 0; i+len(run) <= len(tokens); i++ {
		match := true
		for j, w := range run {
			if !sameWord(tokens[i+j], w) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func sameWord(tok, w string) bool {
	return tok == w || tok == w+"s" || tok == w+"es"
}

func numbers(tokens []string) []float64 {
	var out []float64
	for _, t := range tokens {
		if isNumber(t) {
			out = append(out, parseNumber(t))
		}
	}
	return out
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
