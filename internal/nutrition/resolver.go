// Package nutrition resolves calories, protein and sugar for a food and
// gram quantity through an ordered set of tiers.
package nutrition

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/theirongolddev/selforge/internal/ai"
	"github.com/theirongolddev/selforge/internal/fallback"
	"github.com/theirongolddev/selforge/internal/model"
	"github.com/theirongolddev/selforge/internal/openfoodfacts"
)

// OnlineLookup is a best-effort public food database.
type OnlineLookup interface {
	Lookup(ctx context.Context, foodName string, quantityGrams float64) (openfoodfacts.Nutrition, error)
}

// Request is the input to every tier.
type Request struct {
	Food  string
	Grams float64
}

// Options configures a Resolver. Nil Online or AI disables that tier.
// Custom holds user-defined foods; they are checked first and reported as
// region values.
type Options struct {
	Custom      map[string]Per100g
	Online      OnlineLookup
	AI          ai.Asker
	TierTimeout time.Duration
	Logger      *log.Logger
}

// Resolver runs the tier chain. It is safe for concurrent use.
type Resolver struct {
	chain *fallback.Chain[Request, model.NutritionRecord]
}

// NewResolver builds the chain custom → online → region → general → ai →
// default.
func NewResolver(opts Options) *Resolver {
	var tiers []fallback.Strategy[Request, model.NutritionRecord]
	if len(opts.Custom) > 0 {
		tiers = append(tiers, tableTier{tier: model.TierRegion, table: NewTable("custom", opts.Custom)})
	}
	if opts.Online != nil {
		tiers = append(tiers, onlineTier{opts.Online})
	}
	tiers = append(tiers,
		tableTier{tier: model.TierRegion, table: RegionTable},
		tableTier{tier: model.TierGeneral, table: GeneralTable},
	)
	if opts.AI != nil {
		tiers = append(tiers, aiTier{opts.AI})
	}

	return &Resolver{
		chain: fallback.New(Default, tiers,
			fallback.WithTimeout(opts.TierTimeout),
			fallback.WithLogger(opts.Logger),
		),
	}
}

// Resolve never fails: the default tier always answers. Non-finite or
// negative grams are treated as zero. A done ctx skips the online and AI
// tiers but still consults the static tables.
func (r *Resolver) Resolve(ctx context.Context, foodName string, quantityGrams float64) model.NutritionRecord {
	if math.IsNaN(quantityGrams) || math.IsInf(quantityGrams, 0) || quantityGrams < 0 {
		quantityGrams = 0
	}
	rec, _ := r.chain.Run(ctx, Request{Food: foodName, Grams: quantityGrams})
	return rec
}

// Tiers names the active tiers in order, excluding the default.
func (r *Resolver) Tiers() []string { return r.chain.Names() }

// Default is the terminal tier.
func Default(req Request) model.NutritionRecord {
	return model.NutritionRecord{
		Calories: int(math.Round(req.Grams * 1.5)),
		Protein:  math.Round(req.Grams * 0.1),
		Sugar:    math.Round(req.Grams * 0.05),
		Source:   model.TierDefault,
	}
}

// Scale converts a per-100g value to a record for grams.
func Scale(v Per100g, grams float64, tier model.SourceTier) model.NutritionRecord {
	return model.NutritionRecord{
		Calories: int(math.Round(v.Calories * grams / 100)),
		Protein:  round1(v.Protein * grams / 100),
		Sugar:    round1(v.Sugar * grams / 100),
		Source:   tier,
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

type tableTier struct {
	tier  model.SourceTier
	table *Table
}

func (t tableTier) Name() string { return t.table.Name() }

func (tableTier) Local() bool { return true }

func (t tableTier) Attempt(_ context.Context, req Request) (model.NutritionRecord, error) {
	v, _, ok := t.table.Lookup(req.Food)
	if !ok {
		return model.NutritionRecord{}, fallback.ErrDeclined
	}
	return Scale(v, req.Grams, t.tier), nil
}

type onlineTier struct {
	client OnlineLookup
}

func (onlineTier) Name() string { return string(model.TierOnline) }

func (t onlineTier) Attempt(ctx context.Context, req Request) (model.NutritionRecord, error) {
	n, err := t.client.Lookup(ctx, req.Food, req.Grams)
	if err != nil {
		return model.NutritionRecord{}, err
	}
	if n.Calories <= 0 {
		return model.NutritionRecord{}, fallback.ErrDeclined
	}
	return model.NutritionRecord{
		Calories: n.Calories,
		Protein:  n.Protein,
		Sugar:    n.Sugar,
		Brand:    n.Brand,
		Source:   model.TierOnline,
	}, nil
}

type aiTier struct {
	asker ai.Asker
}

func (aiTier) Name() string { return string(model.TierAI) }

const estimatePrompt = `Estimate the nutrition of %s grams of %q.

Return ONLY a JSON object: {"calories": number, "protein": number in grams, "sugar": number in grams}`

func (t aiTier) Attempt(ctx context.Context, req Request) (model.NutritionRecord, error) {
	var reply struct {
		Calories ai.Number `json:"calories"`
		Protein  ai.Number `json:"protein"`
		Sugar    ai.Number `json:"sugar"`
	}
	prompt := fmt.Sprintf(estimatePrompt, formatGrams(req.Grams), req.Food)
	if err := ai.Decode(ctx, t.asker, prompt, &reply); err != nil {
		return model.NutritionRecord{}, err
	}
	if reply.Calories <= 0 {
		return model.NutritionRecord{}, fallback.ErrDeclined
	}
	return model.NutritionRecord{
		Calories: int(math.Round(float64(reply.Calories))),
		Protein:  round1(max(float64(reply.Protein), 0)),
		Sugar:    round1(max(float64(reply.Sugar), 0)),
		Source:   model.TierAI,
	}, nil
}

func formatGrams(g float64) string {
	return fmt.Sprintf("%g", g)
}
