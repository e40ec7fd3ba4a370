package model

// SourceTier records which resolution tier produced a value.
type SourceTier string

const (
	TierOnline  SourceTier = "online"
	TierRegion  SourceTier = "region"
	TierGeneral SourceTier = "general"
	TierAI      SourceTier = "ai"
	TierDefault SourceTier = "default"
)

// Tiers lists every tier in resolution order.
var Tiers = []SourceTier{TierOnline, TierRegion, TierGeneral, TierAI, TierDefault}

// NutritionRecord is the nutrition for a concrete quantity of one food.
type NutritionRecord struct {
	Calories int        `json:"calories"`
	Protein  float64    `json:"protein"`
	Sugar    float64    `json:"sugar"`
	Brand    string     `json:"brand,omitempty"`
	Source   SourceTier `json:"source"`
}

// EnrichedFoodItem pairs a parsed food item with its resolved nutrition.
type EnrichedFoodItem struct {
	ParsedFoodItem
	Nutrition NutritionRecord `json:"nutrition"`
}

// EnrichedEntry is a parsed entry with nutrition or burn attached.
// Items is populated for food; CaloriesBurned for gym and cardio.
type EnrichedEntry struct {
	Entry          ParsedEntry        `json:"-"`
	Kind           EntryKind          `json:"kind"`
	Summary        string             `json:"summary"`
	Items          []EnrichedFoodItem `json:"items,omitempty"`
	TotalCalories  int                `json:"totalCalories"`
	TotalProtein   float64            `json:"totalProtein"`
	TotalSugar     float64            `json:"totalSugar"`
	CaloriesBurned int                `json:"caloriesBurned"`
}
