package parser

// Classification keywords. A token scores when it equals a keyword or its
// plural; each keyword counts once.
var (
	foodSignals = []string{
		"ate", "eat", "eaten", "had", "consumed", "drank", "drink",
		"breakfast", "lunch", "dinner", "snack", "meal", "food", "fruit",
		"egg", "bread", "rice", "chicken", "milk", "cheese", "maggi",
		"mayonnaise", "mayo", "burger", "sandwich", "pizza", "kfc", "mcdonalds",
	}

	gymSignals = []string{
		"bench", "press", "squat", "deadlift", "curl", "row", "pull", "push",
		"lift", "lifted", "set", "rep", "kg", "lbs", "weight", "weights",
		"pulldown", "pushup", "pullup", "dumbbell", "barbell", "gym",
	}

	cardioSignals = []string{
		"ran", "run", "running", "jog", "jogged", "jogging", "walk", "walked",
		"walking", "cycle", "cycled", "cycling", "bike", "swim", "swam",
		"swimming", "rowing", "cardio", "minute", "min", "mins", "hour", "km",
		"treadmill", "elliptical", "rope", "stair",
	}
)

// foodKeywords mark a token run as a food name during extraction.
var foodKeywords = []string{
	"egg", "bread", "toast", "rice", "chicken", "milk", "cheese", "paneer",
	"maggi", "noodle", "pasta", "roti", "chapati", "dal", "curry", "sabzi",
	"mayonnaise", "mayo", "butter", "ghee", "oil", "yogurt", "curd", "banana",
	"apple", "orange", "mango", "potato", "tomato", "onion", "garlic", "ginger",
	"burger", "sandwich", "zinger", "pizza", "wrap", "roll", "naan", "paratha",
	"biryani", "samosa", "pakora", "idli", "dosa", "vada", "upma", "poha",
	"parle-g", "beef", "pork", "fish", "salmon", "tuna", "tofu", "oats",
	"strawberry", "grape", "watermelon", "broccoli", "spinach", "carrot",
	"lettuce", "cucumber", "almond", "walnut", "cashew", "chocolate", "honey",
	"ketchup", "biscuit", "cookie", "cake", "juice", "coffee", "tea",
}

// compoundFoods extend a matched keyword by one following token.
var compoundFoods = map[string]bool{
	"chicken breast": true,
	"peanut butter":  true,
	"brown rice":     true,
	"white rice":     true,
	"white bread":    true,
	"greek yogurt":   true,
	"sweet potato":   true,
	"olive oil":      true,
	"dark chocolate": true,
	"whole milk":     true,
	"skim milk":      true,
	"cheddar cheese": true,
	"amul butter":    true,
	"amul cheese":    true,
	"amul milk":      true,
}

// fallbackFoods is searched, in order, when no number-led group is found.
var fallbackFoods = []string{
	"egg", "bread", "toast", "rice", "chicken", "milk", "banana", "apple",
	"yogurt", "cheese", "paneer", "maggi", "burger", "sandwich", "pizza",
}

// fillerWords are skipped before a food name.
var fillerWords = map[string]bool{
	"of": true, "a": true, "an": true, "the": true, "and": true, "with": true, "x": true,
}

type exercise struct {
	name   string
	muscle string
	tokens []string
}

// exercises are matched in order; the first hit wins.
var exercises = []exercise{
	{"bench press", "chest", []string{"bench"}},
	{"shoulder press", "shoulders", []string{"shoulder", "press"}},
	{"overhead press", "shoulders", []string{"overhead", "press"}},
	{"leg press", "legs", []string{"leg", "press"}},
	{"lat pulldown", "back", []string{"pulldown"}},
	{"bicep curl", "arms", []string{"curl"}},
	{"tricep extension", "arms", []string{"tricep"}},
	{"deadlift", "back", []string{"deadlift"}},
	{"squat", "legs", []string{"squat"}},
	{"lunge", "legs", []string{"lunge"}},
	{"barbell row", "back", []string{"row"}},
	{"pull up", "back", []string{"pullup"}},
	{"pull up", "back", []string{"pull", "up"}},
	{"push up", "chest", []string{"pushup"}},
	{"push up", "chest", []string{"push", "up"}},
}

const unknownExercise = "unknown exercise"

// cardioAliases map a token to its canonical activity.
var cardioAliases = map[string]string{
	"running": "running", "ran": "running", "run": "running", "runs": "running",
	"jogging": "jogging", "jog": "jogging", "jogged": "jogging",
	"walking": "walking", "walk": "walking", "walked": "walking",
	"cycling": "cycling", "cycle": "cycling", "cycled": "cycling", "bike": "cycling", "biked": "cycling",
	"swimming": "swimming", "swim": "swimming", "swam": "swimming",
	"rowing": "rowing", "treadmill": "treadmill", "elliptical": "elliptical",
}

// cardioPhrases are two-token activities checked before aliases.
var cardioPhrases = map[string]string{
	"jump rope":     "jump rope",
	"skipping rope": "jump rope",
	"stair climber": "stair climber",
}

const unknownActivity = "unknown activity"

var hourUnits = map[string]bool{"h": true, "hr": true, "hrs": true, "hour": true, "hours": true}

const (
	defaultSets     = 3
	defaultReps     = 10
	defaultDuration = 30
	defaultGrams    = 100

	unknownSummary = "Could not determine if this is food or exercise"
)
