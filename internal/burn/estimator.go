// Package burn estimates calories burned by strength and cardio activities.
package burn

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/theirongolddev/selforge/internal/ai"
	"github.com/theirongolddev/selforge/internal/fallback"
)

// DefaultBodyWeightKg is used when no weight is configured or measured.
const DefaultBodyWeightKg = 80

const (
	defaultMET       = 6.0
	secondsPerRep    = 3
	gymKcalPerMinute = 6.5
	intensityPer10Kg = 0.5
)

// metTable holds MET values keyed by lower-case activity name.
var metTable = map[string]float64{
	"running":       9.8,
	"jogging":       8.0,
	"cycling":       7.5,
	"swimming":      8.0,
	"walking":       3.5,
	"jump rope":     12.0,
	"rowing":        7.0,
	"elliptical":    8.0,
	"stair climber": 8.5,
	"treadmill":     9.0,
}

// MET returns the MET value for activity, or 6.0 when unknown.
func MET(activity string) float64 {
	if v, ok := metTable[strings.ToLower(strings.TrimSpace(activity))]; ok {
		return v
	}
	return defaultMET
}

// Gym is the input for a strength estimate.
type Gym struct {
	Exercise    string
	MuscleGroup string
	Sets        int
	Reps        int
	WeightKg    float64
}

// Cardio is the input for a cardio estimate.
type Cardio struct {
	Activity     string
	Minutes      int
	BodyWeightKg float64
}

// Options configures an Estimator. A nil AI skips the AI tier.
type Options struct {
	AI           ai.Asker
	BodyWeightKg float64
	// WeightSource, when set, is asked for a measured weight on every
	// cardio estimate. A positive answer overrides BodyWeightKg.
	WeightSource func() float64
	TierTimeout  time.Duration
	Logger       *log.Logger
}

// Estimator runs AI → formula for both activity kinds.
type Estimator struct {
	bodyWeight float64
	measured   func() float64
	gym        *fallback.Chain[Gym, int]
	cardio     *fallback.Chain[Cardio, int]
}

// NewEstimator builds an Estimator.
func NewEstimator(opts Options) *Estimator {
	bw := opts.BodyWeightKg
	if bw <= 0 || math.IsNaN(bw) || math.IsInf(bw, 0) {
		bw = DefaultBodyWeightKg
	}

	var gymTiers []fallback.Strategy[Gym, int]
	var cardioTiers []fallback.Strategy[Cardio, int]
	if opts.AI != nil {
		gymTiers = append(gymTiers, aiGymTier{opts.AI})
		cardioTiers = append(cardioTiers, aiCardioTier{opts.AI})
	}

	chainOpts := []fallback.Option{
		fallback.WithTimeout(opts.TierTimeout),
		fallback.WithLogger(opts.Logger),
	}
	return &Estimator{
		bodyWeight: bw,
		measured:   opts.WeightSource,
		gym:        fallback.New(GymFormula, gymTiers, chainOpts...),
		cardio: fallback.New(func(c Cardio) int {
			return CardioFormula(c, c.BodyWeightKg)
		}, cardioTiers, chainOpts...),
	}
}

// BodyWeightKg returns the weight used for cardio: the measured weight when
// there is one, otherwise the configured weight.
func (e *Estimator) BodyWeightKg() float64 {
	if e.measured != nil {
		if w := finite(e.measured()); w > 0 {
			return w
		}
	}
	return e.bodyWeight
}

// EstimateGym never fails.
func (e *Estimator) EstimateGym(ctx context.Context, exercise, muscleGroup string, sets, reps int, weightKg float64) int {
	out, _ := e.gym.Run(ctx, Gym{
		Exercise:    exercise,
		MuscleGroup: muscleGroup,
		Sets:        max(sets, 0),
		Reps:        max(reps, 0),
		WeightKg:    finite(weightKg),
	})
	return out
}

// EstimateCardio never fails.
func (e *Estimator) EstimateCardio(ctx context.Context, activity string, minutes int) int {
	out, _ := e.cardio.Run(ctx, Cardio{
		Activity:     activity,
		Minutes:      max(minutes, 0),
		BodyWeightKg: e.BodyWeightKg(),
	})
	return out
}

// GymFormula assumes 3 s per rep at 6.5 kcal/min, raised by half for
// every 10 kg lifted.
func GymFormula(g Gym) int {
	minutes := float64(g.Sets*g.Reps*secondsPerRep) / 60
	base := minutes * gymKcalPerMinute
	bonus := (g.WeightKg / 10) * intensityPer10Kg
	return int(math.Round(base * (1 + bonus)))
}

// CardioFormula is MET × body weight × hours.
func CardioFormula(c Cardio, bodyWeightKg float64) int {
	return int(math.Round(MET(c.Activity) * bodyWeightKg * float64(c.Minutes) / 60))
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

type burnReply struct {
	CaloriesBurned ai.Number `json:"caloriesBurned"`
}

func askBurn(ctx context.Context, a ai.Asker, prompt string) (int, error) {
	var r burnReply
	if err := ai.Decode(ctx, a, prompt, &r); err != nil {
		return 0, err
	}
	if r.CaloriesBurned <= 0 {
		return 0, fallback.ErrDeclined
	}
	return int(math.Round(float64(r.CaloriesBurned))), nil
}

type aiGymTier struct{ asker ai.Asker }

func (aiGymTier) Name() string { return "ai" }

func (t aiGymTier) Attempt(ctx context.Context, g Gym) (int, error) {
	prompt := fmt.Sprintf(`Estimate calories burned for this strength exercise: %s (%s), %d sets of %d reps at %gkg.

Return ONLY a JSON object: {"caloriesBurned": number}`, g.Exercise, g.MuscleGroup, g.Sets, g.Reps, g.WeightKg)
	return askBurn(ctx, t.asker, prompt)
}

type aiCardioTier struct{ asker ai.Asker }

func (aiCardioTier) Name() string { return "ai" }

func (t aiCardioTier) Attempt(ctx context.Context, c Cardio) (int, error) {
	prompt := fmt.Sprintf(`Estimate calories burned by a %gkg person doing %s for %d minutes.

Return ONLY a JSON object: {"caloriesBurned": number}`, c.BodyWeightKg, c.Activity, c.Minutes)
	return askBurn(ctx, t.asker, prompt)
}
