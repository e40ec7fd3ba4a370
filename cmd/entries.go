package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/theirongolddev/selforge/internal/model"
	"github.com/theirongolddev/selforge/internal/tracker"

	"github.com/spf13/cobra"
)

var (
	flagFoodName     string
	flagFoodGrams    float64
	flagFoodQty      float64
	flagFoodUnit     string
	flagGymExercise  string
	flagGymMuscle    string
	flagGymSets      int
	flagGymReps      int
	flagGymWeight    float64
	flagCardioActive string
	flagCardioMin    int
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Record food without the text parser",
}

var foodAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a food by name and quantity",
	Example: `  selforge food add --name rice --qty 1 --unit cup
  selforge food add --name "chicken breast" --grams 150`,
	Args: cobra.NoArgs,
	RunE: runFoodAdd,
}

var gymCmd = &cobra.Command{
	Use:   "gym",
	Short: "Record strength training",
}

var gymAddCmd = &cobra.Command{
	Use:     "add",
	Short:   "Record a strength exercise",
	Example: "  selforge gym add --exercise squat --muscle legs --sets 3 --reps 10 --weight 60",
	Args:    cobra.NoArgs,
	RunE:    runGymAdd,
}

var cardioCmd = &cobra.Command{
	Use:   "cardio",
	Short: "Record cardio",
}

var cardioAddCmd = &cobra.Command{
	Use:     "add",
	Short:   "Record a timed cardio activity",
	Example: "  selforge cardio add --activity running --minutes 30",
	Args:    cobra.NoArgs,
	RunE:    runCardioAdd,
}

func init() {
	foodAddCmd.Flags().StringVar(&flagFoodName, "name", "", "Food name")
	foodAddCmd.Flags().Float64Var(&flagFoodGrams, "grams", 0, "Weight in grams")
	foodAddCmd.Flags().Float64Var(&flagFoodQty, "qty", 1, "Quantity in --unit")
	foodAddCmd.Flags().StringVar(&flagFoodUnit, "unit", "", "Unit (cup, slice, piece...); empty uses a typical portion")
	foodAddCmd.MarkFlagsMutuallyExclusive("grams", "unit")
	_ = foodAddCmd.MarkFlagRequired("name")

	gymAddCmd.Flags().StringVar(&flagGymExercise, "exercise", "", "Exercise name")
	gymAddCmd.Flags().StringVar(&flagGymMuscle, "muscle", "", "Muscle group")
	gymAddCmd.Flags().IntVar(&flagGymSets, "sets", 3, "Number of sets")
	gymAddCmd.Flags().IntVar(&flagGymReps, "reps", 10, "Reps per set")
	gymAddCmd.Flags().Float64Var(&flagGymWeight, "weight", 0, "Weight in kg")
	_ = gymAddCmd.MarkFlagRequired("exercise")

	cardioAddCmd.Flags().StringVar(&flagCardioActive, "activity", "", "Activity (running, cycling, swimming...)")
	cardioAddCmd.Flags().IntVarP(&flagCardioMin, "minutes", "m", 0, "Duration in minutes")
	_ = cardioAddCmd.MarkFlagRequired("activity")
	_ = cardioAddCmd.MarkFlagRequired("minutes")

	foodCmd.AddCommand(foodAddCmd)
	gymCmd.AddCommand(gymAddCmd)
	cardioCmd.AddCommand(cardioAddCmd)
	rootCmd.AddCommand(foodCmd, gymCmd, cardioCmd)
}

func runFoodAdd(_ *cobra.Command, _ []string) error {
	qty, unit := flagFoodQty, flagFoodUnit
	if flagFoodGrams > 0 {
		qty, unit = flagFoodGrams, "g"
	}
	if qty <= 0 {
		return errors.New("quantity must be positive")
	}
	return recordEntry(func(ctx context.Context, t *tracker.Tracker) (tracker.Result, error) {
		return t.AddFood(ctx, flagFoodName, qty, unit)
	})
}

func runGymAdd(_ *cobra.Command, _ []string) error {
	g := model.ParsedGym{
		ExerciseName: flagGymExercise,
		MuscleGroup:  flagGymMuscle,
		Sets:         flagGymSets,
		Reps:         flagGymReps,
		WeightKg:     flagGymWeight,
	}
	return recordEntry(func(ctx context.Context, t *tracker.Tracker) (tracker.Result, error) {
		return t.AddGym(ctx, g)
	})
}

func runCardioAdd(_ *cobra.Command, _ []string) error {
	c := model.ParsedCardio{ActivityType: flagCardioActive, DurationMinutes: flagCardioMin}
	return recordEntry(func(ctx context.Context, t *tracker.Tracker) (tracker.Result, error) {
		return t.AddCardio(ctx, c)
	})
}

func recordEntry(fn func(ctx context.Context, t *tracker.Tracker) (tracker.Result, error)) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	progress("Estimating...")
	res, err := fn(context.Background(), s.tracker)
	if err != nil {
		return err
	}
	fmt.Println()
	printEnriched(res.Entry)
	fmt.Println()
	printTodayLine(res.Today, s.tracker.State().CurrentStreak)
	return nil
}
