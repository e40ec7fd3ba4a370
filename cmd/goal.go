package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/selforge/internal/cli"
	"github.com/theirongolddev/selforge/internal/model"
	"github.com/theirongolddev/selforge/internal/pipeline"

	"github.com/spf13/cobra"
)

var goalCmd = &cobra.Command{
	Use:       "goal study|gym|nutrition|sleep|discipline on|off",
	Short:     "Mark one of today's goals done or open",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"study", "gym", "nutrition", "sleep", "discipline"},
	RunE:      runGoal,
}

var schoolCmd = &cobra.Command{
	Use:   "school on|off",
	Short: "Record whether you went to school today",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchool,
}

func init() {
	rootCmd.AddCommand(goalCmd)
	rootCmd.AddCommand(schoolCmd)
}

func runGoal(_ *cobra.Command, args []string) error {
	key, err := model.ParseGoalKey(args[0])
	if err != nil {
		return err
	}
	on, err := parseOnOff(args[1])
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	day, err := s.tracker.ToggleGoal(key, on)
	if err != nil {
		return err
	}
	fmt.Printf("  %s\n", cli.FormatGoals(day.GoalsCompleted, day.GoalManualOverrides))
	fmt.Printf("  %s\n", cli.RenderStreak(s.tracker.State().CurrentStreak, 0))
	return nil
}

func runSchool(_ *cobra.Command, args []string) error {
	on, err := parseOnOff(args[0])
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	day, err := s.tracker.SetWentToSchool(on)
	if err != nil {
		return err
	}
	sum := pipeline.SummarizeDay(day)
	if on {
		fmt.Printf("  School day: +%s burned (total %s)\n",
			cli.FormatKcal(model.SchoolBurnCalories), cli.FormatKcal(sum.CaloriesBurned))
	} else {
		fmt.Printf("  Not a school day (burned %s)\n", cli.FormatKcal(sum.CaloriesBurned))
	}
	return nil
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "yes", "true", "done", "1":
		return true, nil
	case "off", "no", "false", "open", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}
