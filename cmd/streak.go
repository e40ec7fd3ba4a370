package cmd

import (
	"fmt"
	"slices"

	"github.com/theirongolddev/selforge/internal/cli"
	"github.com/theirongolddev/selforge/internal/model"
	"github.com/theirongolddev/selforge/internal/streak"

	"github.com/spf13/cobra"
)

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Current streak, best run and archived streaks",
	RunE:  runStreak,
}

func init() {
	rootCmd.AddCommand(streakCmd)
}

func runStreak(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	st := s.tracker.State()
	today := s.tracker.Today()

	fmt.Println()
	fmt.Println(cli.RenderTitle("STREAK"))
	fmt.Println()
	fmt.Printf("  %s\n", cli.RenderStreak(st.CurrentStreak, streak.Longest(st)))
	if today.Qualifies() {
		fmt.Printf("  %s\n", cli.Good("Today already counts."))
	} else {
		need := model.QualifyingGoals - today.GoalsCompleted.Count()
		fmt.Printf("  %s\n", cli.Warn(fmt.Sprintf("Complete %d more goal(s) today to extend it.", need)))
	}
	fmt.Printf("  %s\n", cli.Muted(cli.FormatCountdown(s.tracker.Countdown())))
	fmt.Println()

	if len(st.StreakHistory) == 0 {
		fmt.Println("  No finished streaks yet.")
		return nil
	}

	history := slices.Clone(st.StreakHistory)
	slices.Reverse(history)
	rows := make([][]string, 0, len(history))
	for _, h := range history {
		rows = append(rows, []string{h.StartDate, h.EndDate, cli.FormatDays(h.LengthDays)})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "History",
		Headers: []string{"Start", "End", "Length"},
		Rows:    rows,
	}))
	return nil
}
