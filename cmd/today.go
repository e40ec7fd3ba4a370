package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/selforge/internal/cli"
	"github.com/theirongolddev/selforge/internal/model"
	"github.com/theirongolddev/selforge/internal/pipeline"
	"github.com/theirongolddev/selforge/internal/streak"

	"github.com/spf13/cobra"
)

var flagTodayDate string

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's goals, food and activities",
	RunE:  runToday,
}

func init() {
	todayCmd.Flags().StringVar(&flagTodayDate, "date", "", "Show another day (YYYY-MM-DD)")
	rootCmd.AddCommand(todayCmd)
}

func runToday(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	day := s.tracker.Today()
	if flagTodayDate != "" {
		if _, err := time.Parse(model.DateLayout, flagTodayDate); err != nil {
			return fmt.Errorf("invalid date %q, want YYYY-MM-DD", flagTodayDate)
		}
		var ok bool
		if day, ok = s.tracker.Day(flagTodayDate); !ok {
			fmt.Printf("\n  Nothing recorded on %s.\n", flagTodayDate)
			return nil
		}
	}
	st := s.tracker.State()
	sum := pipeline.SummarizeDate(st, day.Date)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SELFORGE  %s", day.Date)))
	fmt.Println()
	fmt.Printf("  %s\n", cli.RenderStreak(st.CurrentStreak, streak.Longest(st)))
	fmt.Printf("  Goals %d/%d  %s\n", sum.GoalsCompleted, len(model.GoalKeys),
		cli.RenderGoalBar(sum.GoalsCompleted, len(model.GoalKeys), model.QualifyingGoals, 20))
	fmt.Printf("  %s\n", cli.FormatGoals(day.GoalsCompleted, day.GoalManualOverrides))
	if !sum.Qualifies {
		fmt.Printf("  %s\n", cli.Muted(fmt.Sprintf("%d more to keep the streak", model.QualifyingGoals-sum.GoalsCompleted)))
	}
	if flagTodayDate == "" {
		fmt.Printf("  %s\n", cli.Muted(cli.FormatCountdown(s.tracker.Countdown())))
	}
	fmt.Println()

	fmt.Printf("  %s  %s eaten  %s burned  net %s\n",
		cli.Header("Calories"),
		cli.FormatKcal(sum.CaloriesEaten),
		cli.FormatKcal(sum.CaloriesBurned),
		cli.FormatSignedKcal(sum.NetCalories))
	fmt.Printf("  %s  %s protein  %s sugar\n",
		cli.Header("Macros  "), cli.FormatGrams(sum.Protein), cli.FormatGrams(sum.Sugar))
	if day.WentToSchool {
		fmt.Printf("  %s\n", cli.Muted(fmt.Sprintf("school day, %s included in burn", cli.FormatKcal(sum.SchoolBurn))))
	}
	if sum.FocusSessions > 0 {
		fmt.Printf("  %s  %s in %d session(s)\n", cli.Header("Focus   "), cli.FormatMinutes(sum.FocusMinutes), sum.FocusSessions)
	}
	fmt.Println()

	if len(day.FoodEntries) > 0 {
		rows := make([][]string, 0, len(day.FoodEntries))
		for _, f := range day.FoodEntries {
			rows = append(rows, []string{
				f.Name,
				cli.FormatGrams(f.QuantityGrams),
				cli.FormatKcal(f.Calories),
				cli.FormatGrams(f.Protein),
				cli.FormatGrams(f.Sugar),
				cli.FormatSource(f.Source),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Food",
			Headers: []string{"Food", "Qty", "Calories", "Protein", "Sugar", "Src"},
			Rows:    rows,
		}))
		fmt.Println()
	}

	if len(day.GymActivities) > 0 {
		fmt.Print(cli.RenderTable(activityTable(day.GymActivities)))
		fmt.Println()
	}

	if len(day.StudyTopics) > 0 {
		fmt.Print(cli.RenderTable(studyTable(day.StudyTopics)))
		fmt.Println()
	}

	return nil
}

func activityTable(acts []model.GymActivity) cli.Table {
	rows := make([][]string, 0, len(acts))
	for _, a := range acts {
		name, detail := a.ExerciseName, fmt.Sprintf("%dx%d", a.Sets, a.Reps)
		if a.WeightKg > 0 {
			detail += fmt.Sprintf(" @ %gkg", a.WeightKg)
		}
		if a.Type == model.ActivityCardio {
			name, detail = a.ActivityType, cli.FormatMinutes(a.DurationMinutes)
		}
		rows = append(rows, []string{string(a.Type), name, detail, cli.FormatKcal(a.CaloriesBurned)})
	}
	return cli.Table{
		Title:   "Activities",
		Headers: []string{"Type", "Activity", "Detail", "Burned"},
		Rows:    rows,
	}
}

func studyTable(topics []model.StudyTopic) cli.Table {
	rows := make([][]string, 0, len(topics))
	for _, t := range topics {
		rows = append(rows, []string{shortID(t.ID), t.Subject, t.Chapter, string(t.Status)})
	}
	return cli.Table{
		Title:   "Study",
		Headers: []string{"ID", "Subject", "Chapter", "Status"},
		Rows:    rows,
	}
}

// shortID returns the first 8 characters of a topic ID, enough to address
// it on the command line.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
