package cmd

import (
	"fmt"

	"github.com/theirongolddev/selforge/internal/cli"
	"github.com/theirongolddev/selforge/internal/pipeline"

	"github.com/spf13/cobra"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Per-day goals and calories table",
	RunE:  runDaily,
}

func init() {
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	n := windowDays(s.cfg)
	days := s.tracker.Days(n)
	period := pipeline.SummarizePeriod(days)
	if period.RecordedDays == 0 {
		fmt.Println("\n  No data for the selected period.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("DAILY  Last %dd", n)))
	fmt.Println()

	rows := make([][]string, 0, len(days))
	for _, d := range days {
		mark := " "
		if d.Qualifies {
			mark = "✓"
		}
		rows = append(rows, []string{
			d.Key,
			cli.FormatDayOfWeek(int(d.Date.Weekday())),
			fmt.Sprintf("%d/5 %s", d.GoalsCompleted, mark),
			cli.FormatKcal(d.CaloriesEaten),
			cli.FormatKcal(d.CaloriesBurned),
			cli.FormatSignedKcal(d.NetCalories),
			cli.FormatGrams(d.Protein),
			fmt.Sprintf("%d", d.StudyDone),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Day", "Goals", "Eaten", "Burned", "Net", "Protein", "Study"},
		Rows:    rows,
	}))
	fmt.Println()
	fmt.Printf("  %d of %d recorded days counted toward the streak\n", period.QualifyingDays, period.RecordedDays)
	fmt.Printf("  Averages per recorded day: %s eaten, %s burned, %s protein\n",
		cli.FormatKcal(int(period.CaloriesPerDay)),
		cli.FormatKcal(int(period.BurnPerDay)),
		cli.FormatGrams(period.ProteinPerDay))

	return nil
}
