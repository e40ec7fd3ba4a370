package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/theirongolddev/selforge/internal/cli"
	"github.com/theirongolddev/selforge/internal/model"
	"github.com/theirongolddev/selforge/internal/tracker"

	"github.com/spf13/cobra"
)

var flagParseJSON bool

var logCmd = &cobra.Command{
	Use:   "log TEXT...",
	Short: "Log food or exercise described in plain language",
	Example: `  selforge log 2 eggs and a banana
  selforge log bench press 3x8 at 60kg
  selforge log ran 30 minutes`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLog,
}

var parseCmd = &cobra.Command{
	Use:   "parse TEXT...",
	Short: "Show how text would be logged without recording it",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&flagParseJSON, "json", false, "Print the enriched entry as JSON")
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(parseCmd)
}

func runLog(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	progress("Estimating...")
	res, err := s.tracker.LogText(ctx, strings.Join(args, " "))
	if errors.Is(err, tracker.ErrUnrecognized) {
		fmt.Printf("\n  %s %s\n", cli.Warn("Could not determine type:"), res.Entry.Summary)
		fmt.Println(cli.Muted("  Try naming a food with a quantity, or an exercise with sets or minutes."))
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println()
	printEnriched(res.Entry)
	fmt.Println()
	printTodayLine(res.Today, s.tracker.State().CurrentStreak)
	return nil
}

func runParse(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	e := s.tracker.Preview(context.Background(), strings.Join(args, " "))
	if flagParseJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(e)
	}

	fmt.Println()
	fmt.Printf("  %s %s\n", cli.Header("Kind:"), e.Kind)
	if e.Kind == model.KindUnknown {
		fmt.Printf("  %s %s\n", cli.Header("Summary:"), e.Summary)
		return nil
	}
	printEnriched(e)
	fmt.Println(cli.Muted("  (preview only, nothing recorded)"))
	return nil
}

func printEnriched(e model.EnrichedEntry) {
	if e.Kind != model.KindFood {
		fmt.Printf("  %s %s  ~%s burned\n", cli.Good("Logged"), e.Summary, cli.FormatKcal(e.CaloriesBurned))
		return
	}

	rows := make([][]string, 0, len(e.Items))
	for _, it := range e.Items {
		qty := it.DisplayQuantity
		if qty == "" {
			qty = cli.FormatGrams(it.QuantityGrams)
		}
		rows = append(rows, []string{
			it.Name,
			qty,
			cli.FormatGrams(it.QuantityGrams),
			cli.FormatKcal(it.Nutrition.Calories),
			cli.FormatGrams(it.Nutrition.Protein),
			cli.FormatGrams(it.Nutrition.Sugar),
			cli.FormatSource(it.Nutrition.Source),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers:  []string{"Food", "Amount", "Grams", "Calories", "Protein", "Sugar", "Src"},
		Rows:     rows,
		Footer:   []string{"Total", "", "", cli.FormatKcal(e.TotalCalories), cli.FormatGrams(e.TotalProtein), cli.FormatGrams(e.TotalSugar), ""},
		LeftCols: 2,
	}))
}

func printTodayLine(d model.DaySummary, currentStreak int) {
	fmt.Printf("  Today: %s eaten, %s burned, goals %d/%d, streak %s\n",
		cli.FormatKcal(d.CaloriesEaten),
		cli.FormatKcal(d.CaloriesBurned),
		d.GoalsCompleted, len(model.GoalKeys),
		cli.FormatDays(currentStreak))
}
