package cmd

import (
	"fmt"

	"github.com/theirongolddev/selforge/internal/cli"
	"github.com/theirongolddev/selforge/internal/model"

	"github.com/spf13/cobra"
)

var measureCmd = &cobra.Command{
	Use:   "measure [weekly|monthly]",
	Short: "Record or show body measurements",
	Long: `Record or show body measurements.

With no flags the weekly and monthly sets are shown. Flags update only the
fields given. The latest weight (weekly first) replaces the configured body
weight in cardio burn estimates.`,
	Example: `  selforge measure weekly --weight 61.5 --waist 70
  selforge measure`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"weekly", "monthly"},
	RunE:      runMeasure,
}

var measureFields = []struct {
	flag, unit string
	pick       func(u *model.MeasurementUpdate) **float64
	get        func(m model.BodyMeasurements) float64
}{
	{"chest", "cm", func(u *model.MeasurementUpdate) **float64 { return &u.Chest }, func(m model.BodyMeasurements) float64 { return m.Chest }},
	{"waist", "cm", func(u *model.MeasurementUpdate) **float64 { return &u.Waist }, func(m model.BodyMeasurements) float64 { return m.Waist }},
	{"butt", "cm", func(u *model.MeasurementUpdate) **float64 { return &u.Butt }, func(m model.BodyMeasurements) float64 { return m.Butt }},
	{"thighs", "cm", func(u *model.MeasurementUpdate) **float64 { return &u.Thighs }, func(m model.BodyMeasurements) float64 { return m.Thighs }},
	{"weight", "kg", func(u *model.MeasurementUpdate) **float64 { return &u.Weight }, func(m model.BodyMeasurements) float64 { return m.Weight }},
	{"height", "cm", func(u *model.MeasurementUpdate) **float64 { return &u.Height }, func(m model.BodyMeasurements) float64 { return m.Height }},
}

func init() {
	for _, f := range measureFields {
		measureCmd.Flags().Float64(f.flag, 0, fmt.Sprintf("%s (%s)", f.flag, f.unit))
	}
	rootCmd.AddCommand(measureCmd)
}

func runMeasure(cmd *cobra.Command, args []string) error {
	period := model.MeasureWeekly
	if len(args) == 1 {
		var err error
		if period, err = model.ParseMeasurementPeriod(args[0]); err != nil {
			return err
		}
	}
	u, err := measureUpdate(cmd)
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if u != nil {
		if _, err := s.tracker.SetMeasurements(period, *u); err != nil {
			return err
		}
		fmt.Printf("  %s %s measurements saved\n", cli.Good("✓"), period)
	}

	st := s.tracker.State()
	rows := make([][]string, 0, len(measureFields))
	for _, f := range measureFields {
		rows = append(rows, []string{
			f.flag,
			cli.FormatMeasure(f.get(st.WeeklyMeasurements), f.unit),
			cli.FormatMeasure(f.get(st.MonthlyMeasurements), f.unit),
		})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Measurements",
		Headers: []string{"", "Weekly", "Monthly"},
		Rows:    rows,
	}))
	fmt.Printf("  %s\n", cli.Muted(cli.FormatCountdown(s.tracker.Countdown())))
	return nil
}

// measureUpdate collects the changed flags. It returns nil when none were
// given.
func measureUpdate(cmd *cobra.Command) (*model.MeasurementUpdate, error) {
	var u model.MeasurementUpdate
	set := false
	for _, f := range measureFields {
		if !cmd.Flags().Changed(f.flag) {
			continue
		}
		v, err := cmd.Flags().GetFloat64(f.flag)
		if err != nil {
			return nil, err
		}
		*f.pick(&u) = &v
		set = true
	}
	if !set {
		return nil, nil
	}
	return &u, nil
}
