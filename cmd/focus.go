package cmd

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/theirongolddev/selforge/internal/cli"

	"github.com/spf13/cobra"
)

var (
	flagFocusDuration time.Duration
	flagFocusLimit    int
)

var focusCmd = &cobra.Command{
	Use:   "focus [SUBJECT [TOPIC]]",
	Short: "Record a timed focus session, or list recent ones",
	Example: `  selforge focus physics optics --duration 25m
  selforge focus`,
	Args: cobra.MaximumNArgs(2),
	RunE: runFocus,
}

func init() {
	focusCmd.Flags().DurationVarP(&flagFocusDuration, "duration", "d", 25*time.Minute, "Session length")
	focusCmd.Flags().IntVarP(&flagFocusLimit, "limit", "n", 10, "Sessions to list")
	rootCmd.AddCommand(focusCmd)
}

func runFocus(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if len(args) > 0 {
		topic := ""
		if len(args) == 2 {
			topic = args[1]
		}
		p, err := s.tracker.AddProtocolSession(args[0], topic, flagFocusDuration)
		if err != nil {
			return err
		}
		fmt.Printf("  %s %s %s\n", cli.Good("Focus logged:"), p.Subject,
			cli.Muted(strings.TrimSpace(p.Topic+" "+cli.FormatMinutes(p.DurationSeconds/60))))
		return nil
	}

	sessions := slices.Clone(s.tracker.State().ProtocolSessions)
	fmt.Println()
	if len(sessions) == 0 {
		fmt.Println("  No focus sessions yet. Record one with `selforge focus SUBJECT --duration 25m`.")
		return nil
	}
	slices.Reverse(sessions)
	if flagFocusLimit > 0 && len(sessions) > flagFocusLimit {
		sessions = sessions[:flagFocusLimit]
	}
	rows := make([][]string, 0, len(sessions))
	for _, p := range sessions {
		rows = append(rows, []string{
			p.Time().Local().Format("2006-01-02 15:04"),
			p.Subject,
			p.Topic,
			cli.FormatMinutes(p.DurationSeconds / 60),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:    "Focus sessions",
		Headers:  []string{"When", "Subject", "Topic", "Length"},
		Rows:     rows,
		LeftCols: 3,
	}))
	return nil
}
