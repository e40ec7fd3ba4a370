package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/selforge/internal/source"

	"github.com/spf13/cobra"
)

var (
	flagImportDir    string
	flagImportDryRun bool
)

var importCmd = &cobra.Command{
	Use:   "import [FILE]",
	Short: "Merge a JSON backup from the browser app or another store",
	Long: "Merge a JSON backup into the local store. Days already recorded here are kept;\n" +
		"only new dates, archived streaks and a missing profile are taken from the backup.",
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&flagImportDir, "dir", "", "Import the newest .json backup in this directory")
	importCmd.Flags().BoolVar(&flagImportDryRun, "dry-run", false, "Show what the backup holds without importing")
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	df, err := pickBackup(args)
	if err != nil {
		return err
	}

	progress("Reading %s", df.Path)
	res := source.ParseFile(df)
	if res.Err != nil {
		return fmt.Errorf("reading %s: %w", df.Path, res.Err)
	}

	fmt.Printf("  Backup: %d day(s), %d archived streak(s), schema v%d\n",
		len(res.State.DailyData), len(res.State.StreakHistory), res.Version)
	if flagImportDryRun {
		return nil
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	stats, err := s.tracker.Import(res.State)
	if err != nil {
		return err
	}
	fmt.Printf("  Added %d day(s), kept %d existing, %d streak(s) archived\n",
		stats.DaysAdded, stats.DaysKept, stats.HistoryAdded)
	if stats.SessionsAdded > 0 {
		fmt.Printf("  %d focus session(s) added\n", stats.SessionsAdded)
	}
	if stats.MeasurementsAdopted > 0 {
		fmt.Printf("  %d measurement set(s) taken from the backup\n", stats.MeasurementsAdopted)
	}
	if stats.ProfileAdopted {
		fmt.Println("  Profile taken from the backup")
	}
	fmt.Printf("  Current streak: %d\n", s.tracker.State().CurrentStreak)
	return nil
}

func pickBackup(args []string) (source.DiscoveredFile, error) {
	switch {
	case len(args) == 1 && flagImportDir != "":
		return source.DiscoveredFile{}, errors.New("give a FILE or --dir, not both")
	case len(args) == 1:
		return source.DiscoveredFile{Path: args[0]}, nil
	case flagImportDir == "":
		return source.DiscoveredFile{}, errors.New("give a backup FILE or --dir")
	}

	files, err := source.ScanDir(flagImportDir)
	if err != nil {
		return source.DiscoveredFile{}, err
	}
	if len(files) == 0 {
		return source.DiscoveredFile{}, fmt.Errorf("no .json backups in %s", flagImportDir)
	}
	return files[0], nil
}
