package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/selforge/internal/export"

	"github.com/spf13/cobra"
)

var flagExportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the ledger to an Excel workbook",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "selforge.xlsx", "Output .xlsx path")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if dir := filepath.Dir(flagExportOut); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
	}
	f, err := os.Create(flagExportOut) //nolint:gosec // output path is chosen by the local user
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}

	n := windowDays(s.cfg)
	if err := export.WriteXLSX(f, s.tracker.State(), s.tracker.Days(n)); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}

	fmt.Printf("  Wrote %s (last %dd summary plus every recorded entry)\n", flagExportOut, n)
	return nil
}
